package dto

// ContactDTO represents one roster entry in responses
type ContactDTO struct {
	UUID      string `json:"uuid"`
	Name      string `json:"name,omitempty"`
	Number    string `json:"number"`
	Capable   *bool  `json:"capable"`
	Checking  bool   `json:"checking"`
	State     string `json:"state"`
	CheckedAt string `json:"checked_at,omitempty"`
}

// ImportContactsRequest represents a manual bulk import from the textarea.
// Each line is "name,number" or a bare number.
type ImportContactsRequest struct {
	CustomerID uint   `json:"-"`
	Raw        string `json:"raw" validate:"required"`
}

// ImportSpreadsheetRequest represents an uploaded .xlsx/.xls/.csv import
type ImportSpreadsheetRequest struct {
	CustomerID uint   `json:"-"`
	FileName   string `json:"-"`
	Data       []byte `json:"-"`
}

// ImportContactsResponse reports the outcome of a bulk import
type ImportContactsResponse struct {
	Imported      []ContactDTO `json:"imported"`
	ImportedCount int          `json:"imported_count"`
	SkippedCount  int          `json:"skipped_count"`
	RejectedCount int          `json:"rejected_count"`
}

// ListContactsRequest represents a roster page request
type ListContactsRequest struct {
	CustomerID uint `json:"-"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
}

// ListContactsResponse represents one roster page
type ListContactsResponse struct {
	Contacts []ContactDTO `json:"contacts"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// EditContactRequest represents a single-field number edit
type EditContactRequest struct {
	CustomerID uint   `json:"-"`
	UUID       string `json:"-"`
	Number     string `json:"number" validate:"required"`
}

// EditContactResponse reports the contact state after the edit resolved
type EditContactResponse struct {
	Contact ContactDTO `json:"contact"`
	// Removed is true when the edited number resolved not capable and the
	// record is scheduled for removal.
	Removed bool `json:"removed"`
}

// DeleteContactRequest identifies one contact to remove
type DeleteContactRequest struct {
	CustomerID uint   `json:"-"`
	UUID       string `json:"-"`
}

// RemoveDuplicatesRequest asks for dedupe-by-number collapsing
type RemoveDuplicatesRequest struct {
	CustomerID uint `json:"-"`
}

// RemoveDuplicatesResponse reports how many records were collapsed
type RemoveDuplicatesResponse struct {
	RemovedCount int64 `json:"removed_count"`
}

// ClearContactsRequest asks for full roster deletion. Confirm must be true.
type ClearContactsRequest struct {
	CustomerID uint `json:"-"`
	Confirm    bool `json:"confirm" validate:"required"`
}

// ClearContactsResponse reports how many records were deleted
type ClearContactsResponse struct {
	RemovedCount int64 `json:"removed_count"`
}
