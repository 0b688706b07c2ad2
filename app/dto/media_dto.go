package dto

// MediaAssetDTO represents an uploaded media asset in responses
type MediaAssetDTO struct {
	UUID        string `json:"uuid"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	PublicURL   string `json:"public_url"`
	CreatedAt   string `json:"created_at"`
}

// UploadMediaRequest carries one uploaded image
type UploadMediaRequest struct {
	CustomerID uint   `json:"-"`
	FileName   string `json:"-"`
	Data       []byte `json:"-"`
}

// ListMediaRequest represents a media list page request
type ListMediaRequest struct {
	CustomerID uint `json:"-"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
}

// ListMediaResponse represents one media list page
type ListMediaResponse struct {
	Assets   []MediaAssetDTO `json:"assets"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}
