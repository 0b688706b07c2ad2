package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TemplateType represents the RCS message shape a template produces
type TemplateType string

const (
	TemplateTypePlainText       TemplateType = "plain_text"
	TemplateTypeTextWithActions TemplateType = "text_with_actions"
	TemplateTypeRichCard        TemplateType = "rich_card"
	TemplateTypeCarousel        TemplateType = "carousel"
)

// String returns the string representation of the template type
func (t TemplateType) String() string {
	return string(t)
}

// Valid checks if the template type is valid
func (t TemplateType) Valid() bool {
	switch t {
	case TemplateTypePlainText, TemplateTypeTextWithActions,
		TemplateTypeRichCard, TemplateTypeCarousel:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for TemplateType
func (t *TemplateType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = TemplateType(v)
	case []byte:
		*t = TemplateType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TemplateType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for TemplateType
func (t TemplateType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid TemplateType: %s", t)
	}
	return string(t), nil
}

// Suggestion is one suggested action or reply attached to a message
type Suggestion struct {
	Kind         string  `json:"kind"` // reply, url_action, dialer_action
	Text         string  `json:"text"`
	PostbackData *string `json:"postback_data,omitempty"`
	URL          *string `json:"url,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
}

// CarouselCard is one card inside a carousel template
type CarouselCard struct {
	CardTitle       string       `json:"card_title"`
	CardDescription *string      `json:"card_description,omitempty"`
	CardMedia       *string      `json:"card_media,omitempty"` // media asset UUID
	Suggestions     []Suggestion `json:"suggestions,omitempty"`
}

// TemplateContent is the type-specific body of a template, stored as JSONB.
// Which fields are populated depends on the owning template's type.
type TemplateContent struct {
	// plain_text and text_with_actions
	Text *string `json:"text,omitempty"`

	// text_with_actions, rich_card
	Suggestions []Suggestion `json:"suggestions,omitempty"`

	// rich_card
	CardTitle       *string `json:"card_title,omitempty"`
	CardDescription *string `json:"card_description,omitempty"`
	CardMedia       *string `json:"card_media,omitempty"` // media asset UUID

	// carousel
	Contents []CarouselCard `json:"contents,omitempty"`
}

// Value implements the driver.Valuer interface for TemplateContent
func (c TemplateContent) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for TemplateContent
func (c *TemplateContent) Scan(value any) error {
	if value == nil {
		*c = TemplateContent{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TemplateContent", value)
	}

	return json.Unmarshal(bytes, c)
}

// MessageTemplate represents a reusable RCS message template
type MessageTemplate struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uk_message_templates_uuid" json:"uuid"`
	CustomerID uint            `gorm:"not null;index:idx_message_templates_customer_id" json:"customer_id"`
	Customer   *Customer       `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Type       TemplateType    `gorm:"type:template_type;not null;index:idx_message_templates_type" json:"type"`
	Content    TemplateContent `gorm:"type:jsonb;not null" json:"content"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_message_templates_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (MessageTemplate) TableName() string {
	return "message_templates"
}

// MessageTemplateFilter represents filter criteria for template queries
type MessageTemplateFilter struct {
	ID         *uint
	UUID       *uuid.UUID
	CustomerID *uint
	Name       *string
	Type       *TemplateType
}
