package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Entity is the primary record type shared by every course domain
// (resources, assignments, discussion topics, weekly units). Domains differ
// only in which fields are required and searchable; see definitions.go.
type Entity struct {
	ID        string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Key       string         `gorm:"type:varchar(64);index" json:"key,omitempty"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Author    string         `gorm:"type:varchar(255)" json:"author,omitempty"`
	Link      string         `gorm:"type:varchar(2048)" json:"link,omitempty"`
	StartDate string         `gorm:"type:varchar(10)" json:"startDate,omitempty"`
	DueDate   string         `gorm:"type:varchar(10)" json:"dueDate,omitempty"`
	Links     datatypes.JSON `gorm:"type:text" json:"links,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
}

// RecordID implements docstore.Record.
func (e Entity) RecordID() string { return e.ID }

// LinkList decodes the serialized links column. A missing or malformed
// value reads as an empty list, never as an error.
func (e Entity) LinkList() []string {
	if len(e.Links) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(e.Links, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// SetLinkList encodes links into the serialized column representation.
func (e *Entity) SetLinkList(links []string) {
	if links == nil {
		links = []string{}
	}
	raw, err := json.Marshal(links)
	if err != nil {
		raw = []byte("[]")
	}
	e.Links = datatypes.JSON(raw)
}

// Field returns the value of one of the canonical text fields by its
// snake_case name. Unknown names return the empty string; created_at is
// handled by callers that need time ordering.
func (e Entity) Field(name string) string {
	switch name {
	case FieldTitle:
		return e.Title
	case FieldBody:
		return e.Body
	case FieldAuthor:
		return e.Author
	case FieldKey:
		return e.Key
	case FieldLink:
		return e.Link
	case FieldStartDate:
		return e.StartDate
	case FieldDueDate:
		return e.DueDate
	default:
		return ""
	}
}

// Canonical field names used by search/sort allow-lists and validation.
const (
	FieldTitle     = "title"
	FieldBody      = "body"
	FieldAuthor    = "author"
	FieldKey       = "key"
	FieldLink      = "link"
	FieldStartDate = "start_date"
	FieldDueDate   = "due_date"
	FieldCreatedAt = "created_at"
)
