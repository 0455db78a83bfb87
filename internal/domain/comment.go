package domain

import "time"

// Comment is a reply attached to exactly one entity. The author is the
// authenticated actor id captured at creation time; ownership checks in the
// policy package compare against it.
type Comment struct {
	ID        string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	ParentID  string     `gorm:"type:varchar(64);not null;index" json:"parentId"`
	Author    string     `gorm:"type:varchar(255);not null" json:"author"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt,omitempty"`
}

// RecordID implements docstore.Record.
func (c Comment) RecordID() string { return c.ID }
