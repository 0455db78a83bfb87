package dto

import (
	"time"

	"course-hub-api/internal/domain"
)

// CreateCommentRequest is the request body for posting a comment. The
// author is always the authenticated actor, never part of the body.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// UpdateCommentRequest is the request body for editing a comment.
type UpdateCommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse is the wire shape of a comment.
type CommentResponse struct {
	ID        string     `json:"id"`
	ParentID  string     `json:"parentId"`
	Author    string     `json:"author"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt,omitempty"`
}

// ToCommentResponse converts a domain comment to its wire shape.
func ToCommentResponse(c *domain.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		ParentID:  c.ParentID,
		Author:    c.Author,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		EditedAt:  c.EditedAt,
	}
}
