package dto

import (
	"time"

	"course-hub-api/internal/domain"
)

// CreateEntityRequest is the request body for creating an entity. Which
// fields are required depends on the domain definition; the service layer
// validates, so nothing here is binding-required.
type CreateEntityRequest struct {
	Key       string   `json:"key"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Author    string   `json:"author"`
	Link      string   `json:"link"`
	StartDate string   `json:"startDate"`
	DueDate   string   `json:"dueDate"`
	Links     []string `json:"links"`
}

// UpdateEntityRequest is a partial update: absent fields keep their prior
// value. An update supplying no fields at all is rejected.
type UpdateEntityRequest struct {
	Key       *string   `json:"key"`
	Title     *string   `json:"title"`
	Body      *string   `json:"body"`
	Author    *string   `json:"author"`
	Link      *string   `json:"link"`
	StartDate *string   `json:"startDate"`
	DueDate   *string   `json:"dueDate"`
	Links     *[]string `json:"links"`
}

// FieldCount returns how many fields the partial update supplies.
func (r *UpdateEntityRequest) FieldCount() int {
	n := 0
	for _, set := range []bool{
		r.Key != nil, r.Title != nil, r.Body != nil, r.Author != nil,
		r.Link != nil, r.StartDate != nil, r.DueDate != nil, r.Links != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// EntityResponse is the wire shape of an entity.
type EntityResponse struct {
	ID        string    `json:"id"`
	Key       string    `json:"key,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author,omitempty"`
	Link      string    `json:"link,omitempty"`
	StartDate string    `json:"startDate,omitempty"`
	DueDate   string    `json:"dueDate,omitempty"`
	Links     []string  `json:"links"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToEntityResponse converts a domain entity to its wire shape.
func ToEntityResponse(e *domain.Entity) *EntityResponse {
	return &EntityResponse{
		ID:        e.ID,
		Key:       e.Key,
		Title:     e.Title,
		Body:      e.Body,
		Author:    e.Author,
		Link:      e.Link,
		StartDate: e.StartDate,
		DueDate:   e.DueDate,
		Links:     e.LinkList(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
