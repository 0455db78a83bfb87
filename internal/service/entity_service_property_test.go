package service

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"course-hub-api/internal/domain"
	"course-hub-api/internal/dto"
	"course-hub-api/internal/response"
)

// For any non-empty title and absolute https link, resource creation by an
// admin succeeds and the response echoes the request fields with a fresh,
// non-empty ID.
func TestProperty_ResourceCreationRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Admin resource creation round-trips title and link", prop.ForAll(
		func(title string, path string) bool {
			mockRepo := &MockEntityRepository{Def: domain.Resources()}
			svc := newTestEntityService(mockRepo, &MockCommentRepository{})

			link := "https://example.edu/" + path
			got, err := svc.Create(context.Background(), adminActor, &dto.CreateEntityRequest{
				Title: title,
				Link:  link,
			})
			if err != nil {
				t.Logf("Unexpected error for title %q: %v", title, err)
				return false
			}
			return got.ID != "" && got.Title == title && got.Link == link
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// For any combination of actor role, actor id and comment author, a comment
// edit is permitted exactly when the actor is an admin or the author.
func TestProperty_CommentMutationOwnership(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Comment edits are permitted iff admin or author", prop.ForAll(
		func(isAdmin bool, actorID string, authorID string) bool {
			role := domain.RoleMember
			if isAdmin {
				role = domain.RoleAdmin
			}
			actor := domain.Actor{ID: actorID, Role: role}
			comment := domain.Comment{ID: "c1", ParentID: "p1", Author: authorID, Text: "original"}

			mockCommentRepo := &MockCommentRepository{
				FindByIDFunc: func(ctx context.Context, id string) (*domain.Comment, error) {
					c := comment
					return &c, nil
				},
			}
			svc := newTestCommentService(&MockEntityRepository{Def: domain.Topics()}, mockCommentRepo)

			_, err := svc.Update(context.Background(), actor, "c1", &dto.UpdateCommentRequest{Text: "edited"})

			allowed := isAdmin || (actorID != "" && actorID == authorID)
			if allowed {
				return err == nil
			}
			appErr, ok := err.(*response.AppError)
			return ok && appErr.Code == response.ErrCodeForbidden
		},
		gen.Bool(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// For any update request with every field absent, the service rejects the
// update before touching the repository, whoever the actor is.
func TestProperty_EmptyUpdateAlwaysRejected(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Empty partial updates are always rejected", prop.ForAll(
		func(isAdmin bool, id string) bool {
			role := domain.RoleMember
			if isAdmin {
				role = domain.RoleAdmin
			}
			repoTouched := false
			mockRepo := &MockEntityRepository{
				Def: domain.Assignments(),
				FindByIDFunc: func(ctx context.Context, id string) (*domain.Entity, error) {
					repoTouched = true
					return &domain.Entity{ID: id, Title: "x"}, nil
				},
			}
			svc := newTestEntityService(mockRepo, &MockCommentRepository{})

			_, err := svc.Update(context.Background(), domain.Actor{ID: "u1", Role: role}, id, &dto.UpdateEntityRequest{})

			if err == nil {
				return false
			}
			appErr, ok := err.(*response.AppError)
			if !ok {
				return false
			}
			// Non-admins fail authorization first; admins fail validation.
			if isAdmin && appErr.Code != response.ErrCodeValidation {
				return false
			}
			if !isAdmin && appErr.Code != response.ErrCodeForbidden {
				return false
			}
			return !repoTouched
		},
		gen.Bool(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
