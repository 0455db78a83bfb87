package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-hub-api/internal/dto"
	"course-hub-api/internal/middleware"
	"course-hub-api/internal/response"
	"course-hub-api/internal/service"
)

// CommentHandler exposes the comment thread endpoints for one course domain.
type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// List handles GET /api/{domain}/:id/comments. Listing is public and never
// checks the parent, so an unknown entity simply yields an empty thread.
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.commentService.ListByParent(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}

// Create handles POST /api/{domain}/:id/comments. Any authenticated user may
// comment; the author is taken from the token, never the body.
func (h *CommentHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// Update handles PUT /api/{domain}/:id/comments/:commentId. Authors may edit
// their own comments; admins may edit any.
func (h *CommentHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), actor, c.Param("commentId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment)
}

// Delete handles DELETE /api/{domain}/:id/comments/:commentId.
func (h *CommentHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), actor, c.Param("commentId")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
