package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-hub-api/internal/dto"
	"course-hub-api/internal/middleware"
	"course-hub-api/internal/repository"
	"course-hub-api/internal/response"
	"course-hub-api/internal/service"
)

// EntityHandler exposes the CRUD endpoints for one course domain's primary
// collection. One instance is registered per domain; the routes differ only
// in their path prefix.
type EntityHandler struct {
	entityService service.EntityService
}

func NewEntityHandler(entityService service.EntityService) *EntityHandler {
	return &EntityHandler{
		entityService: entityService,
	}
}

// List handles GET /api/{domain}. Search, sort and order arrive as query
// parameters; values outside the domain's allow-lists fall back to defaults.
func (h *EntityHandler) List(c *gin.Context) {
	q := repository.ListQuery{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}

	entities, err := h.entityService.List(c.Request.Context(), q)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, entities)
}

// Get handles GET /api/{domain}/:id.
func (h *EntityHandler) Get(c *gin.Context) {
	entity, err := h.entityService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, entity)
}

// Create handles POST /api/{domain}. Admin only.
func (h *EntityHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	entity, err := h.entityService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, entity)
}

// Update handles PUT /api/{domain}/:id. Admin only; fields absent from the
// body keep their prior values.
func (h *EntityHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.UpdateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	entity, err := h.entityService.Update(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, entity)
}

// Delete handles DELETE /api/{domain}/:id. Admin only; the entity's comment
// thread is removed with it.
func (h *EntityHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	if err := h.entityService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
