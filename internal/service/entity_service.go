package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-hub-api/internal/docstore"
	"course-hub-api/internal/domain"
	"course-hub-api/internal/dto"
	"course-hub-api/internal/metrics"
	"course-hub-api/internal/policy"
	"course-hub-api/internal/repository"
	"course-hub-api/internal/response"
)

// dateLayout is the wire format for start and due dates. Keeping dates as
// ISO strings means lexicographic order is date order.
const dateLayout = "2006-01-02"

// EntityService defines the business logic for one course domain's primary
// collection. The same implementation serves resources, assignments,
// discussion topics and weekly units; the domain definition decides which
// fields are required and which sorts are honored.
type EntityService interface {
	List(ctx context.Context, q repository.ListQuery) ([]*dto.EntityResponse, error)
	Get(ctx context.Context, id string) (*dto.EntityResponse, error)
	Create(ctx context.Context, actor domain.Actor, req *dto.CreateEntityRequest) (*dto.EntityResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateEntityRequest) (*dto.EntityResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	Definition() domain.Definition
}

// entityServiceImpl is the implementation of EntityService
type entityServiceImpl struct {
	repo    repository.EntityRepository
	cascade *Cascade
	def     domain.Definition
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewEntityService creates a new instance of EntityService
func NewEntityService(
	repo repository.EntityRepository,
	cascade *Cascade,
	m *metrics.Metrics,
	logger *zap.Logger,
) EntityService {
	return &entityServiceImpl{
		repo:    repo,
		cascade: cascade,
		def:     repo.Definition(),
		metrics: m,
		logger:  logger,
	}
}

func (s *entityServiceImpl) Definition() domain.Definition { return s.def }

// List returns the collection filtered and sorted per the query. Unknown
// sort fields fall back to the domain default instead of failing.
func (s *entityServiceImpl) List(ctx context.Context, q repository.ListQuery) ([]*dto.EntityResponse, error) {
	entities, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, storeError(s.metrics, err, s.def.Name+" could not be listed")
	}

	responses := make([]*dto.EntityResponse, len(entities))
	for i := range entities {
		responses[i] = dto.ToEntityResponse(&entities[i])
	}
	return responses, nil
}

// Get retrieves a single entity by ID
func (s *entityServiceImpl) Get(ctx context.Context, id string) (*dto.EntityResponse, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(s.metrics, err, notFoundMessage(s.def))
	}
	return dto.ToEntityResponse(entity), nil
}

// Create validates and persists a new entity. Only admins may create.
func (s *entityServiceImpl) Create(ctx context.Context, actor domain.Actor, req *dto.CreateEntityRequest) (*dto.EntityResponse, error) {
	if !policy.CanManageEntity(actor) {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Admin role required", "")
	}

	entity := &domain.Entity{
		ID:        uuid.NewString(),
		Key:       req.Key,
		Title:     req.Title,
		Body:      req.Body,
		Author:    req.Author,
		Link:      req.Link,
		StartDate: req.StartDate,
		DueDate:   req.DueDate,
	}
	entity.SetLinkList(req.Links)

	if err := s.validateEntity(entity); err != nil {
		return nil, err
	}
	if err := s.ensureKeyFree(ctx, entity.Key, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entity.CreatedAt = now
	entity.UpdatedAt = now

	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, storeError(s.metrics, err, notFoundMessage(s.def))
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityCreated(s.def.Name)
	}
	s.logger.Info("entity created",
		zap.String("domain", s.def.Name),
		zap.String("id", entity.ID))

	return dto.ToEntityResponse(entity), nil
}

// Update applies a partial update. Absent fields keep their prior values;
// an update that supplies no fields at all is rejected without touching the
// record's UpdatedAt stamp.
func (s *entityServiceImpl) Update(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateEntityRequest) (*dto.EntityResponse, error) {
	if !policy.CanManageEntity(actor) {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Admin role required", "")
	}
	if req.FieldCount() == 0 {
		return nil, response.NewAppError(response.ErrCodeValidation, "Update must supply at least one field", "")
	}

	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(s.metrics, err, notFoundMessage(s.def))
	}

	if req.Key != nil {
		entity.Key = *req.Key
	}
	if req.Title != nil {
		entity.Title = *req.Title
	}
	if req.Body != nil {
		entity.Body = *req.Body
	}
	if req.Author != nil {
		entity.Author = *req.Author
	}
	if req.Link != nil {
		entity.Link = *req.Link
	}
	if req.StartDate != nil {
		entity.StartDate = *req.StartDate
	}
	if req.DueDate != nil {
		entity.DueDate = *req.DueDate
	}
	if req.Links != nil {
		entity.SetLinkList(*req.Links)
	}

	if err := s.validateEntity(entity); err != nil {
		return nil, err
	}
	if err := s.ensureKeyFree(ctx, entity.Key, entity.ID); err != nil {
		return nil, err
	}

	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, storeError(s.metrics, err, notFoundMessage(s.def))
	}

	return dto.ToEntityResponse(entity), nil
}

// Delete removes the entity and its comment thread. Comment removal is best
// effort; any comments that survive a partial failure are unreachable
// through the API and are removed by the periodic sweep.
func (s *entityServiceImpl) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !policy.CanManageEntity(actor) {
		return response.NewAppError(response.ErrCodeForbidden, "Admin role required", "")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return storeError(s.metrics, err, notFoundMessage(s.def))
	}

	return s.cascade.DeleteEntityWithComments(ctx, id)
}

// validateEntity checks required fields, date formats and the link URL
// against the domain definition. Create and update share it, so a partial
// update cannot blank out a required field.
func (s *entityServiceImpl) validateEntity(e *domain.Entity) error {
	for _, field := range s.def.Required {
		if e.Field(field) == "" {
			return response.NewAppError(response.ErrCodeValidation, "Field '"+field+"' is required", "")
		}
	}

	if err := validateDate(domain.FieldStartDate, e.StartDate); err != nil {
		return err
	}
	if err := validateDate(domain.FieldDueDate, e.DueDate); err != nil {
		return err
	}
	if e.StartDate != "" && e.DueDate != "" && e.DueDate < e.StartDate {
		return response.NewAppError(response.ErrCodeValidation, "Due date must not precede start date", "")
	}

	if s.def.ValidateLink && e.Link != "" && !isAbsoluteURL(e.Link) {
		return response.NewAppError(response.ErrCodeValidation, "Link must be an absolute http or https URL", "")
	}

	return nil
}

// ensureKeyFree enforces business key uniqueness for domains that declare
// it. excludeID lets an entity keep its own key on update.
func (s *entityServiceImpl) ensureKeyFree(ctx context.Context, key, excludeID string) error {
	if !s.def.UniqueKey || key == "" {
		return nil
	}
	existing, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil
		}
		return storeError(s.metrics, err, "")
	}
	if existing.ID != excludeID {
		return response.NewAppError(response.ErrCodeAlreadyExists, "An entry with key '"+key+"' already exists", "")
	}
	return nil
}

// validateDate rejects a non-empty date that is not a real calendar date in
// ISO form.
func validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return response.NewAppError(response.ErrCodeValidation, "Field '"+field+"' must be a date in YYYY-MM-DD form", "")
	}
	return nil
}

// isAbsoluteURL reports whether raw parses as an absolute http(s) URL.
func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// notFoundMessage is the client-facing message for a missing entity.
func notFoundMessage(def domain.Definition) string {
	switch def.Name {
	case "resources":
		return "Resource not found"
	case "assignments":
		return "Assignment not found"
	case "topics":
		return "Topic not found"
	case "weeks":
		return "Week not found"
	default:
		return "Entry not found"
	}
}
