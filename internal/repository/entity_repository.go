package repository

import (
	"context"
	"sort"
	"strings"

	"course-hub-api/internal/docstore"
	"course-hub-api/internal/domain"
)

// Sort orders accepted by ListQuery. Anything else falls back to the
// domain default (descending, newest first).
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery carries the optional filter/sort parameters for FindAll.
// Search is a case-insensitive substring match against the domain's
// searchable fields only; Sort must come from the domain's allow-list.
type ListQuery struct {
	Search string
	Sort   string
	Order  string
}

// EntityRepository is data access for one primary entity collection.
type EntityRepository interface {
	FindAll(ctx context.Context, q ListQuery) ([]domain.Entity, error)
	FindByID(ctx context.Context, id string) (*domain.Entity, error)
	FindByKey(ctx context.Context, key string) (*domain.Entity, error)
	Save(ctx context.Context, e *domain.Entity) error
	Delete(ctx context.Context, id string) error
	Definition() domain.Definition
}

type entityRepository struct {
	coll docstore.Collection[domain.Entity]
	def  domain.Definition
}

// NewEntityRepository creates a repository over the definition's collection.
func NewEntityRepository(store docstore.Provider, def domain.Definition) EntityRepository {
	return &entityRepository{coll: store.Entities(def.Collection), def: def}
}

func (r *entityRepository) Definition() domain.Definition { return r.def }

// FindAll lists the collection, applies the substring filter over the
// domain's searchable fields, and sorts by an allow-listed field. Sort
// fields or orders outside the allow-list silently fall back to the
// documented defaults rather than being honored.
func (r *entityRepository) FindAll(ctx context.Context, q ListQuery) ([]domain.Entity, error) {
	entities, err := r.coll.List(ctx)
	if err != nil {
		return nil, err
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		needle := strings.ToLower(search)
		filtered := entities[:0:0]
		for _, e := range entities {
			for _, field := range r.def.SearchFields {
				if strings.Contains(strings.ToLower(e.Field(field)), needle) {
					filtered = append(filtered, e)
					break
				}
			}
		}
		entities = filtered
	}

	sortField := strings.ToLower(strings.TrimSpace(q.Sort))
	if !r.def.SortAllowed(sortField) {
		sortField = r.def.DefaultSort
	}
	ascending := strings.ToLower(strings.TrimSpace(q.Order)) == SortAsc

	sort.SliceStable(entities, func(i, j int) bool {
		less := entityLess(entities[i], entities[j], sortField)
		if ascending {
			return less
		}
		return entityLess(entities[j], entities[i], sortField)
	})

	return entities, nil
}

// entityLess compares two entities on the given canonical field. Date
// fields are ISO formatted strings, so lexicographic order is date order.
func entityLess(a, b domain.Entity, field string) bool {
	if field == domain.FieldCreatedAt {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return strings.ToLower(a.Field(field)) < strings.ToLower(b.Field(field))
}

func (r *entityRepository) FindByID(ctx context.Context, id string) (*domain.Entity, error) {
	e, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByKey looks up an entity by its business key. Used for uniqueness
// checks; returns docstore.ErrNotFound when the key is free.
func (r *entityRepository) FindByKey(ctx context.Context, key string) (*domain.Entity, error) {
	entities, err := r.coll.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		if e.Key == key {
			return &e, nil
		}
	}
	return nil, docstore.ErrNotFound
}

func (r *entityRepository) Save(ctx context.Context, e *domain.Entity) error {
	return r.coll.Put(ctx, *e)
}

func (r *entityRepository) Delete(ctx context.Context, id string) error {
	return r.coll.Delete(ctx, id)
}
