package domain

// Definition captures how one course domain specializes the shared entity
// CRUD: storage collection names, required fields, uniqueness, and the
// search/sort allow-lists. Sort and search fields outside the allow-list are
// ignored rather than interpolated anywhere, which is the injection defense
// the original implementations relied on.
type Definition struct {
	// Name is the route segment, e.g. "resources".
	Name string
	// Collection and CommentCollection are document store collection names.
	Collection        string
	CommentCollection string
	// Required lists canonical field names that must be non-empty on create.
	Required []string
	// UniqueKey enforces uniqueness of the business key field.
	UniqueKey bool
	// ValidateLink requires link, when present, to be an absolute URL.
	ValidateLink bool
	// SearchFields is the allow-list for case-insensitive substring search.
	SearchFields []string
	// SortFields is the allow-list for the sort query parameter; anything
	// else falls back to DefaultSort.
	SortFields  []string
	DefaultSort string
}

// SortAllowed reports whether field may be used as a sort key.
func (d Definition) SortAllowed(field string) bool {
	for _, f := range d.SortFields {
		if f == field {
			return true
		}
	}
	return false
}

// Resources defines the course resources domain: external reading material
// with a mandatory URL.
func Resources() Definition {
	return Definition{
		Name:              "resources",
		Collection:        "resources",
		CommentCollection: "resource_comments",
		Required:          []string{FieldTitle, FieldLink},
		ValidateLink:      true,
		SearchFields:      []string{FieldTitle, FieldBody},
		SortFields:        []string{FieldTitle, FieldCreatedAt},
		DefaultSort:       FieldCreatedAt,
	}
}

// Assignments defines the homework domain: due-dated work with attached
// file references.
func Assignments() Definition {
	return Definition{
		Name:              "assignments",
		Collection:        "assignments",
		CommentCollection: "assignment_comments",
		Required:          []string{FieldTitle},
		SearchFields:      []string{FieldTitle, FieldBody},
		SortFields:        []string{FieldTitle, FieldDueDate, FieldCreatedAt},
		DefaultSort:       FieldCreatedAt,
	}
}

// Topics defines the discussion board domain. Topics carry a caller-supplied
// unique business key and a mandatory author.
func Topics() Definition {
	return Definition{
		Name:              "topics",
		Collection:        "topics",
		CommentCollection: "topic_replies",
		Required:          []string{FieldKey, FieldTitle, FieldBody, FieldAuthor},
		UniqueKey:         true,
		SearchFields:      []string{FieldTitle, FieldBody, FieldAuthor},
		SortFields:        []string{FieldTitle, FieldAuthor, FieldCreatedAt},
		DefaultSort:       FieldCreatedAt,
	}
}

// Weeks defines the weekly course unit domain.
func Weeks() Definition {
	return Definition{
		Name:              "weeks",
		Collection:        "weeks",
		CommentCollection: "week_comments",
		Required:          []string{FieldTitle, FieldStartDate},
		SearchFields:      []string{FieldTitle, FieldBody},
		SortFields:        []string{FieldTitle, FieldStartDate, FieldCreatedAt},
		DefaultSort:       FieldCreatedAt,
	}
}

// All returns the definitions for every course domain, in router order.
func All() []Definition {
	return []Definition{Resources(), Assignments(), Topics(), Weeks()}
}
