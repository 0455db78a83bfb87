package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"course-hub-api/internal/domain"
)

func TestCanManageEntity(t *testing.T) {
	tests := []struct {
		name  string
		actor domain.Actor
		want  bool
	}{
		{"admin may manage", domain.Actor{ID: "u1", Role: domain.RoleAdmin}, true},
		{"member may not", domain.Actor{ID: "u1", Role: domain.RoleMember}, false},
		{"anonymous may not", domain.Actor{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageEntity(tt.actor))
		})
	}
}

func TestCanMutateComment(t *testing.T) {
	comment := domain.Comment{ID: "c1", Author: "alice"}

	tests := []struct {
		name  string
		actor domain.Actor
		want  bool
	}{
		{"author may mutate own comment", domain.Actor{ID: "alice", Role: domain.RoleMember}, true},
		{"admin may mutate any comment", domain.Actor{ID: "lecturer", Role: domain.RoleAdmin}, true},
		{"other member may not", domain.Actor{ID: "bob", Role: domain.RoleMember}, false},
		{"anonymous may not", domain.Actor{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutateComment(tt.actor, comment))
		})
	}
}

func TestCanMutateComment_AnonymousAuthorNeverMatches(t *testing.T) {
	// A comment with an empty author must not be mutable by an
	// unauthenticated actor whose ID is also empty.
	orphan := domain.Comment{ID: "c1", Author: ""}
	assert.False(t, CanMutateComment(domain.Actor{}, orphan))
}
