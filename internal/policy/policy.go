// Package policy is the single place authorization rules are expressed.
// Every function here is total and side-effect-free: it inspects its inputs
// and returns a decision, nothing else.
package policy

import "course-hub-api/internal/domain"

// CanMutateComment reports whether the actor may edit or delete the comment.
// Admins may mutate any comment; everyone else only their own.
func CanMutateComment(actor domain.Actor, comment domain.Comment) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.ID != "" && actor.ID == comment.Author
}

// CanManageEntity reports whether the actor may create, update or delete
// primary entities. Only admins may.
func CanManageEntity(actor domain.Actor) bool {
	return actor.IsAdmin()
}
