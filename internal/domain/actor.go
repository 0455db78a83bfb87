package domain

// Role names carried in JWT claims.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Actor is the authenticated identity performing a request. Handlers build
// it from verified token claims; services never read ambient session state.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
