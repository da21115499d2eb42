// Package model defines the data structures used throughout the application.
package model

// Role is the authorization role attached to a user account.
type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

// User represents a registered account.
//
// The password hash and the per-user collections are never serialized: the
// collections hold back-references into the comment graph, and exposing them
// directly would produce JSON cycles. Clients reach them through the
// /api/users/self/... endpoints instead.
type User struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Role         Role   `json:"role"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`

	FavouriteComments []*Comment       `json:"-"`
	FollowedItems     []*CatalogueItem `json:"-"`
	Notifications     []*Notification  `json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
