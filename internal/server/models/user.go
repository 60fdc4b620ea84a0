// Package models holds the server-side persistent entities.
package models

// User is the single persisted identity record.
//
// Password always holds a bcrypt hash once the record reaches the store and
// is never rendered in API responses.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// UserPatch lists the fields an update may touch. A nil field is left as is.
// Email and ID cannot be changed through the API.
type UserPatch struct {
	Name     *string
	Password *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Password == nil
}
