package models

import "time"

// User is a registered account. PasswordHash is a bcrypt digest and is never
// serialized.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity every transaction and summary
// operation is scoped to.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Principal returns the identity view of u.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Username: u.UserName}
}
