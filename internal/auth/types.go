package auth

import "time"

// User represents an admin account that can sign in to the console.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the public projection of a User returned to clients and
// persisted by the console next to its bearer token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Identity returns the client-facing projection of the user.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
