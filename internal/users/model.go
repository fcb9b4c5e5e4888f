package users

import "time"

// User is the owner referenced by file records. Rows are created on first
// reference and never deleted.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
