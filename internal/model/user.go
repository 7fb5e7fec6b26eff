package model

import "time"

// User is a household member. Password holds whatever opaque credential the
// client registered with; it never appears in JSON responses.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Email     *string   `json:"email"`
	GoogleID  *string   `json:"google_id"`
	Points    int       `json:"points"`
	TribeID   *int64    `json:"tribe_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
