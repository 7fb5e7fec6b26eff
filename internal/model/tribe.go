package model

import "time"

// Tribe is a household group. Members join with the tribe's JoinCode rather
// than by invitation, so codes must stay unguessable.
type Tribe struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"join_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
