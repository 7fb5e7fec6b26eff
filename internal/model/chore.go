package model

import "time"

type Chore struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	PointsValue       int        `json:"points_value"`
	DueDate           *time.Time `json:"due_date"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurrencePattern string     `json:"recurrence_pattern"`
	IsActive          bool       `json:"is_active"`
	TribeID           int64      `json:"tribe_id"`
	AssignedTo        *int64     `json:"assigned_to"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ChoreCompletion is an immutable record of one user completing one chore
// instance. PointsAwarded snapshots the chore's points value at completion
// time, so later edits to the chore never change history.
type ChoreCompletion struct {
	ID             int64     `json:"id"`
	ChoreID        int64     `json:"chore_id"`
	CompletedBy    int64     `json:"completed_by"`
	CompletionDate time.Time `json:"completion_date"`
	PointsAwarded  int       `json:"points_awarded"`
}
