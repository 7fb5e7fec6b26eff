package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mychoreapp/choretribe/internal/model"
)

type ChoreStore struct {
	db DBTX
}

func NewChoreStore(db DBTX) *ChoreStore {
	return &ChoreStore{db: db}
}

// --- Chore methods ---

func scanChore(scanner interface{ Scan(...any) error }) (*model.Chore, error) {
	var c model.Chore
	var dueDate sql.NullString
	var isRecurring, isActive int
	var assignedTo sql.NullInt64

	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.PointsValue, &dueDate,
		&isRecurring, &c.RecurrencePattern, &isActive, &c.TribeID,
		&assignedTo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.DueDate, err = parseDate(dueDate)
	if err != nil {
		return nil, fmt.Errorf("parse due date: %w", err)
	}
	c.IsRecurring = isRecurring != 0
	c.IsActive = isActive != 0
	if assignedTo.Valid {
		c.AssignedTo = &assignedTo.Int64
	}
	return &c, nil
}

const choreCols = `id, name, description, points_value, due_date, is_recurring, recurrence_pattern, is_active, tribe_id, assigned_to, created_at, updated_at`

func (s *ChoreStore) Create(name, description string, pointsValue int, dueDate *time.Time, isRecurring bool, recurrencePattern string, tribeID int64, assignedTo *int64) (*model.Chore, error) {
	result, err := s.db.Exec(
		`INSERT INTO chores (name, description, points_value, due_date, is_recurring, recurrence_pattern, tribe_id, assigned_to)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		name, description, pointsValue, nullDate(dueDate),
		boolToInt(isRecurring), recurrencePattern, tribeID, nullInt64(assignedTo),
	)
	if err != nil {
		return nil, fmt.Errorf("insert chore: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChoreStore) GetByID(id int64) (*model.Chore, error) {
	row := s.db.QueryRow(`SELECT `+choreCols+` FROM chores WHERE id = ?`, id)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	return c, nil
}

// GetByNameAndTribe looks up a chore by name within a tribe. Used for the
// create/update uniqueness check. More than one row can match once recurrence
// materialization has run (inactive predecessor plus active successor); the
// newest row wins, which is all the existence check needs.
func (s *ChoreStore) GetByNameAndTribe(name string, tribeID int64) (*model.Chore, error) {
	row := s.db.QueryRow(
		`SELECT `+choreCols+` FROM chores WHERE name = ? AND tribe_id = ? ORDER BY id DESC LIMIT 1`,
		name, tribeID,
	)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore by name: %w", err)
	}
	return c, nil
}

func (s *ChoreStore) list(query string, args ...any) ([]model.Chore, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

func (s *ChoreStore) List() ([]model.Chore, error) {
	return s.list(`SELECT ` + choreCols + ` FROM chores ORDER BY name ASC`)
}

func (s *ChoreStore) ListByTribe(tribeID int64) ([]model.Chore, error) {
	return s.list(`SELECT `+choreCols+` FROM chores WHERE tribe_id = ? ORDER BY name ASC`, tribeID)
}

func (s *ChoreStore) ListActiveByTribe(tribeID int64) ([]model.Chore, error) {
	return s.list(`SELECT `+choreCols+` FROM chores WHERE tribe_id = ? AND is_active = 1 ORDER BY name ASC`, tribeID)
}

func (s *ChoreStore) ListByAssignee(userID int64) ([]model.Chore, error) {
	return s.list(`SELECT `+choreCols+` FROM chores WHERE assigned_to = ? ORDER BY name ASC`, userID)
}

func (s *ChoreStore) ListActiveByAssignee(userID int64) ([]model.Chore, error) {
	return s.list(`SELECT `+choreCols+` FROM chores WHERE assigned_to = ? AND is_active = 1 ORDER BY name ASC`, userID)
}

func (s *ChoreStore) Update(id int64, name, description string, pointsValue int, dueDate *time.Time, isRecurring bool, recurrencePattern string, isActive bool, tribeID int64, assignedTo *int64) (*model.Chore, error) {
	_, err := s.db.Exec(
		`UPDATE chores SET name = ?, description = ?, points_value = ?, due_date = ?, is_recurring = ?, recurrence_pattern = ?, is_active = ?, tribe_id = ?, assigned_to = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, description, pointsValue, nullDate(dueDate),
		boolToInt(isRecurring), recurrencePattern, boolToInt(isActive),
		tribeID, nullInt64(assignedTo), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update chore: %w", err)
	}
	return s.GetByID(id)
}

// SetAssignee assigns (or with nil, unassigns) the chore.
func (s *ChoreStore) SetAssignee(id int64, userID *int64) (*model.Chore, error) {
	_, err := s.db.Exec(
		`UPDATE chores SET assigned_to = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		nullInt64(userID), id,
	)
	if err != nil {
		return nil, fmt.Errorf("set assignee: %w", err)
	}
	return s.GetByID(id)
}

// SetActive flips the active flag. Recurrence materialization deactivates the
// completed instance this way so it drops out of active listings while its
// completions stay intact.
func (s *ChoreStore) SetActive(id int64, active bool) error {
	_, err := s.db.Exec(
		`UPDATE chores SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		boolToInt(active), id,
	)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	return nil
}

func (s *ChoreStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM chores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chore: %w", err)
	}
	return nil
}

// --- Completion methods ---

func scanCompletion(scanner interface{ Scan(...any) error }) (*model.ChoreCompletion, error) {
	var c model.ChoreCompletion
	err := scanner.Scan(&c.ID, &c.ChoreID, &c.CompletedBy, &c.CompletionDate, &c.PointsAwarded)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const completionCols = `id, chore_id, completed_by, completion_date, points_awarded`

func (s *ChoreStore) CreateCompletion(choreID, completedBy int64, pointsAwarded int, completedAt time.Time) (*model.ChoreCompletion, error) {
	result, err := s.db.Exec(
		`INSERT INTO chore_completions (chore_id, completed_by, points_awarded, completion_date) VALUES (?, ?, ?, ?)`,
		choreID, completedBy, pointsAwarded, completedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetCompletionByID(id)
}

func (s *ChoreStore) GetCompletionByID(id int64) (*model.ChoreCompletion, error) {
	row := s.db.QueryRow(`SELECT `+completionCols+` FROM chore_completions WHERE id = ?`, id)
	c, err := scanCompletion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get completion: %w", err)
	}
	return c, nil
}

func (s *ChoreStore) listCompletions(query string, args ...any) ([]model.ChoreCompletion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var completions []model.ChoreCompletion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, *c)
	}
	return completions, rows.Err()
}

func (s *ChoreStore) ListCompletionsByUser(userID int64) ([]model.ChoreCompletion, error) {
	return s.listCompletions(
		`SELECT `+completionCols+` FROM chore_completions WHERE completed_by = ? ORDER BY completion_date DESC`,
		userID,
	)
}

func (s *ChoreStore) ListCompletionsByChore(choreID int64) ([]model.ChoreCompletion, error) {
	return s.listCompletions(
		`SELECT `+completionCols+` FROM chore_completions WHERE chore_id = ? ORDER BY completion_date DESC`,
		choreID,
	)
}

// ListCompletionsByTribeAndDateRange returns the tribe's completion history
// within [start, end), joining through the chore to find the tribe.
func (s *ChoreStore) ListCompletionsByTribeAndDateRange(tribeID int64, start, end time.Time) ([]model.ChoreCompletion, error) {
	return s.listCompletions(
		`SELECT cc.id, cc.chore_id, cc.completed_by, cc.completion_date, cc.points_awarded
		 FROM chore_completions cc
		 JOIN chores c ON c.id = cc.chore_id
		 WHERE c.tribe_id = ? AND cc.completion_date >= ? AND cc.completion_date < ?
		 ORDER BY cc.completion_date DESC`,
		tribeID, start.UTC(), end.UTC(),
	)
}

func (s *ChoreStore) ListCompletionsByUserAndDateRange(userID int64, start, end time.Time) ([]model.ChoreCompletion, error) {
	return s.listCompletions(
		`SELECT `+completionCols+` FROM chore_completions WHERE completed_by = ? AND completion_date >= ? AND completion_date < ? ORDER BY completion_date DESC`,
		userID, start.UTC(), end.UTC(),
	)
}

func (s *ChoreStore) ListAllCompletions() ([]model.ChoreCompletion, error) {
	return s.listCompletions(`SELECT ` + completionCols + ` FROM chore_completions ORDER BY completion_date DESC`)
}

// DeleteCompletion removes a completion record. It does NOT deduct the
// awarded points from the user; completions are historical facts and the
// award stands even when the record is administratively removed.
func (s *ChoreStore) DeleteCompletion(id int64) error {
	_, err := s.db.Exec(`DELETE FROM chore_completions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}
	return nil
}
