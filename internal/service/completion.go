package service

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mychoreapp/choretribe/internal/apperr"
	"github.com/mychoreapp/choretribe/internal/model"
	"github.com/mychoreapp/choretribe/internal/recurrence"
	"github.com/mychoreapp/choretribe/internal/store"
)

// CompletionService owns the chore completion workflow: cross-entity
// validation, the atomic point award, and recurrence materialization.
//
// Known race, left unserialized on purpose pending a product decision: two
// concurrent completions of the same chore can both pass validation and both
// award points. Each call is individually atomic but calls are not mutually
// excluded.
type CompletionService struct {
	db     *sql.DB
	chores *store.ChoreStore
	users  *store.UserStore
	logger *slog.Logger
}

func NewCompletionService(db *sql.DB, chores *store.ChoreStore, users *store.UserStore, logger *slog.Logger) *CompletionService {
	return &CompletionService{db: db, chores: chores, users: users, logger: logger}
}

// Record validates and records a chore completion by a user.
//
// Validation is fail-fast, in order: the chore must exist, the user must
// exist, and the user must belong to the chore's tribe. The mutations —
// completion insert with the chore's points snapshotted, point award to the
// user, and (for recurring chores) successor materialization — run in one
// transaction, so a failure partway leaves no trace.
//
// completedAt overrides the completion timestamp for backfilling; pass nil
// for "now".
func (s *CompletionService) Record(choreID, userID int64, completedAt *time.Time) (*model.ChoreCompletion, error) {
	chore, err := s.chores.GetByID(choreID)
	if err != nil {
		return nil, err
	}
	if chore == nil {
		return nil, apperr.NotFound("chore", choreID)
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", userID)
	}

	if user.TribeID == nil || *user.TribeID != chore.TribeID {
		return nil, apperr.Invalid("user must belong to the same tribe as the chore to complete it")
	}

	when := time.Now()
	if completedAt != nil {
		when = *completedAt
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	txChores := store.NewChoreStore(tx)
	txUsers := store.NewUserStore(tx)

	completion, err := txChores.CreateCompletion(chore.ID, user.ID, chore.PointsValue, when)
	if err != nil {
		return nil, err
	}

	if _, err := txUsers.AddPoints(user.ID, chore.PointsValue); err != nil {
		return nil, err
	}

	if chore.IsRecurring {
		if err := s.materializeNext(txChores, chore, when); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit completion: %w", err)
	}

	s.logger.Info("chore completed",
		"chore_id", chore.ID,
		"user_id", user.ID,
		"points", chore.PointsValue,
		"recurring", chore.IsRecurring,
	)

	return completion, nil
}

// materializeNext creates the next instance of a recurring chore from the
// completed instance's original field values and deactivates the original.
// The successor is explicitly unassigned (no rotation) and carries no link
// back to its predecessor.
func (s *CompletionService) materializeNext(chores *store.ChoreStore, prev *model.Chore, now time.Time) error {
	next, ok := recurrence.Advance(prev.DueDate, prev.RecurrencePattern, now)
	if !ok {
		// Configuration warning, not a failure: the rollover falls back
		// to daily and the completion proceeds.
		s.logger.Warn("unrecognized recurrence pattern, defaulting to daily",
			"chore_id", prev.ID,
			"pattern", prev.RecurrencePattern,
		)
	}

	if _, err := chores.Create(prev.Name, prev.Description, prev.PointsValue, &next, true, prev.RecurrencePattern, prev.TribeID, nil); err != nil {
		return fmt.Errorf("materialize next chore: %w", err)
	}

	if err := chores.SetActive(prev.ID, false); err != nil {
		return fmt.Errorf("deactivate completed chore: %w", err)
	}
	return nil
}

func (s *CompletionService) GetByID(id int64) (*model.ChoreCompletion, error) {
	return s.chores.GetCompletionByID(id)
}

func (s *CompletionService) ListByUser(userID int64) ([]model.ChoreCompletion, error) {
	return s.chores.ListCompletionsByUser(userID)
}

func (s *CompletionService) ListByChore(choreID int64) ([]model.ChoreCompletion, error) {
	return s.chores.ListCompletionsByChore(choreID)
}

func (s *CompletionService) ListByTribeAndDateRange(tribeID int64, start, end time.Time) ([]model.ChoreCompletion, error) {
	return s.chores.ListCompletionsByTribeAndDateRange(tribeID, start, end)
}

func (s *CompletionService) ListByUserAndDateRange(userID int64, start, end time.Time) ([]model.ChoreCompletion, error) {
	return s.chores.ListCompletionsByUserAndDateRange(userID, start, end)
}

func (s *CompletionService) ListAll() ([]model.ChoreCompletion, error) {
	return s.chores.ListAllCompletions()
}

// Delete removes a completion record. Deliberately asymmetric with Record:
// the points awarded to the user are NOT deducted.
func (s *CompletionService) Delete(id int64) error {
	return s.chores.DeleteCompletion(id)
}
