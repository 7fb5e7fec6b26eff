package service

import (
	"strings"
	"time"

	"github.com/mychoreapp/choretribe/internal/apperr"
	"github.com/mychoreapp/choretribe/internal/model"
	"github.com/mychoreapp/choretribe/internal/store"
)

// ChoreService manages chores within tribes: creation, updates, and
// assignment. Completion lives in CompletionService.
type ChoreService struct {
	chores *store.ChoreStore
	tribes *store.TribeStore
	users  *store.UserStore
}

func NewChoreService(chores *store.ChoreStore, tribes *store.TribeStore, users *store.UserStore) *ChoreService {
	return &ChoreService{chores: chores, tribes: tribes, users: users}
}

// ChoreInput carries the caller-controlled chore fields.
type ChoreInput struct {
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	PointsValue       int        `json:"points_value"`
	DueDate           *time.Time `json:"due_date"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurrencePattern string     `json:"recurrence_pattern"`
	AssignedTo        *int64     `json:"assigned_to"`
}

// Create creates a chore under the given tribe. The name must be unique
// within the tribe, the points value positive, and any assignee a member of
// the tribe.
func (s *ChoreService) Create(tribeID int64, in ChoreInput) (*model.Chore, error) {
	tribe, err := s.tribes.GetByID(tribeID)
	if err != nil {
		return nil, err
	}
	if tribe == nil {
		return nil, apperr.Invalid("tribe with id %d does not exist", tribeID)
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperr.Invalid("chore name is required")
	}
	if err := s.checkNameUnique(in.Name, tribeID, 0); err != nil {
		return nil, err
	}

	if in.PointsValue <= 0 {
		return nil, apperr.Invalid("chore points value must be positive")
	}

	if in.AssignedTo != nil {
		if err := s.checkAssignee(*in.AssignedTo, tribeID); err != nil {
			return nil, err
		}
	}

	return s.chores.Create(in.Name, in.Description, in.PointsValue, in.DueDate, in.IsRecurring, in.RecurrencePattern, tribeID, in.AssignedTo)
}

func (s *ChoreService) GetByID(id int64) (*model.Chore, error) {
	return s.chores.GetByID(id)
}

func (s *ChoreService) List() ([]model.Chore, error) {
	return s.chores.List()
}

func (s *ChoreService) ListByTribe(tribeID int64) ([]model.Chore, error) {
	return s.chores.ListByTribe(tribeID)
}

func (s *ChoreService) ListActiveByTribe(tribeID int64) ([]model.Chore, error) {
	return s.chores.ListActiveByTribe(tribeID)
}

func (s *ChoreService) ListByAssignee(userID int64) ([]model.Chore, error) {
	return s.chores.ListByAssignee(userID)
}

func (s *ChoreService) ListActiveByAssignee(userID int64) ([]model.Chore, error) {
	return s.chores.ListActiveByAssignee(userID)
}

// UpdateInput is ChoreInput plus the fields an update may move: the id (must
// match the path), the owning tribe, and the active flag.
type UpdateInput struct {
	ID int64 `json:"id"`
	ChoreInput
	TribeID  int64 `json:"tribe_id"`
	IsActive bool  `json:"is_active"`
}

// Update replaces a chore's fields. The id in the body must match the id
// being updated, and the target tribe must exist.
func (s *ChoreService) Update(id int64, in UpdateInput) (*model.Chore, error) {
	existing, err := s.chores.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("chore", id)
	}

	if in.ID != id {
		return nil, apperr.Invalid("id in path does not match id in request body")
	}

	tribe, err := s.tribes.GetByID(in.TribeID)
	if err != nil {
		return nil, err
	}
	if tribe == nil {
		return nil, apperr.Invalid("tribe with id %d does not exist", in.TribeID)
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperr.Invalid("chore name is required")
	}
	if err := s.checkNameUnique(in.Name, in.TribeID, id); err != nil {
		return nil, err
	}

	if in.PointsValue <= 0 {
		return nil, apperr.Invalid("chore points value must be positive")
	}

	if in.AssignedTo != nil {
		if err := s.checkAssignee(*in.AssignedTo, in.TribeID); err != nil {
			return nil, err
		}
	}

	return s.chores.Update(id, in.Name, in.Description, in.PointsValue, in.DueDate, in.IsRecurring, in.RecurrencePattern, in.IsActive, in.TribeID, in.AssignedTo)
}

// Assign assigns the chore to a user in the chore's tribe.
func (s *ChoreService) Assign(choreID, userID int64) (*model.Chore, error) {
	chore, err := s.chores.GetByID(choreID)
	if err != nil {
		return nil, err
	}
	if chore == nil {
		return nil, apperr.NotFound("chore", choreID)
	}

	if err := s.checkAssignee(userID, chore.TribeID); err != nil {
		return nil, err
	}

	return s.chores.SetAssignee(choreID, &userID)
}

// Unassign clears the chore's assignee.
func (s *ChoreService) Unassign(choreID int64) (*model.Chore, error) {
	chore, err := s.chores.GetByID(choreID)
	if err != nil {
		return nil, err
	}
	if chore == nil {
		return nil, apperr.NotFound("chore", choreID)
	}

	return s.chores.SetAssignee(choreID, nil)
}

func (s *ChoreService) Delete(id int64) error {
	return s.chores.Delete(id)
}

// checkNameUnique rejects a name already used by a different chore in the
// tribe. excludeID skips the chore being updated.
func (s *ChoreService) checkNameUnique(name string, tribeID, excludeID int64) error {
	existing, err := s.chores.GetByNameAndTribe(name, tribeID)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != excludeID {
		return apperr.Invalid("a chore named %q already exists in this tribe", name)
	}
	return nil
}

// checkAssignee verifies the user exists and belongs to the chore's tribe.
func (s *ChoreService) checkAssignee(userID, tribeID int64) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.Invalid("assigned user with id %d does not exist", userID)
	}
	if user.TribeID == nil || *user.TribeID != tribeID {
		return apperr.Invalid("assigned user does not belong to the chore's tribe")
	}
	return nil
}
