package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mychoreapp/choretribe/internal/apperr"
	"github.com/mychoreapp/choretribe/internal/model"
	"github.com/mychoreapp/choretribe/internal/store"
)

// TribeService manages tribes and their join codes.
type TribeService struct {
	tribes *store.TribeStore
}

func NewTribeService(tribes *store.TribeStore) *TribeService {
	return &TribeService{tribes: tribes}
}

// newJoinCode returns a short code users type to join a tribe. Eight hex
// chars of a UUID are plenty; the join_code UNIQUE constraint catches the
// rare collision at insert time.
func newJoinCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Create creates a tribe with a freshly generated join code. Tribe names are
// globally unique.
func (s *TribeService) Create(name string) (*model.Tribe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("tribe name is required")
	}

	existing, err := s.tribes.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Invalid("tribe name already exists: %s", name)
	}

	return s.tribes.Create(name, newJoinCode())
}

func (s *TribeService) GetByID(id int64) (*model.Tribe, error) {
	return s.tribes.GetByID(id)
}

func (s *TribeService) GetByName(name string) (*model.Tribe, error) {
	return s.tribes.GetByName(name)
}

func (s *TribeService) GetByJoinCode(joinCode string) (*model.Tribe, error) {
	return s.tribes.GetByJoinCode(joinCode)
}

func (s *TribeService) List() ([]model.Tribe, error) {
	return s.tribes.List()
}

// Update renames a tribe. The join code is stable for the tribe's lifetime
// and cannot be changed here.
func (s *TribeService) Update(id int64, name string) (*model.Tribe, error) {
	existing, err := s.tribes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("tribe", id)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("tribe name is required")
	}

	withName, err := s.tribes.GetByName(name)
	if err != nil {
		return nil, err
	}
	if withName != nil && withName.ID != id {
		return nil, apperr.Invalid("tribe name already exists: %s", name)
	}

	return s.tribes.UpdateName(id, name)
}

func (s *TribeService) Delete(id int64) error {
	return s.tribes.Delete(id)
}
