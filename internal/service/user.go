package service

import (
	"strings"

	"github.com/mychoreapp/choretribe/internal/apperr"
	"github.com/mychoreapp/choretribe/internal/model"
	"github.com/mychoreapp/choretribe/internal/store"
)

// UserService handles registration and tribe membership. Passwords are
// stored as-is; credential security is out of scope for now.
type UserService struct {
	users  *store.UserStore
	tribes *store.TribeStore
}

func NewUserService(users *store.UserStore, tribes *store.TribeStore) *UserService {
	return &UserService{users: users, tribes: tribes}
}

// Register creates a new user after checking username and email uniqueness.
func (s *UserService) Register(username, password string, email, googleID *string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.Invalid("username is required")
	}

	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Invalid("username already exists: %s", username)
	}

	if email != nil && *email != "" {
		existing, err := s.users.GetByEmail(*email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperr.Invalid("email already exists: %s", *email)
		}
	}

	return s.users.Create(username, password, email, googleID)
}

func (s *UserService) GetByID(id int64) (*model.User, error) {
	return s.users.GetByID(id)
}

func (s *UserService) GetByUsername(username string) (*model.User, error) {
	return s.users.GetByUsername(username)
}

func (s *UserService) GetByEmail(email string) (*model.User, error) {
	return s.users.GetByEmail(email)
}

func (s *UserService) GetByGoogleID(googleID string) (*model.User, error) {
	return s.users.GetByGoogleID(googleID)
}

func (s *UserService) List() ([]model.User, error) {
	return s.users.List()
}

// AddPoints awards points to a user directly (admin path; the completion
// workflow awards through its own transaction). Points never go down.
func (s *UserService) AddPoints(id int64, points int) (*model.User, error) {
	if points < 0 {
		return nil, apperr.Invalid("points to add must not be negative")
	}

	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", id)
	}

	return s.users.AddPoints(id, points)
}

// JoinTribe puts the user in the tribe matching the join code. A user can
// belong to at most one tribe at a time.
func (s *UserService) JoinTribe(userID int64, joinCode string) (*model.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", userID)
	}
	if user.TribeID != nil {
		return nil, apperr.Invalid("user already belongs to a tribe")
	}

	tribe, err := s.tribes.GetByJoinCode(joinCode)
	if err != nil {
		return nil, err
	}
	if tribe == nil {
		return nil, apperr.NotFoundf("tribe", "no tribe with join code %q", joinCode)
	}

	return s.users.SetTribe(userID, &tribe.ID)
}

// LeaveTribe clears the user's tribe membership.
func (s *UserService) LeaveTribe(userID int64) (*model.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", userID)
	}
	if user.TribeID == nil {
		return nil, apperr.Invalid("user is not currently a member of any tribe")
	}

	return s.users.SetTribe(userID, nil)
}

func (s *UserService) Delete(id int64) error {
	return s.users.Delete(id)
}
