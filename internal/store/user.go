package store

import (
	"database/sql"
	"fmt"

	"github.com/mychoreapp/choretribe/internal/model"
)

type UserStore struct {
	db DBTX
}

func NewUserStore(db DBTX) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	var email, googleID sql.NullString
	var tribeID sql.NullInt64

	err := scanner.Scan(
		&u.ID, &u.Username, &u.Password, &email, &googleID,
		&u.Points, &tribeID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		u.Email = &email.String
	}
	if googleID.Valid {
		u.GoogleID = &googleID.String
	}
	if tribeID.Valid {
		u.TribeID = &tribeID.Int64
	}
	return &u, nil
}

const userCols = `id, username, password, email, google_id, points, tribe_id, created_at, updated_at`

func (s *UserStore) Create(username, password string, email, googleID *string) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (username, password, email, google_id) VALUES (?, ?, ?, ?)`,
		username, password, nullString(email), nullString(googleID),
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByGoogleID(googleID string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE google_id = ?`, googleID)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by google id: %w", err)
	}
	return u, nil
}

func (s *UserStore) List() ([]model.User, error) {
	rows, err := s.db.Query(`SELECT ` + userCols + ` FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// AddPoints adds points to the user's running total. Points only ever grow
// through this method; completion deletion never calls it.
func (s *UserStore) AddPoints(id int64, points int) (*model.User, error) {
	_, err := s.db.Exec(
		`UPDATE users SET points = points + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		points, id,
	)
	if err != nil {
		return nil, fmt.Errorf("add points: %w", err)
	}
	return s.GetByID(id)
}

// SetTribe sets or clears (nil) the user's tribe membership.
func (s *UserStore) SetTribe(id int64, tribeID *int64) (*model.User, error) {
	_, err := s.db.Exec(
		`UPDATE users SET tribe_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		nullInt64(tribeID), id,
	)
	if err != nil {
		return nil, fmt.Errorf("set tribe: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
