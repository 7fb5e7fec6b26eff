package store

import (
	"database/sql"
	"fmt"

	"github.com/mychoreapp/choretribe/internal/model"
)

type TribeStore struct {
	db DBTX
}

func NewTribeStore(db DBTX) *TribeStore {
	return &TribeStore{db: db}
}

func scanTribe(scanner interface{ Scan(...any) error }) (*model.Tribe, error) {
	var t model.Tribe
	err := scanner.Scan(&t.ID, &t.Name, &t.JoinCode, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const tribeCols = `id, name, join_code, created_at, updated_at`

func (s *TribeStore) Create(name, joinCode string) (*model.Tribe, error) {
	result, err := s.db.Exec(
		`INSERT INTO tribes (name, join_code) VALUES (?, ?)`,
		name, joinCode,
	)
	if err != nil {
		return nil, fmt.Errorf("insert tribe: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TribeStore) GetByID(id int64) (*model.Tribe, error) {
	row := s.db.QueryRow(`SELECT `+tribeCols+` FROM tribes WHERE id = ?`, id)
	t, err := scanTribe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tribe: %w", err)
	}
	return t, nil
}

func (s *TribeStore) GetByName(name string) (*model.Tribe, error) {
	row := s.db.QueryRow(`SELECT `+tribeCols+` FROM tribes WHERE name = ?`, name)
	t, err := scanTribe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tribe by name: %w", err)
	}
	return t, nil
}

func (s *TribeStore) GetByJoinCode(joinCode string) (*model.Tribe, error) {
	row := s.db.QueryRow(`SELECT `+tribeCols+` FROM tribes WHERE join_code = ?`, joinCode)
	t, err := scanTribe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tribe by join code: %w", err)
	}
	return t, nil
}

func (s *TribeStore) List() ([]model.Tribe, error) {
	rows, err := s.db.Query(`SELECT ` + tribeCols + ` FROM tribes ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tribes: %w", err)
	}
	defer rows.Close()

	var tribes []model.Tribe
	for rows.Next() {
		t, err := scanTribe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tribe: %w", err)
		}
		tribes = append(tribes, *t)
	}
	return tribes, rows.Err()
}

// UpdateName renames a tribe. The join code is never changed after creation.
func (s *TribeStore) UpdateName(id int64, name string) (*model.Tribe, error) {
	_, err := s.db.Exec(
		`UPDATE tribes SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update tribe: %w", err)
	}
	return s.GetByID(id)
}

func (s *TribeStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tribes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tribe: %w", err)
	}
	return nil
}
