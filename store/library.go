package store

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kmorozov/bibliotek/log"
	"github.com/kmorozov/bibliotek/model"
)

func (s *Store) GetLibrary(find *model.FindLibrary) (*model.Library, error) {
	list, err := s.ListLibraries(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListLibraries(find *model.FindLibrary) ([]*model.Library, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "library_id = ?"), append(args, *v)
	}
	if v := find.Name; v != nil && *v != "" {
		where, args = append(where, "LOWER(name) LIKE '%' || LOWER(?) || '%'"), append(args, *v)
	}

	query := `
		SELECT
			library_id,
			name,
			address
		FROM libraries
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY name, library_id`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query libraries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Library, 0)
	for rows.Next() {
		var library model.Library
		if err := rows.Scan(
			&library.ID,
			&library.Name,
			&library.Address,
		); err != nil {
			return nil, err
		}
		list = append(list, &library)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// UpsertLibrary inserts a new library when ID is zero, otherwise updates the
// row with that id in place.
func (s *Store) UpsertLibrary(library *model.Library) (*model.Library, error) {
	if err := library.Validate(); err != nil {
		return nil, err
	}

	var stmt string
	var args []any
	if library.ID == 0 {
		stmt = `
			INSERT INTO libraries (name, address)
			VALUES (?, ?)
			RETURNING library_id, name, address
		`
		args = []any{library.Name, library.Address}
	} else {
		stmt = `
			INSERT INTO libraries (library_id, name, address)
			VALUES (?, ?, ?)
			ON CONFLICT(library_id) DO UPDATE
			SET
				name=EXCLUDED.name,
				address=EXCLUDED.address
			RETURNING library_id, name, address
		`
		args = []any{library.ID, library.Name, library.Address}
	}

	var stored model.Library
	if err := s.db.QueryRow(stmt, args...).Scan(
		&stored.ID,
		&stored.Name,
		&stored.Address,
	); err != nil {
		return nil, wrapStorageErr("upsert library", err)
	}

	return &stored, nil
}

// DeleteLibrary removes the library together with all of its books and their
// subscriptions via the schema's cascade rules.
func (s *Store) DeleteLibrary(id int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM libraries WHERE library_id = ?", id)
	if err != nil {
		return wrapStorageErr("delete library", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return wrapStorageErr("delete library", err)
	}

	log.Debug("Library deleted", zap.Int("libraryID", id))
	return nil
}
