package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kmorozov/bibliotek/log"
	"github.com/kmorozov/bibliotek/model"
)

func (s *Store) GetTheme(find *model.FindTheme) (*model.Theme, error) {
	list, err := s.ListThemes(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListThemes(find *model.FindTheme) ([]*model.Theme, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "theme_id = ?"), append(args, *v)
	}
	if v := find.Name; v != nil && *v != "" {
		where, args = append(where, "LOWER(name) LIKE '%' || LOWER(?) || '%'"), append(args, *v)
	}

	query := `
		SELECT
			theme_id,
			name
		FROM themes
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY name, theme_id`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query themes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Theme, 0)
	for rows.Next() {
		var theme model.Theme
		if err := rows.Scan(
			&theme.ID,
			&theme.Name,
		); err != nil {
			return nil, err
		}
		list = append(list, &theme)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) UpsertTheme(theme *model.Theme) (*model.Theme, error) {
	if err := theme.Validate(); err != nil {
		return nil, err
	}

	var stmt string
	var args []any
	if theme.ID == 0 {
		stmt = `
			INSERT INTO themes (name)
			VALUES (?)
			RETURNING theme_id, name
		`
		args = []any{theme.Name}
	} else {
		stmt = `
			INSERT INTO themes (theme_id, name)
			VALUES (?, ?)
			ON CONFLICT(theme_id) DO UPDATE
			SET
				name=EXCLUDED.name
			RETURNING theme_id, name
		`
		args = []any{theme.ID, theme.Name}
	}

	var stored model.Theme
	if err := s.db.QueryRow(stmt, args...).Scan(
		&stored.ID,
		&stored.Name,
	); err != nil {
		return nil, wrapStorageErr("upsert theme", err)
	}

	return &stored, nil
}

// DeleteTheme is restricted while any book still references the theme.
// Callers clear the reference first, see ClearBookTheme.
func (s *Store) DeleteTheme(id int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var referenced int
	if err := tx.QueryRow("SELECT COUNT(*) FROM books WHERE theme_id = ?", id).Scan(&referenced); err != nil {
		return err
	}
	if referenced > 0 {
		return model.NewIntegrityError("delete theme",
			errors.Errorf("theme %d is referenced by %d books", id, referenced))
	}

	result, err := tx.Exec("DELETE FROM themes WHERE theme_id = ?", id)
	if err != nil {
		return wrapStorageErr("delete theme", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return tx.Commit()
}
