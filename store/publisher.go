package store

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kmorozov/bibliotek/log"
	"github.com/kmorozov/bibliotek/model"
)

func (s *Store) ListPublishers(find *model.FindPublisher) ([]*model.Publisher, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "publisher_id = ?"), append(args, *v)
	}
	if v := find.Name; v != nil && *v != "" {
		where, args = append(where, "LOWER(name) LIKE '%' || LOWER(?) || '%'"), append(args, *v)
	}

	query := `
		SELECT
			publisher_id,
			name,
			address
		FROM publishers
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY name, publisher_id`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query publishers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Publisher, 0)
	for rows.Next() {
		var publisher model.Publisher
		if err := rows.Scan(
			&publisher.ID,
			&publisher.Name,
			&publisher.Address,
		); err != nil {
			return nil, err
		}
		list = append(list, &publisher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) UpsertPublisher(publisher *model.Publisher) (*model.Publisher, error) {
	if err := publisher.Validate(); err != nil {
		return nil, err
	}

	var stmt string
	var args []any
	if publisher.ID == 0 {
		stmt = `
			INSERT INTO publishers (name, address)
			VALUES (?, ?)
			RETURNING publisher_id, name, address
		`
		args = []any{publisher.Name, publisher.Address}
	} else {
		stmt = `
			INSERT INTO publishers (publisher_id, name, address)
			VALUES (?, ?, ?)
			ON CONFLICT(publisher_id) DO UPDATE
			SET
				name=EXCLUDED.name,
				address=EXCLUDED.address
			RETURNING publisher_id, name, address
		`
		args = []any{publisher.ID, publisher.Name, publisher.Address}
	}

	var stored model.Publisher
	if err := s.db.QueryRow(stmt, args...).Scan(
		&stored.ID,
		&stored.Name,
		&stored.Address,
	); err != nil {
		return nil, wrapStorageErr("upsert publisher", err)
	}

	return &stored, nil
}

func (s *Store) DeletePublisher(id int) error {
	result, err := s.db.Exec("DELETE FROM publishers WHERE publisher_id = ?", id)
	if err != nil {
		return wrapStorageErr("delete publisher", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}
