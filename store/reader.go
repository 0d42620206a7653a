package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kmorozov/bibliotek/log"
	"github.com/kmorozov/bibliotek/model"
)

func (s *Store) GetReader(find *model.FindReader) (*model.Reader, error) {
	list, err := s.ListReaders(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListReaders(find *model.FindReader) ([]*model.Reader, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "reader_id = ?"), append(args, *v)
	}
	if v := find.FullName; v != nil && *v != "" {
		where, args = append(where, "LOWER(full_name) LIKE '%' || LOWER(?) || '%'"), append(args, *v)
	}
	if v := find.Phone; v != nil {
		where, args = append(where, "phone = ?"), append(args, *v)
	}

	query := `
		SELECT
			reader_id,
			full_name,
			address,
			phone
		FROM readers
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY full_name, reader_id`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query readers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Reader, 0)
	for rows.Next() {
		var reader model.Reader
		if err := rows.Scan(
			&reader.ID,
			&reader.FullName,
			&reader.Address,
			&reader.Phone,
		); err != nil {
			return nil, err
		}
		list = append(list, &reader)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) UpsertReader(reader *model.Reader) (*model.Reader, error) {
	if err := reader.Validate(); err != nil {
		return nil, err
	}

	var stmt string
	var args []any
	if reader.ID == 0 {
		stmt = `
			INSERT INTO readers (full_name, address, phone)
			VALUES (?, ?, ?)
			RETURNING reader_id, full_name, address, phone
		`
		args = []any{reader.FullName, reader.Address, reader.Phone}
	} else {
		stmt = `
			INSERT INTO readers (reader_id, full_name, address, phone)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(reader_id) DO UPDATE
			SET
				full_name=EXCLUDED.full_name,
				address=EXCLUDED.address,
				phone=EXCLUDED.phone
			RETURNING reader_id, full_name, address, phone
		`
		args = []any{reader.ID, reader.FullName, reader.Address, reader.Phone}
	}

	var stored model.Reader
	if err := s.db.QueryRow(stmt, args...).Scan(
		&stored.ID,
		&stored.FullName,
		&stored.Address,
		&stored.Phone,
	); err != nil {
		return nil, wrapStorageErr("upsert reader", err)
	}

	return &stored, nil
}

// DeleteReader is restricted while any subscription, open or closed, still
// references the reader. The subscription rows are the loan history and
// cascading them away would falsify the ledger.
func (s *Store) DeleteReader(id int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var referenced int
	if err := tx.QueryRow("SELECT COUNT(*) FROM subscriptions WHERE reader_id = ?", id).Scan(&referenced); err != nil {
		return err
	}
	if referenced > 0 {
		return model.NewIntegrityError("delete reader",
			errors.Errorf("reader %d is referenced by %d subscriptions", id, referenced))
	}

	result, err := tx.Exec("DELETE FROM readers WHERE reader_id = ?", id)
	if err != nil {
		return wrapStorageErr("delete reader", err)
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
