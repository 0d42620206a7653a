package store

import (
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/kmorozov/bibliotek/model"
)

// wrapStorageErr maps sqlite constraint violations (unique collisions,
// dangling foreign keys) onto model.IntegrityError; anything else is wrapped
// with the operation name.
func wrapStorageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return model.NewIntegrityError(op, err)
	}
	return errors.Wrap(err, op)
}
