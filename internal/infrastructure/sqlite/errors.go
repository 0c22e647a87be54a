package sqlite

import (
	"context"
	"errors"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
)

// classify traduce errores del driver a la taxonomía del dominio.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &domain.ConnectivityError{Op: op, Err: err}
	}
	var sqErr *msqlite.Error
	if errors.As(err, &sqErr) {
		code := sqErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
			code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqErr.Error(), "UNIQUE"):
			return &domain.DuplicateKeyError{Field: "sku", Err: err}
		case code&0xff == sqlite3.SQLITE_BUSY, code&0xff == sqlite3.SQLITE_LOCKED:
			return &domain.ConnectivityError{Op: op, Err: err}
		}
	}
	return &domain.StoreError{Op: op, Err: err}
}
