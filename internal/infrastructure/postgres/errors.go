package postgres

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
)

const uniqueViolation = "23505"

// classify traduce errores de pgx a la taxonomía del dominio.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if field, ok := uniqueViolationField(err); ok {
		return &domain.DuplicateKeyError{Field: field, Err: err}
	}
	if isConnectivity(err) {
		return &domain.ConnectivityError{Op: op, Err: err}
	}
	return &domain.StoreError{Op: op, Err: err}
}

// uniqueViolationField detecta 23505 y deduce la columna desde el nombre del constraint.
func uniqueViolationField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return "", false
	}
	field := "sku"
	if name := strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, "inventory_items_"), "_key"); name != "" && name != pgErr.ConstraintName {
		field = name
	}
	return field, true
}

func isConnectivity(err error) bool {
	var (
		connErr *pgconn.ConnectError
		netErr  net.Error
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.As(err, &connErr), errors.As(err, &netErr):
		return true
	case pgconn.Timeout(err), pgconn.SafeToRetry(err):
		return true
	}
	return false
}
