package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNoData            = errors.New("no hay datos para exportar")
	ErrStaleWrite        = errors.New("el registro cambió desde la última lectura")
	ErrUnsupportedReport = errors.New("tipo de reporte no soportado")
	ErrUnsupportedFormat = errors.New("formato no soportado")
)

// ErrorKind clasifica los errores para mapearlos a mensajes y códigos de transporte.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindValidation   ErrorKind = "validation"
	KindDuplicateKey ErrorKind = "duplicate_key"
	KindConnectivity ErrorKind = "connectivity"
	KindStore        ErrorKind = "store"
	KindNotFound     ErrorKind = "not_found"
	KindNoData       ErrorKind = "no_data"
	KindInvalidInput ErrorKind = "invalid_input"
	KindInternal     ErrorKind = "internal"
)

// ValidationError violación de una regla de campo; no se llega a tocar el store.
type ValidationError struct {
	Field   string
	Reason  string
	Message string
	Row     int // fila de importación (1-based sobre los datos); 0 si no aplica
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("fila %d: %s: %s", e.Row, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DuplicateKeyError el store rechazó la escritura por clave única (sku).
type DuplicateKeyError struct {
	Field string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("valor duplicado en %s", e.Field)
}

func (e *DuplicateKeyError) Unwrap() error { return e.Err }

// ConnectivityError fallo transitorio del transporte, ya agotados los reintentos.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: sin conexión con el almacén de datos: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// StoreError error no recuperable devuelto por el store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// KindOf devuelve la categoría del error (recorre la cadena de wrapping). Un StoreError
// es siempre KindStore aunque envuelva ErrInvalidInput: lo rechazó el store, no la entrada.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var (
		valErr  *ValidationError
		dupErr  *DuplicateKeyError
		connErr *ConnectivityError
		stErr   *StoreError
	)
	switch {
	case errors.As(err, &valErr):
		return KindValidation
	case errors.As(err, &dupErr):
		return KindDuplicateKey
	case errors.As(err, &connErr):
		return KindConnectivity
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrNoData):
		return KindNoData
	case errors.As(err, &stErr), errors.Is(err, ErrStaleWrite):
		return KindStore
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnsupportedReport), errors.Is(err, ErrUnsupportedFormat):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// UserMessage mensaje legible y distinto por categoría, apto para mostrar al operador.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindNone:
		return ""
	case KindValidation:
		var valErr *ValidationError
		errors.As(err, &valErr)
		return valErr.Error()
	case KindDuplicateKey:
		return "Ya existe un producto con este SKU"
	case KindConnectivity:
		return "No se pudo conectar con el almacén de datos; se muestran los últimos datos conocidos"
	case KindNotFound:
		return "El registro no existe"
	case KindNoData:
		return "No hay datos para exportar"
	case KindInvalidInput:
		return err.Error()
	case KindStore:
		return "El almacén de datos rechazó la operación"
	default:
		return "Error interno"
	}
}
