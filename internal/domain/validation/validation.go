// Package validation contiene las reglas de campo del inventario y de la configuración.
// Todas las funciones son puras y totales: nunca fallan, devuelven una Violation
// vacía cuando el valor es válido.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
)

// Reason código estable de la regla violada.
type Reason string

const (
	ReasonNotANumber        Reason = "NotANumber"
	ReasonNegative          Reason = "Negative"
	ReasonTooLarge          Reason = "TooLarge"
	ReasonNotInteger        Reason = "NotInteger"
	ReasonRequired          Reason = "Required"
	ReasonTooShort          Reason = "TooShort"
	ReasonTooLong           Reason = "TooLong"
	ReasonInvalidCharacters Reason = "InvalidCharacters"
	ReasonBelowMinimum      Reason = "BelowMinimum"
	ReasonAboveMaximum      Reason = "AboveMaximum"
	ReasonInvalidUnit       Reason = "InvalidUnit"
)

// Violation resultado de una regla. El valor cero significa válido.
type Violation struct {
	Reason  Reason
	Message string
}

// OK indica que no hubo violación.
func (v Violation) OK() bool { return v.Reason == "" }

func violation(r Reason, msg string) Violation {
	return Violation{Reason: r, Message: msg}
}

// Field convierte la violación en *domain.ValidationError atribuido al campo, o nil si es válida.
func Field(name string, v Violation) error {
	if v.OK() {
		return nil
	}
	return &domain.ValidationError{Field: name, Reason: string(v.Reason), Message: v.Message}
}

// ── Cantidades ───────────────────────────────────────────────────────────────

// QuantityLike valida cantidades y montos a retirar. El orden de los chequeos es fijo
// y se corta en el primero que falla: NotANumber, Negative, TooLarge, NotInteger.
func QuantityLike(value float64) Violation {
	switch {
	case math.IsNaN(value):
		return violation(ReasonNotANumber, "Debe ser un número válido")
	case value < 0:
		return violation(ReasonNegative, "Debe ser un número positivo")
	case value > entity.MaxQuantity:
		return violation(ReasonTooLarge, "El valor es demasiado grande")
	case value != math.Trunc(value):
		return violation(ReasonNotInteger, "Debe ser un número entero")
	}
	return Violation{}
}

// QuantityLikeString igual que QuantityLike pero sobre texto (celdas de importación, formularios).
func QuantityLikeString(raw string) Violation {
	f, ok := parseNumber(raw)
	if !ok {
		return violation(ReasonNotANumber, "Debe ser un número válido")
	}
	return QuantityLike(f)
}

// ── Rangos numéricos ─────────────────────────────────────────────────────────

// NumericRange mismo orden de chequeos que QuantityLike con límites del llamador:
// NotANumber, BelowMinimum, AboveMaximum, NotInteger.
func NumericRange(raw string, min, max int) Violation {
	f, ok := parseNumber(raw)
	switch {
	case !ok || math.IsNaN(f):
		return violation(ReasonNotANumber, "Debe ser un número válido")
	case f < float64(min):
		return violation(ReasonBelowMinimum, fmt.Sprintf("Debe ser al menos %d", min))
	case f > float64(max):
		return violation(ReasonAboveMaximum, fmt.Sprintf("No puede superar %d", max))
	case f != math.Trunc(f):
		return violation(ReasonNotInteger, "Debe ser un número entero")
	}
	return Violation{}
}

// SessionTimeout minutos de inactividad antes de cerrar sesión (1–1440).
func SessionTimeout(raw string) Violation { return NumericRange(raw, 1, 1440) }

// PasswordExpiry días de vigencia de la contraseña (1–365).
func PasswordExpiry(raw string) Violation { return NumericRange(raw, 1, 365) }

func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ── Texto ────────────────────────────────────────────────────────────────────

// TextRules límites de longitud (en caracteres) y patrón opcional.
type TextRules struct {
	MinLen  int
	MaxLen  int
	Pattern *regexp.Regexp
}

// RequiredText orden fijo: Required, TooShort, TooLong, InvalidCharacters.
func RequiredText(value string, rules TextRules) Violation {
	if strings.TrimSpace(value) == "" {
		return violation(ReasonRequired, "Este campo es obligatorio")
	}
	n := utf8.RuneCountInString(value)
	if rules.MinLen > 0 && n < rules.MinLen {
		return violation(ReasonTooShort, fmt.Sprintf("Debe tener al menos %d caracteres", rules.MinLen))
	}
	if rules.MaxLen > 0 && n > rules.MaxLen {
		return violation(ReasonTooLong, fmt.Sprintf("Debe tener como máximo %d caracteres", rules.MaxLen))
	}
	if rules.Pattern != nil && !rules.Pattern.MatchString(value) {
		return violation(ReasonInvalidCharacters, "Contiene caracteres no permitidos")
	}
	return Violation{}
}

// Unit valida que la unidad pertenezca al conjunto cerrado.
func Unit(raw string) Violation {
	if !entity.Unit(raw).Valid() {
		return violation(ReasonInvalidUnit, "Unidad no admitida")
	}
	return Violation{}
}
