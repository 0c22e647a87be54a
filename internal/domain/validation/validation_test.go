package validation_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/validation"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cantidades
// ──────────────────────────────────────────────────────────────────────────────

func TestQuantityLike_OrdenDeChequeos(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  validation.Reason
	}{
		{"cero es válido", 0, ""},
		{"máximo es válido", entity.MaxQuantity, ""},
		{"NaN", math.NaN(), validation.ReasonNotANumber},
		{"negativo", -1, validation.ReasonNegative},
		{"negativo y fraccionario reporta Negative", -1.5, validation.ReasonNegative},
		{"2^31 es demasiado grande", 2147483648, validation.ReasonTooLarge},
		{"infinito", math.Inf(1), validation.ReasonTooLarge},
		{"fraccionario", 3.5, validation.ReasonNotInteger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.QuantityLike(tt.value)
			assert.Equal(t, tt.want, got.Reason)
			assert.Equal(t, tt.want == "", got.OK())
		})
	}
}

func TestQuantityLikeString(t *testing.T) {
	assert.True(t, validation.QuantityLikeString(" 42 ").OK())
	assert.Equal(t, validation.ReasonNotANumber, validation.QuantityLikeString("abc").Reason)
	assert.Equal(t, validation.ReasonNotANumber, validation.QuantityLikeString("").Reason)
	assert.Equal(t, validation.ReasonNotInteger, validation.QuantityLikeString("2.25").Reason)
	assert.Equal(t, validation.ReasonNegative, validation.QuantityLikeString("-3").Reason)
}

func TestNumericRange_Presets(t *testing.T) {
	assert.True(t, validation.SessionTimeout("30").OK())
	assert.Equal(t, validation.ReasonBelowMinimum, validation.SessionTimeout("0").Reason)
	assert.Equal(t, validation.ReasonAboveMaximum, validation.SessionTimeout("1441").Reason)
	assert.Equal(t, validation.ReasonNotInteger, validation.SessionTimeout("10.5").Reason)
	assert.Equal(t, validation.ReasonNotANumber, validation.PasswordExpiry("nunca").Reason)
	assert.True(t, validation.PasswordExpiry("365").OK())
	assert.Equal(t, "Debe ser al menos 1", validation.PasswordExpiry("-2").Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Texto
// ──────────────────────────────────────────────────────────────────────────────

func TestRequiredText_OrdenDeChequeos(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) validation.Violation
		value string
		want  validation.Reason
	}{
		{"vacío", validation.PersonName, "", validation.ReasonRequired},
		{"solo espacios", validation.City, "   ", validation.ReasonRequired},
		{"corto", validation.PersonName, "A", validation.ReasonTooShort},
		{"largo", validation.Country, strings.Repeat("a", 51), validation.ReasonTooLong},
		{"dígitos en nombre", validation.PersonName, "Ana2", validation.ReasonInvalidCharacters},
		{"acentos y apóstrofo", validation.PersonName, "José O'Neill-Pérez", ""},
		{"empresa con símbolos", validation.CompanyName, "Smith & Co., Ltd.", ""},
		{"dirección corta", validation.Address, "Av 1", validation.ReasonTooShort},
		{"dirección con números", validation.Address, "Calle 45 # 12-30", ""},
		{"largo en runas", validation.City, strings.Repeat("ñ", 50), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.value).Reason)
		})
	}
}

func TestField_ConstruyeValidationError(t *testing.T) {
	assert.NoError(t, validation.Field("quantity", validation.QuantityLike(5)))

	err := validation.Field("quantity", validation.QuantityLike(-1))
	require.Error(t, err)
	var valErr *domain.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "quantity", valErr.Field)
	assert.Equal(t, "Negative", valErr.Reason)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCandidate(t *testing.T) {
	ok := validation.CandidateInput{SKU: "X1", Name: "Tornillo", Quantity: 10, MinimumStock: 2, Unit: "pcs"}
	assert.NoError(t, validation.Candidate(ok))

	bad := ok
	bad.Unit = "box"
	var valErr *domain.ValidationError
	require.True(t, errors.As(validation.Candidate(bad), &valErr))
	assert.Equal(t, "unit", valErr.Field)

	bad = ok
	bad.SKU = ""
	bad.Quantity = -1
	require.True(t, errors.As(validation.Candidate(bad), &valErr))
	assert.Equal(t, "sku", valErr.Field, "se reporta el primer campo inválido")
}

func TestValidateSettings_AtribuyeCadaCampo(t *testing.T) {
	s := entity.Settings{
		Profile:   entity.ProfileSettings{FirstName: "Ana", LastName: "Gómez"},
		Company:   entity.CompanySettings{Name: "Acme & Co.", Address: "Calle 10 # 5-20", City: "Bogotá", Country: "Colombia"},
		Warehouse: entity.WarehouseSettings{Name: "Bodega 1", Address: "Km 3 vía Siberia", City: "Cota", Country: "Colombia"},
		Security:  entity.SecuritySettings{SessionTimeout: "30", PasswordExpiry: "90"},
	}
	assert.Empty(t, validation.ValidateSettings(s))

	s.Company.City = "B0got4"
	s.Security.SessionTimeout = "5000"
	errs := validation.ValidateSettings(s)
	require.Len(t, errs, 2)
	assert.Equal(t, "company.city", errs[0].Field)
	assert.Equal(t, "InvalidCharacters", errs[0].Reason)
	assert.Equal(t, "security.session_timeout", errs[1].Field)
	assert.Equal(t, "AboveMaximum", errs[1].Reason)
}
