package validation

import (
	"regexp"

	"github.com/aczyrek/warehouse-management-system/internal/domain"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
)

var (
	placeNamePattern   = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	companyNamePattern = regexp.MustCompile(`^[\p{L}0-9\s'&,.-]+$`)
)

var (
	personNameRules  = TextRules{MinLen: 2, MaxLen: 50, Pattern: placeNamePattern}
	companyNameRules = TextRules{MinLen: 2, MaxLen: 50, Pattern: companyNamePattern}
	addressRules     = TextRules{MinLen: 5, MaxLen: 100}
	skuRules         = TextRules{MinLen: 1, MaxLen: 100}
	itemNameRules    = TextRules{MinLen: 1, MaxLen: 200}
)

// PersonName nombres y apellidos: letras, espacios, guiones y apóstrofos; 2–50.
func PersonName(v string) Violation { return RequiredText(v, personNameRules) }

// CompanyName admite además dígitos y & , . (razones sociales y nombres de bodega).
func CompanyName(v string) Violation { return RequiredText(v, companyNameRules) }

// City 2–50, mismo alfabeto que PersonName.
func City(v string) Violation { return RequiredText(v, personNameRules) }

// Country 2–50, mismo alfabeto que PersonName.
func Country(v string) Violation { return RequiredText(v, personNameRules) }

// Address 5–100 sin restricción de caracteres.
func Address(v string) Violation { return RequiredText(v, addressRules) }

// SKU código del ítem, 1–100.
func SKU(v string) Violation { return RequiredText(v, skuRules) }

// ItemName nombre del ítem, 1–200.
func ItemName(v string) Violation { return RequiredText(v, itemNameRules) }

// CandidateInput campos de un alta tal como llegan del formulario (cantidades sin convertir).
type CandidateInput struct {
	SKU          string
	Name         string
	Quantity     float64
	MinimumStock float64
	Unit         string
}

// Candidate valida un alta y devuelve el primer *domain.ValidationError encontrado.
func Candidate(in CandidateInput) error {
	checks := []struct {
		field string
		v     Violation
	}{
		{"sku", SKU(in.SKU)},
		{"name", ItemName(in.Name)},
		{"quantity", QuantityLike(in.Quantity)},
		{"minimum_stock", QuantityLike(in.MinimumStock)},
		{"unit", Unit(in.Unit)},
	}
	for _, c := range checks {
		if err := Field(c.field, c.v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSettings valida el formulario completo de configuración y devuelve
// todas las violaciones, cada una atribuida a su campo.
func ValidateSettings(s entity.Settings) []*domain.ValidationError {
	checks := []struct {
		field string
		v     Violation
	}{
		{"profile.first_name", PersonName(s.Profile.FirstName)},
		{"profile.last_name", PersonName(s.Profile.LastName)},
		{"company.name", CompanyName(s.Company.Name)},
		{"company.address", Address(s.Company.Address)},
		{"company.city", City(s.Company.City)},
		{"company.country", Country(s.Company.Country)},
		{"warehouse.name", CompanyName(s.Warehouse.Name)},
		{"warehouse.address", Address(s.Warehouse.Address)},
		{"warehouse.city", City(s.Warehouse.City)},
		{"warehouse.country", Country(s.Warehouse.Country)},
		{"security.session_timeout", SessionTimeout(s.Security.SessionTimeout)},
		{"security.password_expiry", PasswordExpiry(s.Security.PasswordExpiry)},
	}
	var out []*domain.ValidationError
	for _, c := range checks {
		if c.v.OK() {
			continue
		}
		out = append(out, &domain.ValidationError{Field: c.field, Reason: string(c.v.Reason), Message: c.v.Message})
	}
	return out
}
