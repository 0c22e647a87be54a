package usecase

import (
	"github.com/aczyrek/warehouse-management-system/internal/application/dto"
	"github.com/aczyrek/warehouse-management-system/internal/domain/entity"
	"github.com/aczyrek/warehouse-management-system/internal/domain/validation"
)

// SettingsUseCase validación del formulario de configuración.
type SettingsUseCase struct{}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase() *SettingsUseCase { return &SettingsUseCase{} }

// Validate devuelve todas las violaciones; Valid es true si no hay ninguna.
func (uc *SettingsUseCase) Validate(in dto.SettingsRequest) dto.ValidationErrorsResponse {
	s := entity.Settings{
		Profile:   entity.ProfileSettings{FirstName: in.Profile.FirstName, LastName: in.Profile.LastName},
		Company:   entity.CompanySettings(in.Company),
		Warehouse: entity.WarehouseSettings(in.Warehouse),
		Security: entity.SecuritySettings{
			SessionTimeout: in.Security.SessionTimeout,
			PasswordExpiry: in.Security.PasswordExpiry,
		},
	}
	out := dto.ValidationErrorsResponse{Valid: true, Errors: []dto.ErrorResponse{}}
	for _, v := range validation.ValidateSettings(s) {
		out.Valid = false
		out.Errors = append(out.Errors, dto.ErrorResponse{Code: "validation", Message: v.Message, Field: v.Field})
	}
	return out
}
