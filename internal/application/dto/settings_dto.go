package dto

// SettingsRequest formulario de configuración.
type SettingsRequest struct {
	Profile struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"profile"`
	Company   PlaceDTO `json:"company"`
	Warehouse PlaceDTO `json:"warehouse"`
	Security  struct {
		SessionTimeout string `json:"session_timeout"`
		PasswordExpiry string `json:"password_expiry"`
	} `json:"security"`
}

// PlaceDTO datos de empresa o bodega.
type PlaceDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}
