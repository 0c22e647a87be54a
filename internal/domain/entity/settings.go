package entity

// Settings formulario de configuración del operador, empresa y bodega.
// Los numéricos llegan como texto porque se validan con el motor de validación.
type Settings struct {
	Profile   ProfileSettings
	Company   CompanySettings
	Warehouse WarehouseSettings
	Security  SecuritySettings
}

// ProfileSettings datos personales del operador.
type ProfileSettings struct {
	FirstName string
	LastName  string
}

// CompanySettings datos de la empresa.
type CompanySettings struct {
	Name    string
	Address string
	City    string
	Country string
}

// WarehouseSettings datos de la bodega física.
type WarehouseSettings struct {
	Name    string
	Address string
	City    string
	Country string
}

// SecuritySettings parámetros de sesión y contraseña.
type SecuritySettings struct {
	SessionTimeout string // minutos
	PasswordExpiry string // días
}
