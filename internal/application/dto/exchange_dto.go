package dto

// ImportResultDTO respuesta de POST /api/exchange/import.
type ImportResultDTO struct {
	Imported int    `json:"imported"`
	Strict   bool   `json:"strict"`
	File     string `json:"file"`
}
