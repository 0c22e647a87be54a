package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Row     int    `json:"row,omitempty"`
}

// ValidationErrorsResponse lista de violaciones por campo.
type ValidationErrorsResponse struct {
	Valid  bool            `json:"valid"`
	Errors []ErrorResponse `json:"errors"`
}
