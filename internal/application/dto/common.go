package dto

// ErrorResponse cuerpo de error HTTP.
// Details lleva los datos estructurados del error (entidad, id, cantidades, campo).
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
