package domain

// ErrorResponse é o formato de erro padrão da API do Mercado Livre
type ErrorResponse struct {
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Status  int      `json:"status"`
	Cause   []string `json:"cause,omitempty"`
}

// IsInvalidToken indica token expirado ou revogado
func (e *ErrorResponse) IsInvalidToken() bool {
	return e.Status == 401 || e.Error == "invalid_token" || e.Error == "invalid_grant"
}
