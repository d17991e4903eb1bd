package dto

// FieldIssue problema de validação de um campo do payload.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorResponse corpo de erro HTTP. Error é o discriminador estável;
// Issues só aparece em erros de validação.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Issues  []FieldIssue `json:"issues,omitempty"`
}

// ListResponse página de um listado genérico.
type ListResponse struct {
	Items []map[string]any `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int              `json:"total"`
	Pages int              `json:"pages"`
	Sort  string           `json:"sort"`
	Order string           `json:"order"`
	Q     string           `json:"q"`
}

// OkResponse confirmação simples.
type OkResponse struct {
	Ok bool `json:"ok"`
}
