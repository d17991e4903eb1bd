package resource

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agrodata/fazenda-api/internal/application/dto"
)

var titulador = cases.Title(language.BrazilianPortuguese)

// issue atalho para construir um problema de validação.
func issue(path, code, msg string) dto.FieldIssue {
	return dto.FieldIssue{Path: path, Message: msg, Code: code}
}

// pegaString extrai e apara um campo string do payload.
func pegaString(payload map[string]any, campo string) (string, bool) {
	v, ok := payload[campo]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// pegaNumero extrai um campo numérico (JSON decodifica números como float64).
func pegaNumero(payload map[string]any, campo string) (float64, bool) {
	switch n := payload[campo].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// nomeProprio normaliza um nome para caixa de título pt-BR.
func nomeProprio(s string) string {
	return titulador.String(strings.ToLower(strings.TrimSpace(s)))
}

// copiaPayload devolve uma cópia rasa; validadores nunca mutam a entrada.
func copiaPayload(payload map[string]any) map[string]any {
	c := make(map[string]any, len(payload))
	for k, v := range payload {
		c[k] = v
	}
	return c
}

// exigir acusa campo obrigatório ausente ou vazio.
func exigir(payload map[string]any, campo string, issues *[]dto.FieldIssue) string {
	s, ok := pegaString(payload, campo)
	if !ok || s == "" {
		*issues = append(*issues, issue(campo, "required", campo+" é obrigatório"))
		return ""
	}
	return s
}

// removerCampos tira do payload campos que o cliente não pode escrever.
func removerCampos(payload map[string]any, campos ...string) {
	for _, c := range campos {
		delete(payload, c)
	}
}
