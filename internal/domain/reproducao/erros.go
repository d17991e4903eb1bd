package reproducao

import "fmt"

// SemDosesError touro referenciado sem doses restantes no inventário.
// Rejeição de regra de negócio: não deve ser reexecutada automaticamente.
type SemDosesError struct {
	TouroID string
}

func (e *SemDosesError) Error() string {
	return fmt.Sprintf("touro %s sem doses restantes", e.TouroID)
}

// SemIAError diagnóstico sem IA anterior pareável (na data ou antes dela).
type SemIAError struct {
	AnimalID string
}

func (e *SemIAError) Error() string {
	return fmt.Sprintf("animal %s não tem IA registrada até a data do diagnóstico", e.AnimalID)
}
