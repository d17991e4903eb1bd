package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/reproducao"
)

// Hooks efeitos colaterais ligados pelo boot (o registro não conhece os
// casos de uso concretos).
type Hooks struct {
	// LoteRemovido limpa as lotações que apontam para o lote removido e
	// reconta os totais.
	LoteRemovido func(ctx context.Context, ownerID, loteID string) error
}

// escopoFazenda política de tenant padrão: primeira coluna presente vence.
func escopoFazenda() *Scope {
	return &Scope{
		ColumnCandidates: []string{"fazenda_id", "owner_id", "usuario_id"},
		Required:         true,
	}
}

// carimbos defaults de criação comuns a todas as entidades.
func carimbos(string) map[string]any {
	now := time.Now()
	return map[string]any{"created_at": now, "updated_at": now}
}

// Configs devolve as configurações de todas as entidades servidas pelo motor
// genérico. Cada uma ainda precisa de Bind(catalogo) antes de usar.
func Configs(h Hooks) []Config {
	return []Config{
		animaisConfig(),
		tourosConfig(),
		protocolosConfig(),
		eventosConfig(),
		lotesConfig(h),
		insumosConfig(),
		consumosConfig(),
		agendaConfig(),
	}
}

// camposDerivados campos do animal mutados apenas pelo fluxo de reprodução
// (e pela lotação, no caso do lote): o CRUD genérico os descarta do payload.
var camposDerivados = []string{
	"situacao_reprodutiva", "previsao_parto", "ultima_ia", "decisao",
	"estado_produtivo", "lote_id", "lote_nome",
}

func animaisConfig() Config {
	valida := func(payload map[string]any, criacao bool) (map[string]any, []dto.FieldIssue) {
		var issues []dto.FieldIssue
		p := copiaPayload(payload)
		removerCampos(p, camposDerivados...)

		if criacao {
			exigir(p, "brinco", &issues)
		}
		if nome, ok := pegaString(p, "nome"); ok && nome != "" {
			p["nome"] = nomeProprio(nome)
		}
		if sexo, ok := pegaString(p, "sexo"); ok && sexo != "" {
			if sexo != "femea" && sexo != "macho" {
				issues = append(issues, issue("sexo", "invalid", "sexo deve ser femea ou macho"))
			}
		}
		if nasc, ok := pegaString(p, "nascimento"); ok && nasc != "" {
			d, err := reproducao.ParseData(nasc)
			if err != nil {
				issues = append(issues, issue("nascimento", "invalid_date", "data de nascimento inválida"))
			} else {
				p["nascimento"] = reproducao.FormatData(d)
			}
		}
		return p, issues
	}
	return Config{
		Name:     "animais",
		Table:    "animais",
		IDColumn: "id",
		ListFields: []string{
			"id", "fazenda_id", "brinco", "nome", "raca", "sexo", "nascimento",
			"mae_id", "pai_id", "situacao_reprodutiva", "previsao_parto",
			"ultima_ia", "decisao", "estado_produtivo", "lote_id", "lote_nome",
			"historico", "created_at", "updated_at",
		},
		SearchFields:  []string{"brinco", "nome", "raca"},
		SortFields:    []string{"brinco", "nome", "nascimento", "situacao_reprodutiva", "created_at"},
		DocumentField: "historico",
		Scope:         escopoFazenda(),
		Defaults:      carimbos,
		ValidateCreate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, true)
		},
		ValidateUpdate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, false)
		},
	}
}

func tourosConfig() Config {
	valida := func(payload map[string]any, criacao bool) (map[string]any, []dto.FieldIssue) {
		var issues []dto.FieldIssue
		p := copiaPayload(payload)
		if criacao {
			if nome := exigir(p, "nome", &issues); nome != "" {
				p["nome"] = nomeProprio(nome)
			}
		} else if nome, ok := pegaString(p, "nome"); ok && nome != "" {
			p["nome"] = nomeProprio(nome)
		}
		for _, campo := range []string{"doses_adquiridas", "doses_restantes", "quantidade", "preco_por_dose"} {
			if _, tem := p[campo]; !tem {
				continue
			}
			if n, ok := pegaNumero(p, campo); !ok || n < 0 {
				issues = append(issues, issue(campo, "invalid", campo+" deve ser número não negativo"))
			}
		}
		return p, issues
	}
	return Config{
		Name:     "touros",
		Table:    "touros",
		IDColumn: "id",
		ListFields: []string{
			"id", "fazenda_id", "nome", "raca", "codigo", "doses_adquiridas",
			"doses_restantes", "quantidade", "preco_por_dose", "created_at", "updated_at",
		},
		SearchFields: []string{"nome", "raca", "codigo"},
		SortFields:   []string{"nome", "doses_restantes", "created_at"},
		Scope:        escopoFazenda(),
		Defaults:     carimbos,
		ValidateCreate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, true)
		},
		ValidateUpdate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, false)
		},
	}
}

func protocolosConfig() Config {
	valida := func(payload map[string]any, criacao bool) (map[string]any, []dto.FieldIssue) {
		var issues []dto.FieldIssue
		p := copiaPayload(payload)
		if criacao {
			exigir(p, "nome", &issues)
		}
		if etapas, tem := p["etapas"]; tem {
			lista, ok := etapas.([]any)
			if !ok {
				issues = append(issues, issue("etapas", "invalid", "etapas deve ser uma lista"))
			} else {
				for i, e := range lista {
					m, ok := e.(map[string]any)
					if !ok {
						issues = append(issues, issue("etapas", "invalid", "etapa deve ser um objeto"))
						break
					}
					if offset, ok := pegaNumero(m, "offset_dias"); !ok || offset < 0 {
						issues = append(issues, issue("etapas", "invalid",
							fmt.Sprintf("etapa %d sem offset_dias válido", i)))
					}
				}
			}
		}
		return p, issues
	}
	return Config{
		Name:     "protocolos",
		Table:    "protocolos",
		IDColumn: "id",
		ListFields: []string{
			"id", "fazenda_id", "nome", "descricao", "etapas", "created_at", "updated_at",
		},
		SearchFields: []string{"nome", "descricao"},
		SortFields:   []string{"nome", "created_at"},
		Scope:        escopoFazenda(),
		Defaults:     carimbos,
		ValidateCreate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, true)
		},
		ValidateUpdate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, false)
		},
	}
}

// eventosConfig CRUD direto sobre o log de eventos, permitido para lançamento
// corretivo; o caminho normal de escrita são os endpoints de fluxo.
func eventosConfig() Config {
	tiposValidos := map[string]bool{
		entity.EventoIA: true, entity.EventoDiagnostico: true,
		entity.EventoParto: true, entity.EventoPreParto: true,
		entity.EventoSecagem: true, entity.EventoPerdaReprodutiva: true,
		entity.EventoProtocoloEtapa: true, entity.EventoTratamento: true,
		entity.EventoDecisao: true,
	}
	valida := func(payload map[string]any, criacao bool) (map[string]any, []dto.FieldIssue) {
		var issues []dto.FieldIssue
		p := copiaPayload(payload)
		if criacao {
			exigir(p, "animal_id", &issues)
			if tipo := exigir(p, "tipo", &issues); tipo != "" && !tiposValidos[tipo] {
				issues = append(issues, issue("tipo", "invalid", "tipo de evento desconhecido"))
			}
		} else if tipo, ok := pegaString(p, "tipo"); ok && !tiposValidos[tipo] {
			issues = append(issues, issue("tipo", "invalid", "tipo de evento desconhecido"))
		}
		if data, ok := pegaString(p, "data"); ok {
			d, err := reproducao.ParseData(data)
			if err != nil {
				issues = append(issues, issue("data", "invalid_date", "data inválida"))
			} else {
				p["data"] = reproducao.FormatData(d)
			}
		} else if criacao {
			issues = append(issues, issue("data", "required", "data é obrigatória"))
		}
		return p, issues
	}
	return Config{
		Name:     "eventos",
		Table:    "eventos_reproducao",
		IDColumn: "id",
		ListFields: []string{
			"id", "fazenda_id", "animal_id", "data", "tipo", "detalhes",
			"resultado", "protocolo_id", "aplicacao_id", "created_at",
		},
		SearchFields: []string{"tipo", "resultado"},
		SortFields:   []string{"data", "tipo", "created_at"},
		Scope:        escopoFazenda(),
		Defaults: func(string) map[string]any {
			return map[string]any{"created_at": time.Now()}
		},
		ValidateCreate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, true)
		},
		ValidateUpdate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, false)
		},
	}
}

func lotesConfig(h Hooks) Config {
	valida := func(payload map[string]any, criacao bool) (map[string]any, []dto.FieldIssue) {
		var issues []dto.FieldIssue
		p := copiaPayload(payload)
		removerCampos(p, "total_animais") // recontado, nunca escrito pelo cliente
		if criacao {
			if nome := exigir(p, "nome", &issues); nome != "" {
				p["nome"] = nomeProprio(nome)
			}
		} else if nome, ok := pegaString(p, "nome"); ok && nome != "" {
			p["nome"] = nomeProprio(nome)
		}
		return p, issues
	}
	return Config{
		Name:     "lotes",
		Table:    "lotes",
		IDColumn: "id",
		ListFields: []string{
			"id", "fazenda_id", "nome", "descricao", "total_animais", "created_at", "updated_at",
		},
		SearchFields: []string{"nome", "descricao"},
		SortFields:   []string{"nome", "total_animais", "created_at"},
		Scope:        escopoFazenda(),
		Defaults: func(owner string) map[string]any {
			d := carimbos(owner)
			d["total_animais"] = 0
			return d
		},
		ValidateCreate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, true)
		},
		ValidateUpdate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, false)
		},
		AfterDelete: h.LoteRemovido,
	}
}

func insumosConfig() Config {
	valida := func(payload map[string]any, criacao bool) (map[string]any, []dto.FieldIssue) {
		var issues []dto.FieldIssue
		p := copiaPayload(payload)
		if criacao {
			exigir(p, "nome", &issues)
		}
		for _, campo := range []string{"quantidade", "estoque_minimo"} {
			if _, tem := p[campo]; !tem {
				continue
			}
			if n, ok := pegaNumero(p, campo); !ok || n < 0 {
				issues = append(issues, issue(campo, "invalid", campo+" deve ser número não negativo"))
			}
		}
		return p, issues
	}
	return Config{
		Name:     "insumos",
		Table:    "insumos",
		IDColumn: "id",
		ListFields: []string{
			"id", "fazenda_id", "nome", "categoria", "unidade", "quantidade",
			"estoque_minimo", "created_at", "updated_at",
		},
		SearchFields: []string{"nome", "categoria"},
		SortFields:   []string{"nome", "quantidade", "created_at"},
		Scope:        escopoFazenda(),
		Defaults:     carimbos,
		ValidateCreate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, true)
		},
		ValidateUpdate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, false)
		},
	}
}

func consumosConfig() Config {
	valida := func(payload map[string]any, criacao bool) (map[string]any, []dto.FieldIssue) {
		var issues []dto.FieldIssue
		p := copiaPayload(payload)
		if criacao {
			exigir(p, "insumo_id", &issues)
		}
		if data, ok := pegaString(p, "data"); ok {
			d, err := reproducao.ParseData(data)
			if err != nil {
				issues = append(issues, issue("data", "invalid_date", "data inválida"))
			} else {
				p["data"] = reproducao.FormatData(d)
			}
		} else if criacao {
			issues = append(issues, issue("data", "required", "data é obrigatória"))
		}
		if _, tem := p["quantidade"]; tem || criacao {
			if n, ok := pegaNumero(p, "quantidade"); !ok || n <= 0 {
				issues = append(issues, issue("quantidade", "invalid", "quantidade deve ser maior que zero"))
			}
		}
		return p, issues
	}
	return Config{
		Name:     "consumos",
		Table:    "consumos",
		IDColumn: "id",
		ListFields: []string{
			"id", "fazenda_id", "insumo_id", "data", "quantidade", "observacao", "created_at",
		},
		SearchFields: []string{"observacao"},
		SortFields:   []string{"data", "created_at"},
		Scope:        escopoFazenda(),
		Defaults: func(string) map[string]any {
			return map[string]any{"created_at": time.Now()}
		},
		ValidateCreate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, true)
		},
		ValidateUpdate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, false)
		},
	}
}

func agendaConfig() Config {
	valida := func(payload map[string]any, criacao bool) (map[string]any, []dto.FieldIssue) {
		var issues []dto.FieldIssue
		p := copiaPayload(payload)
		if criacao {
			exigir(p, "titulo", &issues)
		}
		if data, ok := pegaString(p, "data"); ok {
			d, err := reproducao.ParseData(data)
			if err != nil {
				issues = append(issues, issue("data", "invalid_date", "data inválida"))
			} else {
				p["data"] = reproducao.FormatData(d)
			}
		} else if criacao {
			issues = append(issues, issue("data", "required", "data é obrigatória"))
		}
		return p, issues
	}
	return Config{
		Name:     "agenda",
		Table:    "agenda_eventos",
		IDColumn: "id",
		ListFields: []string{
			"id", "fazenda_id", "titulo", "data", "tipo", "descricao",
			"concluido", "created_at", "updated_at",
		},
		SearchFields: []string{"titulo", "descricao"},
		SortFields:   []string{"data", "titulo", "created_at"},
		Scope:        escopoFazenda(),
		Defaults: func(owner string) map[string]any {
			d := carimbos(owner)
			d["concluido"] = false
			return d
		},
		ValidateCreate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, true)
		},
		ValidateUpdate: func(p map[string]any) (map[string]any, []dto.FieldIssue) {
			return valida(p, false)
		},
	}
}
