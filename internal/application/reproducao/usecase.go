// Package reproducao orquestra o fluxo de eventos reprodutivos:
// IA → diagnóstico → (pré-)parto → secagem, com propagação dos campos
// derivados do animal e consumo transacional de doses de sêmen.
//
// O evento persistido é a fonte de verdade; os campos do animal são uma
// projeção do log. Fora da inseminação (transacional de ponta a ponta), a
// sincronização dos campos é um segundo passo best-effort: falha é logada e
// nunca derruba a operação primária, porque RecomputarSituacao reconstrói a
// projeção a qualquer momento.
package reproducao

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/domain"
	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
	domrep "github.com/agrodata/fazenda-api/internal/domain/reproducao"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

// UseCase casos de uso do fluxo de reprodução.
type UseCase struct {
	tx         TxRunner
	animais    repository.AnimalRepository
	eventos    repository.EventoRepository
	protocolos repository.ProtocoloRepository
	log        *logger.Logger
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	tx TxRunner,
	animais repository.AnimalRepository,
	eventos repository.EventoRepository,
	protocolos repository.ProtocoloRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{tx: tx, animais: animais, eventos: eventos, protocolos: protocolos, log: log}
}

// RegistrarIA registra uma inseminação artificial. Com touro_id nos detalhes,
// a fila do touro é bloqueada (SELECT FOR UPDATE), a dose debitada uma única
// vez e o evento inserido, tudo na mesma transação: sem dose restante, nada
// é gravado.
func (uc *UseCase) RegistrarIA(ctx context.Context, fazendaID string, in dto.IARequest) (*entity.EventoReproducao, error) {
	data, err := domrep.ParseData(in.Data)
	if err != nil {
		return nil, err
	}
	animal, err := uc.animais.GetByID(fazendaID, in.AnimalID)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}

	detalhes := in.Detalhes
	if detalhes == nil {
		detalhes = map[string]any{}
	}
	touroID, _ := detalhes["touro_id"].(string)

	ev := &entity.EventoReproducao{
		ID:        uuid.New().String(),
		FazendaID: fazendaID,
		AnimalID:  in.AnimalID,
		Data:      data,
		Tipo:      entity.EventoIA,
		Detalhes:  detalhes,
		CreatedAt: time.Now(),
	}
	if in.ProtocoloID != "" {
		ev.ProtocoloID = &in.ProtocoloID
	}

	err = uc.tx.Run(ctx, func(
		eventos repository.EventoRepository,
		touros repository.TouroRepository,
		animais repository.AnimalRepository,
	) error {
		if touroID != "" {
			// Bloqueia a linha do touro antes de checar e debitar: duas IAs
			// concorrentes veem o inventário antes ou depois do débito,
			// nunca um estado rasgado.
			touro, err := touros.GetForUpdate(fazendaID, touroID)
			if err != nil {
				return err
			}
			if touro == nil {
				return domain.ErrNotFound
			}
			if touro.DosesRestantes <= 0 {
				return &domrep.SemDosesError{TouroID: touroID}
			}
			if err := touros.DebitarDose(touroID); err != nil {
				return err
			}
		}
		if err := eventos.Create(ev); err != nil {
			return err
		}
		return animais.AtualizarCampos(in.AnimalID, map[string]any{
			"ultima_ia":            data,
			"situacao_reprodutiva": entity.SituacaoInseminada,
		})
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// RegistrarDiagnostico registra um diagnóstico de gestação. Exige IA anterior
// pareável e aceita a data apenas nas janelas DG30 (28 a 40 dias) ou DG60
// (56 a 70 dias) após a última IA.
func (uc *UseCase) RegistrarDiagnostico(ctx context.Context, fazendaID string, in dto.DiagnosticoRequest) (*entity.EventoReproducao, error) {
	if in.Resultado != entity.ResultadoPrenhe &&
		in.Resultado != entity.ResultadoVazia &&
		in.Resultado != entity.ResultadoIndeterminado {
		return nil, domain.ErrInvalidInput
	}
	data, err := domrep.ParseData(in.Data)
	if err != nil {
		return nil, err
	}
	animal, err := uc.animais.GetByID(fazendaID, in.AnimalID)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}

	ia, err := uc.eventos.UltimaIA(in.AnimalID, data)
	if err != nil {
		return nil, err
	}
	if ia == nil {
		return nil, &domrep.SemIAError{AnimalID: in.AnimalID}
	}
	diff := domrep.DiasEntre(ia.Data, data)
	janela, ok := domrep.ClassificarJanela(diff)
	if !ok {
		return nil, &domrep.JanelaInvalidaError{DiffDias: diff}
	}

	detalhes := map[string]any{}
	for k, v := range in.Detalhes {
		detalhes[k] = v
	}
	detalhes["janela"] = janela
	detalhes["ia_id"] = ia.ID
	detalhes["ia_data"] = domrep.FormatData(ia.Data)
	detalhes["diff_dias"] = diff

	resultado := in.Resultado
	ev := &entity.EventoReproducao{
		ID:        uuid.New().String(),
		FazendaID: fazendaID,
		AnimalID:  in.AnimalID,
		Data:      data,
		Tipo:      entity.EventoDiagnostico,
		Detalhes:  detalhes,
		Resultado: &resultado,
		CreatedAt: time.Now(),
	}
	if err := uc.eventos.Create(ev); err != nil {
		return nil, err
	}

	// Efeitos secundários: a projeção do animal. O evento já está gravado;
	// daqui em diante falha é logada, não propagada.
	switch in.Resultado {
	case entity.ResultadoPrenhe:
		uc.sincronizaAnimal(in.AnimalID, map[string]any{
			"situacao_reprodutiva": entity.SituacaoPrenhe,
			"previsao_parto":       domrep.PrevisaoParto(ia.Data),
		})
	case entity.ResultadoVazia:
		// Vazia depois de prenhe é perda embrionária: o fato entra no log
		// antes da transição de estado.
		if animal.SituacaoReprodutiva != nil && *animal.SituacaoReprodutiva == entity.SituacaoPrenhe {
			perda := &entity.EventoReproducao{
				ID:        uuid.New().String(),
				FazendaID: fazendaID,
				AnimalID:  in.AnimalID,
				Data:      data,
				Tipo:      entity.EventoPerdaReprodutiva,
				Detalhes:  map[string]any{"origem": "diagnostico", "diagnostico_id": ev.ID},
				CreatedAt: time.Now(),
			}
			if err := uc.eventos.Create(perda); err != nil {
				uc.log.Error().Err(err).Str("animal_id", in.AnimalID).Msg("falha ao registrar perda reprodutiva")
			}
		}
		uc.sincronizaAnimal(in.AnimalID, map[string]any{
			"situacao_reprodutiva": entity.SituacaoVazia,
			"previsao_parto":       nil,
		})
	case entity.ResultadoIndeterminado:
		uc.sincronizaAnimal(in.AnimalID, map[string]any{
			"situacao_reprodutiva": entity.SituacaoAguardandoDiagnostico,
		})
	}
	return ev, nil
}

// RegistrarParto registra o parto; pós-parto e previsão limpa são projeção.
func (uc *UseCase) RegistrarParto(ctx context.Context, fazendaID string, in dto.EventoSimplesRequest) (*entity.EventoReproducao, error) {
	ev, err := uc.eventoSimples(fazendaID, in, entity.EventoParto)
	if err != nil {
		return nil, err
	}
	uc.sincronizaAnimal(in.AnimalID, map[string]any{
		"situacao_reprodutiva": entity.SituacaoPosParto,
		"previsao_parto":       nil,
	})
	return ev, nil
}

// RegistrarPreParto registra a entrada no período pré-parto.
func (uc *UseCase) RegistrarPreParto(ctx context.Context, fazendaID string, in dto.EventoSimplesRequest) (*entity.EventoReproducao, error) {
	ev, err := uc.eventoSimples(fazendaID, in, entity.EventoPreParto)
	if err != nil {
		return nil, err
	}
	uc.sincronizaAnimal(in.AnimalID, map[string]any{
		"situacao_reprodutiva": entity.SituacaoPreParto,
	})
	return ev, nil
}

// RegistrarSecagem registra a secagem; o estado produtivo vira "seca".
func (uc *UseCase) RegistrarSecagem(ctx context.Context, fazendaID string, in dto.EventoSimplesRequest) (*entity.EventoReproducao, error) {
	ev, err := uc.eventoSimples(fazendaID, in, entity.EventoSecagem)
	if err != nil {
		return nil, err
	}
	uc.sincronizaAnimal(in.AnimalID, map[string]any{
		"estado_produtivo": entity.EstadoProdutivoSeca,
	})
	return ev, nil
}

// RegistrarDecisao define ou limpa a etiqueta de decisão do animal. A limpeza
// também vira evento, explicitamente: o log nunca silencia uma mudança.
func (uc *UseCase) RegistrarDecisao(ctx context.Context, fazendaID string, in dto.DecisaoRequest) (*entity.EventoReproducao, error) {
	data, err := domrep.ParseData(in.Data)
	if err != nil {
		return nil, err
	}
	animal, err := uc.animais.GetByID(fazendaID, in.AnimalID)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}

	limpa := in.Decisao == ""
	detalhes := map[string]any{"decisao": in.Decisao, "limpa": limpa}
	ev := &entity.EventoReproducao{
		ID:        uuid.New().String(),
		FazendaID: fazendaID,
		AnimalID:  in.AnimalID,
		Data:      data,
		Tipo:      entity.EventoDecisao,
		Detalhes:  detalhes,
		CreatedAt: time.Now(),
	}
	if err := uc.eventos.Create(ev); err != nil {
		return nil, err
	}
	var valor any
	if !limpa {
		valor = in.Decisao
	}
	uc.sincronizaAnimal(in.AnimalID, map[string]any{"decisao": valor})
	return ev, nil
}

// AplicarProtocolo projeta as etapas do protocolo em eventos PROTOCOLO_ETAPA
// a partir da data de início; todas as etapas compartilham um aplicacao_id.
func (uc *UseCase) AplicarProtocolo(ctx context.Context, fazendaID, protocoloID string, in dto.AplicarProtocoloRequest) ([]*entity.EventoReproducao, error) {
	inicio, err := domrep.ParseData(in.Inicio)
	if err != nil {
		return nil, err
	}
	animal, err := uc.animais.GetByID(fazendaID, in.AnimalID)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}
	protocolo, err := uc.protocolos.GetByID(fazendaID, protocoloID)
	if err != nil {
		return nil, err
	}
	if protocolo == nil {
		return nil, domain.ErrNotFound
	}
	if len(protocolo.Etapas) == 0 {
		return nil, domain.ErrInvalidInput
	}

	aplicacaoID := uuid.New().String()
	criados := make([]*entity.EventoReproducao, 0, len(protocolo.Etapas))
	for i, etapa := range protocolo.Etapas {
		ev := &entity.EventoReproducao{
			ID:        uuid.New().String(),
			FazendaID: fazendaID,
			AnimalID:  in.AnimalID,
			Data:      inicio.AddDate(0, 0, etapa.OffsetDias),
			Tipo:      entity.EventoProtocoloEtapa,
			Detalhes: map[string]any{
				"etapa":    i,
				"hormonio": etapa.Hormonio,
				"acao":     etapa.Acao,
				"dose":     etapa.Dose,
				"via":      etapa.Via,
			},
			ProtocoloID: &protocoloID,
			AplicacaoID: &aplicacaoID,
			CreatedAt:   time.Now(),
		}
		if err := uc.eventos.Create(ev); err != nil {
			return nil, err
		}
		criados = append(criados, ev)
	}
	return criados, nil
}

// ListarEventos histórico reprodutivo do animal, mais recente primeiro.
func (uc *UseCase) ListarEventos(ctx context.Context, fazendaID, animalID string) ([]*entity.EventoReproducao, error) {
	return uc.eventos.ListByAnimal(fazendaID, animalID)
}

// RecomputarSituacao reconstrói os campos derivados do animal a partir do log
// de eventos, em ordem cronológica, e persiste o retrato resultante. É a
// operação de reparo de primeira classe para projeções defasadas.
func (uc *UseCase) RecomputarSituacao(ctx context.Context, fazendaID, animalID string) (*dto.SituacaoResponse, error) {
	animal, err := uc.animais.GetByID(fazendaID, animalID)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}
	eventos, err := uc.eventos.ListByAnimalAsc(fazendaID, animalID)
	if err != nil {
		return nil, err
	}

	var situacao, decisao, estado *string
	var previsao, ultimaIA *time.Time
	aplica := func(s string) { situacao = &s }
	for _, ev := range eventos {
		switch ev.Tipo {
		case entity.EventoIA:
			d := ev.Data
			ultimaIA = &d
			aplica(entity.SituacaoInseminada)
		case entity.EventoDiagnostico:
			if ev.Resultado == nil {
				continue
			}
			switch *ev.Resultado {
			case entity.ResultadoPrenhe:
				aplica(entity.SituacaoPrenhe)
				if ultimaIA != nil {
					p := domrep.PrevisaoParto(*ultimaIA)
					previsao = &p
				}
			case entity.ResultadoVazia:
				aplica(entity.SituacaoVazia)
				previsao = nil
			case entity.ResultadoIndeterminado:
				aplica(entity.SituacaoAguardandoDiagnostico)
			}
		case entity.EventoPerdaReprodutiva:
			aplica(entity.SituacaoVazia)
			previsao = nil
		case entity.EventoPreParto:
			aplica(entity.SituacaoPreParto)
		case entity.EventoParto:
			aplica(entity.SituacaoPosParto)
			previsao = nil
		case entity.EventoSecagem:
			s := entity.EstadoProdutivoSeca
			estado = &s
		case entity.EventoDecisao:
			if v, ok := ev.Detalhes["decisao"].(string); ok && v != "" {
				valor := v
				decisao = &valor
			} else {
				decisao = nil
			}
		}
	}

	campos := map[string]any{
		"situacao_reprodutiva": valorOuNil(situacao),
		"previsao_parto":       tempoOuNil(previsao),
		"ultima_ia":            tempoOuNil(ultimaIA),
		"decisao":              valorOuNil(decisao),
		"estado_produtivo":     valorOuNil(estado),
	}
	if err := uc.animais.AtualizarCampos(animalID, campos); err != nil {
		return nil, err
	}

	return &dto.SituacaoResponse{
		AnimalID:            animalID,
		SituacaoReprodutiva: situacao,
		PrevisaoParto:       dataStr(previsao),
		UltimaIA:            dataStr(ultimaIA),
		Decisao:             decisao,
		EstadoProdutivo:     estado,
	}, nil
}

// eventoSimples valida animal e data e grava o evento primário.
func (uc *UseCase) eventoSimples(fazendaID string, in dto.EventoSimplesRequest, tipo string) (*entity.EventoReproducao, error) {
	data, err := domrep.ParseData(in.Data)
	if err != nil {
		return nil, err
	}
	animal, err := uc.animais.GetByID(fazendaID, in.AnimalID)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}
	detalhes := in.Detalhes
	if detalhes == nil {
		detalhes = map[string]any{}
	}
	ev := &entity.EventoReproducao{
		ID:        uuid.New().String(),
		FazendaID: fazendaID,
		AnimalID:  in.AnimalID,
		Data:      data,
		Tipo:      tipo,
		Detalhes:  detalhes,
		CreatedAt: time.Now(),
	}
	if err := uc.eventos.Create(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// sincronizaAnimal escrita secundária best-effort dos campos derivados.
func (uc *UseCase) sincronizaAnimal(animalID string, campos map[string]any) {
	if err := uc.animais.AtualizarCampos(animalID, campos); err != nil {
		uc.log.Warn().Err(err).Str("animal_id", animalID).Msg("sincronização de campos derivados falhou")
	}
}

func valorOuNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func tempoOuNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func dataStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := domrep.FormatData(*t)
	return &s
}
