package reproducao_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/application/reproducao"
	"github.com/agrodata/fazenda-api/internal/domain"
	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/internal/domain/repository"
	domrep "github.com/agrodata/fazenda-api/internal/domain/reproducao"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

const (
	fazendaTeste = "fazenda-1"
	animalTeste  = "animal-1"
	touroTeste   = "touro-1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
//
// O estado compartilhado simula o storage; o fakeTx tira um retrato antes de
// executar o callback e o restaura em caso de erro, reproduzindo a semântica
// de rollback da transação real.
// ──────────────────────────────────────────────────────────────────────────────

type estado struct {
	animais map[string]*entity.Animal
	touros  map[string]*entity.Touro
	eventos []*entity.EventoReproducao
	// campos derivados aplicados por AtualizarCampos, por animal
	campos map[string]map[string]any
	// força falha nas escritas de campos derivados (fora da transação)
	falhaCampos bool
}

func novoEstado() *estado {
	return &estado{
		animais: map[string]*entity.Animal{},
		touros:  map[string]*entity.Touro{},
		campos:  map[string]map[string]any{},
	}
}

func (e *estado) retrato() *estado {
	c := novoEstado()
	for k, v := range e.animais {
		copia := *v
		c.animais[k] = &copia
	}
	for k, v := range e.touros {
		copia := *v
		c.touros[k] = &copia
	}
	c.eventos = append([]*entity.EventoReproducao{}, e.eventos...)
	for k, v := range e.campos {
		m := map[string]any{}
		for ck, cv := range v {
			m[ck] = cv
		}
		c.campos[k] = m
	}
	c.falhaCampos = e.falhaCampos
	return c
}

func (e *estado) restaura(r *estado) {
	e.animais = r.animais
	e.touros = r.touros
	e.eventos = r.eventos
	e.campos = r.campos
}

type fakeAnimais struct{ e *estado }

func (f *fakeAnimais) GetByID(fazendaID, id string) (*entity.Animal, error) {
	a := f.e.animais[id]
	if a == nil || a.FazendaID != fazendaID {
		return nil, nil
	}
	return a, nil
}

func (f *fakeAnimais) AtualizarCampos(id string, campos map[string]any) error {
	if f.e.falhaCampos {
		return errors.New("coluna indisponível")
	}
	m := f.e.campos[id]
	if m == nil {
		m = map[string]any{}
		f.e.campos[id] = m
	}
	for k, v := range campos {
		m[k] = v
	}
	return nil
}

func (f *fakeAnimais) GetHistorico(fazendaID, id string) (map[string]any, error) {
	a := f.e.animais[id]
	if a == nil {
		return nil, errors.New("animal ausente")
	}
	if a.Historico == nil {
		return map[string]any{}, nil
	}
	return a.Historico, nil
}

func (f *fakeAnimais) SetHistorico(id string, doc map[string]any) error {
	f.e.animais[id].Historico = doc
	return nil
}

type fakeTouros struct{ e *estado }

func (f *fakeTouros) GetByID(fazendaID, id string) (*entity.Touro, error) {
	t := f.e.touros[id]
	if t == nil || t.FazendaID != fazendaID {
		return nil, nil
	}
	return t, nil
}

func (f *fakeTouros) GetForUpdate(fazendaID, id string) (*entity.Touro, error) {
	return f.GetByID(fazendaID, id)
}

func (f *fakeTouros) DebitarDose(id string) error {
	f.e.touros[id].DosesRestantes--
	return nil
}

func (f *fakeTouros) CreditarDoses(id string, doses int, preco *decimal.Decimal) error {
	t := f.e.touros[id]
	t.DosesAdquiridas += doses
	t.DosesRestantes += doses
	if preco != nil {
		t.PrecoPorDose = *preco
	}
	return nil
}

type fakeEventos struct{ e *estado }

func (f *fakeEventos) Create(ev *entity.EventoReproducao) error {
	f.e.eventos = append(f.e.eventos, ev)
	return nil
}

func (f *fakeEventos) UltimaIA(animalID string, ate time.Time) (*entity.EventoReproducao, error) {
	var ultima *entity.EventoReproducao
	for _, ev := range f.e.eventos {
		if ev.AnimalID != animalID || ev.Tipo != entity.EventoIA || ev.Data.After(ate) {
			continue
		}
		if ultima == nil || ev.Data.After(ultima.Data) {
			ultima = ev
		}
	}
	return ultima, nil
}

func (f *fakeEventos) ListByAnimal(fazendaID, animalID string) ([]*entity.EventoReproducao, error) {
	asc, _ := f.ListByAnimalAsc(fazendaID, animalID)
	saida := make([]*entity.EventoReproducao, 0, len(asc))
	for i := len(asc) - 1; i >= 0; i-- {
		saida = append(saida, asc[i])
	}
	return saida, nil
}

func (f *fakeEventos) ListByAnimalAsc(fazendaID, animalID string) ([]*entity.EventoReproducao, error) {
	var saida []*entity.EventoReproducao
	for _, ev := range f.e.eventos {
		if ev.FazendaID == fazendaID && ev.AnimalID == animalID {
			saida = append(saida, ev)
		}
	}
	sort.SliceStable(saida, func(i, j int) bool { return saida[i].Data.Before(saida[j].Data) })
	return saida, nil
}

type fakeProtocolos struct {
	protocolos map[string]*entity.Protocolo
}

func (f *fakeProtocolos) GetByID(fazendaID, id string) (*entity.Protocolo, error) {
	p := f.protocolos[id]
	if p == nil || p.FazendaID != fazendaID {
		return nil, nil
	}
	return p, nil
}

type fakeTx struct{ e *estado }

func (f *fakeTx) Run(ctx context.Context, fn func(
	eventos repository.EventoRepository,
	touros repository.TouroRepository,
	animais repository.AnimalRepository,
) error) error {
	retrato := f.e.retrato()
	err := fn(&fakeEventos{e: f.e}, &fakeTouros{e: f.e}, &fakeAnimais{e: f.e})
	if err != nil {
		f.e.restaura(retrato)
	}
	return err
}

func novoUseCase(t *testing.T, e *estado, protocolos map[string]*entity.Protocolo) *reproducao.UseCase {
	t.Helper()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return reproducao.NewUseCase(
		&fakeTx{e: e},
		&fakeAnimais{e: e},
		&fakeEventos{e: e},
		&fakeProtocolos{protocolos: protocolos},
		log,
	)
}

func comVaca(e *estado, situacao string) {
	a := &entity.Animal{ID: animalTeste, FazendaID: fazendaTeste, Brinco: "V-001", Nome: "Mimosa"}
	if situacao != "" {
		a.SituacaoReprodutiva = &situacao
	}
	e.animais[animalTeste] = a
}

func comTouro(e *estado, doses int) {
	e.touros[touroTeste] = &entity.Touro{
		ID: touroTeste, FazendaID: fazendaTeste, Nome: "Sultão",
		DosesAdquiridas: doses, DosesRestantes: doses,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Inseminação artificial
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarIA_DebitaUmaDoseEGravaEvento(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	comTouro(e, 5)
	uc := novoUseCase(t, e, nil)

	ev, err := uc.RegistrarIA(context.Background(), fazendaTeste, dto.IARequest{
		AnimalID: animalTeste,
		Data:     "2025-03-01",
		Detalhes: map[string]any{"touro_id": touroTeste, "inseminador": "José"},
	})
	require.NoError(t, err)
	require.NotNil(t, ev)

	assert.Equal(t, entity.EventoIA, ev.Tipo)
	assert.Equal(t, 4, e.touros[touroTeste].DosesRestantes, "exatamente uma dose debitada")
	require.Len(t, e.eventos, 1)

	campos := e.campos[animalTeste]
	require.NotNil(t, campos)
	assert.Equal(t, entity.SituacaoInseminada, campos["situacao_reprodutiva"])
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), campos["ultima_ia"])
}

func TestRegistrarIA_SemDosesNadaEGravado(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	comTouro(e, 0)
	uc := novoUseCase(t, e, nil)

	_, err := uc.RegistrarIA(context.Background(), fazendaTeste, dto.IARequest{
		AnimalID: animalTeste,
		Data:     "2025-03-01",
		Detalhes: map[string]any{"touro_id": touroTeste},
	})

	var semDoses *domrep.SemDosesError
	require.ErrorAs(t, err, &semDoses)
	assert.Equal(t, touroTeste, semDoses.TouroID)

	assert.Empty(t, e.eventos, "a transação descarta o evento")
	assert.Equal(t, 0, e.touros[touroTeste].DosesRestantes)
	assert.Empty(t, e.campos[animalTeste], "campos derivados intocados")
}

func TestRegistrarIA_UltimaDoseEsgotaInventario(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	comTouro(e, 1)
	uc := novoUseCase(t, e, nil)

	_, err := uc.RegistrarIA(context.Background(), fazendaTeste, dto.IARequest{
		AnimalID: animalTeste, Data: "2025-03-01",
		Detalhes: map[string]any{"touro_id": touroTeste},
	})
	require.NoError(t, err, "a última dose ainda serve")
	assert.Equal(t, 0, e.touros[touroTeste].DosesRestantes)

	_, err = uc.RegistrarIA(context.Background(), fazendaTeste, dto.IARequest{
		AnimalID: animalTeste, Data: "2025-03-02",
		Detalhes: map[string]any{"touro_id": touroTeste},
	})
	var semDoses *domrep.SemDosesError
	require.ErrorAs(t, err, &semDoses, "inventário esgotado rejeita a segunda IA")
	require.Len(t, e.eventos, 1)
}

func TestRegistrarIA_SemTouroNaoMexeEmInventario(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)

	ev, err := uc.RegistrarIA(context.Background(), fazendaTeste, dto.IARequest{
		AnimalID: animalTeste, Data: "01/03/2025",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EventoIA, ev.Tipo)
	require.Len(t, e.eventos, 1)
}

func TestRegistrarIA_DataInvalidaRejeitadaAntesDeEscrever(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)

	_, err := uc.RegistrarIA(context.Background(), fazendaTeste, dto.IARequest{
		AnimalID: animalTeste, Data: "amanhã",
	})
	var dataErr *domrep.DataInvalidaError
	require.ErrorAs(t, err, &dataErr)
	assert.Empty(t, e.eventos)
}

func TestRegistrarIA_AnimalInexistente(t *testing.T) {
	e := novoEstado()
	uc := novoUseCase(t, e, nil)

	_, err := uc.RegistrarIA(context.Background(), fazendaTeste, dto.IARequest{
		AnimalID: "fantasma", Data: "2025-03-01",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Diagnóstico de gestação
// ──────────────────────────────────────────────────────────────────────────────

func registraIA(t *testing.T, uc *reproducao.UseCase, data string) {
	t.Helper()
	_, err := uc.RegistrarIA(context.Background(), fazendaTeste, dto.IARequest{
		AnimalID: animalTeste, Data: data,
	})
	require.NoError(t, err)
}

func TestRegistrarDiagnostico_SemIAPareavel(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)

	_, err := uc.RegistrarDiagnostico(context.Background(), fazendaTeste, dto.DiagnosticoRequest{
		AnimalID: animalTeste, Data: "2025-03-30", Resultado: entity.ResultadoPrenhe,
	})
	var semIA *domrep.SemIAError
	require.ErrorAs(t, err, &semIA)
}

func TestRegistrarDiagnostico_ForaDasJanelas(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)
	registraIA(t, uc, "2025-03-01")

	// 19 dias depois: antes da janela DG30.
	_, err := uc.RegistrarDiagnostico(context.Background(), fazendaTeste, dto.DiagnosticoRequest{
		AnimalID: animalTeste, Data: "2025-03-20", Resultado: entity.ResultadoPrenhe,
	})
	var janelaErr *domrep.JanelaInvalidaError
	require.ErrorAs(t, err, &janelaErr)
	assert.Equal(t, 19, janelaErr.DiffDias)
}

func TestRegistrarDiagnostico_PrenheEmDG30(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)
	registraIA(t, uc, "2025-03-01")

	ev, err := uc.RegistrarDiagnostico(context.Background(), fazendaTeste, dto.DiagnosticoRequest{
		AnimalID: animalTeste, Data: "2025-03-30", Resultado: entity.ResultadoPrenhe,
	})
	require.NoError(t, err)

	assert.Equal(t, domrep.JanelaDG30, ev.Detalhes["janela"])
	assert.Equal(t, 29, ev.Detalhes["diff_dias"])
	assert.Equal(t, "2025-03-01", ev.Detalhes["ia_data"])

	campos := e.campos[animalTeste]
	assert.Equal(t, entity.SituacaoPrenhe, campos["situacao_reprodutiva"])
	esperado := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, domrep.GestacaoDias)
	assert.Equal(t, esperado, campos["previsao_parto"], "previsão casa com IA + 283 dias")
}

func TestRegistrarDiagnostico_VaziaEmDG60(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)
	registraIA(t, uc, "2025-03-01")

	ev, err := uc.RegistrarDiagnostico(context.Background(), fazendaTeste, dto.DiagnosticoRequest{
		AnimalID: animalTeste, Data: "2025-05-03", Resultado: entity.ResultadoVazia,
	})
	require.NoError(t, err)
	assert.Equal(t, domrep.JanelaDG60, ev.Detalhes["janela"])

	campos := e.campos[animalTeste]
	assert.Equal(t, entity.SituacaoVazia, campos["situacao_reprodutiva"])
	assert.Nil(t, campos["previsao_parto"], "previsão limpa")
}

// Vazia depois de prenhe é perda embrionária: o fato entra no log antes da
// transição de estado.
func TestRegistrarDiagnostico_PerdaReprodutivaRegistradaAntesDaTransicao(t *testing.T) {
	e := novoEstado()
	comVaca(e, entity.SituacaoPrenhe)
	uc := novoUseCase(t, e, nil)
	registraIA(t, uc, "2025-03-01")

	diag, err := uc.RegistrarDiagnostico(context.Background(), fazendaTeste, dto.DiagnosticoRequest{
		AnimalID: animalTeste, Data: "2025-03-30", Resultado: entity.ResultadoVazia,
	})
	require.NoError(t, err)

	// IA, DIAGNOSTICO, PERDA_REPRODUTIVA, nesta ordem de inserção.
	require.Len(t, e.eventos, 3)
	assert.Equal(t, entity.EventoDiagnostico, e.eventos[1].Tipo)
	perda := e.eventos[2]
	assert.Equal(t, entity.EventoPerdaReprodutiva, perda.Tipo)
	assert.Equal(t, "diagnostico", perda.Detalhes["origem"])
	assert.Equal(t, diag.ID, perda.Detalhes["diagnostico_id"])

	campos := e.campos[animalTeste]
	assert.Equal(t, entity.SituacaoVazia, campos["situacao_reprodutiva"])
}

func TestRegistrarDiagnostico_VaziaSemPrenheNaoGeraPerda(t *testing.T) {
	e := novoEstado()
	comVaca(e, entity.SituacaoInseminada)
	uc := novoUseCase(t, e, nil)
	registraIA(t, uc, "2025-03-01")

	_, err := uc.RegistrarDiagnostico(context.Background(), fazendaTeste, dto.DiagnosticoRequest{
		AnimalID: animalTeste, Data: "2025-03-30", Resultado: entity.ResultadoVazia,
	})
	require.NoError(t, err)

	for _, ev := range e.eventos {
		assert.NotEqual(t, entity.EventoPerdaReprodutiva, ev.Tipo)
	}
}

func TestRegistrarDiagnostico_ResultadoInvalido(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)

	_, err := uc.RegistrarDiagnostico(context.Background(), fazendaTeste, dto.DiagnosticoRequest{
		AnimalID: animalTeste, Data: "2025-03-30", Resultado: "talvez",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarDiagnostico_IndeterminadoAguardaNovoDiagnostico(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)
	registraIA(t, uc, "2025-03-01")

	_, err := uc.RegistrarDiagnostico(context.Background(), fazendaTeste, dto.DiagnosticoRequest{
		AnimalID: animalTeste, Data: "2025-03-30", Resultado: entity.ResultadoIndeterminado,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SituacaoAguardandoDiagnostico, e.campos[animalTeste]["situacao_reprodutiva"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Parto, secagem e decisão
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarParto_ProjetaPosParto(t *testing.T) {
	e := novoEstado()
	comVaca(e, entity.SituacaoPrenhe)
	uc := novoUseCase(t, e, nil)

	ev, err := uc.RegistrarParto(context.Background(), fazendaTeste, dto.EventoSimplesRequest{
		AnimalID: animalTeste, Data: "2025-12-09",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EventoParto, ev.Tipo)

	campos := e.campos[animalTeste]
	assert.Equal(t, entity.SituacaoPosParto, campos["situacao_reprodutiva"])
	assert.Nil(t, campos["previsao_parto"])
}

// A falha na projeção não derruba a operação primária: o evento fica e o
// reparo é responsabilidade do recálculo.
func TestRegistrarParto_FalhaDeProjecaoNaoPropagada(t *testing.T) {
	e := novoEstado()
	comVaca(e, entity.SituacaoPrenhe)
	e.falhaCampos = true
	uc := novoUseCase(t, e, nil)

	ev, err := uc.RegistrarParto(context.Background(), fazendaTeste, dto.EventoSimplesRequest{
		AnimalID: animalTeste, Data: "2025-12-09",
	})
	require.NoError(t, err)
	require.NotNil(t, ev)
	require.Len(t, e.eventos, 1, "o evento primário sobrevive à falha da projeção")
}

func TestRegistrarSecagem_EstadoProdutivoSeca(t *testing.T) {
	e := novoEstado()
	comVaca(e, entity.SituacaoPrenhe)
	uc := novoUseCase(t, e, nil)

	_, err := uc.RegistrarSecagem(context.Background(), fazendaTeste, dto.EventoSimplesRequest{
		AnimalID: animalTeste, Data: "2025-10-01",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoProdutivoSeca, e.campos[animalTeste]["estado_produtivo"])
}

func TestRegistrarDecisao_DefinirELimpar(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)

	ev, err := uc.RegistrarDecisao(context.Background(), fazendaTeste, dto.DecisaoRequest{
		AnimalID: animalTeste, Data: "2025-03-01", Decisao: "descarte",
	})
	require.NoError(t, err)
	assert.Equal(t, false, ev.Detalhes["limpa"])
	assert.Equal(t, "descarte", e.campos[animalTeste]["decisao"])

	ev, err = uc.RegistrarDecisao(context.Background(), fazendaTeste, dto.DecisaoRequest{
		AnimalID: animalTeste, Data: "2025-03-02",
	})
	require.NoError(t, err)
	assert.Equal(t, true, ev.Detalhes["limpa"], "limpeza vira evento explícito")
	assert.Nil(t, e.campos[animalTeste]["decisao"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Aplicação de protocolo
// ──────────────────────────────────────────────────────────────────────────────

func TestAplicarProtocolo_ProjetaEtapasComAplicacaoCompartilhada(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	protocolos := map[string]*entity.Protocolo{
		"proto-1": {
			ID: "proto-1", FazendaID: fazendaTeste, Nome: "IATF curto",
			Etapas: []entity.EtapaProtocolo{
				{OffsetDias: 0, Hormonio: "GnRH", Acao: "aplicar"},
				{OffsetDias: 7, Hormonio: "PGF2a", Acao: "aplicar"},
				{OffsetDias: 9, Acao: "inseminar"},
			},
		},
	}
	uc := novoUseCase(t, e, protocolos)

	criados, err := uc.AplicarProtocolo(context.Background(), fazendaTeste, "proto-1", dto.AplicarProtocoloRequest{
		AnimalID: animalTeste, Inicio: "2025-03-01",
	})
	require.NoError(t, err)
	require.Len(t, criados, 3)

	inicio := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, inicio, criados[0].Data)
	assert.Equal(t, inicio.AddDate(0, 0, 7), criados[1].Data)
	assert.Equal(t, inicio.AddDate(0, 0, 9), criados[2].Data)

	require.NotNil(t, criados[0].AplicacaoID)
	for _, ev := range criados {
		assert.Equal(t, entity.EventoProtocoloEtapa, ev.Tipo)
		require.NotNil(t, ev.AplicacaoID)
		assert.Equal(t, *criados[0].AplicacaoID, *ev.AplicacaoID, "todas as etapas compartilham a aplicação")
		require.NotNil(t, ev.ProtocoloID)
		assert.Equal(t, "proto-1", *ev.ProtocoloID)
	}
}

func TestAplicarProtocolo_ProtocoloVazio(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	protocolos := map[string]*entity.Protocolo{
		"proto-1": {ID: "proto-1", FazendaID: fazendaTeste},
	}
	uc := novoUseCase(t, e, protocolos)

	_, err := uc.AplicarProtocolo(context.Background(), fazendaTeste, "proto-1", dto.AplicarProtocoloRequest{
		AnimalID: animalTeste, Inicio: "2025-03-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recomputação dos campos derivados
// ──────────────────────────────────────────────────────────────────────────────

func TestRecomputarSituacao_ReconstroiAPartirDoLog(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)

	registraIA(t, uc, "2025-03-01")
	_, err := uc.RegistrarDiagnostico(context.Background(), fazendaTeste, dto.DiagnosticoRequest{
		AnimalID: animalTeste, Data: "2025-03-30", Resultado: entity.ResultadoPrenhe,
	})
	require.NoError(t, err)

	// Projeção corrompida de propósito: o recálculo deve consertar.
	e.campos[animalTeste] = map[string]any{}

	out, err := uc.RecomputarSituacao(context.Background(), fazendaTeste, animalTeste)
	require.NoError(t, err)

	require.NotNil(t, out.SituacaoReprodutiva)
	assert.Equal(t, entity.SituacaoPrenhe, *out.SituacaoReprodutiva)
	require.NotNil(t, out.UltimaIA)
	assert.Equal(t, "2025-03-01", *out.UltimaIA)
	require.NotNil(t, out.PrevisaoParto)
	assert.Equal(t, "2025-12-09", *out.PrevisaoParto, "IA + 283 dias")

	campos := e.campos[animalTeste]
	assert.Equal(t, entity.SituacaoPrenhe, campos["situacao_reprodutiva"])
}

func TestRecomputarSituacao_PartoLimpaPrevisao(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)

	registraIA(t, uc, "2025-03-01")
	_, err := uc.RegistrarDiagnostico(context.Background(), fazendaTeste, dto.DiagnosticoRequest{
		AnimalID: animalTeste, Data: "2025-03-30", Resultado: entity.ResultadoPrenhe,
	})
	require.NoError(t, err)
	_, err = uc.RegistrarParto(context.Background(), fazendaTeste, dto.EventoSimplesRequest{
		AnimalID: animalTeste, Data: "2025-12-09",
	})
	require.NoError(t, err)

	out, err := uc.RecomputarSituacao(context.Background(), fazendaTeste, animalTeste)
	require.NoError(t, err)

	require.NotNil(t, out.SituacaoReprodutiva)
	assert.Equal(t, entity.SituacaoPosParto, *out.SituacaoReprodutiva)
	assert.Nil(t, out.PrevisaoParto)
}

func TestRecomputarSituacao_AnimalSemEventos(t *testing.T) {
	e := novoEstado()
	comVaca(e, "")
	uc := novoUseCase(t, e, nil)

	out, err := uc.RecomputarSituacao(context.Background(), fazendaTeste, animalTeste)
	require.NoError(t, err)
	assert.Nil(t, out.SituacaoReprodutiva)
	assert.Nil(t, out.UltimaIA)
	assert.Nil(t, out.PrevisaoParto)
}
