package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/application/reproducao"
	"github.com/agrodata/fazenda-api/internal/domain/entity"
	domrep "github.com/agrodata/fazenda-api/internal/domain/reproducao"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

// ReproducaoHandler endpoints do fluxo de reprodução (protegido).
type ReproducaoHandler struct {
	uc  *reproducao.UseCase
	log *logger.Logger
}

// NewReproducaoHandler constrói o handler.
func NewReproducaoHandler(uc *reproducao.UseCase, log *logger.Logger) *ReproducaoHandler {
	return &ReproducaoHandler{uc: uc, log: log}
}

// RegistrarIA godoc
// @Summary      Registrar inseminação artificial
// @Tags         reproducao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IARequest  true  "Dados da IA"
// @Success      200   {object}  dto.EventoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/reproducao/ia [post]
func (h *ReproducaoHandler) RegistrarIA(c *fiber.Ctx) error {
	var in dto.IARequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	ev, err := h.uc.RegistrarIA(c.Context(), GetFazendaID(c), in)
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(eventoParaResposta(ev))
}

// RegistrarDiagnostico godoc
// @Summary      Registrar diagnóstico de gestação (DG30/DG60)
// @Tags         reproducao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DiagnosticoRequest  true  "Dados do diagnóstico"
// @Success      200   {object}  dto.EventoResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/reproducao/diagnostico [post]
func (h *ReproducaoHandler) RegistrarDiagnostico(c *fiber.Ctx) error {
	var in dto.DiagnosticoRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	ev, err := h.uc.RegistrarDiagnostico(c.Context(), GetFazendaID(c), in)
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(eventoParaResposta(ev))
}

// RegistrarParto godoc
// @Summary      Registrar parto
// @Tags         reproducao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EventoSimplesRequest  true  "Dados do parto"
// @Success      200   {object}  dto.EventoResponse
// @Router       /api/reproducao/parto [post]
func (h *ReproducaoHandler) RegistrarParto(c *fiber.Ctx) error {
	return h.eventoSimples(c, h.uc.RegistrarParto)
}

// RegistrarPreParto godoc
// @Summary      Registrar entrada em pré-parto
// @Tags         reproducao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EventoSimplesRequest  true  "Dados do pré-parto"
// @Success      200   {object}  dto.EventoResponse
// @Router       /api/reproducao/pre-parto [post]
func (h *ReproducaoHandler) RegistrarPreParto(c *fiber.Ctx) error {
	return h.eventoSimples(c, h.uc.RegistrarPreParto)
}

// RegistrarSecagem godoc
// @Summary      Registrar secagem
// @Tags         reproducao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EventoSimplesRequest  true  "Dados da secagem"
// @Success      200   {object}  dto.EventoResponse
// @Router       /api/reproducao/secagem [post]
func (h *ReproducaoHandler) RegistrarSecagem(c *fiber.Ctx) error {
	return h.eventoSimples(c, h.uc.RegistrarSecagem)
}

// RegistrarDecisao godoc
// @Summary      Definir ou limpar a etiqueta de decisão do animal
// @Tags         reproducao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DecisaoRequest  true  "Decisão (vazia limpa)"
// @Success      200   {object}  dto.EventoResponse
// @Router       /api/reproducao/decisao [post]
func (h *ReproducaoHandler) RegistrarDecisao(c *fiber.Ctx) error {
	var in dto.DecisaoRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	ev, err := h.uc.RegistrarDecisao(c.Context(), GetFazendaID(c), in)
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(eventoParaResposta(ev))
}

// AplicarProtocolo godoc
// @Summary      Aplicar protocolo hormonal a um animal
// @Tags         reproducao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID do protocolo"
// @Param        body  body  dto.AplicarProtocoloRequest  true  "Animal e data de início"
// @Success      200   {object}  dto.EventosResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/protocolos/{id}/aplicar [post]
func (h *ReproducaoHandler) AplicarProtocolo(c *fiber.Ctx) error {
	var in dto.AplicarProtocoloRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	eventos, err := h.uc.AplicarProtocolo(c.Context(), GetFazendaID(c), c.Params("id"), in)
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(eventosParaResposta(eventos))
}

// ListarEventos godoc
// @Summary      Histórico de eventos de reprodução do animal
// @Tags         reproducao
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do animal"
// @Success      200  {object}  dto.EventosResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reproducao/eventos/animal/{id} [get]
func (h *ReproducaoHandler) ListarEventos(c *fiber.Ctx) error {
	eventos, err := h.uc.ListarEventos(c.Context(), GetFazendaID(c), c.Params("id"))
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(eventosParaResposta(eventos))
}

// RecomputarSituacao godoc
// @Summary      Recomputar campos derivados do animal a partir do log de eventos
// @Tags         reproducao
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do animal"
// @Success      200  {object}  dto.SituacaoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reproducao/recalcular/{id} [post]
func (h *ReproducaoHandler) RecomputarSituacao(c *fiber.Ctx) error {
	out, err := h.uc.RecomputarSituacao(c.Context(), GetFazendaID(c), c.Params("id"))
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *ReproducaoHandler) eventoSimples(c *fiber.Ctx, registra func(ctx context.Context, fazendaID string, in dto.EventoSimplesRequest) (*entity.EventoReproducao, error)) error {
	var in dto.EventoSimplesRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	ev, err := registra(c.Context(), GetFazendaID(c), in)
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(eventoParaResposta(ev))
}

func eventoParaResposta(ev *entity.EventoReproducao) dto.EventoResponse {
	return dto.EventoResponse{
		ID:          ev.ID,
		AnimalID:    ev.AnimalID,
		Data:        domrep.FormatData(ev.Data),
		Tipo:        ev.Tipo,
		Detalhes:    ev.Detalhes,
		Resultado:   ev.Resultado,
		ProtocoloID: ev.ProtocoloID,
		AplicacaoID: ev.AplicacaoID,
		CreatedAt:   ev.CreatedAt,
	}
}

func eventosParaResposta(eventos []*entity.EventoReproducao) dto.EventosResponse {
	items := make([]dto.EventoResponse, 0, len(eventos))
	for _, ev := range eventos {
		items = append(items, eventoParaResposta(ev))
	}
	return dto.EventosResponse{Items: items}
}
