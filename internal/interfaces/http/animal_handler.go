package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/application/usecase"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

// AnimalHandler endpoints do animal que não passam pelo CRUD genérico:
// lotação e séries temporais do documento de histórico.
type AnimalHandler struct {
	lotacao   *usecase.LotacaoUseCase
	historico *usecase.HistoricoUseCase
	log       *logger.Logger
}

// NewAnimalHandler constrói o handler.
func NewAnimalHandler(lotacao *usecase.LotacaoUseCase, historico *usecase.HistoricoUseCase, log *logger.Logger) *AnimalHandler {
	return &AnimalHandler{lotacao: lotacao, historico: historico, log: log}
}

// AtribuirLote godoc
// @Summary      Atribuir ou remover o lote do animal
// @Tags         animais
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID do animal"
// @Param        body  body  dto.AtribuirLoteRequest true  "lote_id vazio remove"
// @Success      200   {object}  dto.LotacaoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/animais/{id}/lote [put]
func (h *AnimalHandler) AtribuirLote(c *fiber.Ctx) error {
	var in dto.AtribuirLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	out, err := h.lotacao.Atribuir(c.Context(), GetFazendaID(c), c.Params("id"), in.LoteID)
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(out)
}

// LerLote godoc
// @Summary      Consultar a lotação materializada do animal
// @Tags         animais
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do animal"
// @Success      200  {object}  dto.LotacaoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/animais/{id}/lote [get]
func (h *AnimalHandler) LerLote(c *fiber.Ctx) error {
	out, err := h.lotacao.Ler(c.Context(), GetFazendaID(c), c.Params("id"))
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(out)
}

// RegistrarLeite godoc
// @Summary      Anexar medições à série de leite do animal
// @Tags         animais
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do animal"
// @Param        body  body  map[string]any  true  "Entrada única ou array de entradas com date"
// @Success      200   {object}  dto.SerieResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/animais/{id}/leite [post]
func (h *AnimalHandler) RegistrarLeite(c *fiber.Ctx) error {
	return h.registrarSerie(c, usecase.SerieLeite)
}

// RegistrarCCS godoc
// @Summary      Anexar medições à série de CCS do animal
// @Tags         animais
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do animal"
// @Param        body  body  map[string]any  true  "Entrada única ou array de entradas com date"
// @Success      200   {object}  dto.SerieResponse
// @Router       /api/animais/{id}/ccs [post]
func (h *AnimalHandler) RegistrarCCS(c *fiber.Ctx) error {
	return h.registrarSerie(c, usecase.SerieCCS)
}

// RegistrarCMT godoc
// @Summary      Anexar medições à série de CMT do animal
// @Tags         animais
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do animal"
// @Param        body  body  map[string]any  true  "Entrada única ou array de entradas com date"
// @Success      200   {object}  dto.SerieResponse
// @Router       /api/animais/{id}/cmt [post]
func (h *AnimalHandler) RegistrarCMT(c *fiber.Ctx) error {
	return h.registrarSerie(c, usecase.SerieCMT)
}

func (h *AnimalHandler) registrarSerie(c *fiber.Ctx, serie string) error {
	entradas, err := entradasDoCorpo(c.Body())
	if err != nil {
		return corpoInvalido(c)
	}
	out, err := h.historico.RegistrarEntradas(c.Context(), GetFazendaID(c), c.Params("id"), serie, entradas)
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(out)
}

// entradasDoCorpo aceita tanto um objeto único quanto um array de objetos.
func entradasDoCorpo(body []byte) ([]map[string]any, error) {
	var varias []map[string]any
	if err := json.Unmarshal(body, &varias); err == nil {
		return varias, nil
	}
	var uma map[string]any
	if err := json.Unmarshal(body, &uma); err != nil {
		return nil, err
	}
	return []map[string]any{uma}, nil
}
