package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/application/resource"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

// ResourceHandler CRUD genérico sobre um motor de recurso ligado ao esquema.
// Um único handler serve todas as entidades de cadastro; a diferença entre
// elas mora no descritor Bound, não em código por entidade.
type ResourceHandler struct {
	engine *resource.Engine
	log    *logger.Logger
}

// NewResourceHandler constrói o handler.
func NewResourceHandler(engine *resource.Engine, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{engine: engine, log: log}
}

// List godoc
// @Summary      Listar registros do recurso
// @Tags         recursos
// @Security     Bearer
// @Produce      json
// @Param        page   query  int     false  "Página (>=1)"          default(1)
// @Param        limit  query  int     false  "Tamanho da página"     default(20)
// @Param        q      query  string  false  "Busca textual"
// @Param        sort   query  string  false  "Campo de ordenação"
// @Param        order  query  string  false  "asc ou desc"           default(desc)
// @Success      200    {object}  dto.ListResponse
// @Failure      401    {object}  dto.ErrorResponse
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	out, err := h.engine.List(c.Context(), GetFazendaID(c), resource.ListQuery{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", resource.LimitePadrao),
		Q:     c.Query("q"),
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	})
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obter registro por ID
// @Tags         recursos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do registro"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  dto.ErrorResponse
func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	out, err := h.engine.Get(c.Context(), GetFazendaID(c), c.Params("id"))
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar registro
// @Tags         recursos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]any  true  "Campos do registro"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return corpoInvalido(c)
	}
	out, err := h.engine.Create(c.Context(), GetFazendaID(c), payload)
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Atualizar registro (merge parcial)
// @Tags         recursos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "ID do registro"
// @Param        body  body  map[string]any  true  "Campos a atualizar"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return corpoInvalido(c)
	}
	out, err := h.engine.Update(c.Context(), GetFazendaID(c), c.Params("id"), payload)
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover registro
// @Tags         recursos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do registro"
// @Success      200  {object}  dto.OkResponse
// @Failure      404  {object}  dto.ErrorResponse
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	if err := h.engine.Delete(c.Context(), GetFazendaID(c), c.Params("id")); err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}
