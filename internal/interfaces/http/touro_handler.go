package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/application/usecase"
	"github.com/agrodata/fazenda-api/internal/domain/entity"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

// TouroHandler operações de inventário de sêmen além do CRUD genérico.
type TouroHandler struct {
	uc  *usecase.TouroUseCase
	log *logger.Logger
}

// NewTouroHandler constrói o handler.
func NewTouroHandler(uc *usecase.TouroUseCase, log *logger.Logger) *TouroHandler {
	return &TouroHandler{uc: uc, log: log}
}

// Comprar godoc
// @Summary      Comprar doses de sêmen (crédito aditivo no inventário)
// @Tags         touros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID do touro"
// @Param        body  body  dto.CompraDosesRequest true  "Doses e preço opcional"
// @Success      200   {object}  dto.TouroResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/touros/{id}/compra [post]
func (h *TouroHandler) Comprar(c *fiber.Ctx) error {
	var in dto.CompraDosesRequest
	if err := c.BodyParser(&in); err != nil {
		return corpoInvalido(c)
	}
	touro, err := h.uc.Comprar(c.Context(), GetFazendaID(c), c.Params("id"), in)
	if err != nil {
		return responderErro(c, h.log, err)
	}
	return c.JSON(touroParaResposta(touro))
}

func touroParaResposta(t *entity.Touro) dto.TouroResponse {
	return dto.TouroResponse{
		ID:              t.ID,
		Nome:            t.Nome,
		Raca:            t.Raca,
		DosesAdquiridas: t.DosesAdquiridas,
		DosesRestantes:  t.DosesRestantes,
		PrecoPorDose:    t.PrecoPorDose,
	}
}
