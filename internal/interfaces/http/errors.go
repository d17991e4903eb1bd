package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/agrodata/fazenda-api/internal/application/dto"
	"github.com/agrodata/fazenda-api/internal/application/resource"
	"github.com/agrodata/fazenda-api/internal/domain"
	domrep "github.com/agrodata/fazenda-api/internal/domain/reproducao"
	"github.com/agrodata/fazenda-api/pkg/logger"
)

// responderErro traduz erros de domínio e de aplicação para HTTP. Erros de
// regra de negócio saem como 422 com código próprio; 500 nunca vaza detalhe
// interno para o cliente, só para o log.
func responderErro(c *fiber.Ctx, log *logger.Logger, err error) error {
	var valErr *resource.ValidationError
	if errors.As(err, &valErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "VALIDATION",
			Message: "payload inválido",
			Issues:  valErr.Issues,
		})
	}

	var dataErr *domrep.DataInvalidaError
	if errors.As(err, &dataErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: "DATA_INVALIDA", Message: dataErr.Error(),
		})
	}
	var janelaErr *domrep.JanelaInvalidaError
	if errors.As(err, &janelaErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: "JANELA_INVALIDA", Message: janelaErr.Error(),
		})
	}
	var semDoses *domrep.SemDosesError
	if errors.As(err, &semDoses) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: "SEM_DOSES", Message: semDoses.Error(),
		})
	}
	var semIA *domrep.SemIAError
	if errors.As(err, &semIA) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: "SEM_IA", Message: semIA.Error(),
		})
	}

	switch {
	case errors.Is(err, domain.ErrNadaParaAtualizar):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "NADA_PARA_ATUALIZAR", Message: "nenhum campo editável no payload",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_INPUT", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "UNAUTHORIZED", Message: "credenciais inválidas",
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "FORBIDDEN", Message: "acesso negado",
		})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "NOT_FOUND", Message: "registro não encontrado",
		})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: "EMAIL_EXISTS", Message: "email já cadastrado",
		})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: "DUPLICATE", Message: "registro duplicado",
		})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("erro interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: "INTERNAL", Message: "erro interno",
	})
}

func corpoInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: "INVALID_BODY", Message: "corpo inválido",
	})
}
