package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Remisiones-api/internal/application/dto"
	"github.com/jhoicas/Remisiones-api/internal/domain"
)

var errInvalidQuery = fmt.Errorf("%w: parámetros de consulta inválidos", domain.ErrInvalidInput)

// errorStatus traduce un error de dominio a código HTTP y código de error de la API.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingParameter):
		return fiber.StatusBadRequest, "MISSING_PARAMETER"
	case errors.Is(err, domain.ErrInvalidCreationState):
		return fiber.StatusBadRequest, "INVALID_CREATION_STATE"
	case errors.Is(err, domain.ErrEmptySalesSet):
		return fiber.StatusBadRequest, "EMPTY_SALES"
	case errors.Is(err, domain.ErrCreditsExceedSales):
		return fiber.StatusBadRequest, "CREDITS_EXCEED_SALES"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusBadRequest, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde con dto.ErrorResponse. Los rechazos de negocio llevan el mensaje del dominio;
// los fallos internos se registran y devuelven un mensaje genérico.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error, notFoundMsg string) error {
	status, code := errorStatus(err)
	msg := err.Error()
	switch status {
	case fiber.StatusNotFound:
		if notFoundMsg != "" {
			msg = notFoundMsg
		}
	case fiber.StatusConflict:
		msg = "ya existe un registro con ese folio"
	case fiber.StatusInternalServerError:
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		msg = "error interno, intente más tarde"
	default:
		log.Warn().Str("code", code).Str("path", c.Path()).Msg(msg)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
