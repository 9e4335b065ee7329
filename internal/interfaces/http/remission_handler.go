package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Remisiones-api/internal/application/dto"
	"github.com/jhoicas/Remisiones-api/internal/application/remission"
	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/pkg/metrics"
)

const remissionNotFound = "remisión no encontrada"

// RemissionHandler maneja las peticiones HTTP de remisiones, sus ventas, créditos y documentos.
type RemissionHandler struct {
	uc      *remission.UseCase
	docs    *remission.DocumentUseCase
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewRemissionHandler construye el handler. docs y m pueden ser nil.
func NewRemissionHandler(uc *remission.UseCase, docs *remission.DocumentUseCase, m *metrics.Metrics, log zerolog.Logger) *RemissionHandler {
	return &RemissionHandler{uc: uc, docs: docs, metrics: m, log: log}
}

// Create godoc
// @Summary      Crear remisión
// @Description  status es opcional (default "open"); crear directamente como "closed" se rechaza.
// @Tags         remissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateRemissionRequest  true  "order_id, folio, status opcional"
// @Success      201   {object}  dto.RemissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/remissions [post]
func (h *RemissionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRemissionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar remisiones
// @Tags         remissions
// @Security     Bearer
// @Produce      json
// @Param        order_id  query  string  false  "filtrar por orden"
// @Param        status    query  string  false  "open | closed"
// @Param        limit     query  int     false  "máximo 100 (default 20)"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200  {array}   dto.RemissionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/remissions [get]
func (h *RemissionHandler) List(c *fiber.Ctx) error {
	var in dto.RemissionListRequest
	if err := c.QueryParser(&in); err != nil {
		return writeError(c, h.log, errInvalidQuery, "")
	}
	list, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err, "")
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener remisión
// @Tags         remissions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la remisión"
// @Success      200  {object}  dto.RemissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remissions/{id} [get]
func (h *RemissionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la remisión
// @Description  Pasa por las mismas reglas que el cierre. Una remisión cerrada no admite cambios.
// @Tags         remissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                            true  "ID de la remisión"
// @Param        body  body      dto.UpdateRemissionStatusRequest  true  "status"
// @Success      200   {object}  dto.RemissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/remissions/{id} [patch]
func (h *RemissionHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateRemissionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar remisión (con sus ventas y créditos)
// @Tags         remissions
// @Security     Bearer
// @Param        id   path  string  true  "ID de la remisión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remissions/{id} [delete]
func (h *RemissionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Close godoc
// @Summary      Cerrar remisión
// @Description  Requiere al menos una venta y que los créditos no excedan el total vendido.
// @Tags         remissions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la remisión"
// @Success      200  {object}  dto.CloseRemissionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remissions/{id}/close [post]
func (h *RemissionHandler) Close(c *fiber.Ctx) error {
	err := h.uc.Close(c.UserContext(), c.Params("id"))
	h.metrics.ObserveClose(closeOutcome(err))
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	return c.JSON(dto.CloseRemissionResponse{Status: remission.ClosedMessage})
}

func closeOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.CloseOK
	case errors.Is(err, domain.ErrEmptySalesSet):
		return metrics.CloseEmptySales
	case errors.Is(err, domain.ErrCreditsExceedSales):
		return metrics.CloseCreditsExceed
	case errors.Is(err, domain.ErrInvalidTransition):
		return metrics.CloseInvalidState
	case errors.Is(err, domain.ErrNotFound):
		return metrics.CloseNotFound
	default:
		return metrics.CloseInternalFailed
	}
}

// Summary godoc
// @Summary      Totales de la remisión
// @Tags         remissions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la remisión"
// @Success      200  {object}  dto.RemissionSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remissions/{id}/summary [get]
func (h *RemissionHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	return c.JSON(out)
}

// AddSale godoc
// @Summary      Registrar venta
// @Tags         remissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID de la remisión"
// @Param        body  body      dto.CreateSaleRequest  true  "subtotal y tax (>= 0, 2 decimales)"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/remissions/{id}/sales [post]
func (h *RemissionHandler) AddSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddSale(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSales godoc
// @Summary      Ventas de la remisión
// @Tags         remissions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la remisión"
// @Success      200  {array}   dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remissions/{id}/sales [get]
func (h *RemissionHandler) ListSales(c *fiber.Ctx) error {
	out, err := h.uc.ListSales(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	return c.JSON(out)
}

// AddCredit godoc
// @Summary      Registrar crédito
// @Tags         remissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID de la remisión"
// @Param        body  body      dto.CreateCreditRequest  true  "amount (> 0) y reason"
// @Success      201   {object}  dto.CreditResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/remissions/{id}/credits [post]
func (h *RemissionHandler) AddCredit(c *fiber.Ctx) error {
	var in dto.CreateCreditRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddCredit(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCredits godoc
// @Summary      Créditos de la remisión
// @Tags         remissions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la remisión"
// @Success      200  {array}   dto.CreditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remissions/{id}/credits [get]
func (h *RemissionHandler) ListCredits(c *fiber.Ctx) error {
	out, err := h.uc.ListCredits(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF de la remisión
// @Tags         remissions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la remisión"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remissions/{id}/pdf [get]
func (h *RemissionHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.docs.DownloadPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// ExportXML godoc
// @Summary      Exportar remisión como XML
// @Description  El header X-Document-Digest lleva el SHA-256 de la forma canónica (C14N).
// @Tags         remissions
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la remisión"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remissions/{id}/xml [get]
func (h *RemissionHandler) ExportXML(c *fiber.Ctx) error {
	body, digest, filename, err := h.docs.ExportXML(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, remissionNotFound)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set("X-Document-Digest", "sha256="+digest)
	return c.Send(body)
}
