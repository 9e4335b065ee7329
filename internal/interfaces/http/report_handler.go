package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Remisiones-api/internal/application/analytics"
	"github.com/jhoicas/Remisiones-api/internal/application/dto"
	"github.com/jhoicas/Remisiones-api/pkg/metrics"
)

// ReportHandler expone los reportes de ventas.
type ReportHandler struct {
	uc      *analytics.DailySalesUseCase
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.DailySalesUseCase, m *metrics.Metrics, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, metrics: m, log: log}
}

// DailySales godoc
// @Summary      Ventas diarias
// @Description  Una entrada por día con ventas entre from y to (ambos inclusive), ordenadas por fecha.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query     string  true  "YYYY-MM-DD"
// @Param        to    query     string  true  "YYYY-MM-DD"
// @Success      200   {array}   dto.DailySalesDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/daily-sales [get]
func (h *ReportHandler) DailySales(c *fiber.Ctx) error {
	in := dto.DailySalesRequest{From: c.Query("from"), To: c.Query("to")}
	days, err := h.uc.GetDailySales(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err, "")
	}
	h.metrics.ObserveReport(h.uc.Mode())
	return c.JSON(days)
}
