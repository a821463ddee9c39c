package analytics

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"elibrary/app/echoServer/jwtx"
	analyticssvc "elibrary/service/analytics"
)

type Controller struct {
	Svc analyticssvc.Service
	Log *slog.Logger
}

// GET /v1/analytics/stats  (admin)
func (h *Controller) Stats(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	st, err := h.Svc.Stats(c.Request().Context())
	if err != nil {
		h.Log.Error("analytics stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, st)
}

// GET /v1/analytics/monthly  (admin)
func (h *Controller) Monthly(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	rows, err := h.Svc.MonthlyBorrows(c.Request().Context())
	if err != nil {
		h.Log.Error("analytics monthly", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/analytics/categories  (admin)
func (h *Controller) Categories(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	rows, err := h.Svc.CategoryDistribution(c.Request().Context())
	if err != nil {
		h.Log.Error("analytics categories", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
