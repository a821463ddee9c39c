package loan

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"elibrary/app/echoServer/jwtx"
	ls "elibrary/service/loan"
)

type Controller struct {
	Svc ls.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/loans
func (h *Controller) Borrow(c echo.Context) error {
	var req BorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	username := jwtx.UsernameFromContext(c)

	out, err := h.Svc.Borrow(c.Request().Context(), username, req.BookID)
	if err != nil {
		switch ls.Code(err) {
		case ls.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case ls.ErrBookNotAvailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book already borrowed"})
		default:
			h.Log.Error("loan borrow", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "borrowed",
		"loan":     out,
		"due_date": out.DueDate,
	})
}

// POST /v1/loans/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	username := jwtx.UsernameFromContext(c)

	out, err := h.Svc.Return(c.Request().Context(), username, jwtx.IsAdmin(c), id)
	if err != nil {
		switch ls.Code(err) {
		case ls.ErrLoanNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "transaction not found"})
		case ls.ErrAlreadyReturned:
			return c.JSON(http.StatusConflict, echo.Map{"message": "already returned"})
		case ls.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		default:
			h.Log.Error("loan return", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "returned",
		"loan":    out,
		"fine":    out.Fine,
	})
}

// GET /v1/loans/my
func (h *Controller) MyHistory(c echo.Context) error {
	username := jwtx.UsernameFromContext(c)
	rows, err := h.Svc.History(c.Request().Context(), username)
	if err != nil {
		h.Log.Error("loan history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/loans/active  (admin)
func (h *Controller) Active(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	rows, err := h.Svc.Active(c.Request().Context())
	if err != nil {
		h.Log.Error("loan active", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/loans/overdue  (admin)
func (h *Controller) Overdue(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	rows, err := h.Svc.Overdue(c.Request().Context())
	if err != nil {
		h.Log.Error("loan overdue", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
