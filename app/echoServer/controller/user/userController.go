// app/echoServer/controller/user/userController.go
package user

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"elibrary/app/echoServer/jwtx"
	authsvc "elibrary/service/auth"
)

type Controller struct {
	Svc authsvc.Service
	Log *slog.Logger
}

// GET /v1/users  (admin)
func (h *Controller) List(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	rows, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		h.Log.Error("user list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
