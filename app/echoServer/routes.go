package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	analyticsctrl "elibrary/app/echoServer/controller/analytics"
	authctrl "elibrary/app/echoServer/controller/auth"
	bookctrl "elibrary/app/echoServer/controller/book"
	loanctrl "elibrary/app/echoServer/controller/loan"
	userctrl "elibrary/app/echoServer/controller/user"
	"elibrary/app/echoServer/jwtx"
)

type C struct {
	Auth      *authctrl.Controller
	Book      *bookctrl.Controller
	Loan      *loanctrl.Controller
	Analytics *analyticsctrl.Controller
	User      *userctrl.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)
	pub.POST("/admin/login", c.Auth.AdminLogin)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// identity extraction: username + role land on the request context
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			username, role, err := jwtx.Identity(ctx)
			if err != nil {
				rid := ctx.Response().Header().Get(echo.HeaderXRequestID)
				ctx.Logger().Warnf("[AUTH] %v req_id=%s ip=%s", err, rid, ctx.RealIP())
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("username", username)
			ctx.Set("role", role)
			return next(ctx)
		}
	})

	// Books
	auth.GET("/books", c.Book.List)
	auth.GET("/books/:id", c.Book.Detail)
	// Admin endpoint
	auth.POST("/books", c.Book.Create)

	// Loans
	auth.POST("/loans", c.Loan.Borrow)
	auth.POST("/loans/:id/return", c.Loan.Return)
	auth.GET("/loans/my", c.Loan.MyHistory)
	// Admin endpoints
	auth.GET("/loans/active", c.Loan.Active)
	auth.GET("/loans/overdue", c.Loan.Overdue)

	// Admin: users + analytics
	auth.GET("/users", c.User.List)
	auth.GET("/analytics/stats", c.Analytics.Stats)
	auth.GET("/analytics/monthly", c.Analytics.Monthly)
	auth.GET("/analytics/categories", c.Analytics.Categories)
}
