// Package main e-library API.
//
// @title           E-Library API
// @version         1.0
// @description     library service (catalog, loans, fines, analytics).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"elibrary/app/echoServer"
	analyticsctrl "elibrary/app/echoServer/controller/analytics"
	authctrl "elibrary/app/echoServer/controller/auth"
	bookctrl "elibrary/app/echoServer/controller/book"
	loanctrl "elibrary/app/echoServer/controller/loan"
	userctrl "elibrary/app/echoServer/controller/user"
	"elibrary/app/echoServer/validation"
	"elibrary/config"
	adminrepo "elibrary/repository/admin"
	bookrepo "elibrary/repository/book"
	loanrepo "elibrary/repository/loan"
	userrepo "elibrary/repository/user"
	analyticssvc "elibrary/service/analytics"
	authsvc "elibrary/service/auth"
	catalogsvc "elibrary/service/catalog"
	loansvc "elibrary/service/loan"
	notifysvc "elibrary/service/notify"
	"elibrary/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB (single-file sqlite, seeded on first run)
	db, err := database.New(cfg.DatabasePath, cfg.AdminPassword)
	if err != nil {
		log.Error("db open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	ar := adminrepo.New(db)
	br := bookrepo.New(db)
	lr := loanrepo.New(db)

	// services
	as := authsvc.New(ur, ar, cfg.JWTSecret)
	cs := catalogsvc.New(br)
	ls := loansvc.New(db, lr)
	ans := analyticssvc.New(lr, br)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: cs, V: v, Log: log}
	loanC := &loanctrl.Controller{Svc: ls, V: v, Log: log}
	analyticsC := &analyticsctrl.Controller{Svc: ans, Log: log}
	userC := &userctrl.Controller{Svc: as, Log: log}

	// optional overdue reminder worker
	if cfg.BotToken != "" && cfg.BotChatID != 0 {
		n, err := notifysvc.New(cfg.BotToken, cfg.BotChatID, ls, log)
		if err != nil {
			log.Error("notifier init failed", "err", err)
			os.Exit(1)
		}
		go n.Run(ctx, 6*time.Hour)
		log.Info("overdue notifier started", "chat_id", cfg.BotChatID)
	}

	// echo
	e := echo.New()
	e.JSONSerializer = echoServer.JSONSerializer{}
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Book:      bookC,
		Loan:      loanC,
		Analytics: analyticsC,
		User:      userC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "db", cfg.DatabasePath, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
