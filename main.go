// Package main itemshare API.
//
// @title           itemshare API
// @version         1.0
// @description     Peer-to-peer item sharing: list items, book them, request missing ones.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"itemshare/app/echoServer"
	bookingctrl "itemshare/app/echoServer/controller/booking"
	itemctrl "itemshare/app/echoServer/controller/item"
	requestctrl "itemshare/app/echoServer/controller/request"
	userctrl "itemshare/app/echoServer/controller/user"
	"itemshare/app/echoServer/validation"
	"itemshare/config"
	bookingrepo "itemshare/repository/booking"
	commentrepo "itemshare/repository/comment"
	itemrepo "itemshare/repository/item"
	requestrepo "itemshare/repository/request"
	userrepo "itemshare/repository/user"
	bookingsvc "itemshare/service/booking"
	itemsvc "itemshare/service/item"
	requestsvc "itemshare/service/request"
	usersvc "itemshare/service/user"
	"itemshare/util/clock"
	"itemshare/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	ir := itemrepo.New(db)
	br := bookingrepo.New(db)
	rr := requestrepo.New(db)
	cr := commentrepo.New(db)

	// services
	clk := clock.System()
	us := usersvc.New(ur)
	bs := bookingsvc.New(br, ir, ur, clk)
	rs := requestsvc.New(rr, ur, ir, clk)
	is := itemsvc.New(ir, ur, rr, cr, bs, clk)

	// controllers
	v := validation.NewValidate()
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	itemC := &itemctrl.Controller{Svc: is, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
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
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
