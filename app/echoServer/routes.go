package echoServer

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookingctrl "itemshare/app/echoServer/controller/booking"
	itemctrl "itemshare/app/echoServer/controller/item"
	requestctrl "itemshare/app/echoServer/controller/request"
	userctrl "itemshare/app/echoServer/controller/user"
)

type C struct {
	User    *userctrl.Controller
	Item    *itemctrl.Controller
	Booking *bookingctrl.Controller
	Request *requestctrl.Controller
}

func Register(e *echo.Echo, c C) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Users
	e.POST("/users", c.User.Create)
	e.GET("/users", c.User.List)
	e.GET("/users/:id", c.User.Get)
	e.PATCH("/users/:id", c.User.Update)
	e.DELETE("/users/:id", c.User.Delete)

	// Items
	e.POST("/items", c.Item.Create)
	e.GET("/items", c.Item.ListMine)
	e.GET("/items/search", c.Item.Search)
	e.GET("/items/:id", c.Item.Get)
	e.PATCH("/items/:id", c.Item.Update)
	e.DELETE("/items/:id", c.Item.Delete)
	e.POST("/items/:id/comment", c.Item.CreateComment)

	// Bookings
	e.POST("/bookings", c.Booking.Create)
	e.GET("/bookings", c.Booking.ListMine)
	e.GET("/bookings/owner", c.Booking.ListForOwner)
	e.GET("/bookings/:id", c.Booking.Get)
	e.PATCH("/bookings/:id", c.Booking.Approve)

	// Requests
	e.POST("/requests", c.Request.Create)
	e.GET("/requests", c.Request.ListMine)
	e.GET("/requests/all", c.Request.ListAlien)
	e.GET("/requests/:id", c.Request.Get)
}
