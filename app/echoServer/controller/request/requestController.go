package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"itemshare/app/echoServer/params"
	"itemshare/app/echoServer/respond"
	requestsvc "itemshare/service/request"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	r, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return respond.Error(c, h.Log, "request create", err)
	}
	return c.JSON(http.StatusCreated, RequestResp{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
		Items:       []ItemResp{},
	})
}

// GET /requests
func (h *Controller) ListMine(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	ds, err := h.Svc.ListForRequester(c.Request().Context(), uid)
	if err != nil {
		return respond.Error(c, h.Log, "request list", err)
	}
	return c.JSON(http.StatusOK, toRequestResps(ds))
}

// GET /requests/all?from=&size=
func (h *Controller) ListAlien(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	p, err := params.PageFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	ds, err := h.Svc.ListAlien(c.Request().Context(), uid, p)
	if err != nil {
		return respond.Error(c, h.Log, "request list alien", err)
	}
	return c.JSON(http.StatusOK, toRequestResps(ds))
}

// GET /requests/:id
func (h *Controller) Get(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	d, err := h.Svc.GetByID(c.Request().Context(), id, uid)
	if err != nil {
		return respond.Error(c, h.Log, "request get", err)
	}
	return c.JSON(http.StatusOK, toRequestResp(*d))
}
