package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"itemshare/app/echoServer/params"
	"itemshare/app/echoServer/respond"
	"itemshare/model"
	bookingsvc "itemshare/service/booking"
	"itemshare/util/page"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	// Duration is re-validated in the core; rejecting it here spares a
	// round trip, matching the gateway contract.
	if !req.Start.Before(req.End) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start must be strictly before end"})
	}

	b, err := h.Svc.Create(c.Request().Context(), req.Start, req.End, req.ItemID, uid)
	if err != nil {
		return respond.Error(c, h.Log, "booking create", err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(*b))
}

// PATCH /bookings/:id?approved=true|false
func (h *Controller) Approve(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "approved parameter is required"})
	}

	b, err := h.Svc.Approve(c.Request().Context(), id, approved, uid)
	if err != nil {
		return respond.Error(c, h.Log, "booking approve", err)
	}
	return c.JSON(http.StatusOK, toBookingResp(*b))
}

// GET /bookings/:id
func (h *Controller) Get(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	b, err := h.Svc.GetByID(c.Request().Context(), id, uid)
	if err != nil {
		return respond.Error(c, h.Log, "booking get", err)
	}
	return c.JSON(http.StatusOK, toBookingResp(*b))
}

// GET /bookings?state=&from=&size=
func (h *Controller) ListMine(c echo.Context) error {
	uid, state, p, err := h.listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	st, err := model.ParseState(state)
	if err != nil {
		return respond.Error(c, h.Log, "booking list", err)
	}

	bs, err := h.Svc.ListForBooker(c.Request().Context(), uid, st, p)
	if err != nil {
		return respond.Error(c, h.Log, "booking list", err)
	}
	return c.JSON(http.StatusOK, toBookingResps(bs))
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) ListForOwner(c echo.Context) error {
	uid, state, p, err := h.listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	st, err := model.ParseState(state)
	if err != nil {
		return respond.Error(c, h.Log, "booking list owner", err)
	}

	bs, err := h.Svc.ListForOwner(c.Request().Context(), uid, st, p)
	if err != nil {
		return respond.Error(c, h.Log, "booking list owner", err)
	}
	return c.JSON(http.StatusOK, toBookingResps(bs))
}

func (h *Controller) listParams(c echo.Context) (int64, string, page.Page, error) {
	uid, err := params.UserID(c)
	if err != nil {
		return 0, "", page.Page{}, err
	}
	p, err := params.PageFromQuery(c)
	if err != nil {
		return 0, "", page.Page{}, err
	}
	return uid, params.StateFromQuery(c), p, nil
}
