package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"itemshare/app/echoServer/params"
	"itemshare/app/echoServer/respond"
	"itemshare/model"
	itemsvc "itemshare/service/item"
)

type Controller struct {
	Svc itemsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	it, err := h.Svc.Create(c.Request().Context(), model.NewItem{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	}, uid)
	if err != nil {
		return respond.Error(c, h.Log, "item create", err)
	}
	return c.JSON(http.StatusCreated, toItemResp(itemsvc.Details{Item: *it}))
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := h.itemID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	it, err := h.Svc.Update(c.Request().Context(), model.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	}, id, uid)
	if err != nil {
		return respond.Error(c, h.Log, "item update", err)
	}
	return c.JSON(http.StatusOK, toItemResp(itemsvc.Details{Item: *it}))
}

// GET /items/:id
func (h *Controller) Get(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := h.itemID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	d, err := h.Svc.GetByID(c.Request().Context(), id, uid)
	if err != nil {
		return respond.Error(c, h.Log, "item get", err)
	}
	return c.JSON(http.StatusOK, toItemResp(*d))
}

// GET /items?from=&size=
func (h *Controller) ListMine(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	p, err := params.PageFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	ds, err := h.Svc.ListByOwner(c.Request().Context(), uid, p)
	if err != nil {
		return respond.Error(c, h.Log, "item list", err)
	}
	return c.JSON(http.StatusOK, toItemResps(ds))
}

// GET /items/search?text=&from=&size=
func (h *Controller) Search(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	p, err := params.PageFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	items, err := h.Svc.Search(c.Request().Context(), uid, c.QueryParam("text"), p)
	if err != nil {
		return respond.Error(c, h.Log, "item search", err)
	}
	return c.JSON(http.StatusOK, toPlainItemResps(items))
}

// DELETE /items/:id
func (h *Controller) Delete(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := h.itemID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id, uid); err != nil {
		return respond.Error(c, h.Log, "item delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /items/:id/comment
func (h *Controller) CreateComment(c echo.Context) error {
	uid, err := params.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := h.itemID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	cm, err := h.Svc.CreateComment(c.Request().Context(), id, uid, req.Text)
	if err != nil {
		return respond.Error(c, h.Log, "comment create", err)
	}
	return c.JSON(http.StatusCreated, toCommentResp(*cm))
}

func (h *Controller) itemID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
