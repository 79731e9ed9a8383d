// Package params parses the gateway-level request parameters: the sharer
// identity header and the paging/state query defaults the HTTP contract
// promises (from=0, size=5, state=ALL).
package params

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"itemshare/util/page"
)

const (
	HeaderSharerUserID = "X-Sharer-User-Id"

	DefaultFrom  = 0
	DefaultSize  = 5
	DefaultState = "ALL"
)

// UserID reads the acting user from the sharer header.
func UserID(c echo.Context) (int64, error) {
	raw := c.Request().Header.Get(HeaderSharerUserID)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", HeaderSharerUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s header", HeaderSharerUserID)
	}
	return id, nil
}

// PageFromQuery applies the gateway paging defaults and validates bounds.
func PageFromQuery(c echo.Context) (page.Page, error) {
	from, err := queryInt(c, "from", DefaultFrom)
	if err != nil {
		return page.Page{}, err
	}
	size, err := queryInt(c, "size", DefaultSize)
	if err != nil {
		return page.Page{}, err
	}
	return page.New(from, size)
}

// StateFromQuery returns the raw state filter, defaulted to ALL. Parsing is
// the core's business so unknown values surface as InvalidState there.
func StateFromQuery(c echo.Context) string {
	if v := c.QueryParam("state"); v != "" {
		return v
	}
	return DefaultState
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return v, nil
}
