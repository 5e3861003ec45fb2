package echoweb

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/gradebook/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind reads ?ordering=field,-other; unknown fields are rejected by the services.
func (ord *Ordering) Bind(ctx echo.Context) {
	if val := ctx.QueryParam(orderingParam); val != "" {
		ord.Orderings = core.ParseOrdering(val)
	}
}

// pathID parses the :id path param; ids that cannot exist are not found.
func pathID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errPageNotFound
	}
	return id, nil
}

// submitted reports whether the posted form carries a field named name, eg. a submit button.
func submitted(ctx echo.Context, name string) bool {
	params, err := ctx.FormParams()
	if err != nil {
		return false
	}
	_, ok := params[name]
	return ok
}
