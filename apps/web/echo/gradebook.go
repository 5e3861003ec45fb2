package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/gradebook"
)

type gradebookHandlers struct {
	svc gradebook.Service
}

func registerGradebookHandlers(e *echo.Echo, svc gradebook.Service) {
	h := gradebookHandlers{svc: svc}

	e.GET("/gradebook", h.gradebook)
	e.GET("/public_gradebook", h.publicGradebook)
}

func (h *gradebookHandlers) gradebook(ctx echo.Context) error {
	gb, err := h.svc.Gradebook(ctx.Request().Context(), dbExec(ctx)...)
	if err != nil {
		return errors.Wrap(err, "building gradebook")
	}
	return ctx.Render(http.StatusOK, "gradebook", echo.Map{
		"Title":     "Gradebook",
		"Gradebook": gb,
	})
}

func (h *gradebookHandlers) publicGradebook(ctx echo.Context) error {
	pg, err := h.svc.PublicGradebook(ctx.Request().Context(), dbExec(ctx)...)
	if err != nil {
		return errors.Wrap(err, "building public gradebook")
	}
	return ctx.Render(http.StatusOK, "public_gradebook", echo.Map{
		"Title":     "Public gradebook",
		"Gradebook": pg,
	})
}
