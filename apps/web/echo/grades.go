package echoweb

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/gradebook"
)

type gradeHandlers struct {
	svc    gradebook.Service
	logger core.Logger
}

func registerGradeHandlers(e *echo.Echo, svc gradebook.Service, logger core.Logger) {
	h := gradeHandlers{svc: svc, logger: logger}

	e.GET("/assignment/update_grades/:id", h.form)
	e.POST("/assignment/update_grades/:id", h.update)
}

func (h *gradeHandlers) assignmentGrades(ctx echo.Context) (gradebook.AssignmentGrades, error) {
	id, err := pathID(ctx)
	if err != nil {
		return gradebook.AssignmentGrades{}, err
	}
	ag, err := h.svc.AssignmentGrades(ctx.Request().Context(), id, dbExec(ctx)...)
	if err != nil {
		return gradebook.AssignmentGrades{}, errors.Wrap(err, "getting assignment grades")
	}
	return ag, nil
}

func (h *gradeHandlers) form(ctx echo.Context) error {
	ag, err := h.assignmentGrades(ctx)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "update_grades", echo.Map{
		"Title":  "Grades of " + ag.Assignment.Name,
		"Grades": ag,
	})
}

// update reconciles the posted grades against the roster loaded now, not the one the form was rendered with.
func (h *gradeHandlers) update(ctx echo.Context) error {
	ag, err := h.assignmentGrades(ctx)
	if err != nil {
		return err
	}
	params, err := ctx.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}

	entries := gradebook.ParseGradeForm(ag.Students(), params)
	summary, err := h.svc.UpdateGrades(ctx.Request().Context(), ag, entries, dbExec(ctx)...)
	if err != nil {
		return errors.Wrapf(err, "updating grades of assignment %d", ag.Assignment.ID)
	}
	h.logger.Info(fmt.Sprintf(
		"grades of assignment %d: %d created, %d updated, %d skipped",
		ag.Assignment.ID, summary.Created, summary.Updated, summary.Skipped,
	))
	return ctx.Redirect(http.StatusFound, assignmentURL(ag.Assignment.ID))
}
