package echoweb

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/gradebook"
)

type assignmentHandlers struct {
	svc       assignment.Service
	gradebook gradebook.Service
	validate  *validator.Validate
}

func registerAssignmentHandlers(e *echo.Echo, svc assignment.Service, gb gradebook.Service, validate *validator.Validate) {
	h := assignmentHandlers{svc: svc, gradebook: gb, validate: validate}

	g := e.Group("/assignments")
	g.GET("", h.list)
	g.GET("/view/:id", h.view)
	g.GET("/create", h.createForm)
	g.POST("/create", h.create)
	g.GET("/update/:id", h.updateForm)
	g.POST("/update/:id", h.update)
	g.GET("/delete/:id", h.confirmDelete)
	g.POST("/delete/:id", h.delete)
}

func assignmentURL(id int64) string {
	return fmt.Sprintf("/assignments/view/%d/", id)
}

func (h *assignmentHandlers) list(ctx echo.Context) error {
	var ord Ordering
	ord.Bind(ctx)

	assignments, err := h.svc.All(ctx.Request().Context(), ord.Orderings, dbExec(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.Render(http.StatusOK, "assignments", echo.Map{
		"Title":       "Assignments",
		"Assignments": assignments,
	})
}

// view shows the assignment with the grade of every student.
func (h *assignmentHandlers) view(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	ag, err := h.gradebook.AssignmentGrades(ctx.Request().Context(), id, dbExec(ctx)...)
	if err != nil {
		return errors.Wrap(err, "getting assignment grades")
	}
	return ctx.Render(http.StatusOK, "assignment", echo.Map{
		"Title":  ag.Assignment.Name,
		"Grades": ag,
	})
}

func (h *assignmentHandlers) renderForm(ctx echo.Context, data echo.Map) error {
	return ctx.Render(http.StatusOK, "assignment_form", data)
}

func (h *assignmentHandlers) createForm(ctx echo.Context) error {
	return h.renderForm(ctx, echo.Map{
		"Title":  "New assignment",
		"Action": "/assignments/create/",
		"IsNew":  true,
		"Form":   assignment.Form{},
	})
}

func (h *assignmentHandlers) create(ctx echo.Context) error {
	var form assignment.Form
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to assignment.Form")
	}
	if err := form.Validate(h.validate); err != nil {
		return err
	}

	var a assignment.Assignment
	form.Apply(&a)
	a, err := h.svc.Save(ctx.Request().Context(), a, dbExec(ctx)...)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}

	if submitted(ctx, "create_and_add") {
		return h.renderForm(ctx, echo.Map{
			"Title":   "New assignment",
			"Action":  "/assignments/create/",
			"IsNew":   true,
			"Form":    assignment.Form{},
			"Created": a,
		})
	}
	return ctx.Redirect(http.StatusFound, assignmentURL(a.ID))
}

func (h *assignmentHandlers) get(ctx echo.Context) (assignment.Assignment, error) {
	id, err := pathID(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}
	a, err := h.svc.Get(ctx.Request().Context(), id, dbExec(ctx)...)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return a, nil
}

func (h *assignmentHandlers) updateForm(ctx echo.Context) error {
	a, err := h.get(ctx)
	if err != nil {
		return err
	}
	return h.renderForm(ctx, echo.Map{
		"Title":  "Edit " + a.Name,
		"Action": fmt.Sprintf("/assignments/update/%d/", a.ID),
		"Form":   assignment.NewForm(a),
	})
}

func (h *assignmentHandlers) update(ctx echo.Context) error {
	a, err := h.get(ctx)
	if err != nil {
		return err
	}

	var form assignment.Form
	if err = ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to assignment.Form")
	}
	if err = form.Validate(h.validate); err != nil {
		return err
	}

	form.Apply(&a)
	if _, err = h.svc.Save(ctx.Request().Context(), a, dbExec(ctx)...); err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.Redirect(http.StatusFound, assignmentURL(a.ID))
}

func (h *assignmentHandlers) confirmDelete(ctx echo.Context) error {
	a, err := h.get(ctx)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "assignment_delete", echo.Map{
		"Title":      "Delete " + a.Name,
		"Assignment": a,
	})
}

func (h *assignmentHandlers) delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = h.svc.Delete(ctx.Request().Context(), id, dbExec(ctx)...); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.Redirect(http.StatusFound, "/assignments/")
}
