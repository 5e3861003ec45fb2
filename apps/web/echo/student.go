package echoweb

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/gradebook"
	"github.com/trezcool/gradebook/core/student"
)

type studentHandlers struct {
	svc       student.Service
	gradebook gradebook.Service
	validate  *validator.Validate
}

func registerStudentHandlers(e *echo.Echo, svc student.Service, gb gradebook.Service, validate *validator.Validate) {
	h := studentHandlers{svc: svc, gradebook: gb, validate: validate}

	g := e.Group("/students")
	g.GET("", h.list)
	g.GET("/view/:id", h.view)
	g.GET("/create", h.createForm)
	g.POST("/create", h.create)
	g.GET("/update/:id", h.updateForm)
	g.POST("/update/:id", h.update)
	g.GET("/delete/:id", h.confirmDelete)
	g.POST("/delete/:id", h.delete)
}

func studentURL(id int64) string {
	return fmt.Sprintf("/students/view/%d/", id)
}

func (h *studentHandlers) list(ctx echo.Context) error {
	var ord Ordering
	ord.Bind(ctx)

	students, err := h.svc.All(ctx.Request().Context(), ord.Orderings, dbExec(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.Render(http.StatusOK, "students", echo.Map{
		"Title":    "Students",
		"Students": students,
	})
}

func (h *studentHandlers) view(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	sg, err := h.gradebook.StudentGrades(ctx.Request().Context(), id, dbExec(ctx)...)
	if err != nil {
		return errors.Wrap(err, "getting student grades")
	}
	return ctx.Render(http.StatusOK, "student", echo.Map{
		"Title":  sg.Student.FullName(),
		"Grades": sg,
	})
}

func (h *studentHandlers) renderForm(ctx echo.Context, data echo.Map) error {
	return ctx.Render(http.StatusOK, "student_form", data)
}

func (h *studentHandlers) createForm(ctx echo.Context) error {
	return h.renderForm(ctx, echo.Map{
		"Title":  "New student",
		"Action": "/students/create/",
		"IsNew":  true,
		"Form":   student.Form{},
	})
}

func (h *studentHandlers) create(ctx echo.Context) error {
	var form student.Form
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to student.Form")
	}
	if err := form.Validate(h.validate); err != nil {
		return err
	}

	var s student.Student
	form.Apply(&s)
	s, err := h.svc.Save(ctx.Request().Context(), s, dbExec(ctx)...)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}

	if submitted(ctx, "create_and_add") {
		return h.renderForm(ctx, echo.Map{
			"Title":   "New student",
			"Action":  "/students/create/",
			"IsNew":   true,
			"Form":    student.Form{},
			"Created": s,
		})
	}
	return ctx.Redirect(http.StatusFound, studentURL(s.ID))
}

func (h *studentHandlers) get(ctx echo.Context) (student.Student, error) {
	id, err := pathID(ctx)
	if err != nil {
		return student.Student{}, err
	}
	s, err := h.svc.Get(ctx.Request().Context(), id, dbExec(ctx)...)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return s, nil
}

func (h *studentHandlers) updateForm(ctx echo.Context) error {
	s, err := h.get(ctx)
	if err != nil {
		return err
	}
	return h.renderForm(ctx, echo.Map{
		"Title":  "Edit " + s.FullName(),
		"Action": fmt.Sprintf("/students/update/%d/", s.ID),
		"Form":   student.NewForm(s),
	})
}

func (h *studentHandlers) update(ctx echo.Context) error {
	s, err := h.get(ctx)
	if err != nil {
		return err
	}

	var form student.Form
	if err = ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to student.Form")
	}
	if err = form.Validate(h.validate); err != nil {
		return err
	}

	form.Apply(&s)
	if _, err = h.svc.Save(ctx.Request().Context(), s, dbExec(ctx)...); err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.Redirect(http.StatusFound, studentURL(s.ID))
}

func (h *studentHandlers) confirmDelete(ctx echo.Context) error {
	s, err := h.get(ctx)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "student_delete", echo.Map{
		"Title":   "Delete " + s.FullName(),
		"Student": s,
	})
}

func (h *studentHandlers) delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = h.svc.Delete(ctx.Request().Context(), id, dbExec(ctx)...); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.Redirect(http.StatusFound, "/students/")
}
