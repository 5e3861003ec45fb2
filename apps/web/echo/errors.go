package echoweb

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

var errPageNotFound = echo.NewHTTPError(http.StatusNotFound, "page not found")

type errorPage struct {
	Title   string
	Message string
	Fields  []core.FieldError
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler rendering our errors as HTML pages.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.ShutdownError is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		page := errorPage{}

		cause := errors.Cause(err)
		switch cause {
		case student.ErrNotFound, assignment.ErrNotFound, grade.ErrNotFound:
			cause = errPageNotFound
		}

		if flds, ok := core.FieldErrors(cause, translator); ok {
			code = http.StatusBadRequest
			page.Message = "Please correct the errors below."
			page.Fields = flds
		} else if herr, ok := cause.(*echo.HTTPError); ok {
			if herr.Internal != nil {
				if inner, ok := herr.Internal.(*echo.HTTPError); ok {
					herr = inner
				}
			}
			code = herr.Code
			if msg, ok := herr.Message.(string); ok {
				page.Message = msg
			} else {
				page.Message = http.StatusText(code)
			}
		} else { // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(code)
			page.Message = msg
			logger.Error(msg, errors.Wrap(err, msg), ctx.Request())

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		page.Title = http.StatusText(code)
		if ctx.Echo().Debug {
			page.Message = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.Render(code, "error", page)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
