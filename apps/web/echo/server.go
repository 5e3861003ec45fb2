package echoweb

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/gradebook"
	"github.com/trezcool/gradebook/core/student"
)

type (
	ServerDeps struct {
		Conf   *core.Config
		Logger core.Logger
		// Pool hands out the per-request DB connections; nil when running on the in-memory store.
		Pool          core.ConnPool
		StudentSvc    student.Service
		AssignmentSvc assignment.Service
		GradebookSvc  gradebook.Service
		Validate      *validator.Validate
		Translator    ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(deps ServerDeps) (*Server, error) {
	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, errors.Wrap(err, "setting up renderer")
	}

	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)

	s.app.HideBanner = true
	s.app.Debug = deps.Conf.Debug
	s.app.Renderer = renderer
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(deps.Logger, deps.Translator, s.signalShutdown)
	s.setup()
	return s, nil
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },

		// also stamp the request so loggers can report the id
		RequestIDHandler: func(ctx echo.Context, id string) {
			ctx.Request().Header.Set(echo.HeaderXRequestID, id)
		},
	}))
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if s.deps.Pool != nil {
		s.app.Use(dbConnMiddleware(s.deps.Pool, s.deps.Logger))
	}

	s.app.GET("/", home)

	registerGradebookHandlers(s.app, s.deps.GradebookSvc)
	registerStudentHandlers(s.app, s.deps.StudentSvc, s.deps.GradebookSvc, s.deps.Validate)
	registerAssignmentHandlers(s.app, s.deps.AssignmentSvc, s.deps.GradebookSvc, s.deps.Validate)
	registerGradeHandlers(s.app, s.deps.GradebookSvc, s.deps.Logger)
}

// Start listens on the configured address; a listener failure is sent to Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // shutdown already pending
	}
}

func home(ctx echo.Context) error {
	return ctx.Redirect(http.StatusFound, "/gradebook/")
}
