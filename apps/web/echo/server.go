package echoweb

import (
	"context"
	"crypto/sha256"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/dig"

	"github.com/trezcool/spms/core"
	"github.com/trezcool/spms/storage/recordstore"
)

type (
	Options struct {
		DisableReqLogs bool
		DisableCSRF    bool
	}

	// Deps are the server dependencies, resolved by dig or filled in by hand in tests.
	Deps struct {
		dig.In

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Store      *recordstore.Client
		Options    *Options `optional:"true"`
	}

	Server struct {
		conf       *core.Config
		log        core.Logger
		validate   *validator.Validate
		translator ut.Translator
		store      *recordstore.Client
		opts       Options
		app        *echo.Echo
		sessions   sessionCodec
		errors     chan error
		shutdown   chan os.Signal
	}
)

func NewServer(deps Deps) (*Server, error) {
	s := &Server{
		conf:       deps.Conf,
		log:        deps.Logger,
		validate:   deps.Validate,
		translator: deps.Translator,
		store:      deps.Store,
		app:        echo.New(),
		sessions:   newSessionCodec(deps.Conf.SecretKey, deps.Conf.Server.SecureCookies),
		errors:     make(chan error, 1),
		shutdown:   make(chan os.Signal, 1),
	}
	if deps.Options != nil {
		s.opts = *deps.Options
	}
	if !deps.Conf.TestMode {
		signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	}

	views, err := parseTemplates(deps.Conf.Debug || deps.Conf.TestMode)
	if err != nil {
		return nil, err
	}
	s.app.Renderer = views
	s.setup()
	return s, nil
}

func (s *Server) setup() {
	debug := s.conf.Debug

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if !s.opts.DisableCSRF {
		key := sha256.Sum256([]byte(s.conf.SecretKey))
		if !s.conf.Server.SecureCookies {
			s.app.Use(plaintextMiddleware)
		}
		s.app.Use(echo.WrapMiddleware(csrf.Protect(
			key[:],
			csrf.Path("/"),
			csrf.Secure(s.conf.Server.SecureCookies),
			csrf.FieldName(csrfFieldName),
			csrf.CookieName("spms_csrf"),
		)))
	}
	s.app.Use(s.sessionMiddleware, flashMiddleware)

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.log, s.signalShutdown)
	s.app.Debug = debug

	s.app.GET("/healthz", healthz)

	s.app.GET("/login", s.loginPage)
	s.app.POST("/login", s.login)
	s.app.POST("/logout", s.logout)

	g := s.app.Group("", requireAuth)
	g.GET("/", s.dashboard)
	g.GET("/placement", s.placement)
	s.registerScreens(g)
}

func (s *Server) Start() {
	if err := s.app.Start(s.conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

// Errors reports a listener failure.
func (s *Server) Errors() <-chan error { return s.errors }

// ShutdownSignal yields SIGINT/SIGTERM, or a shutdown requested by a handler.
func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

// plaintextMiddleware tells the CSRF guard the app is served over plain HTTP (local/dev).
func plaintextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ctx.SetRequest(csrf.PlaintextHTTPRequest(ctx.Request()))
		return next(ctx)
	}
}

func healthz(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
