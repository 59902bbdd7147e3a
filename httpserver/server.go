package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"mflix/errs"
	"mflix/movie"
	"mflix/pkg/config"
	"mflix/pkg/jwt"
	"mflix/pkg/sentry"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	MovieService movie.Service

	// JWTSecret guards the write routes. Empty leaves them open.
	JWTSecret string
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		JWTSecret:    cfg.Auth.JWTSecret,
	}
	if origins := splitOrigins(cfg.AllowOrigins); len(origins) > 0 {
		s.AllowOrigins = origins
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleHTTPError
	s.RegisterGlobalMiddlewares()
	api := s.Router.Group("/api")

	// PUBLIC
	public := api.Group("")
	s.RegisterPublicRoutes(public)

	// PRIVATE
	var auth []echo.MiddlewareFunc
	if s.JWTSecret != "" {
		auth = append(auth, s.editorAuth())
	}
	s.RegisterPrivateRoutes(api, auth...)
	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Router.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			slog.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// handleHTTPError maps application errors to HTTP status codes and writes
// them in the response envelope. Internal errors are reported to Sentry and
// never leak their message.
func (s *Server) handleHTTPError(err error, c echo.Context) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(he.Code)
		}
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			status = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			status = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			status = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			status = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			status = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		}
	}

	// Don't write response if already committed
	if c.Response().Committed {
		return
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed",
			slog.String("uri", c.Request().RequestURI),
			slog.Any("error", err),
		)
		sentry.WithContext(c).Error(err)
	}

	if err := writeError(c, status, message, c.Response().Header().Get(echo.HeaderXRequestID), err); err != nil {
		c.Logger().Error(err)
	}
}

// splitOrigins parses a comma separated origin list.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (s *Server) RegisterPublicRoutes(g *echo.Group) {
	s.RegisterPublicMovieRoutes(g)
}

// RegisterPrivateRoutes attaches m to each write route rather than to the
// group, so unknown paths under the group still answer 404.
func (s *Server) RegisterPrivateRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	s.RegisterPrivateMovieRoutes(g, m...)
}

// editorAuth accepts only editor tokens signed with the server secret.
func (s *Server) editorAuth() echo.MiddlewareFunc {
	tokens := jwt.NewJWTProvider(s.JWTSecret, 0)
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.ParseEditorToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.Errorf(errs.EUNAUTHORIZED, "invalid or missing token")
		},
	})
}
