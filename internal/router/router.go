package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"govsite/internal/auth"
	apperrors "govsite/internal/errors"
	"govsite/internal/handler"
	"govsite/internal/metrics"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	News      *handler.NewsHandler
	Services  *handler.ServiceHandler
	Documents *handler.DocumentHandler
	Pages     *handler.PageHandler
	MapData   *handler.MapDataHandler
	Contacts  *handler.ContactHandler
	Auth      *handler.AuthHandler
}

// Options control the optional parts of the route table.
type Options struct {
	// AdminAuth requires an access token on every mutating content route.
	AdminAuth bool
	JWT       *auth.JWTService
	Logger    *zap.Logger
}

// Register wires routes and middleware.
func Register(e *echo.Echo, h Handlers, opts Options) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(metrics.Middleware())
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	requireToken := jwtMiddleware(opts.JWT)

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me, requireToken)

	// Public reads
	api.GET("/services", h.Services.List)
	api.GET("/services/:slug", h.Services.GetBySlug)
	api.GET("/news", h.News.List)
	api.GET("/news/:slug", h.News.GetBySlug)
	api.GET("/documents", h.Documents.List)
	api.GET("/documents/:id", h.Documents.Get)
	api.GET("/map-data", h.MapData.List)
	api.GET("/pages", h.Pages.List)
	api.GET("/pages/:slug", h.Pages.GetBySlug)

	api.POST("/contact", h.Contacts.Submit)

	// Content management
	var admin []echo.MiddlewareFunc
	if opts.AdminAuth {
		admin = append(admin, requireToken)
	}

	api.POST("/news", h.News.Create, admin...)
	api.PUT("/news/:id", h.News.Update, admin...)
	api.DELETE("/news/:id", h.News.Delete, admin...)

	api.POST("/services", h.Services.Create, admin...)
	api.PUT("/services/:id", h.Services.Update, admin...)
	api.DELETE("/services/:id", h.Services.Delete, admin...)

	api.POST("/documents", h.Documents.Create, admin...)
	api.POST("/documents/upload", h.Documents.Upload, admin...)
	api.PUT("/documents/:id", h.Documents.Update, admin...)
	api.DELETE("/documents/:id", h.Documents.Delete, admin...)

	api.POST("/pages", h.Pages.Create, admin...)
	api.PUT("/pages/:id", h.Pages.Update, admin...)
	api.DELETE("/pages/:id", h.Pages.Delete, admin...)

	api.POST("/map-data", h.MapData.Create, admin...)
	api.PUT("/map-data/:id", h.MapData.Update, admin...)
	api.DELETE("/map-data/:id", h.MapData.Delete, admin...)

	api.GET("/admin/contacts", h.Contacts.List, admin...)
	api.GET("/admin/contacts/:id", h.Contacts.Get, admin...)
	api.PATCH("/admin/contacts/:id", h.Contacts.Update, admin...)
	api.DELETE("/admin/contacts/:id", h.Contacts.Delete, admin...)
}

// jwtMiddleware accepts only access tokens issued by svc and stores their
// claims under handler.ClaimsContextKey.
func jwtMiddleware(svc *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return svc.ValidateAccessToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Message: "Authentication required",
				Code:    "UNAUTHORIZED",
			})
		},
	})
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.String("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}
