package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/devfolio/portfolio-api/docs"
	"github.com/devfolio/portfolio-api/internal/api/apierror"
	"github.com/devfolio/portfolio-api/internal/api/handler"
	"github.com/devfolio/portfolio-api/internal/api/middleware"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Auth     ports.AuthService
	Projects ports.ProjectService
	Verifier ports.TokenVerifier
	// Denylist is optional; when nil revoked tokens are not checked.
	Denylist ports.TokenDenylist
	// Health lists the dependencies the readiness probe pings, by name.
	Health         map[string]handler.Pinger
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = apierror.NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.ContextLogger(deps.Logger))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(corsConfig(deps.AllowedOrigins)))

	authOpts := []middleware.AuthOption{}
	if deps.Denylist != nil {
		authOpts = append(authOpts, middleware.WithDenylist(deps.Denylist))
	}
	requireAuth := middleware.Auth(deps.Verifier, authOpts...)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout, requireAuth)

	// --- Project routes: reads are public, writes need a bearer token ---
	projectHandler := handler.NewProjectHandler(deps.Projects)
	projects := e.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.POST("", projectHandler.Create, requireAuth)
	projects.PUT("/:id", projectHandler.Update, requireAuth)
	projects.DELETE("/:id", projectHandler.Delete, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Health)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e
}

func corsConfig(origins []string) echomiddleware.CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	return echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderAuthorization},
		// Credentials cannot be combined with a wildcard origin.
		AllowCredentials: !wildcard,
	}
}
