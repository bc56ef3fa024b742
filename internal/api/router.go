package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/kekeqingke/Project-Dashboard/docs"
	"github.com/kekeqingke/Project-Dashboard/internal/api/handler"
	"github.com/kekeqingke/Project-Dashboard/internal/api/middleware"
	"github.com/kekeqingke/Project-Dashboard/internal/apiclient"
	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
	"github.com/kekeqingke/Project-Dashboard/internal/core/ports"
)

// Deps are the collaborators of the web console.
type Deps struct {
	Session ports.SessionService
	Client  *apiclient.Client
	Tokens  ports.TokenStore
	Log     zerolog.Logger

	// Registry receives the console's HTTP metrics and backs /metrics.
	// Nil means the default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	promMiddleware, err := echoprometheus.MiddlewareConfig{
		Namespace:  "dashboard",
		Subsystem:  "console",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("register console metrics: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(promMiddleware)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Session)
	backend := handler.NewBackendHandler(deps.Client)
	requireSession := middleware.RequireSession(deps.Session)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	customerStaff := middleware.RBAC(domain.RoleAdmin, domain.RoleCustomerAmbassador)

	// --- Session routes ---
	e.GET("/", authHandler.Home)
	e.GET(handler.LoginPath, authHandler.LoginPage)
	e.POST(handler.LoginPath, authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/me", authHandler.Me, requireSession)

	// --- Backend routes (session required) ---
	api := e.Group("/api", requireSession)

	api.GET("/rooms", backend.ListRooms)
	api.POST("/rooms", backend.CreateRoom, adminOnly)
	api.GET("/rooms/:id", backend.GetRoom)
	api.DELETE("/rooms/:id", backend.DeleteRoom, adminOnly)
	api.GET("/rooms/:id/export-pdf", backend.ExportRoomPDF)
	api.PUT("/rooms/:id/:field", backend.UpdateRoomStatus, customerStaff)

	api.GET("/quality-issues", backend.ListQualityIssues)
	api.POST("/quality-issues", backend.CreateQualityIssue)
	api.PUT("/quality-issues/:id/accept", backend.AcceptQualityIssue)
	api.PUT("/quality-issues/:id", backend.UpdateQualityIssue)

	api.GET("/communications", backend.ListCommunications)
	api.POST("/communications", backend.CreateCommunication, customerStaff)
	api.PUT("/communications/:id", backend.SetCommunicationImplemented, customerStaff)

	api.GET("/users", backend.ListUsers, adminOnly)
	api.POST("/users", backend.CreateUser, adminOnly)
	api.PUT("/users/:id/reset-password", backend.ResetUserPassword, adminOnly)
	api.DELETE("/users/:id", backend.DeleteUser, adminOnly)
	api.GET("/room-assignments", backend.ListRoomAssignments)
	api.POST("/room-assignments", backend.AssignRoom, adminOnly)
	api.DELETE("/room-assignments/:id", backend.DeleteRoomAssignment, adminOnly)
	api.GET("/admin/summary", backend.AdminSummary, adminOnly)
	api.DELETE("/admin/rooms/clear-all-content", backend.ClearAllRoomContent, adminOnly)
	api.DELETE("/admin/rooms/:id/clear-content", backend.ClearRoomContent, adminOnly)

	api.GET("/customers/room/:room_id", backend.GetRoomCustomer, customerStaff)
	api.POST("/customers", backend.CreateCustomer, customerStaff)
	api.PUT("/customers/:id", backend.UpdateCustomer, customerStaff)
	api.DELETE("/customers/:id", backend.DeleteCustomer, customerStaff)

	api.POST("/upload-image", backend.UploadImage)

	// --- Health probes and tooling (no session required) ---
	checks := map[string]handler.CheckFunc{"backend": deps.Client.Ping}
	if pinger, ok := deps.Tokens.(ports.Pinger); ok {
		checks["token_store"] = pinger.Ping
	}
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			entry := log.Info()
			if v.Status >= 500 {
				entry = log.Error().Err(v.Error)
			}
			entry.
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
