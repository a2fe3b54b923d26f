package web

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/reserveaqui/webgateway/internal/config"
	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/services"
	"github.com/reserveaqui/webgateway/internal/session"
	"github.com/reserveaqui/webgateway/internal/upstream"
	"github.com/reserveaqui/webgateway/internal/web/handler"
	"github.com/reserveaqui/webgateway/internal/web/middleware"

	_ "github.com/reserveaqui/webgateway/docs"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("reserveaqui"))
	e.Use(middleware.SessionCookie(cfg.SessionSecret, cfg.SessionTTL))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	store := session.NewRedisStore(rdb, cfg.SessionTTL)
	api := upstream.New(cfg.UpstreamBaseURL, session.NewTokenSource(store), upstream.WithLogger(log))

	sessions := session.NewManager(store, services.NewAuthService(api), log)

	authHandler := handler.NewAuthHandler(sessions)
	restaurantHandler := handler.NewRestaurantHandler(services.NewRestaurantService(api))
	tableHandler := handler.NewTableHandler(services.NewTableService(api))
	reservationHandler := handler.NewReservationHandler(services.NewReservationService(api))
	notificationHandler := handler.NewNotificationHandler(services.NewNotificationService(api))
	userHandler := handler.NewUserHandler(services.NewUserService(api))
	dashboardHandler := handler.NewDashboardHandler(services.NewReservationService(api))

	// --- Guards ---
	authRequired := middleware.Guard(sessions)
	staff := middleware.Guard(sessions, domain.RoleStaff, domain.RoleOwner, domain.RoleSystemAdmin)
	owner := middleware.Guard(sessions, domain.RoleOwner, domain.RoleSystemAdmin)
	admin := middleware.Guard(sessions, domain.RoleSystemAdmin)

	// --- Session routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session)
	e.DELETE("/session/error", authHandler.ClearError)
	e.POST("/password/recover", authHandler.RecoverPassword)
	e.POST("/password/reset", authHandler.ResetPassword)
	e.POST("/password/change", authHandler.ChangePassword, authRequired)

	// --- Public browsing ---
	e.GET("/restaurants", restaurantHandler.List)
	e.GET("/restaurants/:id", restaurantHandler.Get)
	e.POST("/availability", tableHandler.CheckAvailability)

	// --- Customer routes ---
	e.GET("/reservations", reservationHandler.Mine, authRequired)
	e.POST("/reservations", reservationHandler.Create, authRequired)
	e.GET("/reservations/:id", reservationHandler.Get, authRequired)
	e.PATCH("/reservations/:id", reservationHandler.Update, authRequired)
	e.POST("/reservations/:id/cancel", reservationHandler.Cancel, authRequired)

	e.GET("/notifications", notificationHandler.List, authRequired)
	e.GET("/notifications/unread-count", notificationHandler.UnreadCount, authRequired)
	e.POST("/notifications/read-all", notificationHandler.MarkAllRead, authRequired)
	e.GET("/notifications/:id", notificationHandler.Get, authRequired)
	e.POST("/notifications/:id/read", notificationHandler.MarkRead, authRequired)

	// --- Staff routes ---
	g := e.Group("/staff", staff)
	g.GET("/reservations", reservationHandler.List)
	g.POST("/reservations/:id/confirm", reservationHandler.Confirm)
	g.POST("/reservations/:id/complete", reservationHandler.Complete)
	g.GET("/tables", tableHandler.List)
	g.GET("/tables/:id", tableHandler.Get)
	g.PATCH("/tables/:id", tableHandler.Update)
	g.GET("/dashboard/today", dashboardHandler.Today)

	// --- Owner routes ---
	o := e.Group("/owner", owner)
	o.GET("/restaurants", restaurantHandler.Mine)
	o.POST("/tables", tableHandler.Create)
	o.DELETE("/tables/:id", tableHandler.Delete)
	o.GET("/reports/occupancy", dashboardHandler.Occupancy)

	// --- Admin routes ---
	a := e.Group("/admin", admin)
	a.POST("/restaurants", restaurantHandler.Create)
	a.PATCH("/restaurants/:id", restaurantHandler.Update)
	a.DELETE("/restaurants/:id", restaurantHandler.Delete)
	a.GET("/users", userHandler.List)
	a.POST("/users", userHandler.Create)
	a.GET("/users/:id", userHandler.Get)
	a.PATCH("/users/:id", userHandler.Update)
	a.DELETE("/users/:id", userHandler.Delete)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the session store up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
