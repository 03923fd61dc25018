// Package router wires the HTTP routes to their handlers and
// middleware. Public endpoints (register, login, password reset)
// live directly under /api; everything else sits behind the JWT
// middleware. Rate limiting applies at two granularities: a strict
// bucket on /api/login and a wide bucket on the whole /api group.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/employee-dashboard/internal/config"
	"github.com/iliyamo/employee-dashboard/internal/handler"
	"github.com/iliyamo/employee-dashboard/internal/middleware"
)

// Handlers groups every handler the router needs.
type Handlers struct {
	Auth      *handler.AuthHandler
	Reset     *handler.PasswordResetHandler
	Profile   *handler.ProfileHandler
	Messages  *handler.MessageHandler
	Timesheet *handler.TimesheetHandler
	Expenses  *handler.ExpenseHandler
	Payslips  *handler.PayslipHandler
}

// Register sets up all application routes on the provided Echo
// instance. rdb may be nil; rate limiting and caching then degrade to
// pass-through.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.Use(middleware.NewTokenBucket(config.LoadAPIRateLimit(), rdb))

	// Unauthenticated endpoints.
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login, middleware.NewTokenBucket(config.LoadLoginRateLimit(), rdb))
	api.POST("/auth/forgot-password", h.Reset.ForgotPassword)
	api.POST("/auth/reset-password", h.Reset.ResetPassword)

	// Everything below requires a valid bearer token.
	auth := api.Group("")
	auth.Use(middleware.JWTAuth(cfg.JWTSecret))

	auth.GET("/me", h.Auth.Me)

	auth.GET("/profile", h.Profile.Get)
	auth.PUT("/profile", h.Profile.Update)

	cacheCfg := config.LoadCacheConfig()
	auth.GET("/messages", h.Messages.List, middleware.NewRedisCache(cacheCfg, rdb))
	auth.POST("/messages", h.Messages.Create)
	auth.PUT("/messages/:id", h.Messages.Update)
	auth.DELETE("/messages/:id", h.Messages.Delete)

	auth.GET("/timesheet", h.Timesheet.List)
	auth.POST("/timesheet", h.Timesheet.Create)
	auth.DELETE("/timesheet/:id", h.Timesheet.Delete)

	auth.GET("/expenses", h.Expenses.List)
	auth.POST("/expenses", h.Expenses.Create)
	auth.DELETE("/expenses/:id", h.Expenses.Delete)

	auth.GET("/payslips", h.Payslips.List)
	auth.POST("/payslips/generate", h.Payslips.Generate)
	auth.PUT("/payslips/:id/recalculate", h.Payslips.Recalculate)
}
