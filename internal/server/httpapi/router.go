package httpapi

import (
	"net/http"

	"github.com/dspetrov/payportal/internal/logging"
	"github.com/dspetrov/payportal/internal/server/auth"
	"github.com/dspetrov/payportal/internal/server/config"
	"github.com/gin-gonic/gin"
)

// NewRouter wires routes and the ordered middleware chain. The order is
// deliberate and a contract, not a registration accident:
//
//  1. recovery          — panics become 500s, nothing leaks
//  2. request logger    — every request is accounted for, even rejected ones
//  3. security headers  — set on every response, including errors
//  4. https redirect    — before anything trusts the request
//  5. CORS              — preflights answered before auth/CSRF can 403 them
//  6. CSRF              — mutating requests prove same-origin script access
//  7. rate limit        — auth group only, before credential checking
//  8. session auth      — per route group, before handlers
func NewRouter(cfg *config.Config, logger logging.Logger, authHandler *AuthHandler, paymentHandler *PaymentHandler, sessions *SessionManager, csrf *CSRF, rateLimiter *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(SecurityHeaders(cfg.CORSOrigin, cfg.SecureMode))
	r.Use(HTTPSRedirect(cfg.SecureMode))
	r.Use(CORS(cfg.CORSOrigin))
	r.Use(csrf.Protect())

	r.GET("/csrf-token", csrf.TokenHandler)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	authGroup := r.Group("/auth")
	authGroup.Use(rateLimiter.Handler())
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/employee-login", authHandler.EmployeeLogin)
		authGroup.POST("/logout", authHandler.Logout)
	}

	client := r.Group("/payments", sessions.RequireRole(auth.AudienceClient, roleUser))
	{
		client.GET("", paymentHandler.List)
		client.POST("", paymentHandler.Create)
	}

	employee := r.Group("/payments", sessions.RequireRole(auth.AudienceEmployee, roleEmployee))
	{
		employee.GET("/pending", paymentHandler.ListPending)
		employee.POST("/submit", paymentHandler.Submit)
		employee.POST("/:id/verify", paymentHandler.Verify)
		employee.POST("/:id/reject", paymentHandler.Reject)
	}

	return r
}
