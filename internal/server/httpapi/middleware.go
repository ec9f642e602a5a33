package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dspetrov/payportal/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger logs incoming HTTP requests with latency and request ID
// metadata. Request bodies are never logged; they carry credentials.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	log := logger.With("module", "http")

	return func(c *gin.Context) {
		start := time.Now()
		requestID := strings.TrimSpace(c.Request.Header.Get("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		args := []any{
			"request_id", requestID,
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latency", latency,
			"client_ip", c.ClientIP(),
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			log.Error(ctx, "http_request", args...)
		case status >= http.StatusBadRequest:
			log.Warn(ctx, "http_request", args...)
		default:
			log.Info(ctx, "http_request", args...)
		}
	}
}

// SecurityHeaders applies the baseline header policy: restrictive CSP,
// clickjacking denial, no referrer leakage, MIME sniffing off, and HSTS in
// secure mode.
func SecurityHeaders(connectOrigin string, secure bool) gin.HandlerFunc {
	csp := strings.Join([]string{
		"default-src 'self'",
		"script-src 'self'",
		"connect-src 'self' " + connectOrigin,
		"img-src 'self' data:",
		"style-src 'self' 'unsafe-inline'",
		"frame-ancestors 'none'",
	}, "; ")

	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Content-Security-Policy", csp)
		header.Set("X-Frame-Options", "DENY")
		header.Set("Referrer-Policy", "no-referrer")
		header.Set("X-Content-Type-Options", "nosniff")
		if secure {
			header.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

// HTTPSRedirect sends plain-HTTP requests to the https scheme when the
// service runs in secure mode behind a TLS-terminating proxy.
func HTTPSRedirect(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enabled {
			proto := c.GetHeader("X-Forwarded-Proto")
			if proto != "" && proto != "https" {
				target := "https://" + c.Request.Host + c.Request.RequestURI
				c.Redirect(http.StatusMovedPermanently, target)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// CORS admits exactly one configured SPA origin, with credentials. The API
// has no other callers.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || !strings.EqualFold(origin, allowedOrigin) {
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
			return
		}

		header := c.Writer.Header()
		header.Set("Vary", "Origin")
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type, "+csrfHeaderName)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
