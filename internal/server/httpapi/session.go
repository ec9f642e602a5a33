// Package httpapi binds the validation gate, session issuer and lifecycle
// engine to the REST surface, and enforces the web-security policy
// (security headers, HTTPS redirect, CORS, rate limiting, CSRF).
package httpapi

import (
	"net/http"
	"time"

	"github.com/dspetrov/payportal/internal/server/auth"
	"github.com/gin-gonic/gin"
)

// Cookie names for the two session families. Both may be present in one
// browser profile at the same time.
const (
	clientSessionCookie   = "client_session"
	employeeSessionCookie = "employee_session"
)

const (
	roleUser     = "user"
	roleEmployee = "employee"
)

const claimsContextKey = "sessionClaims"

func sessionCookieName(audience string) string {
	if audience == auth.AudienceEmployee {
		return employeeSessionCookie
	}
	return clientSessionCookie
}

// SessionManager issues and checks the signed session cookies.
type SessionManager struct {
	secret   []byte
	validity time.Duration
	secure   bool
}

func NewSessionManager(secret string, validity time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		secret:   []byte(secret),
		validity: validity,
		secure:   secure,
	}
}

// Issue signs a token for the audience and sets it on the matching cookie
// slot: HttpOnly, SameSite=Strict, Secure in secure mode.
func (m *SessionManager) Issue(c *gin.Context, claims auth.Claims, audience string) error {
	token, err := auth.GenerateToken(claims, audience, m.secret, m.validity)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName(audience), token, int(m.validity.Seconds()), "/", "", m.secure, true)
	return nil
}

// Clear drops both session cookies. Idempotent.
func (m *SessionManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(clientSessionCookie, "", -1, "/", "", m.secure, true)
	c.SetCookie(employeeSessionCookie, "", -1, "/", "", m.secure, true)
}

// RequireRole admits only requests carrying a valid token of the given
// audience whose role claim matches. A missing or invalid credential is
// 401; a valid credential with the wrong role is 403. Tokens from the
// other family never pass: verification is audience-bound even though the
// signing key is shared.
func (m *SessionManager) RequireRole(audience string, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName(audience))
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
			return
		}

		claims, err := auth.ParseToken(token, audience, m.secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// GetClaims exposes the authenticated actor to handlers.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
