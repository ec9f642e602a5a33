package httpapi

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Double-submit CSRF: the token lives in a cookie readable by same-origin
// script, and every mutating request must echo it in a header. A
// cross-site attacker can force the cookie to be sent but cannot read it,
// so it cannot produce the header.
const (
	csrfCookieName = "XSRF-TOKEN"
	csrfHeaderName = "X-XSRF-TOKEN"

	csrfTokenBytes = 32
)

type CSRF struct {
	secure bool
}

func NewCSRF(secure bool) *CSRF {
	return &CSRF{secure: secure}
}

// TokenHandler serves GET /csrf-token: mints a fresh token and sets it on
// the readable anti-forgery cookie.
func (f *CSRF) TokenHandler(c *gin.Context) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
		return
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	c.SetSameSite(http.SameSiteStrictMode)
	// HttpOnly=false: same-origin script must be able to read the token
	c.SetCookie(csrfCookieName, token, 0, "/", "", f.secure, false)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Protect enforces the double-submit check on every mutating method.
func (f *CSRF) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		cookie, err := c.Cookie(csrfCookieName)
		header := c.GetHeader(csrfHeaderName)
		if err != nil || cookie == "" || header == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "invalid_csrf_token"})
			return
		}

		c.Next()
	}
}
