package httpapi

import (
	"errors"
	"net/http"

	"github.com/dspetrov/payportal/internal/logging"
	"github.com/dspetrov/payportal/internal/server/auth"
	"github.com/dspetrov/payportal/internal/server/employees"
	"github.com/dspetrov/payportal/internal/server/users"
	"github.com/dspetrov/payportal/internal/server/validation"
	"github.com/dspetrov/payportal/internal/shared"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users     *users.Service
	employees *employees.Service
	sessions  *SessionManager
	logger    logging.Logger
}

func NewAuthHandler(us *users.Service, es *employees.Service, sessions *SessionManager, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		users:     us,
		employees: es,
		sessions:  sessions,
		logger:    logger.With("module", "auth_handler"),
	}
}

// Register handles POST /auth/register. A fresh customer session is issued
// right away so the portal does not force a second login.
func (h *AuthHandler) Register(c *gin.Context) {
	var in validation.RegistrationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortError(c, http.StatusBadRequest, "invalid_json")
		return
	}

	in, violations := validation.Registration(in)
	if violations != nil {
		abortValidation(c, violations)
		return
	}

	user, err := h.users.Register(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, shared.ErrorAlreadyExists) {
			abortError(c, http.StatusConflict, "Email already registered")
			return
		}
		h.serverError(c, err)
		return
	}

	if err := h.sessions.Issue(c, auth.Claims{UserID: user.ID, Role: roleUser, Email: user.Email}, auth.AudienceClient); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{"id": user.ID, "email": user.Email, "role": roleUser}})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var in validation.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortError(c, http.StatusBadRequest, "invalid_json")
		return
	}

	in, violations := validation.Login(in)
	if violations != nil {
		abortValidation(c, violations)
		return
	}

	user, err := h.users.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, shared.ErrorUnauthorized) {
			abortError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.serverError(c, err)
		return
	}

	if err := h.sessions.Issue(c, auth.Claims{UserID: user.ID, Role: roleUser, Email: user.Email}, auth.AudienceClient); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{"id": user.ID, "email": user.Email, "role": roleUser}})
}

// EmployeeLogin handles POST /auth/employee-login.
func (h *AuthHandler) EmployeeLogin(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Username == "" || in.Password == "" {
		abortError(c, http.StatusBadRequest, "Username and password required")
		return
	}

	employee, err := h.employees.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, shared.ErrorUnauthorized) {
			abortError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.serverError(c, err)
		return
	}

	claims := auth.Claims{
		UserID:   employee.ID,
		Role:     roleEmployee,
		Username: employee.Username,
		FullName: employee.FullName,
	}
	if err := h.sessions.Issue(c, claims, auth.AudienceEmployee); err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{
		"id":        employee.ID,
		"username":  employee.Username,
		"full_name": employee.FullName,
		"role":      roleEmployee,
	}})
}

// Logout handles POST /auth/logout: clears both session cookie slots.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) serverError(c *gin.Context, err error) {
	h.logger.Error(c.Request.Context(), "unhandled error", "error", err)
	abortError(c, http.StatusInternalServerError, "server_error")
}
