package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dspetrov/payportal/internal/logging"
	"github.com/dspetrov/payportal/internal/server/payments"
	"github.com/dspetrov/payportal/internal/server/validation"
	"github.com/dspetrov/payportal/internal/shared"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments *payments.Service
	logger   logging.Logger
}

func NewPaymentHandler(ps *payments.Service, logger logging.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: ps,
		logger:   logger.With("module", "payment_handler"),
	}
}

// List handles GET /payments: the caller's own rows, newest first.
func (h *PaymentHandler) List(c *gin.Context) {
	claims, ok := GetClaims(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.payments.ListForOwner(c.Request.Context(), claims.UserID)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

// Create handles POST /payments: validates the payment-creation schema and
// stores a new pending row for the caller.
func (h *PaymentHandler) Create(c *gin.Context) {
	claims, ok := GetClaims(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in validation.PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortError(c, http.StatusBadRequest, "invalid_json")
		return
	}

	in, violations := validation.PaymentCreation(in)
	if violations != nil {
		abortValidation(c, violations)
		return
	}

	payment, err := h.payments.Create(c.Request.Context(), claims.UserID, in)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "payment_id": payment.ID, "created_at": payment.CreatedAt})
}

// ListPending handles GET /payments/pending: every actionable row across
// all owners.
func (h *PaymentHandler) ListPending(c *gin.Context) {
	items, err := h.payments.ListPending(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

// Verify handles POST /payments/:id/verify. A guard miss is reported as
// 404: the caller cannot distinguish "no such row" from "already decided".
func (h *PaymentHandler) Verify(c *gin.Context) {
	claims, ok := GetClaims(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	err := h.payments.Verify(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			abortError(c, http.StatusNotFound, "Payment not found or already verified")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reject handles POST /payments/:id/reject.
func (h *PaymentHandler) Reject(c *gin.Context) {
	claims, ok := GetClaims(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Reason) == "" {
		abortError(c, http.StatusBadRequest, "Reason is required")
		return
	}

	err := h.payments.Reject(c.Request.Context(), c.Param("id"), claims.UserID, in.Reason)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			abortError(c, http.StatusNotFound, "Payment not found or already rejected/submitted")
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Submit handles POST /payments/submit: one batch transition over every
// verified-and-not-submitted row.
func (h *PaymentHandler) Submit(c *gin.Context) {
	count, err := h.payments.SubmitAll(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": count})
}

func (h *PaymentHandler) serverError(c *gin.Context, err error) {
	h.logger.Error(c.Request.Context(), "unhandled error", "error", err)
	abortError(c, http.StatusInternalServerError, "server_error")
}
