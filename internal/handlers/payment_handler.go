package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models/dto"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/service"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/subscriber"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name PaymentService --output ./mocks --with-expecter --structname MockPaymentService --filename mock_PaymentService.go

type PaymentService interface {
	Authorize(ctx context.Context, req dto.AuthorizeRequest) (*service.AuthorizeResult, error)
	GetIntent(ctx context.Context, id string) (*service.PaymentDetails, error)
	Capture(ctx context.Context, authorizationID string, amount *int64) (*models.CaptureRecord, error)
	CancelAuthorization(ctx context.Context, authorizationID string) (*models.PaymentIntent, error)
	Settle(ctx context.Context, captureID string) (*models.SettlementRecord, error)
	Reconcile(ctx context.Context, intentID string) (*models.PaymentIntent, error)
}

type PaymentHandler struct {
	Service PaymentService
}

func NewPaymentHandler(s PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: s}
}

// POST /payments/authorize
func (h *PaymentHandler) Authorize(c *gin.Context) {
	var req dto.AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" && req.IdempotencyKey == "" {
		req.IdempotencyKey = key
	}

	result, err := h.Service.Authorize(c.Request.Context(), req)
	if err != nil {
		body := gin.H{"error": err.Error()}
		if result != nil {
			body["payment"] = result
		}
		c.JSON(statusFor(err), body)
		return
	}

	status := http.StatusCreated
	if result.Authorization != nil && result.Authorization.Status == models.AuthorizationRequiresAction {
		status = http.StatusAccepted
	}
	c.JSON(status, result)
}

// GET /payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	details, err := h.Service.GetIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, details)
}

// POST /payments/authorizations/:id/capture
func (h *PaymentHandler) Capture(c *gin.Context) {
	var req dto.CaptureRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	capture, err := h.Service.Capture(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, capture)
}

// POST /payments/authorizations/:id/cancel
func (h *PaymentHandler) Cancel(c *gin.Context) {
	intent, err := h.Service.CancelAuthorization(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, intent)
}

// POST /payments/captures/:id/settle
func (h *PaymentHandler) Settle(c *gin.Context) {
	settlement, err := h.Service.Settle(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, settlement)
}

func statusFor(err error) int {
	var (
		validation      *models.ValidationError
		notFound        *models.NotFoundError
		expired         *models.ExpiredError
		conflict        *models.ConflictError
		riskDecline     *models.RiskDeclineError
		providerDecline *models.ProviderDeclineError
		providerErr     *models.ProviderError
		exhausted       *retry.ExhaustedError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &expired):
		return http.StatusGone
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &riskDecline), errors.As(err, &providerDecline):
		return http.StatusPaymentRequired
	case errors.As(err, &exhausted), errors.As(err, &providerErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *PaymentHandler) HandleEvents(ctx context.Context, topic string, value []byte) error {
	switch topic {
	case models.ReconcileTopic2Subscribe:
		var cmd models.ReconcileCommand
		if err := json.Unmarshal(value, &cmd); err != nil {
			logrus.Errorf("Error parsing reconcile command %s", err.Error())
			return subscriber.DecodeError(topic, err)
		}
		if cmd.IntentID == "" {
			return &models.ValidationError{Field: "intent_id", Reason: "is required"}
		}

		intent, err := h.Service.Reconcile(ctx, cmd.IntentID)
		if err != nil {
			return fmt.Errorf("error reconciling payment intent %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"intent_id": intent.ID,
			"status":    intent.Status,
			"reason":    cmd.Reason,
		}).Info("payment intent reconciled")
	default:
		logrus.Errorf("topic not allowed %s", topic)
		return &models.ValidationError{Field: "topic", Reason: fmt.Sprintf("topic not allowed %s", topic)}
	}

	return nil
}
