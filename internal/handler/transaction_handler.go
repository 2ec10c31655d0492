package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

// maxWebhookBody bounds the webhook payload read into memory.
const maxWebhookBody = 1 << 20

// PaystackSignatureHeader carries the hex HMAC-SHA512 of the raw body.
const PaystackSignatureHeader = "x-paystack-signature"

// TransactionHandler handles payment initiation and the gateway webhook.
type TransactionHandler struct {
	transactionService *service.TransactionService
	log                zerolog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService *service.TransactionService, log zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		log:                log.With().Str("component", "transaction_handler").Logger(),
	}
}

// Initiate godoc
// POST /api/v1/transactions/initiate
// Records a pending transaction and returns the checkout reference and URL.
func (h *TransactionHandler) Initiate(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req model.InitiatePaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	checkout, err := h.transactionService.Initiate(c.Request.Context(), p, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, checkout)
}

// PaystackWebhook godoc
// POST /api/v1/transactions/webhook/paystack
// Public. Unknown references and non-charge events are acknowledged with 200.
func (h *TransactionHandler) PaystackWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	outcome, err := h.transactionService.HandleWebhook(c.Request.Context(), body, c.GetHeader(PaystackSignatureHeader))
	if err != nil {
		fail(c, err)
		return
	}

	h.log.Debug().Str("outcome", string(outcome)).Msg("webhook handled")
	response.Success(c, http.StatusOK, gin.H{"status": outcome})
}

// ListTransactions godoc
// GET /api/v1/transactions
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	txs, err := h.transactionService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transactions": txs})
}
