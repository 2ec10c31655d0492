package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
)

// ReferencePrefix starts every payment reference.
const ReferencePrefix = "EDU-"

// WebhookOutcome reports what a webhook delivery did.
type WebhookOutcome string

const (
	WebhookProcessed WebhookOutcome = "processed"
	WebhookIgnored   WebhookOutcome = "ignored"
)

// TransactionService handles checkout initiation and the gateway webhook.
// The gateway is mocked: initiation only fabricates a reference and URL.
type TransactionService struct {
	txs          TransactionStore
	invoices     InvoiceStore
	notify       Enqueuer
	checkoutBase string
	secret       string
	log          zerolog.Logger
	now          func() time.Time
}

// NewTransactionService creates a new TransactionService. An empty secret
// disables webhook signature verification.
func NewTransactionService(txs TransactionStore, invoices InvoiceStore, notify Enqueuer, checkoutBase, secret string, log zerolog.Logger) *TransactionService {
	return &TransactionService{
		txs:          txs,
		invoices:     invoices,
		notify:       notify,
		checkoutBase: strings.TrimRight(checkoutBase, "/"),
		secret:       secret,
		log:          log.With().Str("component", "transaction_service").Logger(),
		now:          time.Now,
	}
}

// Initiate records a pending transaction for the invoice's amount and returns a checkout link.
func (s *TransactionService) Initiate(ctx context.Context, p model.Principal, req model.InitiatePaymentRequest) (*model.Checkout, error) {
	inv, err := s.invoices.GetByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv.Status == model.InvoicePaid {
		return nil, ErrInvoiceAlreadyPaid
	}

	tx := &model.Transaction{
		InvoiceID: inv.ID,
		PayerID:   p.UserID,
		Amount:    inv.Amount,
		Reference: ReferencePrefix + strconv.FormatInt(s.now().UnixNano(), 10),
		Status:    model.TransactionPending,
	}
	if err := s.txs.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.log.Info().
		Str("reference", tx.Reference).
		Str("invoice_id", inv.ID.String()).
		Float64("amount", tx.Amount).
		Msg("payment initiated")

	return &model.Checkout{
		Reference:   tx.Reference,
		CheckoutURL: s.checkoutBase + "/" + tx.Reference,
	}, nil
}

// VerifySignature checks the hex HMAC-SHA512 of body. It always passes when
// no secret is configured.
func (s *TransactionService) VerifySignature(body []byte, signature string) error {
	if s.secret == "" {
		return nil
	}
	mac := hmac.New(sha512.New, []byte(s.secret))
	mac.Write(body)
	expected := mac.Sum(nil)

	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil || !hmac.Equal(expected, got) {
		return ErrInvalidSignature
	}
	return nil
}

// HandleWebhook applies a gateway event. On charge.success the transaction is
// marked successful and its invoice paid today, as two separate writes.
// Replays are applied again; paid_at is re-stamped.
func (s *TransactionService) HandleWebhook(ctx context.Context, body []byte, signature string) (WebhookOutcome, error) {
	if s.secret == "" {
		s.log.Warn().Msg("webhook signature not verified: PAYSTACK_SECRET_KEY is not set")
	} else if err := s.VerifySignature(body, signature); err != nil {
		return "", err
	}

	var evt model.PaystackEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if evt.Event != model.PaystackEventChargeSuccess {
		s.log.Debug().Str("event", evt.Event).Msg("webhook event ignored")
		return WebhookIgnored, nil
	}

	tx, err := s.txs.GetByReference(ctx, evt.Data.Reference)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn().Str("reference", evt.Data.Reference).Msg("webhook for unknown reference ignored")
			return WebhookIgnored, nil
		}
		return "", fmt.Errorf("get transaction: %w", err)
	}

	if err := s.txs.UpdateStatus(ctx, tx.ID, model.TransactionSuccessful); err != nil {
		return "", fmt.Errorf("mark transaction successful: %w", err)
	}
	if err := s.invoices.MarkPaid(ctx, tx.InvoiceID, model.NewDate(s.now())); err != nil {
		return "", fmt.Errorf("mark invoice paid: %w", err)
	}

	s.log.Info().
		Str("reference", tx.Reference).
		Str("invoice_id", tx.InvoiceID.String()).
		Msg("payment confirmed")

	s.enqueuePaymentReceived(ctx, tx)
	return WebhookProcessed, nil
}

func (s *TransactionService) enqueuePaymentReceived(ctx context.Context, tx *model.Transaction) {
	inv, err := s.invoices.GetByID(ctx, tx.InvoiceID)
	if err != nil {
		s.log.Error().Err(err).Str("invoice_id", tx.InvoiceID.String()).Msg("load invoice for notification")
		return
	}

	n := model.Notification{
		Kind:    model.NotificationPaymentReceived,
		Subject: "Payment received: " + inv.FeeName,
		Body: fmt.Sprintf("We received %.2f for %s (reference %s). Thank you.",
			tx.Amount, inv.FeeName, tx.Reference),
		UserIDs: uniqueIDs(inv.StudentID, tx.PayerID),
	}
	if err := s.notify.Enqueue(ctx, n); err != nil {
		s.log.Error().Err(err).Str("reference", tx.Reference).Msg("enqueue payment notification")
	}
}

// List returns every transaction.
func (s *TransactionService) List(ctx context.Context) ([]model.Transaction, error) {
	return s.txs.List(ctx)
}

func uniqueIDs(ids ...uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != uuid.Nil && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
