package service

import "errors"

// Domain errors returned by the services. Handlers map them to API error codes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("user does not have the required role")
	ErrForbidden          = errors.New("operation not permitted for caller")
	ErrNotLinked          = errors.New("student is not linked to parent")
	ErrNotGradeOwner      = errors.New("grade was recorded by another teacher")
	ErrNotParticipant     = errors.New("caller is not a conversation participant")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvoiceAlreadyPaid = errors.New("invoice already paid")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrInvalidTimeRange   = errors.New("start must be before end")
	ErrInvalidSetting     = errors.New("invalid setting value")
)

// ErrInvalidPayload is returned when a webhook body cannot be decoded.
var ErrInvalidPayload = errors.New("invalid payload")
