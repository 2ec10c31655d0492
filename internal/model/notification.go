package model

import "github.com/google/uuid"

// NotificationKind selects how recipients are resolved and which template is used.
type NotificationKind string

const (
	NotificationPaymentReceived NotificationKind = "payment_received"
	NotificationAnnouncement    NotificationKind = "announcement"
)

// Notification is the payload queued for the notification worker.
type Notification struct {
	Kind     NotificationKind `json:"kind"`
	Subject  string           `json:"subject"`
	Body     string           `json:"body"`
	UserIDs  []uuid.UUID      `json:"userIds,omitempty"`
	ClassIDs []uuid.UUID      `json:"classIds,omitempty"`
}
