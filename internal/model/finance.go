package model

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "unpaid"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// TransactionStatus is the gateway state of a payment attempt.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionSuccessful TransactionStatus = "successful"
	TransactionFailed     TransactionStatus = "failed"
)

// FeeStructure is a named, priced billing item, unique per academic year.
type FeeStructure struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	AcademicYear string    `json:"academicYear"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Invoice bills one student for one fee structure.
type Invoice struct {
	ID             uuid.UUID     `json:"id"`
	StudentID      uuid.UUID     `json:"studentId"`
	FeeStructureID uuid.UUID     `json:"feeStructureId"`
	FeeName        string        `json:"feeName"`
	Amount         float64       `json:"amount"`
	Status         InvoiceStatus `json:"status"`
	DueDate        Date          `json:"dueDate"`
	IssuedAt       Date          `json:"issuedAt"`
	PaidAt         *Date         `json:"paidAt"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Transaction is one payment attempt against an invoice.
type Transaction struct {
	ID        uuid.UUID         `json:"id"`
	InvoiceID uuid.UUID         `json:"invoiceId"`
	PayerID   uuid.UUID         `json:"payerId"`
	Amount    float64           `json:"amount"`
	Reference string            `json:"reference"`
	Status    TransactionStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Status    InvoiceStatus
	StudentID *uuid.UUID
}

// CreateFeeStructureRequest defines a billing item.
type CreateFeeStructureRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=150"`
	AcademicYear string  `json:"academicYear" binding:"required,min=1,max=20"`
	Description  string  `json:"description" binding:"omitempty,max=1000"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
}

// CreateInvoiceRequest issues an invoice to a student.
type CreateInvoiceRequest struct {
	StudentID      uuid.UUID `json:"studentId" binding:"required"`
	FeeStructureID uuid.UUID `json:"feeStructureId" binding:"required"`
	DueDate        string    `json:"dueDate" binding:"required,isodate"`
}

// ListInvoicesQuery is the query string of the invoice listing.
type ListInvoicesQuery struct {
	Status InvoiceStatus `form:"status" json:"status" binding:"omitempty,oneof=unpaid paid overdue"`
}

// InitiatePaymentRequest starts a checkout for an invoice.
type InitiatePaymentRequest struct {
	InvoiceID uuid.UUID `json:"invoiceId" binding:"required"`
}

// Checkout is returned to the payer after initiation.
type Checkout struct {
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkoutUrl"`
}

// PaystackEventChargeSuccess is the only webhook event acted upon.
const PaystackEventChargeSuccess = "charge.success"

// PaystackEvent is the subset of the gateway webhook body that is read.
type PaystackEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string  `json:"reference"`
		Status    string  `json:"status"`
		Amount    float64 `json:"amount"`
	} `json:"data"`
}
