package model

import (
	"time"

	"github.com/google/uuid"
)

// AnnouncementStatus is the approval state of an announcement.
type AnnouncementStatus string

const (
	AnnouncementPending  AnnouncementStatus = "pending"
	AnnouncementApproved AnnouncementStatus = "approved"
	AnnouncementRejected AnnouncementStatus = "rejected"
)

// Announcement is authored by staff and published after admin approval.
type Announcement struct {
	ID         uuid.UUID          `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Status     AnnouncementStatus `json:"status"`
	AuthorID   uuid.UUID          `json:"authorId"`
	ApproverID *uuid.UUID         `json:"approverId"`
	ClassIDs   []uuid.UUID        `json:"classIds"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// CreateAnnouncementRequest submits an announcement for approval.
type CreateAnnouncementRequest struct {
	Title    string      `json:"title" binding:"required,min=1,max=200"`
	Content  string      `json:"content" binding:"required,min=1,max=10000"`
	ClassIDs []uuid.UUID `json:"classIds" binding:"required,min=1"`
}

// ReviewAnnouncementRequest approves or rejects a pending announcement.
type ReviewAnnouncementRequest struct {
	Status AnnouncementStatus `json:"status" binding:"required,oneof=approved rejected"`
}
