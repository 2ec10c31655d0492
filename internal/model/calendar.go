package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType classifies calendar events.
type EventType string

const (
	EventHoliday EventType = "holiday"
	EventExam    EventType = "exam"
	EventMeeting EventType = "meeting"
	EventGeneral EventType = "event"
	EventOther   EventType = "other"
)

// CalendarEvent spans one or more whole days.
type CalendarEvent struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   Date      `json:"startDate"`
	EndDate     Date      `json:"endDate"`
	Type        EventType `json:"type"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateCalendarEventRequest adds an event to the school calendar.
type CreateCalendarEventRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	StartDate   string    `json:"startDate" binding:"required,isodate"`
	EndDate     string    `json:"endDate" binding:"required,isodate"`
	Type        EventType `json:"type" binding:"required,oneof=holiday exam meeting event other"`
}

// CalendarRangeQuery selects events overlapping [From, To]; both optional.
type CalendarRangeQuery struct {
	From string `form:"from" json:"from" binding:"omitempty,isodate"`
	To   string `form:"to" json:"to" binding:"omitempty,isodate"`
}
