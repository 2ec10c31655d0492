package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// CalendarService handles school calendar events.
type CalendarService struct {
	events CalendarStore
}

// NewCalendarService creates a new CalendarService.
func NewCalendarService(events CalendarStore) *CalendarService {
	return &CalendarService{events: events}
}

// Create adds an event. The end date may equal but not precede the start date.
func (s *CalendarService) Create(ctx context.Context, p model.Principal, req model.CreateCalendarEventRequest) (*model.CalendarEvent, error) {
	start, err := model.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := model.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidTimeRange
	}

	e := &model.CalendarEvent{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		StartDate:   start,
		EndDate:     end,
		Type:        req.Type,
		CreatedBy:   p.UserID,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create calendar event: %w", err)
	}
	return e, nil
}

// List returns events overlapping the optional [from, to] window.
func (s *CalendarService) List(ctx context.Context, q model.CalendarRangeQuery) ([]model.CalendarEvent, error) {
	var from, to *model.Date
	if q.From != "" {
		d, err := model.ParseDate(q.From)
		if err != nil {
			return nil, err
		}
		from = &d
	}
	if q.To != "" {
		d, err := model.ParseDate(q.To)
		if err != nil {
			return nil, err
		}
		to = &d
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, ErrInvalidTimeRange
	}
	return s.events.ListRange(ctx, from, to)
}
