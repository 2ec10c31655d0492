package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
	ws "github.com/educonnect/educonnect-backend/internal/websocket"
)

// MessagingService handles conversations and fans stored messages out to
// each participant's inbox channel.
type MessagingService struct {
	conversations ConversationStore
	users         UserStore
	publisher     Publisher
	log           zerolog.Logger
}

// NewMessagingService creates a new MessagingService.
func NewMessagingService(conversations ConversationStore, users UserStore, publisher Publisher, log zerolog.Logger) *MessagingService {
	return &MessagingService{
		conversations: conversations,
		users:         users,
		publisher:     publisher,
		log:           log.With().Str("component", "messaging_service").Logger(),
	}
}

// CreateConversation opens a conversation between the caller and the given
// users and posts the first message. These are two writes with no atomicity.
func (s *MessagingService) CreateConversation(ctx context.Context, p model.Principal, req model.CreateConversationRequest) (*model.Conversation, error) {
	members := uniqueIDs(append([]uuid.UUID{p.UserID}, req.ParticipantIDs...)...)

	found, err := s.users.ListByIDs(ctx, members)
	if err != nil {
		return nil, fmt.Errorf("resolve participants: %w", err)
	}
	if len(found) != len(members) {
		return nil, fmt.Errorf("participant: %w", repository.ErrNotFound)
	}

	conv, err := s.conversations.Create(ctx, members)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	msg := &model.Message{ConversationID: conv.ID, SenderID: p.UserID, Content: req.Content}
	if err := s.conversations.AddMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("add first message: %w", err)
	}
	conv.Messages = []model.Message{*msg}

	s.fanOut(ctx, members, *msg)
	return conv, nil
}

// List returns the caller's conversations.
func (s *MessagingService) List(ctx context.Context, p model.Principal) ([]model.Conversation, error) {
	return s.conversations.ListForUser(ctx, p.UserID)
}

// Send posts a message into a conversation the caller participates in.
func (s *MessagingService) Send(ctx context.Context, p model.Principal, conversationID uuid.UUID, req model.SendMessageRequest) (*model.Message, error) {
	members, err := s.conversations.ParticipantIDs(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !containsID(members, p.UserID) {
		return nil, ErrNotParticipant
	}

	msg := &model.Message{ConversationID: conversationID, SenderID: p.UserID, Content: req.Content}
	if err := s.conversations.AddMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("add message: %w", err)
	}

	s.fanOut(ctx, members, *msg)
	return msg, nil
}

// fanOut publishes msg on every member's inbox. Delivery is best effort.
func (s *MessagingService) fanOut(ctx context.Context, members []uuid.UUID, msg model.Message) {
	payload, err := json.Marshal(ws.NewMessageEvent(msg))
	if err != nil {
		s.log.Error().Err(err).Msg("encode message event")
		return
	}
	for _, id := range members {
		if err := s.publisher.Publish(ctx, config.CacheKey.UserInboxChannel(id), payload); err != nil {
			s.log.Warn().Err(err).Str("user_id", id.String()).Msg("publish to inbox failed")
		}
	}
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
