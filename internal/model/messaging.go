package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is one chat line inside a conversation.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversationId"`
	SenderID       uuid.UUID `json:"senderId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Participant is the public view of a conversation member.
type Participant struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      Role      `json:"role"`
}

// Conversation groups participants and their messages, newest first.
type Conversation struct {
	ID           uuid.UUID     `json:"id"`
	CreatedAt    time.Time     `json:"createdAt"`
	Participants []Participant `json:"participants"`
	Messages     []Message     `json:"messages"`
}

// CreateConversationRequest opens a conversation with a first message.
type CreateConversationRequest struct {
	ParticipantIDs []uuid.UUID `json:"participantIds" binding:"required,min=1"`
	Content        string      `json:"content" binding:"required,min=1,max=5000"`
}

// SendMessageRequest posts into an existing conversation.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}
