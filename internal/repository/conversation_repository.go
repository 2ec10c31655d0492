package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// ConversationRepository handles conversations, participants and messages.
type ConversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository creates a new ConversationRepository.
func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

// Create inserts a conversation and its participants.
func (r *ConversationRepository) Create(ctx context.Context, participantIDs []uuid.UUID) (*model.Conversation, error) {
	conv := &model.Conversation{Messages: []model.Message{}}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO conversations DEFAULT VALUES RETURNING id, created_at`,
	).Scan(&conv.ID, &conv.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}

	batch := &pgx.Batch{}
	for _, userID := range participantIDs {
		batch.Queue(
			`INSERT INTO conversation_participants (conversation_id, user_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, conv.ID, userID)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return nil, mapError(err)
	}

	participants, err := r.participants(ctx, []uuid.UUID{conv.ID})
	if err != nil {
		return nil, err
	}
	conv.Participants = participants[conv.ID]
	return conv, nil
}

// ParticipantIDs returns the member ids, or ErrNotFound when the conversation is missing.
func (r *ConversationRepository) ParticipantIDs(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM conversations WHERE id = $1)`, conversationID,
	).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM conversation_participants WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddMessage inserts a message.
func (r *ConversationRepository) AddMessage(ctx context.Context, m *model.Message) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (conversation_id, sender_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		m.ConversationID, m.SenderID, m.Content,
	).Scan(&m.ID, &m.CreatedAt)
	return mapError(err)
}

// ListForUser returns the user's conversations, most recently active first,
// each with participants and messages newest first.
func (r *ConversationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.created_at
		 FROM conversations c
		 JOIN conversation_participants cp ON cp.conversation_id = c.id
		 WHERE cp.user_id = $1
		 ORDER BY COALESCE((SELECT MAX(m.created_at) FROM messages m WHERE m.conversation_id = c.id), c.created_at) DESC`,
		userID)
	if err != nil {
		return nil, err
	}

	convs := make([]model.Conversation, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.ID, &c.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		convs = append(convs, c)
		ids = append(ids, c.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return convs, nil
	}

	participants, err := r.participants(ctx, ids)
	if err != nil {
		return nil, err
	}
	messages, err := r.messages(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range convs {
		convs[i].Participants = participants[convs[i].ID]
		convs[i].Messages = messages[convs[i].ID]
		if convs[i].Participants == nil {
			convs[i].Participants = []model.Participant{}
		}
		if convs[i].Messages == nil {
			convs[i].Messages = []model.Message{}
		}
	}
	return convs, nil
}

func (r *ConversationRepository) participants(ctx context.Context, convIDs []uuid.UUID) (map[uuid.UUID][]model.Participant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT cp.conversation_id, u.id, u.first_name, u.last_name, u.role
		 FROM conversation_participants cp
		 JOIN users u ON u.id = cp.user_id
		 WHERE cp.conversation_id = ANY($1)
		 ORDER BY u.last_name, u.first_name`, convIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]model.Participant)
	for rows.Next() {
		var convID uuid.UUID
		var p model.Participant
		if err := rows.Scan(&convID, &p.ID, &p.FirstName, &p.LastName, &p.Role); err != nil {
			return nil, err
		}
		out[convID] = append(out[convID], p)
	}
	return out, rows.Err()
}

func (r *ConversationRepository) messages(ctx context.Context, convIDs []uuid.UUID) (map[uuid.UUID][]model.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, conversation_id, sender_id, content, created_at
		 FROM messages
		 WHERE conversation_id = ANY($1)
		 ORDER BY created_at DESC`, convIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]model.Message)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out[m.ConversationID] = append(out[m.ConversationID], m)
	}
	return out, rows.Err()
}
