package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"whispersofusAPI/internal/chat"
)

type ChatMessageRepository struct {
	client *firestore.Client
}

func NewChatMessageRepository(client *firestore.Client) *ChatMessageRepository {
	return &ChatMessageRepository{client: client}
}

func (r *ChatMessageRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colChatMessages)
}

func (r *ChatMessageRepository) Save(ctx context.Context, m *chat.Message) error {
	if _, err := r.col().Doc(m.ID).Set(ctx, m); err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// FindByID returns (nil, nil) when no message document exists.
func (r *ChatMessageRepository) FindByID(ctx context.Context, id string) (*chat.Message, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat message %s: %w", id, err)
	}
	return messageFromSnap(snap)
}

// FindBetween returns one page of the conversation between a and b, newest
// first.
func (r *ChatMessageRepository) FindBetween(ctx context.Context, a, b string, page, size int) ([]*chat.Message, error) {
	q := r.col().
		WhereEntity(pairFilter("sender_id", "receiver_id", a, b)).
		OrderBy("created_at", firestore.Desc).
		Offset(page * size).
		Limit(size)
	return r.findAll(ctx, q)
}

func (r *ChatMessageRepository) FindUnread(ctx context.Context, receiverID string) ([]*chat.Message, error) {
	q := r.col().
		Where("receiver_id", "==", receiverID).
		Where("is_read", "==", false).
		OrderBy("created_at", firestore.Desc)
	return r.findAll(ctx, q)
}

func (r *ChatMessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	q := r.col().
		Where("receiver_id", "==", receiverID).
		Where("is_read", "==", false)
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return int64(len(snaps)), nil
}

func (r *ChatMessageRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete chat message %s: %w", id, err)
	}
	return nil
}

// DeleteConversation removes every message exchanged between a and b.
func (r *ChatMessageRepository) DeleteConversation(ctx context.Context, a, b string) error {
	q := r.col().WhereEntity(pairFilter("sender_id", "receiver_id", a, b))
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("failed to query conversation: %w", err)
	}
	for _, snap := range snaps {
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("failed to delete chat message %s: %w", snap.Ref.ID, err)
		}
	}
	return nil
}

func (r *ChatMessageRepository) findAll(ctx context.Context, q firestore.Query) ([]*chat.Message, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}

	messages := make([]*chat.Message, 0, len(snaps))
	for _, snap := range snaps {
		m, err := messageFromSnap(snap)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func messageFromSnap(snap *firestore.DocumentSnapshot) (*chat.Message, error) {
	var m chat.Message
	if err := snap.DataTo(&m); err != nil {
		return nil, fmt.Errorf("failed to decode chat message %s: %w", snap.Ref.ID, err)
	}
	m.ID = snap.Ref.ID
	return &m, nil
}
