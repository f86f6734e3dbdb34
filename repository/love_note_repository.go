package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"whispersofusAPI/internal/lovenote"
)

type LoveNoteRepository struct {
	client *firestore.Client
}

func NewLoveNoteRepository(client *firestore.Client) *LoveNoteRepository {
	return &LoveNoteRepository{client: client}
}

func (r *LoveNoteRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colLoveNotes)
}

func (r *LoveNoteRepository) Save(ctx context.Context, n *lovenote.LoveNote) error {
	if _, err := r.col().Doc(n.ID).Set(ctx, n); err != nil {
		return fmt.Errorf("failed to save love note: %w", err)
	}
	return nil
}

// FindByID returns (nil, nil) when no note document exists.
func (r *LoveNoteRepository) FindByID(ctx context.Context, id string) (*lovenote.LoveNote, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get love note %s: %w", id, err)
	}
	return noteFromSnap(snap)
}

func (r *LoveNoteRepository) FindByReceiver(ctx context.Context, receiverID string, page, size int) ([]*lovenote.LoveNote, error) {
	q := r.col().
		Where("receiver_id", "==", receiverID).
		OrderBy("created_at", firestore.Desc).
		Offset(page * size).
		Limit(size)
	return r.findAll(ctx, q)
}

func (r *LoveNoteRepository) FindUnread(ctx context.Context, receiverID string) ([]*lovenote.LoveNote, error) {
	q := r.col().
		Where("receiver_id", "==", receiverID).
		Where("is_read", "==", false).
		OrderBy("created_at", firestore.Desc)
	return r.findAll(ctx, q)
}

func (r *LoveNoteRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	q := r.col().
		Where("receiver_id", "==", receiverID).
		Where("is_read", "==", false)
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count unread love notes: %w", err)
	}
	return int64(len(snaps)), nil
}

func (r *LoveNoteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete love note %s: %w", id, err)
	}
	return nil
}

func (r *LoveNoteRepository) findAll(ctx context.Context, q firestore.Query) ([]*lovenote.LoveNote, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query love notes: %w", err)
	}

	notes := make([]*lovenote.LoveNote, 0, len(snaps))
	for _, snap := range snaps {
		n, err := noteFromSnap(snap)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func noteFromSnap(snap *firestore.DocumentSnapshot) (*lovenote.LoveNote, error) {
	var n lovenote.LoveNote
	if err := snap.DataTo(&n); err != nil {
		return nil, fmt.Errorf("failed to decode love note %s: %w", snap.Ref.ID, err)
	}
	n.ID = snap.Ref.ID
	return &n, nil
}
