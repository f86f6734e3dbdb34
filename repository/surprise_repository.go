package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"whispersofusAPI/internal/surprise"
)

type SurpriseRepository struct {
	client *firestore.Client
}

func NewSurpriseRepository(client *firestore.Client) *SurpriseRepository {
	return &SurpriseRepository{client: client}
}

func (r *SurpriseRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colSurprises)
}

func (r *SurpriseRepository) Save(ctx context.Context, s *surprise.Surprise) error {
	if _, err := r.col().Doc(s.ID).Set(ctx, s); err != nil {
		return fmt.Errorf("failed to save surprise: %w", err)
	}
	return nil
}

// FindByID returns (nil, nil) when no surprise document exists.
func (r *SurpriseRepository) FindByID(ctx context.Context, id string) (*surprise.Surprise, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get surprise %s: %w", id, err)
	}
	return surpriseFromSnap(snap)
}

func (r *SurpriseRepository) FindAll(ctx context.Context) ([]*surprise.Surprise, error) {
	return r.findAll(ctx, r.col().OrderBy("created_at", firestore.Desc))
}

func (r *SurpriseRepository) FindUnlocked(ctx context.Context) ([]*surprise.Surprise, error) {
	q := r.col().
		Where("is_unlocked", "==", true).
		OrderBy("unlock_date", firestore.Desc)
	return r.findAll(ctx, q)
}

func (r *SurpriseRepository) FindLocked(ctx context.Context) ([]*surprise.Surprise, error) {
	q := r.col().
		Where("is_unlocked", "==", false).
		OrderBy("created_at", firestore.Desc)
	return r.findAll(ctx, q)
}

func (r *SurpriseRepository) FindByCreator(ctx context.Context, creatorID string) ([]*surprise.Surprise, error) {
	q := r.col().
		Where("creator_id", "==", creatorID).
		OrderBy("created_at", firestore.Desc)
	return r.findAll(ctx, q)
}

func (r *SurpriseRepository) Count(ctx context.Context) (int64, error) {
	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count surprises: %w", err)
	}
	return int64(len(snaps)), nil
}

func (r *SurpriseRepository) CountUnlocked(ctx context.Context) (int64, error) {
	snaps, err := r.col().Where("is_unlocked", "==", true).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count unlocked surprises: %w", err)
	}
	return int64(len(snaps)), nil
}

func (r *SurpriseRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete surprise %s: %w", id, err)
	}
	return nil
}

func (r *SurpriseRepository) findAll(ctx context.Context, q firestore.Query) ([]*surprise.Surprise, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query surprises: %w", err)
	}

	surprises := make([]*surprise.Surprise, 0, len(snaps))
	for _, snap := range snaps {
		s, err := surpriseFromSnap(snap)
		if err != nil {
			return nil, err
		}
		surprises = append(surprises, s)
	}
	return surprises, nil
}

func surpriseFromSnap(snap *firestore.DocumentSnapshot) (*surprise.Surprise, error) {
	var s surprise.Surprise
	if err := snap.DataTo(&s); err != nil {
		return nil, fmt.Errorf("failed to decode surprise %s: %w", snap.Ref.ID, err)
	}
	s.ID = snap.Ref.ID
	return &s, nil
}
