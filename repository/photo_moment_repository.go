package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"whispersofusAPI/internal/photomoment"
)

type PhotoMomentRepository struct {
	client *firestore.Client
}

func NewPhotoMomentRepository(client *firestore.Client) *PhotoMomentRepository {
	return &PhotoMomentRepository{client: client}
}

func (r *PhotoMomentRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colPhotoMoments)
}

func (r *PhotoMomentRepository) Save(ctx context.Context, p *photomoment.PhotoMoment) error {
	if _, err := r.col().Doc(p.ID).Set(ctx, p); err != nil {
		return fmt.Errorf("failed to save photo moment: %w", err)
	}
	return nil
}

// FindByID returns (nil, nil) when no photo document exists.
func (r *PhotoMomentRepository) FindByID(ctx context.Context, id string) (*photomoment.PhotoMoment, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get photo moment %s: %w", id, err)
	}
	return photoFromSnap(snap)
}

func (r *PhotoMomentRepository) FindAll(ctx context.Context) ([]*photomoment.PhotoMoment, error) {
	return r.findAll(ctx, r.col().OrderBy("uploaded_at", firestore.Desc))
}

func (r *PhotoMomentRepository) FindFavorites(ctx context.Context) ([]*photomoment.PhotoMoment, error) {
	q := r.col().
		Where("is_favorite", "==", true).
		OrderBy("uploaded_at", firestore.Desc)
	return r.findAll(ctx, q)
}

func (r *PhotoMomentRepository) Count(ctx context.Context) (int64, error) {
	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count photo moments: %w", err)
	}
	return int64(len(snaps)), nil
}

func (r *PhotoMomentRepository) CountFavorites(ctx context.Context) (int64, error) {
	snaps, err := r.col().Where("is_favorite", "==", true).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count favorite photo moments: %w", err)
	}
	return int64(len(snaps)), nil
}

func (r *PhotoMomentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete photo moment %s: %w", id, err)
	}
	return nil
}

func (r *PhotoMomentRepository) findAll(ctx context.Context, q firestore.Query) ([]*photomoment.PhotoMoment, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query photo moments: %w", err)
	}

	photos := make([]*photomoment.PhotoMoment, 0, len(snaps))
	for _, snap := range snaps {
		p, err := photoFromSnap(snap)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, nil
}

func photoFromSnap(snap *firestore.DocumentSnapshot) (*photomoment.PhotoMoment, error) {
	var p photomoment.PhotoMoment
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode photo moment %s: %w", snap.Ref.ID, err)
	}
	p.ID = snap.Ref.ID
	return &p, nil
}
