package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"whispersofusAPI/internal/wish"
)

type WishRepository struct {
	client *firestore.Client
}

func NewWishRepository(client *firestore.Client) *WishRepository {
	return &WishRepository{client: client}
}

func (r *WishRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colWishes)
}

func (r *WishRepository) Save(ctx context.Context, w *wish.Wish) error {
	if _, err := r.col().Doc(w.ID).Set(ctx, w); err != nil {
		return fmt.Errorf("failed to save wish: %w", err)
	}
	return nil
}

// FindByID returns (nil, nil) when no wish document exists.
func (r *WishRepository) FindByID(ctx context.Context, id string) (*wish.Wish, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wish %s: %w", id, err)
	}
	return wishFromSnap(snap)
}

func (r *WishRepository) FindAll(ctx context.Context) ([]*wish.Wish, error) {
	return r.findAll(ctx, r.col().OrderBy("created_at", firestore.Desc))
}

func (r *WishRepository) FindByStatus(ctx context.Context, status wish.Status) ([]*wish.Wish, error) {
	q := r.col().
		Where("status", "==", string(status)).
		OrderBy("created_at", firestore.Desc)
	return r.findAll(ctx, q)
}

func (r *WishRepository) FindByCategory(ctx context.Context, category wish.Category) ([]*wish.Wish, error) {
	q := r.col().
		Where("category", "==", string(category)).
		OrderBy("created_at", firestore.Desc)
	return r.findAll(ctx, q)
}

func (r *WishRepository) Count(ctx context.Context) (int64, error) {
	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count wishes: %w", err)
	}
	return int64(len(snaps)), nil
}

func (r *WishRepository) CountByStatus(ctx context.Context, status wish.Status) (int64, error) {
	snaps, err := r.col().Where("status", "==", string(status)).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count wishes by status: %w", err)
	}
	return int64(len(snaps)), nil
}

func (r *WishRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete wish %s: %w", id, err)
	}
	return nil
}

func (r *WishRepository) findAll(ctx context.Context, q firestore.Query) ([]*wish.Wish, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query wishes: %w", err)
	}

	wishes := make([]*wish.Wish, 0, len(snaps))
	for _, snap := range snaps {
		w, err := wishFromSnap(snap)
		if err != nil {
			return nil, err
		}
		wishes = append(wishes, w)
	}
	return wishes, nil
}

func wishFromSnap(snap *firestore.DocumentSnapshot) (*wish.Wish, error) {
	var w wish.Wish
	if err := snap.DataTo(&w); err != nil {
		return nil, fmt.Errorf("failed to decode wish %s: %w", snap.Ref.ID, err)
	}
	w.ID = snap.Ref.ID
	return &w, nil
}
