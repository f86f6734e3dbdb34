package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"whispersofusAPI/internal/user"
)

type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colUsers)
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if _, err := r.col().Doc(u.ID).Set(ctx, u); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// FindByID returns (nil, nil) when no user document exists.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return userFromSnap(snap)
}

func (r *UserRepository) FindByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	return r.findOne(ctx, r.col().Where("clerk_id", "==", clerkID).Limit(1))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, r.col().Where("email", "==", email).Limit(1))
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	return r.findAll(ctx, r.col().Query)
}

// SearchByName is a prefix match; Firestore has no contains operator, so
// this uses the standard high-codepoint range trick.
func (r *UserRepository) SearchByName(ctx context.Context, keyword string) ([]*user.User, error) {
	q := r.col().
		Where("name", ">=", keyword).
		Where("name", "<=", keyword+"\uf8ff")
	return r.findAll(ctx, q)
}

func (r *UserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user %s: %w", id, err)
	}
	return snap.Exists(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, q firestore.Query) (*user.User, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return userFromSnap(snap)
}

func (r *UserRepository) findAll(ctx context.Context, q firestore.Query) ([]*user.User, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	users := make([]*user.User, 0, len(snaps))
	for _, snap := range snaps {
		u, err := userFromSnap(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func userFromSnap(snap *firestore.DocumentSnapshot) (*user.User, error) {
	var u user.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", snap.Ref.ID, err)
	}
	u.ID = snap.Ref.ID
	return &u, nil
}
