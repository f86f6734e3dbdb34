package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/partner"
)

// UserPartnerRepository is the query surface over active partnerships.
// Partnership documents are keyed by the canonical unordered pair, so the
// same pair can never be written twice.
type UserPartnerRepository struct {
	client *firestore.Client
}

func NewUserPartnerRepository(client *firestore.Client) *UserPartnerRepository {
	return &UserPartnerRepository{client: client}
}

func (r *UserPartnerRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colUserPartners)
}

// Create is a conditional insert: the document ID is the canonical pair key
// and the write fails with a conflict error when the pair already exists.
func (r *UserPartnerRepository) Create(ctx context.Context, p *partner.Partnership) error {
	if _, err := r.col().Doc(p.ID).Create(ctx, p); err != nil {
		if isAlreadyExists(err) {
			return apperr.Conflict("partnership already exists between these users")
		}
		return fmt.Errorf("failed to create partnership: %w", err)
	}
	return nil
}

// FindByUser returns the partnership containing userID on either side,
// (nil, nil) when there is none.
func (r *UserPartnerRepository) FindByUser(ctx context.Context, userID string) (*partner.Partnership, error) {
	q := r.col().
		WhereEntity(firestore.OrFilter{
			Filters: []firestore.EntityFilter{
				firestore.PropertyFilter{Path: "user1_id", Operator: "==", Value: userID},
				firestore.PropertyFilter{Path: "user2_id", Operator: "==", Value: userID},
			},
		}).
		Limit(1)
	return r.findOne(ctx, q)
}

func (r *UserPartnerRepository) FindByPair(ctx context.Context, a, b string) (*partner.Partnership, error) {
	q := r.col().
		WhereEntity(pairFilter("user1_id", "user2_id", a, b)).
		Limit(1)
	return r.findOne(ctx, q)
}

func (r *UserPartnerRepository) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	p, err := r.FindByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

func (r *UserPartnerRepository) findOne(ctx context.Context, q firestore.Query) (*partner.Partnership, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query partnerships: %w", err)
	}

	var p partner.Partnership
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode partnership %s: %w", snap.Ref.ID, err)
	}
	p.ID = snap.Ref.ID
	return &p, nil
}
