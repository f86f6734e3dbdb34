package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"whispersofusAPI/internal/partner"
)

// PartnerRequestRepository is a pure query surface over partner-request
// documents; business rules live in the partner service.
type PartnerRequestRepository struct {
	client *firestore.Client
}

func NewPartnerRequestRepository(client *firestore.Client) *PartnerRequestRepository {
	return &PartnerRequestRepository{client: client}
}

func (r *PartnerRequestRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colPartnerRequests)
}

func (r *PartnerRequestRepository) Save(ctx context.Context, req *partner.Request) error {
	if _, err := r.col().Doc(req.ID).Set(ctx, req); err != nil {
		return fmt.Errorf("failed to save partner request: %w", err)
	}
	return nil
}

// FindByID returns (nil, nil) when no request document exists.
func (r *PartnerRequestRepository) FindByID(ctx context.Context, id string) (*partner.Request, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get partner request %s: %w", id, err)
	}
	return requestFromSnap(snap)
}

func (r *PartnerRequestRepository) FindBySender(ctx context.Context, senderID string) ([]*partner.Request, error) {
	return r.findAll(ctx, r.col().Where("sender_id", "==", senderID))
}

func (r *PartnerRequestRepository) FindByReceiver(ctx context.Context, receiverID string) ([]*partner.Request, error) {
	return r.findAll(ctx, r.col().Where("receiver_id", "==", receiverID))
}

func (r *PartnerRequestRepository) FindByReceiverAndStatus(ctx context.Context, receiverID string, status partner.RequestStatus) ([]*partner.Request, error) {
	q := r.col().
		Where("receiver_id", "==", receiverID).
		Where("status", "==", string(status))
	return r.findAll(ctx, q)
}

// FindPendingBetween matches the unordered pair {a, b} in either direction
// and returns the pending request if one exists, (nil, nil) otherwise.
func (r *PartnerRequestRepository) FindPendingBetween(ctx context.Context, a, b string) (*partner.Request, error) {
	q := r.col().
		WhereEntity(pairFilter("sender_id", "receiver_id", a, b)).
		Where("status", "==", string(partner.StatusPending)).
		Limit(1)

	iter := q.Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pending request between %s and %s: %w", a, b, err)
	}
	return requestFromSnap(snap)
}

func (r *PartnerRequestRepository) findAll(ctx context.Context, q firestore.Query) ([]*partner.Request, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query partner requests: %w", err)
	}

	requests := make([]*partner.Request, 0, len(snaps))
	for _, snap := range snaps {
		req, err := requestFromSnap(snap)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func requestFromSnap(snap *firestore.DocumentSnapshot) (*partner.Request, error) {
	var req partner.Request
	if err := snap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("failed to decode partner request %s: %w", snap.Ref.ID, err)
	}
	req.ID = snap.Ref.ID
	return &req, nil
}
