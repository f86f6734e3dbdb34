package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"whispersofusAPI/internal/notification"
)

type DeviceTokenRepository struct {
	client *firestore.Client
}

func NewDeviceTokenRepository(client *firestore.Client) *DeviceTokenRepository {
	return &DeviceTokenRepository{client: client}
}

func (r *DeviceTokenRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colDeviceTokens)
}

// Save upserts by token value so re-registering the same device does not
// accumulate duplicates.
func (r *DeviceTokenRepository) Save(ctx context.Context, t *notification.DeviceToken) error {
	if _, err := r.col().Doc(t.ID).Set(ctx, t); err != nil {
		return fmt.Errorf("failed to save device token: %w", err)
	}
	return nil
}

func (r *DeviceTokenRepository) FindByUser(ctx context.Context, userID string) ([]notification.DeviceToken, error) {
	snaps, err := r.col().Where("user_id", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query device tokens: %w", err)
	}

	tokens := make([]notification.DeviceToken, 0, len(snaps))
	for _, snap := range snaps {
		var t notification.DeviceToken
		if err := snap.DataTo(&t); err != nil {
			return nil, fmt.Errorf("failed to decode device token %s: %w", snap.Ref.ID, err)
		}
		t.ID = snap.Ref.ID
		tokens = append(tokens, t)
	}
	return tokens, nil
}
