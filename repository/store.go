// Package repository holds the Firestore adapters. Each entity lives in its
// own collection; queries are plain field filters plus the either-direction
// pair match used by the partner core.
package repository

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	colUsers           = "users"
	colPartnerRequests = "partner_requests"
	colUserPartners    = "user_partners"
	colChatMessages    = "chat_messages"
	colLoveNotes       = "love_notes"
	colPhotoMoments    = "photo_moments"
	colWishes          = "wishes"
	colSurprises       = "surprises"
	colMemories        = "memories"
	colDeviceTokens    = "device_tokens"
)

// NewFirestoreClient builds the Firestore client. Credentials come from the
// FIREBASE_SERVICE_ACCOUNT_JSON environment variable (Base64 encoded), with a
// local service account key file as fallback.
func NewFirestoreClient(ctx context.Context, localFilePath string) (*firestore.Client, error) {
	var opts []option.ClientOption

	encodedCreds := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if encodedCreds != "" {
		decoded, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 firebase credentials: %v", err)
		}
		opts = append(opts, option.WithCredentialsJSON(decoded))
	} else if localFilePath != "" {
		if _, err := os.Stat(localFilePath); err == nil {
			opts = append(opts, option.WithCredentialsFile(localFilePath))
		}
	}

	conf := &firebase.Config{ProjectID: os.Getenv("FIREBASE_PROJECT_ID")}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %v", err)
	}

	return client, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// pairFilter matches documents where {field1, field2} hold the unordered
// pair {a, b} in either direction.
func pairFilter(field1, field2, a, b string) firestore.EntityFilter {
	return firestore.OrFilter{
		Filters: []firestore.EntityFilter{
			firestore.AndFilter{
				Filters: []firestore.EntityFilter{
					firestore.PropertyFilter{Path: field1, Operator: "==", Value: a},
					firestore.PropertyFilter{Path: field2, Operator: "==", Value: b},
				},
			},
			firestore.AndFilter{
				Filters: []firestore.EntityFilter{
					firestore.PropertyFilter{Path: field1, Operator: "==", Value: b},
					firestore.PropertyFilter{Path: field2, Operator: "==", Value: a},
				},
			},
		},
	}
}
