package services

import (
	"context"

	"whispersofusAPI/internal/chat"
	"whispersofusAPI/internal/lovenote"
	"whispersofusAPI/internal/memory"
	"whispersofusAPI/internal/notification"
	"whispersofusAPI/internal/partner"
	"whispersofusAPI/internal/photomoment"
	"whispersofusAPI/internal/surprise"
	"whispersofusAPI/internal/user"
	"whispersofusAPI/internal/wish"
)

// Repository interfaces consumed by the services. The repository package
// provides the Firestore implementations; tests substitute in-memory fakes.
// Point lookups return (nil, nil) on a miss.

type UserRepository interface {
	Save(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByClerkID(ctx context.Context, clerkID string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindAll(ctx context.Context) ([]*user.User, error)
	SearchByName(ctx context.Context, keyword string) ([]*user.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type PartnerRequestRepository interface {
	Save(ctx context.Context, req *partner.Request) error
	FindByID(ctx context.Context, id string) (*partner.Request, error)
	FindBySender(ctx context.Context, senderID string) ([]*partner.Request, error)
	FindByReceiver(ctx context.Context, receiverID string) ([]*partner.Request, error)
	FindByReceiverAndStatus(ctx context.Context, receiverID string, status partner.RequestStatus) ([]*partner.Request, error)
	FindPendingBetween(ctx context.Context, a, b string) (*partner.Request, error)
}

type UserPartnerRepository interface {
	// Create fails with a conflict error when the pair already exists.
	Create(ctx context.Context, p *partner.Partnership) error
	FindByUser(ctx context.Context, userID string) (*partner.Partnership, error)
	FindByPair(ctx context.Context, a, b string) (*partner.Partnership, error)
	ExistsByUser(ctx context.Context, userID string) (bool, error)
}

type ChatMessageRepository interface {
	Save(ctx context.Context, m *chat.Message) error
	FindByID(ctx context.Context, id string) (*chat.Message, error)
	FindBetween(ctx context.Context, a, b string, page, size int) ([]*chat.Message, error)
	FindUnread(ctx context.Context, receiverID string) ([]*chat.Message, error)
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteConversation(ctx context.Context, a, b string) error
}

type LoveNoteRepository interface {
	Save(ctx context.Context, n *lovenote.LoveNote) error
	FindByID(ctx context.Context, id string) (*lovenote.LoveNote, error)
	FindByReceiver(ctx context.Context, receiverID string, page, size int) ([]*lovenote.LoveNote, error)
	FindUnread(ctx context.Context, receiverID string) ([]*lovenote.LoveNote, error)
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type PhotoMomentRepository interface {
	Save(ctx context.Context, p *photomoment.PhotoMoment) error
	FindByID(ctx context.Context, id string) (*photomoment.PhotoMoment, error)
	FindAll(ctx context.Context) ([]*photomoment.PhotoMoment, error)
	FindFavorites(ctx context.Context) ([]*photomoment.PhotoMoment, error)
	Count(ctx context.Context) (int64, error)
	CountFavorites(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type WishRepository interface {
	Save(ctx context.Context, w *wish.Wish) error
	FindByID(ctx context.Context, id string) (*wish.Wish, error)
	FindAll(ctx context.Context) ([]*wish.Wish, error)
	FindByStatus(ctx context.Context, status wish.Status) ([]*wish.Wish, error)
	FindByCategory(ctx context.Context, category wish.Category) ([]*wish.Wish, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status wish.Status) (int64, error)
	Delete(ctx context.Context, id string) error
}

type SurpriseRepository interface {
	Save(ctx context.Context, s *surprise.Surprise) error
	FindByID(ctx context.Context, id string) (*surprise.Surprise, error)
	FindAll(ctx context.Context) ([]*surprise.Surprise, error)
	FindUnlocked(ctx context.Context) ([]*surprise.Surprise, error)
	FindLocked(ctx context.Context) ([]*surprise.Surprise, error)
	FindByCreator(ctx context.Context, creatorID string) ([]*surprise.Surprise, error)
	Count(ctx context.Context) (int64, error)
	CountUnlocked(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type MemoryRepository interface {
	Save(ctx context.Context, m *memory.Memory) error
	FindByID(ctx context.Context, id string) (*memory.Memory, error)
	FindAllByDate(ctx context.Context, ascending bool) ([]*memory.Memory, error)
	FindMilestones(ctx context.Context) ([]*memory.Memory, error)
	FindByType(ctx context.Context, t memory.Type) ([]*memory.Memory, error)
	Delete(ctx context.Context, id string) error
}

type DeviceTokenRepository interface {
	Save(ctx context.Context, t *notification.DeviceToken) error
	FindByUser(ctx context.Context, userID string) ([]notification.DeviceToken, error)
}
