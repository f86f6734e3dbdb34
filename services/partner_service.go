package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/partner"
	"whispersofusAPI/internal/user"
)

// PartnerService owns the pairing state machine: requests move
// PENDING -> ACCEPTED or PENDING -> REJECTED, an accepted request creates the
// partnership, and each user belongs to at most one partnership.
//
// The check-then-write sequences are serialized through per-user locks (both
// members locked in sorted order), and the partnership document ID is the
// canonical pair key written with a conditional insert. The locks assume a
// single API instance; the conditional insert holds regardless.
type PartnerService struct {
	users         UserRepository
	requests      PartnerRequestRepository
	partnerships  UserPartnerRepository
	notifications *NotificationService

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewPartnerService(users UserRepository, requests PartnerRequestRepository, partnerships UserPartnerRepository, notifications *NotificationService) *PartnerService {
	return &PartnerService{
		users:         users,
		requests:      requests,
		partnerships:  partnerships,
		notifications: notifications,
		userLocks:     make(map[string]*sync.Mutex),
	}
}

func (s *PartnerService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

// lockPair locks both user IDs in sorted order so two calls touching an
// overlapping user always serialize and can never deadlock.
func (s *PartnerService) lockPair(a, b string) func() {
	first, second := partner.SortPair(a, b)
	l1 := s.userLock(first)
	l1.Lock()
	if first == second {
		return l1.Unlock
	}
	l2 := s.userLock(second)
	l2.Lock()
	return func() {
		l2.Unlock()
		l1.Unlock()
	}
}

// partneredUser returns the first of the given user IDs that already belongs
// to a partnership, or "" when none does. Shared by send and respond so the
// invariant check lives in one place.
func (s *PartnerService) partneredUser(ctx context.Context, userIDs ...string) (string, error) {
	for _, id := range userIDs {
		exists, err := s.partnerships.ExistsByUser(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check partnership for %s: %w", id, err)
		}
		if exists {
			return id, nil
		}
	}
	return "", nil
}

// SendPartnerRequest validates the six preconditions in order and creates a
// PENDING request.
func (s *PartnerService) SendPartnerRequest(ctx context.Context, senderID, receiverID string) (*partner.Request, error) {
	log.Printf("PartnerService: send request from %s to %s", senderID, receiverID)

	senderExists, err := s.users.ExistsByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !senderExists {
		return nil, apperr.NotFound("sender user not found")
	}

	receiverExists, err := s.users.ExistsByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if !receiverExists {
		return nil, apperr.NotFound("receiver user not found")
	}

	if senderID == receiverID {
		return nil, apperr.Invalid("cannot send partner request to yourself")
	}

	unlock := s.lockPair(senderID, receiverID)
	defer unlock()

	if partnered, err := s.partneredUser(ctx, senderID); err != nil {
		return nil, err
	} else if partnered != "" {
		return nil, apperr.Invalid("you already have a partner")
	}

	if partnered, err := s.partneredUser(ctx, receiverID); err != nil {
		return nil, err
	} else if partnered != "" {
		return nil, apperr.Invalid("user already has a partner")
	}

	existing, err := s.requests.FindPendingBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Invalid("a pending partner request already exists between these users")
	}

	now := time.Now()
	req := &partner.Request{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     partner.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.requests.Save(ctx, req); err != nil {
		return nil, err
	}

	s.notifications.Notify(receiverID, "New partner request", "Someone wants to share their story with you", map[string]string{
		"type":      "partner_request",
		"requestId": req.ID,
	})

	return req, nil
}

// RespondToPartnerRequest accepts or rejects a pending request. When either
// user gained a partner since the request was sent, the request is forced to
// REJECTED and a conflict is reported.
func (s *PartnerService) RespondToPartnerRequest(ctx context.Context, requestID string, accepted bool, responderID string) (*partner.Request, error) {
	log.Printf("PartnerService: user %s responding to request %s (accepted=%v)", responderID, requestID, accepted)

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperr.NotFound("partner request not found")
	}

	if req.ReceiverID != responderID {
		return nil, apperr.Invalid("you are not authorized to respond to this request")
	}

	if req.Status != partner.StatusPending {
		return nil, apperr.Invalid("this partner request has already been responded to")
	}

	unlock := s.lockPair(req.SenderID, req.ReceiverID)
	defer unlock()

	// Either user may have gained a partner since the request was sent,
	// through a concurrent accept of another request.
	if partnered, err := s.partneredUser(ctx, req.SenderID, req.ReceiverID); err != nil {
		return nil, err
	} else if partnered != "" {
		req.Status = partner.StatusRejected
		req.UpdatedAt = time.Now()
		if err := s.requests.Save(ctx, req); err != nil {
			return nil, err
		}
		return nil, apperr.Conflict("one of the users already has a partner")
	}

	if !accepted {
		req.Status = partner.StatusRejected
		req.UpdatedAt = time.Now()
		if err := s.requests.Save(ctx, req); err != nil {
			return nil, err
		}

		s.notifications.Notify(req.SenderID, "Partner request declined", "Your partner request was declined", map[string]string{
			"type":      "partner_response",
			"requestId": req.ID,
		})
		return req, nil
	}

	req.Status = partner.StatusAccepted
	req.UpdatedAt = time.Now()
	if err := s.requests.Save(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	user1, user2 := partner.SortPair(req.SenderID, req.ReceiverID)
	p := &partner.Partnership{
		ID:        partner.PairKey(req.SenderID, req.ReceiverID),
		User1ID:   user1,
		User2ID:   user2,
		LinkedAt:  now,
		CreatedAt: now,
	}
	if err := s.partnerships.Create(ctx, p); err != nil {
		if apperr.IsConflict(err) {
			// Another instance linked this pair between our re-check and
			// the write. Map it like the integrity re-check failure.
			req.Status = partner.StatusRejected
			req.UpdatedAt = time.Now()
			if saveErr := s.requests.Save(ctx, req); saveErr != nil {
				return nil, saveErr
			}
			return nil, apperr.Conflict("one of the users already has a partner")
		}
		return nil, err
	}

	log.Printf("PartnerService: partnership created between %s and %s", req.SenderID, req.ReceiverID)

	s.notifications.Notify(req.SenderID, "Partner request accepted", "You are now linked with your partner", map[string]string{
		"type":      "partner_response",
		"requestId": req.ID,
	})

	return req, nil
}

// GetPartner resolves the other member of the caller's partnership.
// Returns (nil, nil) when the user has no partner or the partner record is
// missing; the latter is logged as a data-integrity warning.
func (s *PartnerService) GetPartner(ctx context.Context, userID string) (*user.User, error) {
	p, err := s.partnerships.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	partnerID := p.PartnerOf(userID)
	if partnerID == "" {
		log.Printf("PartnerService: invalid partnership data for user %s (partnership %s)", userID, p.ID)
		return nil, nil
	}

	u, err := s.users.FindByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		log.Printf("PartnerService: partnership %s references missing user %s", p.ID, partnerID)
		return nil, nil
	}
	return u, nil
}

func (s *PartnerService) GetReceivedRequests(ctx context.Context, userID string) ([]*partner.Request, error) {
	return s.requests.FindByReceiver(ctx, userID)
}

func (s *PartnerService) GetSentRequests(ctx context.Context, userID string) ([]*partner.Request, error) {
	return s.requests.FindBySender(ctx, userID)
}

func (s *PartnerService) GetPendingReceivedRequests(ctx context.Context, userID string) ([]*partner.Request, error) {
	return s.requests.FindByReceiverAndStatus(ctx, userID, partner.StatusPending)
}

func (s *PartnerService) HasPartner(ctx context.Context, userID string) (bool, error) {
	return s.partnerships.ExistsByUser(ctx, userID)
}

func (s *PartnerService) ArePartners(ctx context.Context, user1ID, user2ID string) (bool, error) {
	p, err := s.partnerships.FindByPair(ctx, user1ID, user2ID)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}
