package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/lovenote"
)

type LoveNoteService struct {
	notes         LoveNoteRepository
	partners      *PartnerService
	notifications *NotificationService
}

func NewLoveNoteService(notes LoveNoteRepository, partners *PartnerService, notifications *NotificationService) *LoveNoteService {
	return &LoveNoteService{
		notes:         notes,
		partners:      partners,
		notifications: notifications,
	}
}

// CreateLoveNote writes a note to the given receiver, or to the sender's
// partner when no receiver is specified.
func (s *LoveNoteService) CreateLoveNote(ctx context.Context, senderID string, req *lovenote.CreateRequest) (*lovenote.LoveNote, error) {
	receiverID := req.ReceiverID
	if receiverID == "" {
		p, err := s.partners.GetPartner(ctx, senderID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperr.Invalid("you do not have a partner to send a note to")
		}
		receiverID = p.ID
	}

	n := &lovenote.LoveNote{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    req.Content,
		EmotionTag: lovenote.ParseEmotionTag(req.EmotionTag),
		CreatedAt:  time.Now(),
	}
	if err := s.notes.Save(ctx, n); err != nil {
		return nil, err
	}

	log.Printf("LoveNoteService: note %s from %s to %s", n.ID, senderID, receiverID)

	s.notifications.Notify(receiverID, "New love note", "Your partner left you a note", map[string]string{
		"type":   "love_note",
		"noteId": n.ID,
	})

	return n, nil
}

func (s *LoveNoteService) GetNotesForReceiver(ctx context.Context, receiverID string, page, size int) ([]*lovenote.LoveNote, error) {
	return s.notes.FindByReceiver(ctx, receiverID, page, size)
}

func (s *LoveNoteService) GetUnreadNotes(ctx context.Context, receiverID string) ([]*lovenote.LoveNote, error) {
	return s.notes.FindUnread(ctx, receiverID)
}

func (s *LoveNoteService) GetUnreadNotesCount(ctx context.Context, receiverID string) (int64, error) {
	return s.notes.CountUnread(ctx, receiverID)
}

func (s *LoveNoteService) MarkNoteAsRead(ctx context.Context, noteID string) (*lovenote.LoveNote, error) {
	n, err := s.getNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	if err := s.notes.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *LoveNoteService) AddReaction(ctx context.Context, noteID, emoji string) (*lovenote.LoveNote, error) {
	n, err := s.getNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	n.ReactionEmoji = emoji
	if err := s.notes.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *LoveNoteService) DeleteLoveNote(ctx context.Context, noteID string) error {
	return s.notes.Delete(ctx, noteID)
}

func (s *LoveNoteService) getNote(ctx context.Context, noteID string) (*lovenote.LoveNote, error) {
	n, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperr.NotFound("love note not found with id: %s", noteID)
	}
	return n, nil
}
