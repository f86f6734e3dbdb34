package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/chat"
)

type ChatService struct {
	messages      ChatMessageRepository
	partners      *PartnerService
	notifications *NotificationService
}

func NewChatService(messages ChatMessageRepository, partners *PartnerService, notifications *NotificationService) *ChatService {
	return &ChatService{
		messages:      messages,
		partners:      partners,
		notifications: notifications,
	}
}

// ResolveCounterpart returns explicitID when given, otherwise the caller's
// partner from the partnership record. A caller without a partnership gets
// an invalid-operation error rather than an arbitrary other user.
func (s *ChatService) ResolveCounterpart(ctx context.Context, userID, explicitID string) (string, error) {
	if explicitID != "" {
		return explicitID, nil
	}

	p, err := s.partners.GetPartner(ctx, userID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", apperr.Invalid("you do not have a partner to chat with")
	}
	return p.ID, nil
}

func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID, content string, messageType chat.MessageType) (*chat.Message, error) {
	receiverID, err := s.ResolveCounterpart(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m := &chat.Message{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Content:     content,
		MessageType: messageType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.messages.Save(ctx, m); err != nil {
		return nil, err
	}

	s.notifications.Notify(receiverID, "New message", content, map[string]string{
		"type":      "chat_message",
		"messageId": m.ID,
	})

	return m, nil
}

func (s *ChatService) GetMessagesBetween(ctx context.Context, userID, partnerID string, page, size int) ([]*chat.Message, error) {
	partnerID, err := s.ResolveCounterpart(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}
	return s.messages.FindBetween(ctx, userID, partnerID, page, size)
}

func (s *ChatService) GetUnreadMessages(ctx context.Context, receiverID string) ([]*chat.Message, error) {
	return s.messages.FindUnread(ctx, receiverID)
}

func (s *ChatService) GetUnreadMessageCount(ctx context.Context, receiverID string) (int64, error) {
	return s.messages.CountUnread(ctx, receiverID)
}

func (s *ChatService) MarkMessageAsRead(ctx context.Context, messageID string) (*chat.Message, error) {
	m, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NotFound("message not found with id: %s", messageID)
	}

	now := time.Now()
	m.IsRead = true
	m.ReadAt = &now
	m.UpdatedAt = now
	if err := s.messages.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// MarkConversationRead marks every unread message from senderID to
// receiverID as read.
func (s *ChatService) MarkConversationRead(ctx context.Context, senderID, receiverID string) error {
	unread, err := s.messages.FindUnread(ctx, receiverID)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, m := range unread {
		if m.SenderID != senderID {
			continue
		}
		m.IsRead = true
		m.ReadAt = &now
		m.UpdatedAt = now
		if err := s.messages.Save(ctx, m); err != nil {
			return err
		}
	}

	log.Printf("ChatService: marked conversation read between %s and %s", senderID, receiverID)
	return nil
}

func (s *ChatService) DeleteMessage(ctx context.Context, messageID string) error {
	return s.messages.Delete(ctx, messageID)
}

func (s *ChatService) DeleteConversation(ctx context.Context, userID, partnerID string) error {
	return s.messages.DeleteConversation(ctx, userID, partnerID)
}
