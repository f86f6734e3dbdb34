package services

import (
	"context"
	"testing"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/chat"
)

func newChatFixture(t *testing.T, paired bool) (*ChatService, *fakeMessageRepo) {
	t.Helper()
	partnerSvc, _, _ := newPartnerFixture("alice", "bob", "carol")
	if paired {
		mustPair(t, partnerSvc, "alice", "bob")
	}
	messages := newFakeMessageRepo()
	return NewChatService(messages, partnerSvc, nil), messages
}

func TestResolveCounterpart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatFixture(t, true)

	// Explicit ID wins.
	got, err := svc.ResolveCounterpart(ctx, "alice", "carol")
	if err != nil || got != "carol" {
		t.Errorf("explicit counterpart = %q, %v, want carol", got, err)
	}

	// Empty ID falls back to the partnership.
	got, err = svc.ResolveCounterpart(ctx, "alice", "")
	if err != nil || got != "bob" {
		t.Errorf("partner counterpart = %q, %v, want bob", got, err)
	}
}

func TestResolveCounterpartWithoutPartner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatFixture(t, false)

	_, err := svc.ResolveCounterpart(ctx, "alice", "")
	if err == nil || apperr.KindOf(err) != apperr.KindInvalid {
		t.Fatalf("no partner: got %v, want invalid", err)
	}
}

func TestSendMessageDefaultsToPartner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatFixture(t, true)

	m, err := svc.SendMessage(ctx, "alice", "", "hey you", chat.TypeText)
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if m.ReceiverID != "bob" {
		t.Errorf("receiver = %s, want bob", m.ReceiverID)
	}
	if m.IsRead {
		t.Error("new message is already read")
	}
}

func TestSendMessageWithoutPartner(t *testing.T) {
	ctx := context.Background()
	svc, messages := newChatFixture(t, false)

	if _, err := svc.SendMessage(ctx, "alice", "", "hello?", chat.TypeText); err == nil {
		t.Fatal("send without partner succeeded")
	}
	if unread, _ := messages.FindUnread(ctx, "bob"); len(unread) != 0 {
		t.Errorf("failed send persisted %d messages", len(unread))
	}
}

func TestUnreadFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatFixture(t, true)

	first, err := svc.SendMessage(ctx, "alice", "", "one", chat.TypeText)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := svc.SendMessage(ctx, "alice", "", "two", chat.TypeText); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	count, err := svc.GetUnreadMessageCount(ctx, "bob")
	if err != nil || count != 2 {
		t.Fatalf("unread count = %d, %v, want 2", count, err)
	}

	read, err := svc.MarkMessageAsRead(ctx, first.ID)
	if err != nil {
		t.Fatalf("MarkMessageAsRead failed: %v", err)
	}
	if !read.IsRead || read.ReadAt == nil {
		t.Error("message not marked read")
	}

	count, _ = svc.GetUnreadMessageCount(ctx, "bob")
	if count != 1 {
		t.Errorf("unread count after read = %d, want 1", count)
	}
}

func TestMarkConversationRead(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatFixture(t, true)

	for _, content := range []string{"one", "two", "three"} {
		if _, err := svc.SendMessage(ctx, "alice", "", content, chat.TypeText); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}
	// A reply the other way stays unread for alice.
	if _, err := svc.SendMessage(ctx, "bob", "", "reply", chat.TypeText); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if err := svc.MarkConversationRead(ctx, "alice", "bob"); err != nil {
		t.Fatalf("MarkConversationRead failed: %v", err)
	}

	if count, _ := svc.GetUnreadMessageCount(ctx, "bob"); count != 0 {
		t.Errorf("bob still has %d unread", count)
	}
	if count, _ := svc.GetUnreadMessageCount(ctx, "alice"); count != 1 {
		t.Errorf("alice unread = %d, want 1", count)
	}
}

func TestMarkMissingMessageAsRead(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatFixture(t, true)

	if _, err := svc.MarkMessageAsRead(ctx, "nope"); !apperr.IsNotFound(err) {
		t.Errorf("missing message: got %v, want not-found", err)
	}
}

func TestDeleteConversation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatFixture(t, true)

	if _, err := svc.SendMessage(ctx, "alice", "", "one", chat.TypeText); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := svc.SendMessage(ctx, "bob", "", "two", chat.TypeText); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if err := svc.DeleteConversation(ctx, "alice", "bob"); err != nil {
		t.Fatalf("DeleteConversation failed: %v", err)
	}

	remaining, err := svc.GetMessagesBetween(ctx, "alice", "bob", 0, 50)
	if err != nil {
		t.Fatalf("GetMessagesBetween failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("%d messages survived conversation delete", len(remaining))
	}
}
