package services

import (
	"context"
	"testing"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/partner"
	"whispersofusAPI/internal/user"
)

func newPartnerFixture(userIDs ...string) (*PartnerService, *fakeRequestRepo, *fakePartnershipRepo) {
	var users []*user.User
	for _, id := range userIDs {
		users = append(users, &user.User{ID: id, ClerkID: "clerk_" + id, Email: id + "@example.com", Name: id})
	}
	requests := newFakeRequestRepo()
	partnerships := newFakePartnershipRepo()
	svc := NewPartnerService(newFakeUserRepo(users...), requests, partnerships, nil)
	return svc, requests, partnerships
}

func TestSendPartnerRequest(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPartnerFixture("alice", "bob")

	req, err := svc.SendPartnerRequest(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("SendPartnerRequest failed: %v", err)
	}
	if req.Status != partner.StatusPending {
		t.Errorf("new request status = %s, want PENDING", req.Status)
	}
	if req.SenderID != "alice" || req.ReceiverID != "bob" {
		t.Errorf("request endpoints = %s -> %s, want alice -> bob", req.SenderID, req.ReceiverID)
	}
}

func TestSendPartnerRequestUnknownUsers(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPartnerFixture("alice")

	if _, err := svc.SendPartnerRequest(ctx, "ghost", "alice"); !apperr.IsNotFound(err) {
		t.Errorf("unknown sender: got %v, want not-found", err)
	}
	if _, err := svc.SendPartnerRequest(ctx, "alice", "ghost"); !apperr.IsNotFound(err) {
		t.Errorf("unknown receiver: got %v, want not-found", err)
	}
}

func TestSendPartnerRequestToSelf(t *testing.T) {
	ctx := context.Background()
	svc, requests, _ := newPartnerFixture("alice")

	_, err := svc.SendPartnerRequest(ctx, "alice", "alice")
	if err == nil || apperr.KindOf(err) != apperr.KindInvalid {
		t.Fatalf("self request: got %v, want invalid", err)
	}
	if sent, _ := requests.FindBySender(ctx, "alice"); len(sent) != 0 {
		t.Errorf("self request left %d requests behind", len(sent))
	}
}

func TestSendPartnerRequestWhilePartnered(t *testing.T) {
	ctx := context.Background()
	svc, requests, _ := newPartnerFixture("alice", "bob", "carol")

	mustPair(t, svc, "alice", "bob")

	_, err := svc.SendPartnerRequest(ctx, "alice", "carol")
	if err == nil || err.Error() != "you already have a partner" {
		t.Fatalf("partnered sender: got %v, want 'you already have a partner'", err)
	}
	if sent, _ := requests.FindBySender(ctx, "alice"); len(sent) != 1 {
		t.Errorf("failed send created a request; sender has %d", len(sent))
	}

	_, err = svc.SendPartnerRequest(ctx, "carol", "bob")
	if err == nil || err.Error() != "user already has a partner" {
		t.Fatalf("partnered receiver: got %v, want 'user already has a partner'", err)
	}
}

func TestSendPartnerRequestDuplicatePending(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPartnerFixture("alice", "bob", "carol")

	if _, err := svc.SendPartnerRequest(ctx, "alice", "bob"); err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	// Same pair is blocked in both directions while the first is pending.
	if _, err := svc.SendPartnerRequest(ctx, "alice", "bob"); err == nil {
		t.Error("duplicate request in same direction was allowed")
	}
	if _, err := svc.SendPartnerRequest(ctx, "bob", "alice"); err == nil {
		t.Error("duplicate request in reverse direction was allowed")
	}

	// A different pair sharing one endpoint is fine.
	if _, err := svc.SendPartnerRequest(ctx, "carol", "bob"); err != nil {
		t.Errorf("request from a third user was blocked: %v", err)
	}
}

func TestResendAfterRejection(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPartnerFixture("alice", "bob")

	first, err := svc.SendPartnerRequest(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := svc.RespondToPartnerRequest(ctx, first.ID, false, "bob"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	second, err := svc.SendPartnerRequest(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("resend after rejection failed: %v", err)
	}
	if second.ID == first.ID {
		t.Error("resend reused the rejected request")
	}
}

func TestAcceptCreatesPartnership(t *testing.T) {
	ctx := context.Background()
	svc, _, partnerships := newPartnerFixture("alice", "bob")

	req, err := svc.SendPartnerRequest(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	updated, err := svc.RespondToPartnerRequest(ctx, req.ID, true, "bob")
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if updated.Status != partner.StatusAccepted {
		t.Errorf("accepted request status = %s", updated.Status)
	}

	p, err := partnerships.FindByPair(ctx, "bob", "alice")
	if err != nil || p == nil {
		t.Fatalf("partnership not found after accept: %v", err)
	}
	if p.User1ID != "alice" || p.User2ID != "bob" {
		t.Errorf("partnership stored as (%s, %s), want sorted (alice, bob)", p.User1ID, p.User2ID)
	}

	// Resolution is symmetric.
	got, err := svc.GetPartner(ctx, "alice")
	if err != nil || got == nil || got.ID != "bob" {
		t.Errorf("GetPartner(alice) = %v, %v, want bob", got, err)
	}
	got, err = svc.GetPartner(ctx, "bob")
	if err != nil || got == nil || got.ID != "alice" {
		t.Errorf("GetPartner(bob) = %v, %v, want alice", got, err)
	}

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		linked, err := svc.ArePartners(ctx, pair[0], pair[1])
		if err != nil || !linked {
			t.Errorf("ArePartners(%s, %s) = %v, %v, want true", pair[0], pair[1], linked, err)
		}
	}
}

func TestRespondAuthorization(t *testing.T) {
	ctx := context.Background()
	svc, requests, _ := newPartnerFixture("alice", "bob", "carol")

	req, err := svc.SendPartnerRequest(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	// Only the receiver may respond; the sender cannot accept their own
	// request.
	for _, responder := range []string{"alice", "carol"} {
		if _, err := svc.RespondToPartnerRequest(ctx, req.ID, true, responder); err == nil {
			t.Errorf("responder %s was allowed to respond", responder)
		}
	}

	stored, _ := requests.FindByID(ctx, req.ID)
	if stored.Status != partner.StatusPending {
		t.Errorf("request status changed to %s after unauthorized responses", stored.Status)
	}
}

func TestRespondToMissingRequest(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPartnerFixture("alice")

	if _, err := svc.RespondToPartnerRequest(ctx, "nope", true, "alice"); !apperr.IsNotFound(err) {
		t.Errorf("missing request: got %v, want not-found", err)
	}
}

func TestRespondToTerminalRequest(t *testing.T) {
	ctx := context.Background()
	svc, requests, _ := newPartnerFixture("alice", "bob")

	req, err := svc.SendPartnerRequest(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := svc.RespondToPartnerRequest(ctx, req.ID, false, "bob"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	if _, err := svc.RespondToPartnerRequest(ctx, req.ID, true, "bob"); err == nil {
		t.Error("second response to a terminal request was allowed")
	}

	stored, _ := requests.FindByID(ctx, req.ID)
	if stored.Status != partner.StatusRejected {
		t.Errorf("terminal request status = %s, want REJECTED unchanged", stored.Status)
	}
}

func TestAcceptAfterConcurrentPairingForcesRejection(t *testing.T) {
	ctx := context.Background()
	svc, requests, partnerships := newPartnerFixture("alice", "bob", "carol")

	// Carol's request to Bob is still pending when Alice and Bob pair up.
	stale, err := svc.SendPartnerRequest(ctx, "carol", "bob")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	mustPair(t, svc, "alice", "bob")

	_, err = svc.RespondToPartnerRequest(ctx, stale.ID, true, "bob")
	if !apperr.IsConflict(err) {
		t.Fatalf("stale accept: got %v, want conflict", err)
	}

	stored, _ := requests.FindByID(ctx, stale.ID)
	if stored.Status != partner.StatusRejected {
		t.Errorf("stale request status = %s, want forced REJECTED", stored.Status)
	}

	// No second partnership appeared.
	if p, _ := partnerships.FindByPair(ctx, "carol", "bob"); p != nil {
		t.Error("conflicting accept still created a partnership")
	}
}

func TestGetPartnerWithoutPartnership(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPartnerFixture("alice")

	p, err := svc.GetPartner(ctx, "alice")
	if err != nil {
		t.Fatalf("GetPartner failed: %v", err)
	}
	if p != nil {
		t.Errorf("GetPartner for unpartnered user = %v, want nil", p)
	}

	has, err := svc.HasPartner(ctx, "alice")
	if err != nil || has {
		t.Errorf("HasPartner = %v, %v, want false", has, err)
	}
}

func TestGetPendingReceivedRequests(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newPartnerFixture("alice", "bob", "carol")

	fromAlice, err := svc.SendPartnerRequest(ctx, "alice", "carol")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := svc.SendPartnerRequest(ctx, "bob", "carol"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := svc.RespondToPartnerRequest(ctx, fromAlice.ID, false, "carol"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	pending, err := svc.GetPendingReceivedRequests(ctx, "carol")
	if err != nil {
		t.Fatalf("GetPendingReceivedRequests failed: %v", err)
	}
	if len(pending) != 1 || pending[0].SenderID != "bob" {
		t.Errorf("pending = %+v, want only the request from bob", pending)
	}

	all, err := svc.GetReceivedRequests(ctx, "carol")
	if err != nil {
		t.Fatalf("GetReceivedRequests failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("received = %d requests, want 2", len(all))
	}
}

// mustPair links two users through the full request/accept flow.
func mustPair(t *testing.T, svc *PartnerService, a, b string) {
	t.Helper()
	req, err := svc.SendPartnerRequest(context.Background(), a, b)
	if err != nil {
		t.Fatalf("pairing %s and %s: send failed: %v", a, b, err)
	}
	if _, err := svc.RespondToPartnerRequest(context.Background(), req.ID, true, b); err != nil {
		t.Fatalf("pairing %s and %s: accept failed: %v", a, b, err)
	}
}
