package services

import (
	"context"
	"testing"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/wish"
)

func TestCreateWish(t *testing.T) {
	ctx := context.Background()
	svc := NewWishService(newFakeWishRepo())

	w, err := svc.CreateWish(ctx, "alice", &wish.CreateRequest{
		Title:    "See the northern lights",
		Category: "TRAVEL",
	})
	if err != nil {
		t.Fatalf("CreateWish failed: %v", err)
	}
	if w.Status != wish.StatusPending {
		t.Errorf("new wish status = %s, want PENDING", w.Status)
	}
	if w.Category != wish.CategoryTravel {
		t.Errorf("category = %s, want TRAVEL", w.Category)
	}
}

func TestCreateWishRequiresTitle(t *testing.T) {
	ctx := context.Background()
	svc := NewWishService(newFakeWishRepo())

	_, err := svc.CreateWish(ctx, "alice", &wish.CreateRequest{})
	if err == nil || apperr.KindOf(err) != apperr.KindInvalid {
		t.Fatalf("empty title: got %v, want invalid", err)
	}
}

func TestCreateWishUnknownCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewWishService(newFakeWishRepo())

	w, err := svc.CreateWish(ctx, "alice", &wish.CreateRequest{Title: "x", Category: "SPACE_TRAVEL"})
	if err != nil {
		t.Fatalf("CreateWish failed: %v", err)
	}
	if w.Category != wish.CategoryOther {
		t.Errorf("unknown category mapped to %s, want OTHER", w.Category)
	}
}

func TestFulfillWish(t *testing.T) {
	ctx := context.Background()
	svc := NewWishService(newFakeWishRepo())

	w, err := svc.CreateWish(ctx, "alice", &wish.CreateRequest{Title: "picnic"})
	if err != nil {
		t.Fatalf("CreateWish failed: %v", err)
	}

	updated, err := svc.UpdateWishStatus(ctx, w.ID, wish.StatusFulfilled, "done at the lake")
	if err != nil {
		t.Fatalf("UpdateWishStatus failed: %v", err)
	}
	if updated.Status != wish.StatusFulfilled {
		t.Errorf("status = %s, want FULFILLED", updated.Status)
	}
	if updated.FulfilledAt == nil {
		t.Error("FulfilledAt not stamped")
	}
	if updated.FulfillmentNote != "done at the lake" {
		t.Errorf("note = %q", updated.FulfillmentNote)
	}
}

func TestUpdateMissingWish(t *testing.T) {
	ctx := context.Background()
	svc := NewWishService(newFakeWishRepo())

	if _, err := svc.UpdateWishStatus(ctx, "nope", wish.StatusCancelled, ""); !apperr.IsNotFound(err) {
		t.Errorf("missing wish: got %v, want not-found", err)
	}
}

func TestWishStats(t *testing.T) {
	ctx := context.Background()
	svc := NewWishService(newFakeWishRepo())

	a, _ := svc.CreateWish(ctx, "alice", &wish.CreateRequest{Title: "a"})
	b, _ := svc.CreateWish(ctx, "bob", &wish.CreateRequest{Title: "b"})
	if _, err := svc.CreateWish(ctx, "alice", &wish.CreateRequest{Title: "c"}); err != nil {
		t.Fatalf("CreateWish failed: %v", err)
	}

	if _, err := svc.UpdateWishStatus(ctx, a.ID, wish.StatusFulfilled, ""); err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}
	if _, err := svc.UpdateWishStatus(ctx, b.ID, wish.StatusCancelled, ""); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	want := wish.Stats{Total: 3, Pending: 1, Fulfilled: 1, Cancelled: 1}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}
