package services

import (
	"context"
	"testing"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/user"
)

func TestRegisterOrUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	created, err := svc.RegisterOrUpdate(ctx, "clerk_1", &user.RegisterRequest{Email: "a@example.com", Name: "Alice"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created.Role != user.RolePartner {
		t.Errorf("new user role = %s, want PARTNER", created.Role)
	}

	// Same identity token updates in place instead of creating a second
	// record.
	updated, err := svc.RegisterOrUpdate(ctx, "clerk_1", &user.RegisterRequest{Email: "a@example.com", Name: "Alice B."})
	if err != nil {
		t.Fatalf("repeat register failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("repeat register created a new user %s", updated.ID)
	}
	if updated.Name != "Alice B." {
		t.Errorf("name = %q, want updated", updated.Name)
	}

	all, _ := svc.ListAll(ctx)
	if len(all) != 1 {
		t.Errorf("user count = %d, want 1", len(all))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	if _, err := svc.RegisterOrUpdate(ctx, "clerk_1", &user.RegisterRequest{Email: "a@example.com", Name: "Alice"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.RegisterOrUpdate(ctx, "clerk_2", &user.RegisterRequest{Email: "a@example.com", Name: "Imposter"})
	if err == nil || apperr.KindOf(err) != apperr.KindInvalid {
		t.Fatalf("duplicate email: got %v, want invalid", err)
	}
}

func TestGetByClerkIDMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	if _, err := svc.GetByClerkID(ctx, "nope"); !apperr.IsNotFound(err) {
		t.Errorf("missing user: got %v, want not-found", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	if _, err := svc.RegisterOrUpdate(ctx, "clerk_1", &user.RegisterRequest{Email: "a@example.com", Name: "Alice"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, "clerk_1", &user.UpdateProfileRequest{}); err == nil {
		t.Error("empty update was allowed")
	}

	url := "https://cdn.example.com/alice.jpg"
	updated, err := svc.UpdateProfile(ctx, "clerk_1", &user.UpdateProfileRequest{ProfileImageURL: &url})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.ProfileImageURL != url {
		t.Errorf("profile image = %q", updated.ProfileImageURL)
	}
	if updated.Name != "Alice" {
		t.Errorf("name changed to %q on image-only update", updated.Name)
	}
}

func TestSearchAvailableExcludesCaller(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(
		&user.User{ID: "u1", ClerkID: "c1", Name: "Sam", Email: "sam@example.com"},
		&user.User{ID: "u2", ClerkID: "c2", Name: "Samantha", Email: "samantha@example.com"},
		&user.User{ID: "u3", ClerkID: "c3", Name: "Riley", Email: "riley@example.com"},
	)
	svc := NewUserService(repo)

	results, err := svc.SearchAvailable(ctx, "Sam", "u1")
	if err != nil {
		t.Fatalf("SearchAvailable failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "u2" {
		t.Errorf("results = %+v, want only u2", results)
	}
}
