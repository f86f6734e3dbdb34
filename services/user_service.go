package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/user"
)

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

// RegisterOrUpdate creates the user on first registration and refreshes
// name/email on repeat calls with the same identity token.
func (s *UserService) RegisterOrUpdate(ctx context.Context, clerkID string, req *user.RegisterRequest) (*user.User, error) {
	existing, err := s.users.FindByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Name = req.Name
		existing.Email = req.Email
		existing.UpdatedAt = time.Now()
		if err := s.users.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if req.Email != "" {
		byEmail, err := s.users.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if byEmail != nil {
			return nil, apperr.Invalid("email address is already registered")
		}
	}

	now := time.Now()
	u := &user.User{
		ID:        uuid.New().String(),
		ClerkID:   clerkID,
		Email:     req.Email,
		Name:      req.Name,
		Role:      user.RolePartner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	log.Printf("UserService: registered user %s", u.ID)
	return u, nil
}

func (s *UserService) GetByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	u, err := s.users.FindByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found with ID: %s", id)
	}
	return u, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]*user.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) UpdateProfile(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	u, err := s.GetByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	if req.Name == nil && req.ProfileImageURL == nil {
		return nil, apperr.Invalid("at least one field (name or profileImageUrl) must be provided")
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.ProfileImageURL != nil {
		u.ProfileImageURL = *req.ProfileImageURL
	}
	u.UpdatedAt = time.Now()

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SearchAvailable matches user names by keyword, excluding the caller.
// Partnered users are filtered client-side against the partner endpoints.
func (s *UserService) SearchAvailable(ctx context.Context, keyword, currentUserID string) ([]*user.User, error) {
	matches, err := s.users.SearchByName(ctx, keyword)
	if err != nil {
		return nil, err
	}

	available := make([]*user.User, 0, len(matches))
	for _, u := range matches {
		if u.ID != currentUserID {
			available = append(available, u)
		}
	}
	return available, nil
}
