package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/wish"
)

type WishService struct {
	wishes WishRepository
}

func NewWishService(wishes WishRepository) *WishService {
	return &WishService{wishes: wishes}
}

func (s *WishService) CreateWish(ctx context.Context, creatorID string, req *wish.CreateRequest) (*wish.Wish, error) {
	if req.Title == "" {
		return nil, apperr.Invalid("title is required")
	}

	w := &wish.Wish{
		ID:          uuid.New().String(),
		CreatorID:   creatorID,
		Title:       req.Title,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Category:    wish.ParseCategory(req.Category),
		Status:      wish.StatusPending,
		CreatedAt:   time.Now(),
	}
	if err := s.wishes.Save(ctx, w); err != nil {
		return nil, err
	}

	log.Printf("WishService: created wish %s (%s)", w.ID, w.Title)
	return w, nil
}

func (s *WishService) GetAllWishes(ctx context.Context) ([]*wish.Wish, error) {
	return s.wishes.FindAll(ctx)
}

func (s *WishService) GetWishesByStatus(ctx context.Context, status wish.Status) ([]*wish.Wish, error) {
	return s.wishes.FindByStatus(ctx, status)
}

func (s *WishService) GetWishesByCategory(ctx context.Context, category wish.Category) ([]*wish.Wish, error) {
	return s.wishes.FindByCategory(ctx, category)
}

// UpdateWishStatus moves a wish to the given status; FULFILLED stamps the
// fulfillment time and keeps the optional note.
func (s *WishService) UpdateWishStatus(ctx context.Context, id string, status wish.Status, fulfillmentNote string) (*wish.Wish, error) {
	w, err := s.getWish(ctx, id)
	if err != nil {
		return nil, err
	}

	w.Status = status
	if fulfillmentNote != "" {
		w.FulfillmentNote = fulfillmentNote
	}
	if status == wish.StatusFulfilled {
		now := time.Now()
		w.FulfilledAt = &now
	}

	if err := s.wishes.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WishService) UpdateWish(ctx context.Context, id string, req *wish.UpdateRequest) (*wish.Wish, error) {
	w, err := s.getWish(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.Description != nil {
		w.Description = *req.Description
	}
	if req.PhotoURL != nil {
		w.PhotoURL = *req.PhotoURL
	}
	if req.Category != nil {
		w.Category = wish.ParseCategory(*req.Category)
	}

	if err := s.wishes.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WishService) DeleteWish(ctx context.Context, id string) error {
	return s.wishes.Delete(ctx, id)
}

func (s *WishService) GetStats(ctx context.Context) (*wish.Stats, error) {
	total, err := s.wishes.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.wishes.CountByStatus(ctx, wish.StatusPending)
	if err != nil {
		return nil, err
	}
	fulfilled, err := s.wishes.CountByStatus(ctx, wish.StatusFulfilled)
	if err != nil {
		return nil, err
	}
	cancelled, err := s.wishes.CountByStatus(ctx, wish.StatusCancelled)
	if err != nil {
		return nil, err
	}
	return &wish.Stats{Total: total, Pending: pending, Fulfilled: fulfilled, Cancelled: cancelled}, nil
}

func (s *WishService) getWish(ctx context.Context, id string) (*wish.Wish, error) {
	w, err := s.wishes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperr.NotFound("wish not found with id: %s", id)
	}
	return w, nil
}
