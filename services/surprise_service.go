package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/surprise"
)

type SurpriseService struct {
	surprises SurpriseRepository
}

func NewSurpriseService(surprises SurpriseRepository) *SurpriseService {
	return &SurpriseService{surprises: surprises}
}

func (s *SurpriseService) CreateSurprise(ctx context.Context, creatorID string, req *surprise.CreateRequest) (*surprise.Surprise, error) {
	if req.Title == "" {
		return nil, apperr.Invalid("title is required")
	}

	sp := &surprise.Surprise{
		ID:              uuid.New().String(),
		CreatorID:       creatorID,
		Title:           req.Title,
		Description:     req.Description,
		UnlockCondition: req.UnlockCondition,
		ContentURL:      req.ContentURL,
		ContentType:     surprise.ParseContentType(req.ContentType),
		CreatedAt:       time.Now(),
	}
	if err := s.surprises.Save(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *SurpriseService) GetAllSurprises(ctx context.Context) ([]*surprise.Surprise, error) {
	return s.surprises.FindAll(ctx)
}

func (s *SurpriseService) GetUnlockedSurprises(ctx context.Context) ([]*surprise.Surprise, error) {
	return s.surprises.FindUnlocked(ctx)
}

func (s *SurpriseService) GetLockedSurprises(ctx context.Context) ([]*surprise.Surprise, error) {
	return s.surprises.FindLocked(ctx)
}

func (s *SurpriseService) GetSurprisesByCreator(ctx context.Context, creatorID string) ([]*surprise.Surprise, error) {
	return s.surprises.FindByCreator(ctx, creatorID)
}

// UnlockSurprise is idempotent: unlocking an already-unlocked surprise
// returns it unchanged.
func (s *SurpriseService) UnlockSurprise(ctx context.Context, id string) (*surprise.Surprise, error) {
	sp, err := s.getSurprise(ctx, id)
	if err != nil {
		return nil, err
	}

	if sp.IsUnlocked {
		log.Printf("SurpriseService: surprise %s is already unlocked", id)
		return sp, nil
	}

	now := time.Now()
	sp.IsUnlocked = true
	sp.UnlockDate = &now
	if err := s.surprises.Save(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *SurpriseService) UpdateSurprise(ctx context.Context, id string, req *surprise.UpdateRequest) (*surprise.Surprise, error) {
	sp, err := s.getSurprise(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		sp.Title = *req.Title
	}
	if req.Description != nil {
		sp.Description = *req.Description
	}
	if req.UnlockCondition != nil {
		sp.UnlockCondition = *req.UnlockCondition
	}
	if req.ContentURL != nil {
		sp.ContentURL = *req.ContentURL
	}
	if req.ContentType != nil {
		sp.ContentType = surprise.ParseContentType(*req.ContentType)
	}

	if err := s.surprises.Save(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *SurpriseService) DeleteSurprise(ctx context.Context, id string) error {
	return s.surprises.Delete(ctx, id)
}

func (s *SurpriseService) GetStats(ctx context.Context) (*surprise.Stats, error) {
	total, err := s.surprises.Count(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.surprises.CountUnlocked(ctx)
	if err != nil {
		return nil, err
	}
	return &surprise.Stats{Total: total, Unlocked: unlocked}, nil
}

func (s *SurpriseService) getSurprise(ctx context.Context, id string) (*surprise.Surprise, error) {
	sp, err := s.surprises.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, apperr.NotFound("surprise not found with id: %s", id)
	}
	return sp, nil
}
