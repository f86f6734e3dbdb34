package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/memory"
)

type MemoryService struct {
	memories MemoryRepository
}

func NewMemoryService(memories MemoryRepository) *MemoryService {
	return &MemoryService{memories: memories}
}

func (s *MemoryService) CreateMemory(ctx context.Context, creatorID string, req *memory.CreateRequest) (*memory.Memory, error) {
	if req.Title == "" {
		return nil, apperr.Invalid("title is required")
	}

	isMilestone := false
	if req.IsMilestone != nil {
		isMilestone = *req.IsMilestone
	}

	now := time.Now()
	m := &memory.Memory{
		ID:          uuid.New().String(),
		CreatorID:   creatorID,
		Title:       req.Title,
		Description: req.Description,
		MemoryDate:  req.MemoryDate,
		Type:        memory.ParseType(req.Type),
		PhotoURLs:   req.PhotoURLs,
		Location:    req.Location,
		IsMilestone: isMilestone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.memories.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetTimeline returns all memories ordered by memory date.
func (s *MemoryService) GetTimeline(ctx context.Context, ascending bool) ([]*memory.Memory, error) {
	return s.memories.FindAllByDate(ctx, ascending)
}

func (s *MemoryService) GetMilestones(ctx context.Context) ([]*memory.Memory, error) {
	return s.memories.FindMilestones(ctx)
}

func (s *MemoryService) GetMemoriesByType(ctx context.Context, t memory.Type) ([]*memory.Memory, error) {
	return s.memories.FindByType(ctx, t)
}

func (s *MemoryService) UpdateMemory(ctx context.Context, id string, req *memory.UpdateRequest) (*memory.Memory, error) {
	m, err := s.memories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NotFound("memory not found with id: %s", id)
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.MemoryDate != nil {
		m.MemoryDate = *req.MemoryDate
	}
	if req.PhotoURLs != nil {
		m.PhotoURLs = req.PhotoURLs
	}
	if req.Location != nil {
		m.Location = *req.Location
	}
	if req.Type != nil {
		m.Type = memory.ParseType(*req.Type)
	}
	if req.IsMilestone != nil {
		m.IsMilestone = *req.IsMilestone
	}
	m.UpdatedAt = time.Now()

	if err := s.memories.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemoryService) DeleteMemory(ctx context.Context, id string) error {
	return s.memories.Delete(ctx, id)
}
