package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/photomoment"
)

type PhotoMomentService struct {
	photos PhotoMomentRepository
}

func NewPhotoMomentService(photos PhotoMomentRepository) *PhotoMomentService {
	return &PhotoMomentService{photos: photos}
}

func (s *PhotoMomentService) CreatePhotoMoment(ctx context.Context, uploaderID string, req *photomoment.CreateRequest) (*photomoment.PhotoMoment, error) {
	if req.PhotoURL == "" {
		return nil, apperr.Invalid("photoUrl is required")
	}

	p := &photomoment.PhotoMoment{
		ID:         uuid.New().String(),
		UploaderID: uploaderID,
		PhotoURL:   req.PhotoURL,
		Caption:    req.Caption,
		Location:   req.Location,
		TakenAt:    req.TakenAt,
		UploadedAt: time.Now(),
	}
	if err := s.photos.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PhotoMomentService) GetAllPhotoMoments(ctx context.Context) ([]*photomoment.PhotoMoment, error) {
	return s.photos.FindAll(ctx)
}

func (s *PhotoMomentService) GetFavorites(ctx context.Context) ([]*photomoment.PhotoMoment, error) {
	return s.photos.FindFavorites(ctx)
}

func (s *PhotoMomentService) ToggleFavorite(ctx context.Context, id string) (*photomoment.PhotoMoment, error) {
	p, err := s.photos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("photo moment not found with id: %s", id)
	}

	p.IsFavorite = !p.IsFavorite
	if err := s.photos.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PhotoMomentService) DeletePhotoMoment(ctx context.Context, id string) error {
	return s.photos.Delete(ctx, id)
}

func (s *PhotoMomentService) GetStats(ctx context.Context) (*photomoment.Stats, error) {
	total, err := s.photos.Count(ctx)
	if err != nil {
		return nil, err
	}
	favorites, err := s.photos.CountFavorites(ctx)
	if err != nil {
		return nil, err
	}
	return &photomoment.Stats{Total: total, Favorites: favorites}, nil
}
