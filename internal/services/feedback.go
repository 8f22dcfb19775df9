package services

import (
	"context"
	"errors"

	"edutrade/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FeedbackService struct {
	repo FeedbackRepo
}

func NewFeedbackService(repo FeedbackRepo) *FeedbackService {
	return &FeedbackService{repo: repo}
}

type FeedbackRepo interface {
	Create(ctx context.Context, fb *models.Feedback) error
	List(ctx context.Context) ([]*models.Feedback, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error)
	Update(ctx context.Context, fb *models.Feedback) error
	Delete(ctx context.Context, id uuid.UUID) error
}

func (s *FeedbackService) Create(ctx context.Context, fb *models.Feedback) error {
	return s.repo.Create(ctx, fb)
}

func (s *FeedbackService) List(ctx context.Context) ([]*models.Feedback, error) {
	return s.repo.List(ctx)
}

func (s *FeedbackService) GetByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	fb, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) Update(ctx context.Context, callerID, id uuid.UUID, rating int, comment string) (*models.Feedback, error) {
	fb, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fb.UserID != callerID {
		return nil, ErrNotOwner
	}

	fb.Rating = rating
	fb.Comment = comment
	if err := s.repo.Update(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	fb, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if fb.UserID != callerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}
