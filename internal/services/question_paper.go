package services

import (
	"context"
	"errors"
	"os"

	"edutrade/internal/logger"
	"edutrade/internal/models"
	"edutrade/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type QuestionPaperService struct {
	repo  QuestionPaperRepo
	files *storage.FileStore
}

func NewQuestionPaperService(repo QuestionPaperRepo, files *storage.FileStore) *QuestionPaperService {
	return &QuestionPaperService{repo: repo, files: files}
}

type QuestionPaperRepo interface {
	Create(ctx context.Context, paper *models.QuestionPaper) error
	List(ctx context.Context, f models.QuestionPaperFilter) ([]*models.QuestionPaper, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.QuestionPaper, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func (s *QuestionPaperService) Create(ctx context.Context, paper *models.QuestionPaper) error {
	return s.repo.Create(ctx, paper)
}

func (s *QuestionPaperService) List(ctx context.Context, f models.QuestionPaperFilter) ([]*models.QuestionPaper, error) {
	return s.repo.List(ctx, f)
}

func (s *QuestionPaperService) GetByID(ctx context.Context, id uuid.UUID) (*models.QuestionPaper, error) {
	paper, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return paper, nil
}

func (s *QuestionPaperService) Download(ctx context.Context, id uuid.UUID) (*models.QuestionPaper, string, error) {
	paper, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	path, err := s.files.Resolve(paper.FilePath)
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(path); err != nil {
		logger.Log.Warn("question paper file missing on disk",
			zap.String("paper_id", id.String()), zap.String("path", path))
		return nil, "", ErrFileMissing
	}

	return paper, path, nil
}

func (s *QuestionPaperService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	paper, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if paper.UploadedByID != callerID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if paper.FilePath != "" {
		if err := s.files.Remove(paper.FilePath); err != nil {
			logger.Log.Warn("failed to remove question paper file",
				zap.String("file", paper.FilePath), zap.Error(err))
		}
	}
	return nil
}
