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

type NoteService struct {
	repo  NoteRepo
	files *storage.FileStore
}

func NewNoteService(repo NoteRepo, files *storage.FileStore) *NoteService {
	return &NoteService{repo: repo, files: files}
}

type NoteRepo interface {
	Create(ctx context.Context, note *models.Note) error
	List(ctx context.Context, f models.NoteFilter) ([]*models.Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error)
	AddReview(ctx context.Context, review *models.Review) error
	IncrementDownloads(ctx context.Context, id uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func (s *NoteService) Create(ctx context.Context, note *models.Note) error {
	return s.repo.Create(ctx, note)
}

func (s *NoteService) List(ctx context.Context, f models.NoteFilter) ([]*models.Note, error) {
	return s.repo.List(ctx, f)
}

func (s *NoteService) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return note, nil
}

// Download resolves the stored file and bumps the download counter before
// the handler streams the bytes. The returned note carries the updated count.
func (s *NoteService) Download(ctx context.Context, id uuid.UUID) (*models.Note, string, error) {
	note, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	path, err := s.files.Resolve(note.FilePath)
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(path); err != nil {
		logger.Log.Warn("note file missing on disk",
			zap.String("note_id", id.String()), zap.String("path", path))
		return nil, "", ErrFileMissing
	}

	downloads, err := s.repo.IncrementDownloads(ctx, id)
	if err != nil {
		return nil, "", err
	}
	note.Downloads = downloads

	return note, path, nil
}

// AddReview appends a review for the caller and returns the note with its
// recomputed average rating. A user may review the same note repeatedly;
// every review counts toward the mean.
func (s *NoteService) AddReview(ctx context.Context, noteID, userID uuid.UUID, rating int, comment string) (*models.Note, error) {
	if _, err := s.GetByID(ctx, noteID); err != nil {
		return nil, err
	}

	review := &models.Review{
		NoteID:  noteID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.repo.AddReview(ctx, review); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, noteID)
}

func (s *NoteService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	note, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if note.UploadedByID != callerID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if note.FilePath != "" {
		if err := s.files.Remove(note.FilePath); err != nil {
			logger.Log.Warn("failed to remove note file",
				zap.String("file", note.FilePath), zap.Error(err))
		}
	}
	return nil
}
