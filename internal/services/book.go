package services

import (
	"context"
	"errors"

	"edutrade/internal/logger"
	"edutrade/internal/models"
	"edutrade/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookService struct {
	repo  BookRepo
	users UserRepo
	files *storage.FileStore
}

func NewBookService(repo BookRepo, users UserRepo, files *storage.FileStore) *BookService {
	return &BookService{repo: repo, users: users, files: files}
}

type BookRepo interface {
	Create(ctx context.Context, book *models.Book) error
	List(ctx context.Context, f models.BookFilter) ([]*models.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

func (s *BookService) Create(ctx context.Context, book *models.Book) error {
	return s.repo.Create(ctx, book)
}

func (s *BookService) List(ctx context.Context, f models.BookFilter) ([]*models.Book, error) {
	return s.repo.List(ctx, f)
}

func (s *BookService) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

// authorize is the single ownership check for book mutations.
func (s *BookService) authorize(book *models.Book, callerID uuid.UUID) error {
	if book.SellerID != callerID {
		return ErrNotOwner
	}
	return nil
}

// Update merges the provided fields into the caller's listing. When a new
// image was uploaded its stored URL is passed in newImage and the previous
// file is removed after the row is updated.
func (s *BookService) Update(ctx context.Context, callerID, id uuid.UUID, input *models.UpdateBookRequest, newImage string) (*models.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(book, callerID); err != nil {
		return nil, err
	}

	oldImage := ""
	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Price != nil {
		book.Price = *input.Price
	}
	if input.Condition != nil {
		book.Condition = *input.Condition
	}
	if input.Language != nil {
		book.Language = *input.Language
	}
	if input.Location != nil {
		book.Location = *input.Location
	}
	if input.UpiID != nil {
		book.UpiID = *input.UpiID
	}
	if input.Phone != nil {
		book.Phone = *input.Phone
	}
	if input.Edition != nil {
		book.Edition = *input.Edition
	}
	if input.Pages != nil {
		book.Pages = input.Pages
	}
	if input.Category != nil {
		book.Category = *input.Category
	}
	if newImage != "" {
		oldImage = book.Image
		book.Image = newImage
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	if oldImage != "" {
		if err := s.files.Remove(oldImage); err != nil {
			logger.Log.Warn("failed to remove replaced image",
				zap.String("image", oldImage), zap.Error(err))
		}
	}

	return book, nil
}

func (s *BookService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(book, callerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if book.Image != "" {
		if err := s.files.Remove(book.Image); err != nil {
			logger.Log.Warn("failed to remove book image",
				zap.String("image", book.Image), zap.Error(err))
		}
	}
	return nil
}

// ContactSeller resolves a listing plus the seller's contact phone for
// the message endpoint.
func (s *BookService) ContactSeller(ctx context.Context, id uuid.UUID) (*models.Book, *models.User, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	seller, err := s.users.GetByID(ctx, book.SellerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return book, seller, nil
}
