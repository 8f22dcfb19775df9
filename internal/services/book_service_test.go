package services

import (
	"context"
	"testing"

	"edutrade/internal/models"
	"edutrade/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type mockBookRepo struct {
	books map[uuid.UUID]*models.Book
}

func newMockBookRepo() *mockBookRepo {
	return &mockBookRepo{books: make(map[uuid.UUID]*models.Book)}
}

func (m *mockBookRepo) Create(_ context.Context, book *models.Book) error {
	book.ID = uuid.New()
	m.books[book.ID] = book
	return nil
}

func (m *mockBookRepo) List(_ context.Context, _ models.BookFilter) ([]*models.Book, error) {
	out := make([]*models.Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBookRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Book, error) {
	b, ok := m.books[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *b
	return &copied, nil
}

func (m *mockBookRepo) Update(_ context.Context, book *models.Book) error {
	if _, ok := m.books[book.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.books[book.ID] = book
	return nil
}

func (m *mockBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.books, id)
	return nil
}

func newTestBookService(t *testing.T, repo *mockBookRepo) *BookService {
	t.Helper()
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewBookService(repo, newMockUserRepo(), files)
}

func TestBookUpdate_MergesOnlyProvidedFields(t *testing.T) {
	repo := newMockBookRepo()
	svc := newTestBookService(t, repo)

	seller := uuid.New()
	book := &models.Book{
		Title:     "Calculus Vol 1",
		Author:    "Apostol",
		Price:     450,
		Condition: "good",
		Language:  "english",
		Location:  "Pune",
		SellerID:  seller,
	}
	require.NoError(t, svc.Create(context.Background(), book))

	newPrice := 300.0
	updated, err := svc.Update(context.Background(), seller, book.ID, &models.UpdateBookRequest{
		Price: &newPrice,
	}, "")
	require.NoError(t, err)

	require.Equal(t, 300.0, updated.Price)
	require.Equal(t, "Calculus Vol 1", updated.Title)
	require.Equal(t, "good", updated.Condition)
}

func TestBookUpdate_NotOwner(t *testing.T) {
	repo := newMockBookRepo()
	svc := newTestBookService(t, repo)

	book := &models.Book{Title: "Physics", SellerID: uuid.New()}
	require.NoError(t, svc.Create(context.Background(), book))

	title := "Hijacked"
	_, err := svc.Update(context.Background(), uuid.New(), book.ID, &models.UpdateBookRequest{
		Title: &title,
	}, "")
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestBookDelete_NotOwner(t *testing.T) {
	repo := newMockBookRepo()
	svc := newTestBookService(t, repo)

	book := &models.Book{Title: "Physics", SellerID: uuid.New()}
	require.NoError(t, svc.Create(context.Background(), book))

	err := svc.Delete(context.Background(), uuid.New(), book.ID)
	require.ErrorIs(t, err, ErrNotOwner)
	require.Len(t, repo.books, 1)
}

func TestBookDelete_Owner(t *testing.T) {
	repo := newMockBookRepo()
	svc := newTestBookService(t, repo)

	seller := uuid.New()
	book := &models.Book{Title: "Physics", SellerID: seller}
	require.NoError(t, svc.Create(context.Background(), book))

	require.NoError(t, svc.Delete(context.Background(), seller, book.ID))
	require.Empty(t, repo.books)
}

func TestBookGetByID_NotFound(t *testing.T) {
	svc := newTestBookService(t, newMockBookRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestContactSeller(t *testing.T) {
	repo := newMockBookRepo()
	users := newMockUserRepo()
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := NewBookService(repo, users, files)

	seller := users.add(&models.User{Name: "Seller", Email: "seller@example.com", Phone: "9876543210"})
	book := &models.Book{Title: "Algorithms", SellerID: seller.ID}
	require.NoError(t, svc.Create(context.Background(), book))

	got, contact, err := svc.ContactSeller(context.Background(), book.ID)
	require.NoError(t, err)
	require.Equal(t, "Algorithms", got.Title)
	require.Equal(t, "9876543210", contact.Phone)
}
