package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"edutrade/internal/models"
	"edutrade/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type mockNoteRepo struct {
	notes   map[uuid.UUID]*models.Note
	reviews map[uuid.UUID][]*models.Review
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{
		notes:   make(map[uuid.UUID]*models.Note),
		reviews: make(map[uuid.UUID][]*models.Review),
	}
}

func (m *mockNoteRepo) Create(_ context.Context, note *models.Note) error {
	note.ID = uuid.New()
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteRepo) List(_ context.Context, _ models.NoteFilter) ([]*models.Note, error) {
	out := make([]*models.Note, 0, len(m.notes))
	for _, n := range m.notes {
		out = append(out, n)
	}
	return out, nil
}

func (m *mockNoteRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *n
	copied.Reviews = nil
	for _, r := range m.reviews[id] {
		copied.Reviews = append(copied.Reviews, *r)
	}
	return &copied, nil
}

func (m *mockNoteRepo) AddReview(_ context.Context, review *models.Review) error {
	n, ok := m.notes[review.NoteID]
	if !ok {
		return pgx.ErrNoRows
	}
	review.ID = uuid.New()
	m.reviews[review.NoteID] = append(m.reviews[review.NoteID], review)

	sum := 0
	for _, r := range m.reviews[review.NoteID] {
		sum += r.Rating
	}
	n.AverageRating = float64(sum) / float64(len(m.reviews[review.NoteID]))
	return nil
}

func (m *mockNoteRepo) IncrementDownloads(_ context.Context, id uuid.UUID) (int, error) {
	n, ok := m.notes[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	n.Downloads++
	return n.Downloads, nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.notes, id)
	delete(m.reviews, id)
	return nil
}

func TestAddReview_RecomputesAverage(t *testing.T) {
	repo := newMockNoteRepo()
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := NewNoteService(repo, files)

	note := &models.Note{Title: "DBMS Unit 3", Subject: "DBMS", UploadedByID: uuid.New()}
	require.NoError(t, svc.Create(context.Background(), note))

	got, err := svc.AddReview(context.Background(), note.ID, uuid.New(), 5, "very clear")
	require.NoError(t, err)
	require.Equal(t, 5.0, got.AverageRating)
	require.Len(t, got.Reviews, 1)

	got, err = svc.AddReview(context.Background(), note.ID, uuid.New(), 2, "missing unit 4")
	require.NoError(t, err)
	require.Equal(t, 3.5, got.AverageRating)
	require.Len(t, got.Reviews, 2)
}

func TestAddReview_NoteNotFound(t *testing.T) {
	repo := newMockNoteRepo()
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := NewNoteService(repo, files)

	_, err = svc.AddReview(context.Background(), uuid.New(), uuid.New(), 4, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDownload_IncrementsCounter(t *testing.T) {
	repo := newMockNoteRepo()
	base := t.TempDir()
	files, err := storage.NewFileStore(base)
	require.NoError(t, err)
	svc := NewNoteService(repo, files)

	require.NoError(t, os.MkdirAll(filepath.Join(base, "notes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "notes", "abc.pdf"), []byte("%PDF-1.4"), 0o644))

	note := &models.Note{Title: "OS Notes", FilePath: "/uploads/notes/abc.pdf", UploadedByID: uuid.New()}
	require.NoError(t, svc.Create(context.Background(), note))

	got, path, err := svc.Download(context.Background(), note.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Downloads)
	require.FileExists(t, path)

	got, _, err = svc.Download(context.Background(), note.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Downloads)
}

func TestDownload_FileMissingOnDisk(t *testing.T) {
	repo := newMockNoteRepo()
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := NewNoteService(repo, files)

	note := &models.Note{Title: "OS Notes", FilePath: "/uploads/notes/gone.pdf", UploadedByID: uuid.New()}
	require.NoError(t, svc.Create(context.Background(), note))

	_, _, err = svc.Download(context.Background(), note.ID)
	require.ErrorIs(t, err, ErrFileMissing)
}

func TestNoteDelete_NotOwner(t *testing.T) {
	repo := newMockNoteRepo()
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := NewNoteService(repo, files)

	note := &models.Note{Title: "OS Notes", UploadedByID: uuid.New()}
	require.NoError(t, svc.Create(context.Background(), note))

	err = svc.Delete(context.Background(), uuid.New(), note.ID)
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestNoteDelete_RemovesFile(t *testing.T) {
	repo := newMockNoteRepo()
	base := t.TempDir()
	files, err := storage.NewFileStore(base)
	require.NoError(t, err)
	svc := NewNoteService(repo, files)

	require.NoError(t, os.MkdirAll(filepath.Join(base, "notes"), 0o755))
	onDisk := filepath.Join(base, "notes", "abc.pdf")
	require.NoError(t, os.WriteFile(onDisk, []byte("%PDF-1.4"), 0o644))

	owner := uuid.New()
	note := &models.Note{Title: "OS Notes", FilePath: "/uploads/notes/abc.pdf", UploadedByID: owner}
	require.NoError(t, svc.Create(context.Background(), note))

	require.NoError(t, svc.Delete(context.Background(), owner, note.ID))
	require.NoFileExists(t, onDisk)
	require.Empty(t, repo.notes)
}
