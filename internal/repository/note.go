package repository

import (
	"context"

	"edutrade/internal/logger"
	"edutrade/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type NoteRepository struct {
	db *pgxpool.Pool
}

func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db}
}

var noteColumns = []string{
	"n.id", "n.title", "n.description", "n.subject", "n.course", "n.semester",
	"n.file_path", "n.downloads", "n.average_rating", "n.uploaded_by",
	"n.created_at", "u.id", "u.name", "u.email",
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	logger.Log.Info("saving note (repo)",
		zap.String("title", note.Title), zap.String("uploaded_by", note.UploadedByID.String()))
	query := `
	INSERT INTO notes (title, description, subject, course, semester, file_path, uploaded_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, downloads, average_rating, created_at`
	err := r.db.QueryRow(ctx, query,
		note.Title,
		note.Description,
		note.Subject,
		note.Course,
		note.Semester,
		note.FilePath,
		note.UploadedByID,
	).Scan(&note.ID, &note.Downloads, &note.AverageRating, &note.CreatedAt)
	if err != nil {
		logger.Log.Error("failed to save note (repo)", zap.Error(err))
	}
	return err
}

func (r *NoteRepository) List(ctx context.Context, f models.NoteFilter) ([]*models.Note, error) {
	qb := psql.Select(noteColumns...).
		From("notes n").
		Join("users u ON u.id = n.uploaded_by").
		OrderBy("n.created_at DESC")

	if f.Search != "" {
		like := "%" + f.Search + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"n.title": like},
			sq.ILike{"n.description": like},
		})
	}
	if f.Subject != "" {
		qb = qb.Where(sq.Eq{"n.subject": f.Subject})
	}
	if f.Course != "" {
		qb = qb.Where(sq.Eq{"n.course": f.Course})
	}
	if f.Semester != nil {
		qb = qb.Where(sq.Eq{"n.semester": *f.Semester})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Log.Error("failed to list notes (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var (
			n     models.Note
			owner models.PublicProfile
		)
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Description, &n.Subject, &n.Course, &n.Semester,
			&n.FilePath, &n.Downloads, &n.AverageRating, &n.UploadedByID,
			&n.CreatedAt, &owner.ID, &owner.Name, &owner.Email,
		); err != nil {
			logger.Log.Error("failed to scan note (repo)", zap.Error(err))
			return nil, err
		}
		n.UploadedBy = &owner
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// GetByID returns the full note, reviews included.
func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	query, args, err := psql.Select(noteColumns...).
		From("notes n").
		Join("users u ON u.id = n.uploaded_by").
		Where(sq.Eq{"n.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		n     models.Note
		owner models.PublicProfile
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&n.ID, &n.Title, &n.Description, &n.Subject, &n.Course, &n.Semester,
		&n.FilePath, &n.Downloads, &n.AverageRating, &n.UploadedByID,
		&n.CreatedAt, &owner.ID, &owner.Name, &owner.Email,
	)
	if err != nil {
		return nil, err
	}
	n.UploadedBy = &owner

	reviews, err := r.getReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	n.Reviews = reviews
	return &n, nil
}

func (r *NoteRepository) getReviews(ctx context.Context, noteID uuid.UUID) ([]models.Review, error) {
	rows, err := r.db.Query(ctx, `
	SELECT rv.id, rv.note_id, rv.user_id, rv.rating, rv.comment, rv.created_at,
	       u.id, u.name, u.email
	FROM note_reviews rv
	JOIN users u ON u.id = rv.user_id
	WHERE rv.note_id = $1
	ORDER BY rv.created_at ASC`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var (
			rv models.Review
			u  models.PublicProfile
		)
		if err := rows.Scan(
			&rv.ID, &rv.NoteID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
			&u.ID, &u.Name, &u.Email,
		); err != nil {
			return nil, err
		}
		rv.User = &u
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// AddReview appends a review and recomputes the stored average rating in
// the same transaction, so the persisted value always equals the mean
// over all reviews.
func (r *NoteRepository) AddReview(ctx context.Context, review *models.Review) error {
	logger.Log.Info("adding review (repo)",
		zap.String("note_id", review.NoteID.String()), zap.Int("rating", review.Rating))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
	INSERT INTO note_reviews (note_id, user_id, rating, comment)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at`,
		review.NoteID, review.UserID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		logger.Log.Error("failed to insert review (repo)", zap.Error(err))
		return err
	}

	_, err = tx.Exec(ctx, `
	UPDATE notes
	SET average_rating = (SELECT AVG(rating) FROM note_reviews WHERE note_id = $1)
	WHERE id = $1`, review.NoteID)
	if err != nil {
		logger.Log.Error("failed to recompute average rating (repo)", zap.Error(err))
		return err
	}

	return tx.Commit(ctx)
}

// IncrementDownloads bumps the counter and returns the new value.
func (r *NoteRepository) IncrementDownloads(ctx context.Context, id uuid.UUID) (int, error) {
	var downloads int
	err := r.db.QueryRow(ctx, `
	UPDATE notes SET downloads = downloads + 1 WHERE id = $1
	RETURNING downloads`, id).Scan(&downloads)
	if err != nil {
		logger.Log.Error("failed to increment downloads (repo)", zap.Error(err))
	}
	return downloads, err
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Log.Info("deleting note (repo)", zap.String("note_id", id.String()))
	_, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("failed to delete note (repo)", zap.Error(err))
	}
	return err
}
