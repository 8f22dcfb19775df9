package repository

import (
	"context"

	"edutrade/internal/logger"
	"edutrade/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type FeedbackRepository struct {
	db *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	logger.Log.Info("saving feedback (repo)", zap.String("user_id", fb.UserID.String()))
	query := `
	INSERT INTO feedback (user_id, rating, comment)
	VALUES ($1, $2, $3)
	RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, fb.UserID, fb.Rating, fb.Comment).
		Scan(&fb.ID, &fb.CreatedAt)
	if err != nil {
		logger.Log.Error("failed to save feedback (repo)", zap.Error(err))
	}
	return err
}

func (r *FeedbackRepository) List(ctx context.Context) ([]*models.Feedback, error) {
	rows, err := r.db.Query(ctx, `
	SELECT f.id, f.user_id, f.rating, f.comment, f.created_at,
	       u.id, u.name, u.email
	FROM feedback f
	JOIN users u ON u.id = f.user_id
	ORDER BY f.created_at DESC`)
	if err != nil {
		logger.Log.Error("failed to list feedback (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*models.Feedback
	for rows.Next() {
		var (
			fb models.Feedback
			u  models.PublicProfile
		)
		if err := rows.Scan(
			&fb.ID, &fb.UserID, &fb.Rating, &fb.Comment, &fb.CreatedAt,
			&u.ID, &u.Name, &u.Email,
		); err != nil {
			logger.Log.Error("failed to scan feedback (repo)", zap.Error(err))
			return nil, err
		}
		fb.User = &u
		items = append(items, &fb)
	}
	return items, rows.Err()
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var (
		fb models.Feedback
		u  models.PublicProfile
	)
	err := r.db.QueryRow(ctx, `
	SELECT f.id, f.user_id, f.rating, f.comment, f.created_at,
	       u.id, u.name, u.email
	FROM feedback f
	JOIN users u ON u.id = f.user_id
	WHERE f.id = $1`, id).Scan(
		&fb.ID, &fb.UserID, &fb.Rating, &fb.Comment, &fb.CreatedAt,
		&u.ID, &u.Name, &u.Email,
	)
	if err != nil {
		return nil, err
	}
	fb.User = &u
	return &fb, nil
}

func (r *FeedbackRepository) Update(ctx context.Context, fb *models.Feedback) error {
	logger.Log.Info("updating feedback (repo)", zap.String("feedback_id", fb.ID.String()))
	_, err := r.db.Exec(ctx, `
	UPDATE feedback SET rating = $2, comment = $3 WHERE id = $1`,
		fb.ID, fb.Rating, fb.Comment)
	if err != nil {
		logger.Log.Error("failed to update feedback (repo)", zap.Error(err))
	}
	return err
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Log.Info("deleting feedback (repo)", zap.String("feedback_id", id.String()))
	_, err := r.db.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("failed to delete feedback (repo)", zap.Error(err))
	}
	return err
}
