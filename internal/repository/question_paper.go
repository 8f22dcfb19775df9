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

type QuestionPaperRepository struct {
	db *pgxpool.Pool
}

func NewQuestionPaperRepository(db *pgxpool.Pool) *QuestionPaperRepository {
	return &QuestionPaperRepository{db: db}
}

var paperColumns = []string{
	"p.id", "p.title", "p.subject", "p.course", "p.semester",
	"p.file_path", "p.uploaded_by", "p.created_at",
	"u.id", "u.name", "u.email",
}

func (r *QuestionPaperRepository) Create(ctx context.Context, paper *models.QuestionPaper) error {
	logger.Log.Info("saving question paper (repo)",
		zap.String("title", paper.Title), zap.String("uploaded_by", paper.UploadedByID.String()))
	query := `
	INSERT INTO question_papers (title, subject, course, semester, file_path, uploaded_by)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		paper.Title,
		paper.Subject,
		paper.Course,
		paper.Semester,
		paper.FilePath,
		paper.UploadedByID,
	).Scan(&paper.ID, &paper.CreatedAt)
	if err != nil {
		logger.Log.Error("failed to save question paper (repo)", zap.Error(err))
	}
	return err
}

func (r *QuestionPaperRepository) List(ctx context.Context, f models.QuestionPaperFilter) ([]*models.QuestionPaper, error) {
	qb := psql.Select(paperColumns...).
		From("question_papers p").
		Join("users u ON u.id = p.uploaded_by").
		OrderBy("p.created_at DESC")

	if f.Search != "" {
		qb = qb.Where(sq.ILike{"p.title": "%" + f.Search + "%"})
	}
	if f.Subject != "" {
		qb = qb.Where(sq.Eq{"p.subject": f.Subject})
	}
	if f.Course != "" {
		qb = qb.Where(sq.Eq{"p.course": f.Course})
	}
	if f.Semester != nil {
		qb = qb.Where(sq.Eq{"p.semester": *f.Semester})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Log.Error("failed to list question papers (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var papers []*models.QuestionPaper
	for rows.Next() {
		var (
			p     models.QuestionPaper
			owner models.PublicProfile
		)
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Subject, &p.Course, &p.Semester,
			&p.FilePath, &p.UploadedByID, &p.CreatedAt,
			&owner.ID, &owner.Name, &owner.Email,
		); err != nil {
			logger.Log.Error("failed to scan question paper (repo)", zap.Error(err))
			return nil, err
		}
		p.UploadedBy = &owner
		papers = append(papers, &p)
	}
	return papers, rows.Err()
}

func (r *QuestionPaperRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.QuestionPaper, error) {
	query, args, err := psql.Select(paperColumns...).
		From("question_papers p").
		Join("users u ON u.id = p.uploaded_by").
		Where(sq.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		p     models.QuestionPaper
		owner models.PublicProfile
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Title, &p.Subject, &p.Course, &p.Semester,
		&p.FilePath, &p.UploadedByID, &p.CreatedAt,
		&owner.ID, &owner.Name, &owner.Email,
	)
	if err != nil {
		return nil, err
	}
	p.UploadedBy = &owner
	return &p, nil
}

func (r *QuestionPaperRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Log.Info("deleting question paper (repo)", zap.String("paper_id", id.String()))
	_, err := r.db.Exec(ctx, `DELETE FROM question_papers WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("failed to delete question paper (repo)", zap.Error(err))
	}
	return err
}
