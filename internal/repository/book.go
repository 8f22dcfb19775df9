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

// psql builds queries with $N placeholders for pgx.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type BookRepository struct {
	db *pgxpool.Pool
}

func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{db: db}
}

var bookColumns = []string{
	"b.id", "b.title", "b.author", "b.description", "b.price",
	"b.condition", "b.language", "b.image", "b.location", "b.upi_id",
	"b.phone", "b.edition", "b.pages", "b.category", "b.seller_id",
	"b.created_at", "u.id", "u.name", "u.email",
}

func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	logger.Log.Info("saving book listing (repo)",
		zap.String("title", book.Title), zap.String("seller_id", book.SellerID.String()))
	query := `
	INSERT INTO books (title, author, description, price, condition, language,
	                   image, location, upi_id, phone, edition, pages, category, seller_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.Description,
		book.Price,
		book.Condition,
		book.Language,
		book.Image,
		book.Location,
		book.UpiID,
		book.Phone,
		book.Edition,
		book.Pages,
		book.Category,
		book.SellerID,
	).Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		logger.Log.Error("failed to save book (repo)", zap.Error(err))
	}
	return err
}

// List applies the optional filters (AND-combined) and returns listings
// newest first with the seller profile expanded.
func (r *BookRepository) List(ctx context.Context, f models.BookFilter) ([]*models.Book, error) {
	qb := psql.Select(bookColumns...).
		From("books b").
		Join("users u ON u.id = b.seller_id").
		OrderBy("b.created_at DESC")

	if f.Search != "" {
		like := "%" + f.Search + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"b.title": like},
			sq.ILike{"b.author": like},
			sq.ILike{"b.description": like},
		})
	}
	if f.Condition != "" {
		qb = qb.Where(sq.Eq{"b.condition": f.Condition})
	}
	if f.Language != "" {
		qb = qb.Where(sq.Eq{"b.language": f.Language})
	}
	if f.Category != "" {
		qb = qb.Where(sq.Eq{"b.category": f.Category})
	}
	if f.Location != "" {
		qb = qb.Where(sq.ILike{"b.location": "%" + f.Location + "%"})
	}
	if f.MinPrice != nil {
		qb = qb.Where(sq.GtOrEq{"b.price": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		qb = qb.Where(sq.LtOrEq{"b.price": *f.MaxPrice})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Log.Error("failed to list books (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		var (
			b      models.Book
			seller models.PublicProfile
		)
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Description, &b.Price,
			&b.Condition, &b.Language, &b.Image, &b.Location, &b.UpiID,
			&b.Phone, &b.Edition, &b.Pages, &b.Category, &b.SellerID,
			&b.CreatedAt, &seller.ID, &seller.Name, &seller.Email,
		); err != nil {
			logger.Log.Error("failed to scan book (repo)", zap.Error(err))
			return nil, err
		}
		b.Seller = &seller
		books = append(books, &b)
	}
	return books, rows.Err()
}

func (r *BookRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	query, args, err := psql.Select(bookColumns...).
		From("books b").
		Join("users u ON u.id = b.seller_id").
		Where(sq.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		b      models.Book
		seller models.PublicProfile
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Price,
		&b.Condition, &b.Language, &b.Image, &b.Location, &b.UpiID,
		&b.Phone, &b.Edition, &b.Pages, &b.Category, &b.SellerID,
		&b.CreatedAt, &seller.ID, &seller.Name, &seller.Email,
	)
	if err != nil {
		return nil, err
	}
	b.Seller = &seller
	return &b, nil
}

func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	logger.Log.Info("updating book (repo)", zap.String("book_id", book.ID.String()))
	query := `
	UPDATE books
	SET title = $2, author = $3, description = $4, price = $5, condition = $6,
	    language = $7, image = $8, location = $9, upi_id = $10, phone = $11,
	    edition = $12, pages = $13, category = $14
	WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Description,
		book.Price,
		book.Condition,
		book.Language,
		book.Image,
		book.Location,
		book.UpiID,
		book.Phone,
		book.Edition,
		book.Pages,
		book.Category,
	)
	if err != nil {
		logger.Log.Error("failed to update book (repo)", zap.Error(err))
	}
	return err
}

func (r *BookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Log.Info("deleting book (repo)", zap.String("book_id", id.String()))
	_, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("failed to delete book (repo)", zap.Error(err))
	}
	return err
}
