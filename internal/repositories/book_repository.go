package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookgraph/internal/models/db_models"
)

// BookMatch is one ranked candidate from a similarity search. Similarity is
// the combined title + author score computed server-side.
type BookMatch struct {
	ID         uuid.UUID
	Title      string
	Author     string
	Similarity float64
}

type BookRecommendationCount struct {
	BookID uuid.UUID
	Count  int
}

type BookRepository interface {
	GetByID(ctx context.Context, id string) (*db_models.Book, error)
	GetByTitleAuthor(ctx context.Context, title, author string) (*db_models.Book, error)
	SearchByTrigram(ctx context.Context, basicTitle, author string) ([]BookMatch, error)
	SearchByEmbedding(ctx context.Context, titleVec, authorVec pgvector.Vector) ([]BookMatch, error)
	Create(ctx context.Context, book *db_models.Book) (uuid.UUID, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Book, error)
	ListMissingDescriptionEmbedding(ctx context.Context, limit int) ([]db_models.Book, error)
	ListMissingCover(ctx context.Context, limit int) ([]db_models.Book, error)
	UpdateEmbeddings(ctx context.Context, id uuid.UUID, title, author, description pgvector.Vector) error
	UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error
	UpdatePercentile(ctx context.Context, id uuid.UUID, count int, percentile float64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*db_models.Book, error) {
	var book db_models.Book
	err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetByTitleAuthor(ctx context.Context, title, author string) (*db_models.Book, error) {
	var book db_models.Book
	err := r.db.WithContext(ctx).
		Where("title = ? AND author = ?", title, author).
		First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) SearchByTrigram(ctx context.Context, basicTitle, author string) ([]BookMatch, error) {
	var results []BookMatch

	query := `
        SELECT id, title, author,
               similarity(basic_title, $1) + similarity(author, $2) AS similarity
        FROM books
        WHERE deleted_at IS NULL
        ORDER BY similarity DESC
        LIMIT 5
    `

	err := r.db.WithContext(ctx).Raw(query, basicTitle, author).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepository) SearchByEmbedding(ctx context.Context, titleVec, authorVec pgvector.Vector) ([]BookMatch, error) {
	var results []BookMatch

	query := `
        SELECT id, title, author,
               (1 - (title_embedding <=> $1)) + (1 - (author_embedding <=> $2)) AS similarity
        FROM books
        WHERE deleted_at IS NULL
          AND title_embedding IS NOT NULL
          AND author_embedding IS NOT NULL
        ORDER BY similarity DESC
        LIMIT 5
    `

	err := r.db.WithContext(ctx).Raw(query, titleVec.String(), authorVec.String()).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Create inserts the book, or returns the surviving row's id when another
// writer got the same (title, author) in first.
func (r *bookRepository) Create(ctx context.Context, book *db_models.Book) (uuid.UUID, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}, {Name: "author"}},
			DoNothing: true,
		}).
		Create(book)
	if result.Error != nil {
		return uuid.Nil, result.Error
	}

	if result.RowsAffected == 0 {
		existing, err := r.GetByTitleAuthor(ctx, book.Title, book.Author)
		if err != nil {
			return uuid.Nil, err
		}
		if existing == nil {
			return uuid.Nil, gorm.ErrRecordNotFound
		}
		return existing.ID, nil
	}
	return book.ID, nil
}

func (r *bookRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Book, error) {
	var books []db_models.Book
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Order("recommendation_count DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) ListMissingDescriptionEmbedding(ctx context.Context, limit int) ([]db_models.Book, error) {
	var books []db_models.Book
	err := r.db.WithContext(ctx).
		Where("description_embedding IS NULL AND description <> ''").
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) ListMissingCover(ctx context.Context, limit int) ([]db_models.Book, error) {
	var books []db_models.Book
	err := r.db.WithContext(ctx).
		Where("cover_url = '' OR cover_url IS NULL").
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) UpdateEmbeddings(ctx context.Context, id uuid.UUID, title, author, description pgvector.Vector) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Book{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title_embedding":       title,
			"author_embedding":      author,
			"description_embedding": description,
		}).Error
}

func (r *bookRepository) UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Book{}).
		Where("id = ?", id).
		Update("cover_url", coverURL).Error
}

func (r *bookRepository) UpdatePercentile(ctx context.Context, id uuid.UUID, count int, percentile float64) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Book{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"recommendation_count": count,
			"percentile":           percentile,
		}).Error
}
