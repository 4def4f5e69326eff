package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookgraph/internal/models/db_models"
)

type RecommendationRepository interface {
	Exists(ctx context.Context, bookID, personID uuid.UUID, source string) (bool, error)
	// Create inserts the edge; returns false when the unique index already
	// holds an identical edge and nothing was written.
	Create(ctx context.Context, rec *db_models.Recommendation) (bool, error)
	ListByBook(ctx context.Context, bookID string) ([]db_models.Recommendation, error)
	ListByPerson(ctx context.Context, personID string) ([]db_models.Recommendation, error)
	CountsByBook(ctx context.Context) ([]BookRecommendationCount, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Exists(ctx context.Context, bookID, personID uuid.UUID, source string) (bool, error) {
	var rec db_models.Recommendation
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND person_id = ? AND source = ?", bookID, personID, source).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *recommendationRepository) Create(ctx context.Context, rec *db_models.Recommendation) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "book_id"}, {Name: "person_id"}, {Name: "source"}},
			DoNothing: true,
		}).
		Create(rec)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *recommendationRepository) ListByBook(ctx context.Context, bookID string) ([]db_models.Recommendation, error) {
	var recs []db_models.Recommendation
	err := r.db.WithContext(ctx).
		Preload("Person").
		Where("book_id = ?", bookID).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recommendationRepository) ListByPerson(ctx context.Context, personID string) ([]db_models.Recommendation, error) {
	var recs []db_models.Recommendation
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("person_id = ?", personID).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recommendationRepository) CountsByBook(ctx context.Context) ([]BookRecommendationCount, error) {
	var counts []BookRecommendationCount

	query := `
        SELECT book_id, COUNT(*) AS count
        FROM recommendations
        WHERE deleted_at IS NULL
        GROUP BY book_id
    `

	err := r.db.WithContext(ctx).Raw(query).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
