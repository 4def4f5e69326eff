package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookgraph/internal/models/db_models"
)

type PersonMatch struct {
	ID         uuid.UUID
	FullName   string
	Similarity float64
}

type PersonRepository interface {
	GetByID(ctx context.Context, id string) (*db_models.Person, error)
	GetByFullName(ctx context.Context, fullName string) (*db_models.Person, error)
	SearchByName(ctx context.Context, fullName string) ([]PersonMatch, error)
	Create(ctx context.Context, person *db_models.Person) (uuid.UUID, error)
	UpdateSocialURL(ctx context.Context, id uuid.UUID, socialURL string) error
	List(ctx context.Context, page, pageSize int) ([]db_models.Person, error)
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db: db}
}

func (r *personRepository) GetByID(ctx context.Context, id string) (*db_models.Person, error) {
	var person db_models.Person
	err := r.db.WithContext(ctx).First(&person, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) GetByFullName(ctx context.Context, fullName string) (*db_models.Person, error) {
	var person db_models.Person
	err := r.db.WithContext(ctx).
		Where("full_name = ?", fullName).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) SearchByName(ctx context.Context, fullName string) ([]PersonMatch, error) {
	var results []PersonMatch

	query := `
        SELECT id, full_name, similarity(full_name, $1) AS similarity
        FROM people
        WHERE deleted_at IS NULL
        ORDER BY similarity DESC
        LIMIT 5
    `

	err := r.db.WithContext(ctx).Raw(query, fullName).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *personRepository) Create(ctx context.Context, person *db_models.Person) (uuid.UUID, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "full_name"}},
			DoNothing: true,
		}).
		Create(person)
	if result.Error != nil {
		return uuid.Nil, result.Error
	}

	if result.RowsAffected == 0 {
		existing, err := r.GetByFullName(ctx, person.FullName)
		if err != nil {
			return uuid.Nil, err
		}
		if existing == nil {
			return uuid.Nil, gorm.ErrRecordNotFound
		}
		return existing.ID, nil
	}
	return person.ID, nil
}

func (r *personRepository) UpdateSocialURL(ctx context.Context, id uuid.UUID, socialURL string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Person{}).
		Where("id = ?", id).
		Update("social_url", socialURL).Error
}

func (r *personRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Person, error) {
	var people []db_models.Person
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&people).Error
	if err != nil {
		return nil, err
	}
	return people, nil
}
