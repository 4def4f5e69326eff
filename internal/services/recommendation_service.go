package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"bookgraph/internal/models/db_models"
	"bookgraph/internal/models/response_models"
	"bookgraph/internal/repositories"
	"bookgraph/pkg/utils"
)

type RecommendationServiceInterface interface {
	// Link ensures exactly one recommendation edge exists for
	// (book, person, source). Calling it again is a no-op.
	Link(ctx context.Context, bookID, personID uuid.UUID, source, sourceLink string) error
	ListByBook(ctx context.Context, bookID string) ([]response_models.Recommendation, error)
	ListByPerson(ctx context.Context, personID string) ([]response_models.Recommendation, error)
}

type RecommendationService struct {
	recRepo repositories.RecommendationRepository
}

func NewRecommendationService(recRepo repositories.RecommendationRepository) RecommendationServiceInterface {
	return &RecommendationService{recRepo: recRepo}
}

func (r *RecommendationService) Link(ctx context.Context, bookID, personID uuid.UUID, source, sourceLink string) error {
	// Cheap existence check covers the common re-scrape path; the unique
	// index behind Create covers racing writers.
	exists, err := r.recRepo.Exists(ctx, bookID, personID, source)
	if err != nil {
		log.Printf("Error checking recommendation (%s, %s, %s): %v", bookID, personID, source, err)
		return utils.ErrDatabaseError
	}
	if exists {
		return nil
	}

	rec := &db_models.Recommendation{
		BookID:     bookID,
		PersonID:   personID,
		Source:     source,
		SourceLink: sourceLink,
	}
	if _, err := r.recRepo.Create(ctx, rec); err != nil {
		log.Printf("Error creating recommendation (%s, %s, %s): %v", bookID, personID, source, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (r *RecommendationService) ListByBook(ctx context.Context, bookID string) ([]response_models.Recommendation, error) {
	recs, err := r.recRepo.ListByBook(ctx, bookID)
	if err != nil {
		log.Printf("Error listing recommendations for book %s: %v", bookID, err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.Recommendation, 0, len(recs))
	for i := range recs {
		resp := toRecommendationResponse(&recs[i])
		if recs[i].Person.ID != uuid.Nil {
			person := toPersonResponse(&recs[i].Person)
			resp.Person = &person
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (r *RecommendationService) ListByPerson(ctx context.Context, personID string) ([]response_models.Recommendation, error) {
	recs, err := r.recRepo.ListByPerson(ctx, personID)
	if err != nil {
		log.Printf("Error listing recommendations for person %s: %v", personID, err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.Recommendation, 0, len(recs))
	for i := range recs {
		resp := toRecommendationResponse(&recs[i])
		if recs[i].Book.ID != uuid.Nil {
			book := toBookResponse(&recs[i].Book)
			resp.Book = &book
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func toRecommendationResponse(rec *db_models.Recommendation) response_models.Recommendation {
	return response_models.Recommendation{
		ID:         rec.ID.String(),
		BookID:     rec.BookID.String(),
		PersonID:   rec.PersonID.String(),
		Source:     rec.Source,
		SourceLink: rec.SourceLink,
	}
}
