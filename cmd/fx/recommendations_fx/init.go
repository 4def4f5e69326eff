package recommendations_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"bookgraph/internal/repositories"
	"bookgraph/internal/services"
)

var Module = fx.Provide(
	provideRecommendationRepo,
	provideRecommendationService)

func provideRecommendationRepo(db *gorm.DB) repositories.RecommendationRepository {
	return repositories.NewRecommendationRepository(db)
}

func provideRecommendationService(recRepo repositories.RecommendationRepository) services.RecommendationServiceInterface {
	return services.NewRecommendationService(recRepo)
}
