package people_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"bookgraph/internal/repositories"
	"bookgraph/internal/services"
)

var Module = fx.Provide(
	providePersonRepo,
	providePersonService)

func providePersonRepo(db *gorm.DB) repositories.PersonRepository {
	return repositories.NewPersonRepository(db)
}

func providePersonService(
	personRepo repositories.PersonRepository,
	enrichment services.EnrichmentServiceInterface,
	weblookup services.WebLookupServiceInterface,
) services.PersonServiceInterface {
	return services.NewPersonService(personRepo, enrichment, weblookup)
}
