package books_fx

import (
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"bookgraph/internal/repositories"
	"bookgraph/internal/services"
	"bookgraph/pkg/memcache"
	"bookgraph/pkg/utils"
)

var Module = fx.Provide(
	provideBookRepo,
	provideResolvedCache,
	provideBookService)

func provideBookRepo(db *gorm.DB) repositories.BookRepository {
	return repositories.NewBookRepository(db)
}

func provideResolvedCache() *memcache.ResolvedBooks {
	return memcache.NewResolvedBooks(time.Hour)
}

func provideBookService(
	bookRepo repositories.BookRepository,
	enrichment services.EnrichmentServiceInterface,
	embeddings utils.EmbeddingClientInterface,
	weblookup services.WebLookupServiceInterface,
	resolved *memcache.ResolvedBooks,
) services.BookServiceInterface {
	return services.NewBookService(bookRepo, enrichment, embeddings, weblookup, resolved)
}
