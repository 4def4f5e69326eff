package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bookgraph/internal/models/db_models"
	"bookgraph/internal/models/response_models"
	"bookgraph/internal/repositories"
	"bookgraph/pkg/memcache"
	"bookgraph/pkg/utils"
)

// Match floors for the fuzzy tiers. Candidates below the floor are treated as
// no match and resolution falls through to creation.
const (
	trigramMatchFloor   = 0.45
	embeddingMatchFloor = 0.80
)

type BookServiceInterface interface {
	// ResolveBook returns the id of the existing book matching (title, author)
	// or creates an enriched row when no tier matches.
	ResolveBook(ctx context.Context, title, author string) (uuid.UUID, error)
	GetBookByID(id string, ctx context.Context) (response_models.Book, error)
	ListBooks(ctx context.Context, page, pageSize int) ([]response_models.Book, error)
}

type BookService struct {
	bookRepo   repositories.BookRepository
	enrichment EnrichmentServiceInterface
	embeddings utils.EmbeddingClientInterface
	weblookup  WebLookupServiceInterface
	resolved   *memcache.ResolvedBooks
}

func NewBookService(
	bookRepo repositories.BookRepository,
	enrichment EnrichmentServiceInterface,
	embeddings utils.EmbeddingClientInterface,
	weblookup WebLookupServiceInterface,
	resolved *memcache.ResolvedBooks,
) BookServiceInterface {
	return &BookService{
		bookRepo:   bookRepo,
		enrichment: enrichment,
		embeddings: embeddings,
		weblookup:  weblookup,
		resolved:   resolved,
	}
}

func (b *BookService) ResolveBook(ctx context.Context, title, author string) (uuid.UUID, error) {
	title = utils.NormalizeTitle(title)
	author = utils.CleanAuthorName(author)
	if title == "" || author == "" {
		return uuid.Nil, fmt.Errorf("empty title or author after cleanup")
	}

	cacheKey := memcache.Key(title, author)
	if id, ok := b.resolved.Get(cacheKey); ok {
		return id, nil
	}

	// Tier 1: exact match on the normalized pair.
	existing, err := b.bookRepo.GetByTitleAuthor(ctx, title, author)
	if err != nil {
		log.Printf("Error looking up book %q / %q: %v", title, author, err)
		return uuid.Nil, utils.ErrDatabaseError
	}
	if existing != nil {
		b.resolved.Set(cacheKey, existing.ID)
		return existing.ID, nil
	}

	// Tier 2: trigram similarity over basic title + author.
	matches, err := b.bookRepo.SearchByTrigram(ctx, utils.BasicTitle(title), author)
	if err != nil {
		log.Printf("Error in trigram search for %q: %v", title, err)
		return uuid.Nil, utils.ErrDatabaseError
	}
	if len(matches) > 0 && matches[0].Similarity >= trigramMatchFloor {
		b.resolved.Set(cacheKey, matches[0].ID)
		return matches[0].ID, nil
	}

	// Tier 3: cosine similarity over independent title and author embeddings.
	titleVec, err := b.embeddings.GetEmbedding(ctx, title)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	authorVec, err := b.embeddings.GetEmbedding(ctx, author)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}

	matches, err = b.bookRepo.SearchByEmbedding(ctx, titleVec, authorVec)
	if err != nil {
		log.Printf("Error in embedding search for %q: %v", title, err)
		return uuid.Nil, utils.ErrDatabaseError
	}
	if len(matches) > 0 && matches[0].Similarity >= embeddingMatchFloor {
		b.resolved.Set(cacheKey, matches[0].ID)
		return matches[0].ID, nil
	}

	// No tier matched: enrich and create.
	enrichment, err := b.enrichment.EnrichBook(ctx, title, author)
	if err != nil {
		return uuid.Nil, err
	}

	purchaseLink, err := b.weblookup.FindPurchaseLink(ctx, title, author)
	if err != nil {
		return uuid.Nil, err
	}

	descVec, err := b.embeddings.GetEmbedding(ctx, enrichment.Description)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}

	book := &db_models.Book{
		Title:                title,
		Author:               author,
		BasicTitle:           utils.BasicTitle(title),
		Genres:               pq.StringArray(enrichment.Genres),
		Description:          enrichment.Description,
		PurchaseLink:         purchaseLink,
		TitleEmbedding:       titleVec,
		AuthorEmbedding:      authorVec,
		DescriptionEmbedding: descVec,
	}

	id, err := b.bookRepo.Create(ctx, book)
	if err != nil {
		log.Printf("Error creating book %q / %q: %v", title, author, err)
		return uuid.Nil, utils.ErrDatabaseError
	}

	b.resolved.Set(cacheKey, id)
	return id, nil
}

func (b *BookService) GetBookByID(id string, ctx context.Context) (response_models.Book, error) {
	book, err := b.bookRepo.GetByID(ctx, id)
	if err != nil {
		return response_models.Book{}, utils.ErrDatabaseError
	}
	if book == nil {
		return response_models.Book{}, utils.ErrBookNotFound
	}
	return toBookResponse(book), nil
}

func (b *BookService) ListBooks(ctx context.Context, page, pageSize int) ([]response_models.Book, error) {
	books, err := b.bookRepo.List(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing books: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.Book, 0, len(books))
	for i := range books {
		responses = append(responses, toBookResponse(&books[i]))
	}
	return responses, nil
}

func toBookResponse(book *db_models.Book) response_models.Book {
	return response_models.Book{
		ID:                  book.ID.String(),
		Title:               book.Title,
		Author:              book.Author,
		Genres:              book.Genres,
		Description:         book.Description,
		PurchaseLink:        book.PurchaseLink,
		CoverURL:            book.CoverURL,
		RecommendationCount: book.RecommendationCount,
		Percentile:          book.Percentile,
		CreatedAt:           utils.FormatRFC3339(book.CreatedAt),
	}
}
