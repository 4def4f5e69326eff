package services

import (
	"context"
	"log"
	"sort"

	"github.com/schollz/progressbar/v3"

	"bookgraph/internal/models/db_models"
	"bookgraph/internal/repositories"
	"bookgraph/pkg/utils"
)

const (
	backfillBatchSize   = 500
	backfillConcurrency = 10
)

// MaintenanceService hosts the one-off batch jobs: embedding backfill, cover
// backfill and percentile ranking. Rows are independent, so the jobs fan out
// over a bounded parallel map; per-row failures are logged, never fatal.
type MaintenanceServiceInterface interface {
	BackfillEmbeddings(ctx context.Context) (int, error)
	BackfillCovers(ctx context.Context) (int, error)
	RankPercentiles(ctx context.Context) (int, error)
}

type MaintenanceService struct {
	bookRepo   repositories.BookRepository
	recRepo    repositories.RecommendationRepository
	embeddings utils.EmbeddingClientInterface
	weblookup  WebLookupServiceInterface
}

func NewMaintenanceService(
	bookRepo repositories.BookRepository,
	recRepo repositories.RecommendationRepository,
	embeddings utils.EmbeddingClientInterface,
	weblookup WebLookupServiceInterface,
) MaintenanceServiceInterface {
	return &MaintenanceService{
		bookRepo:   bookRepo,
		recRepo:    recRepo,
		embeddings: embeddings,
		weblookup:  weblookup,
	}
}

func (m *MaintenanceService) BackfillEmbeddings(ctx context.Context) (int, error) {
	books, err := m.bookRepo.ListMissingDescriptionEmbedding(ctx, backfillBatchSize)
	if err != nil {
		log.Printf("Error listing books for embedding backfill: %v", err)
		return 0, utils.ErrDatabaseError
	}
	if len(books) == 0 {
		return 0, nil
	}

	bar := progressbar.Default(int64(len(books)), "backfilling embeddings")
	errs := utils.ParallelMap(books, backfillConcurrency, func(book db_models.Book) error {
		defer bar.Add(1)

		titleVec, err := m.embeddings.GetEmbedding(ctx, book.Title)
		if err != nil {
			return err
		}
		authorVec, err := m.embeddings.GetEmbedding(ctx, book.Author)
		if err != nil {
			return err
		}
		descVec, err := m.embeddings.GetEmbedding(ctx, book.Description)
		if err != nil {
			return err
		}
		return m.bookRepo.UpdateEmbeddings(ctx, book.ID, titleVec, authorVec, descVec)
	})

	for _, err := range errs {
		log.Printf("Embedding backfill failure: %v", err)
	}
	return len(books) - len(errs), nil
}

func (m *MaintenanceService) BackfillCovers(ctx context.Context) (int, error) {
	books, err := m.bookRepo.ListMissingCover(ctx, backfillBatchSize)
	if err != nil {
		log.Printf("Error listing books for cover backfill: %v", err)
		return 0, utils.ErrDatabaseError
	}
	if len(books) == 0 {
		return 0, nil
	}

	// The browser holds one page at a time, so covers go sequentially.
	bar := progressbar.Default(int64(len(books)), "backfilling covers")
	updated := 0
	for _, book := range books {
		coverURL, err := m.weblookup.FindCoverImage(ctx, book.Title, book.Author)
		if err != nil || coverURL == "" {
			log.Printf("Cover lookup failed for %q: %v", book.Title, err)
			bar.Add(1)
			continue
		}
		if err := m.bookRepo.UpdateCoverURL(ctx, book.ID, coverURL); err != nil {
			log.Printf("Cover update failed for %q: %v", book.Title, err)
			bar.Add(1)
			continue
		}
		updated++
		bar.Add(1)
	}
	return updated, nil
}

// RankPercentiles recomputes each book's recommendation count and its
// percentile: the fraction of counted books with a strictly smaller count.
func (m *MaintenanceService) RankPercentiles(ctx context.Context) (int, error) {
	counts, err := m.recRepo.CountsByBook(ctx)
	if err != nil {
		log.Printf("Error counting recommendations: %v", err)
		return 0, utils.ErrDatabaseError
	}
	if len(counts) == 0 {
		return 0, nil
	}

	sorted := make([]int, len(counts))
	for i, c := range counts {
		sorted[i] = c.Count
	}
	sort.Ints(sorted)

	total := float64(len(sorted))
	percentile := func(count int) float64 {
		// index of the first entry >= count == number of strictly smaller entries
		smaller := sort.SearchInts(sorted, count)
		return float64(smaller) / total
	}

	bar := progressbar.Default(int64(len(counts)), "ranking percentiles")
	errs := utils.ParallelMap(counts, backfillConcurrency, func(c repositories.BookRecommendationCount) error {
		defer bar.Add(1)
		return m.bookRepo.UpdatePercentile(ctx, c.BookID, c.Count, percentile(c.Count))
	})

	for _, err := range errs {
		log.Printf("Percentile update failure: %v", err)
	}
	return len(counts) - len(errs), nil
}
