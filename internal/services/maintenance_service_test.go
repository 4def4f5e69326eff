package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookgraph/internal/models/db_models"
)

func bookWithID(title, author, description string) db_models.Book {
	book := db_models.Book{Title: title, Author: author, Description: description}
	book.ID = uuid.New()
	return book
}

func TestBackfillEmbeddings(t *testing.T) {
	repo := newFakeBookRepo()
	repo.missingEmbedding = []db_models.Book{
		bookWithID("Dune", "Frank Herbert", "Desert planet politics."),
		bookWithID("Neuromancer", "William Gibson", "Cyberspace heist."),
	}

	svc := NewMaintenanceService(repo, &fakeRecRepo{}, &fakeEmbeddings{}, &fakeWebLookup{})

	updated, err := svc.BackfillEmbeddings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Len(t, repo.embedUpdates, 2)
}

func TestBackfillEmbeddingsCountsFailures(t *testing.T) {
	repo := newFakeBookRepo()
	repo.missingEmbedding = []db_models.Book{
		bookWithID("Dune", "Frank Herbert", "Desert planet politics."),
	}

	embeddings := &fakeEmbeddings{err: assert.AnError}
	svc := NewMaintenanceService(repo, &fakeRecRepo{}, embeddings, &fakeWebLookup{})

	updated, err := svc.BackfillEmbeddings(context.Background())
	require.NoError(t, err, "per-row failures are logged, not fatal")
	assert.Zero(t, updated)
	assert.Empty(t, repo.embedUpdates)
}

func TestBackfillCovers(t *testing.T) {
	repo := newFakeBookRepo()
	missing := bookWithID("Dune", "Frank Herbert", "")
	repo.missingCover = []db_models.Book{missing}

	weblookup := &fakeWebLookup{coverURL: "https://img.example/dune.jpg"}
	svc := NewMaintenanceService(repo, &fakeRecRepo{}, &fakeEmbeddings{}, weblookup)

	updated, err := svc.BackfillCovers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, "https://img.example/dune.jpg", repo.coverUpdates[missing.ID])
}

func TestBackfillCoversSkipsEmptyResults(t *testing.T) {
	repo := newFakeBookRepo()
	repo.missingCover = []db_models.Book{bookWithID("Obscure Book", "Nobody", "")}

	svc := NewMaintenanceService(repo, &fakeRecRepo{}, &fakeEmbeddings{}, &fakeWebLookup{coverURL: ""})

	updated, err := svc.BackfillCovers(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Empty(t, repo.coverUpdates)
}

func TestRankPercentilesStrictlySmallerFraction(t *testing.T) {
	repo := newFakeBookRepo()
	recRepo := &fakeRecRepo{}

	lowID := uuid.New()
	midID := uuid.New()
	topID := uuid.New()

	addEdge := func(bookID uuid.UUID, n int) {
		for i := 0; i < n; i++ {
			recRepo.recs = append(recRepo.recs, &db_models.Recommendation{
				BookID:   bookID,
				PersonID: uuid.New(),
				Source:   "Example Blog",
			})
		}
	}
	addEdge(lowID, 1)
	addEdge(midID, 3)
	addEdge(topID, 5)

	svc := NewMaintenanceService(repo, recRepo, &fakeEmbeddings{}, &fakeWebLookup{})

	updated, err := svc.RankPercentiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, updated)

	// Percentile is the fraction of counted books with a strictly smaller
	// count, so the lowest book sits at 0 and the top one below 1.
	assert.InDelta(t, 0.0, repo.percentiles[lowID], 1e-9)
	assert.InDelta(t, 1.0/3.0, repo.percentiles[midID], 1e-9)
	assert.InDelta(t, 2.0/3.0, repo.percentiles[topID], 1e-9)
}

func TestRankPercentilesEmpty(t *testing.T) {
	svc := NewMaintenanceService(newFakeBookRepo(), &fakeRecRepo{}, &fakeEmbeddings{}, &fakeWebLookup{})

	updated, err := svc.RankPercentiles(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
}
