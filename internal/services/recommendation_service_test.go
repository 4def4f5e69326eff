package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkIsIdempotent(t *testing.T) {
	repo := &fakeRecRepo{}
	svc := NewRecommendationService(repo)

	bookID := uuid.New()
	personID := uuid.New()

	for i := 0; i < 3; i++ {
		err := svc.Link(context.Background(), bookID, personID, "Example Blog", "https://blog.example/shelf")
		require.NoError(t, err)
	}

	assert.Len(t, repo.recs, 1, "relinking the same edge must not add rows")
}

func TestLinkDistinctSourcesMakeDistinctEdges(t *testing.T) {
	repo := &fakeRecRepo{}
	svc := NewRecommendationService(repo)

	bookID := uuid.New()
	personID := uuid.New()

	require.NoError(t, svc.Link(context.Background(), bookID, personID, "Example Blog", ""))
	require.NoError(t, svc.Link(context.Background(), bookID, personID, "Podcast Transcript", ""))

	assert.Len(t, repo.recs, 2,
		"the same pair recommended in different sources is two edges")
}
