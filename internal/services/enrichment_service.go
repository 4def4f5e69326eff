package services

import (
	"context"
	"fmt"

	"bookgraph/pkg/utils"
)

// EnrichmentService fronts the LLM calls and enforces the controlled genre
// vocabulary on whatever comes back.
type EnrichmentServiceInterface interface {
	EnrichBook(ctx context.Context, title, author string) (*utils.BookEnrichment, error)
	ClassifyPerson(ctx context.Context, fullName string) (string, error)
	SanitizeTitle(ctx context.Context, rawTitle string) (string, error)
}

type EnrichmentService struct {
	llm utils.LLMClientInterface
}

func NewEnrichmentService(llm utils.LLMClientInterface) EnrichmentServiceInterface {
	return &EnrichmentService{llm: llm}
}

func (e *EnrichmentService) EnrichBook(ctx context.Context, title, author string) (*utils.BookEnrichment, error) {
	enrichment, err := e.llm.GenerateBookEnrichment(ctx, title, author)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}

	// Unknown genre values are dropped rather than rejected; an empty list
	// falls back to Misc.
	enrichment.Genres = utils.FilterGenres(enrichment.Genres)
	return enrichment, nil
}

func (e *EnrichmentService) ClassifyPerson(ctx context.Context, fullName string) (string, error) {
	personType, err := e.llm.ClassifyPersonType(ctx, fullName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	return personType, nil
}

func (e *EnrichmentService) SanitizeTitle(ctx context.Context, rawTitle string) (string, error) {
	title, err := e.llm.SanitizeBookTitle(ctx, rawTitle)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	return title, nil
}
