package services

import (
	"context"
	"fmt"
	"log"

	"bookgraph/internal/browser"
	"bookgraph/internal/models/response_models"
	"bookgraph/pkg/utils"
)

type ScrapeServiceInterface interface {
	// ScrapeRecommendersPage walks a page listing notable people and their
	// book recommendations, resolving and linking everything it finds.
	// One page, one sequential pass: every step depends on the page state
	// left by the previous one.
	ScrapeRecommendersPage(ctx context.Context, pageURL, source string) (response_models.ScrapeSummary, error)
}

type scrapedRecommender struct {
	Name        string `json:"name"`
	ProfileLink string `json:"profile_link"`
	SocialLink  string `json:"social_link"`
}

type scrapedBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type ScrapeService struct {
	browser    browser.Client
	books      BookServiceInterface
	people     PersonServiceInterface
	recs       RecommendationServiceInterface
	enrichment EnrichmentServiceInterface
}

func NewScrapeService(
	b browser.Client,
	books BookServiceInterface,
	people PersonServiceInterface,
	recs RecommendationServiceInterface,
	enrichment EnrichmentServiceInterface,
) ScrapeServiceInterface {
	return &ScrapeService{
		browser:    b,
		books:      books,
		people:     people,
		recs:       recs,
		enrichment: enrichment,
	}
}

func (s *ScrapeService) ScrapeRecommendersPage(ctx context.Context, pageURL, source string) (response_models.ScrapeSummary, error) {
	var summary response_models.ScrapeSummary

	if err := s.browser.Navigate(ctx, pageURL); err != nil {
		return summary, fmt.Errorf("%w: %v", utils.ErrBrowserAction, err)
	}

	var recommenders []scrapedRecommender
	err := s.browser.Extract(ctx,
		"list every notable person on this page together with the link to their "+
			"recommendation section or profile page and any social media link shown",
		&recommenders)
	if err != nil {
		return summary, fmt.Errorf("%w: %v", utils.ErrBrowserAction, err)
	}

	for _, recommender := range recommenders {
		if err := s.scrapeRecommender(ctx, recommender, pageURL, source, &summary); err != nil {
			// Per-item failures are logged and the run moves on.
			log.Printf("Skipping recommender %q: %v", recommender.Name, err)
			summary.Skipped++
		}
	}

	return summary, nil
}

func (s *ScrapeService) scrapeRecommender(ctx context.Context, recommender scrapedRecommender, pageURL, source string, summary *response_models.ScrapeSummary) error {
	if recommender.ProfileLink != "" && recommender.ProfileLink != pageURL {
		if err := s.browser.Navigate(ctx, recommender.ProfileLink); err != nil {
			return err
		}
	}

	var books []scrapedBook
	err := s.browser.Extract(ctx,
		fmt.Sprintf("list every book recommended by %s on this page, with title and author", recommender.Name),
		&books)
	if err != nil {
		return err
	}

	personID, err := s.people.ResolvePerson(ctx, recommender.Name, recommender.SocialLink)
	if err != nil {
		return err
	}
	summary.Recommenders++

	sourceLink := recommender.ProfileLink
	if sourceLink == "" {
		sourceLink = pageURL
	}

	for _, book := range books {
		title := book.Title
		if sanitized, err := s.enrichment.SanitizeTitle(ctx, title); err == nil {
			title = sanitized
		}

		bookID, err := s.books.ResolveBook(ctx, title, book.Author)
		if err != nil {
			log.Printf("Skipping book %q by %q: %v", book.Title, book.Author, err)
			summary.Skipped++
			continue
		}
		summary.Books++

		if err := s.recs.Link(ctx, bookID, personID, source, sourceLink); err != nil {
			log.Printf("Skipping link for book %q: %v", book.Title, err)
			summary.Skipped++
			continue
		}
		summary.Links++
	}

	return nil
}
