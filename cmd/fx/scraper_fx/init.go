package scraper_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"bookgraph/internal/browser"
	"bookgraph/internal/services"
)

var Module = fx.Provide(
	ProvideBrowserClient,
	ProvideWebLookupService,
	ProvideScrapeService)

func ProvideBrowserClient() browser.Client {
	baseURL := os.Getenv("BROWSER_SERVICE_URL")
	if baseURL == "" {
		log.Fatal("BROWSER_SERVICE_URL is required")
	}
	return browser.NewHTTPClient(baseURL, os.Getenv("BROWSER_SERVICE_TOKEN"))
}

func ProvideWebLookupService(b browser.Client) services.WebLookupServiceInterface {
	return services.NewWebLookupService(b)
}

func ProvideScrapeService(
	b browser.Client,
	books services.BookServiceInterface,
	people services.PersonServiceInterface,
	recs services.RecommendationServiceInterface,
	enrichment services.EnrichmentServiceInterface,
) services.ScrapeServiceInterface {
	return services.NewScrapeService(b, books, people, recs, enrichment)
}
