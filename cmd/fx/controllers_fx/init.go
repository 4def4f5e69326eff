package controllers_fx

import (
	"go.uber.org/fx"

	"bookgraph/internal/api/controllers"
	"bookgraph/internal/services"
)

var Module = fx.Provide(
	provideBooksController,
	providePeopleController,
	provideIngestController)

func provideBooksController(
	bookService services.BookServiceInterface,
	recService services.RecommendationServiceInterface,
) *controllers.BooksController {
	return controllers.NewBooksController(bookService, recService)
}

func providePeopleController(
	personService services.PersonServiceInterface,
	recService services.RecommendationServiceInterface,
) *controllers.PeopleController {
	return controllers.NewPeopleController(personService, recService)
}

func provideIngestController(scrapeService services.ScrapeServiceInterface) *controllers.IngestController {
	return controllers.NewIngestController(scrapeService)
}
