package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"bookgraph/cmd/fx/books_fx"
	"bookgraph/cmd/fx/controllers_fx"
	"bookgraph/cmd/fx/db_fx"
	"bookgraph/cmd/fx/enrichment_fx"
	"bookgraph/cmd/fx/people_fx"
	"bookgraph/cmd/fx/recommendations_fx"
	"bookgraph/cmd/fx/scraper_fx"
	"bookgraph/internal/api/controllers"
	"bookgraph/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		db_fx.Module,
		enrichment_fx.Module,
		scraper_fx.Module,
		books_fx.Module,
		people_fx.Module,
		recommendations_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	booksController *controllers.BooksController,
	peopleController *controllers.PeopleController,
	ingestController *controllers.IngestController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, booksController, peopleController, ingestController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	booksController *controllers.BooksController,
	peopleController *controllers.PeopleController,
	ingestController *controllers.IngestController) {

	booksGroup := r.Group("/books")
	booksGroup.GET("", booksController.ListBooks)
	booksGroup.GET("/:id", booksController.GetBookById)
	booksGroup.GET("/:id/recommendations", booksController.GetBookRecommendations)

	peopleGroup := r.Group("/people")
	peopleGroup.GET("", peopleController.ListPeople)
	peopleGroup.GET("/:id", peopleController.GetPersonById)
	peopleGroup.GET("/:id/recommendations", peopleController.GetPersonRecommendations)

	ingestGroup := r.Group("/ingest")
	ingestGroup.Use(middleware.JWTAuthMiddleware())
	ingestGroup.POST("", ingestController.Ingest)
}
