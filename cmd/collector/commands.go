package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"bookgraph/cmd/fx/enrichment_fx"
	"bookgraph/cmd/fx/scraper_fx"
	"bookgraph/internal/infra"
	"bookgraph/internal/repositories"
	"bookgraph/internal/services"
	"bookgraph/pkg/memcache"
	"bookgraph/pkg/utils"
)

// deps is the hand-wired equivalent of the fx graph in cmd/app, for
// one-shot CLI runs.
type deps struct {
	db          *gorm.DB
	books       services.BookServiceInterface
	people      services.PersonServiceInterface
	recs        services.RecommendationServiceInterface
	scrape      services.ScrapeServiceInterface
	maintenance services.MaintenanceServiceInterface
}

func buildDeps() *deps {
	db := infra.InitPostgresql()

	bookRepo := repositories.NewBookRepository(db)
	personRepo := repositories.NewPersonRepository(db)
	recRepo := repositories.NewRecommendationRepository(db)

	embeddings := enrichment_fx.ProvideEmbeddingClient()
	enrichment := services.NewEnrichmentService(enrichment_fx.ProvideLLMClient())

	browserClient := scraper_fx.ProvideBrowserClient()
	weblookup := services.NewWebLookupService(browserClient)

	books := services.NewBookService(bookRepo, enrichment, embeddings, weblookup, memcache.NewResolvedBooks(time.Hour))
	people := services.NewPersonService(personRepo, enrichment, weblookup)
	recs := services.NewRecommendationService(recRepo)

	return &deps{
		db:          db,
		books:       books,
		people:      people,
		recs:        recs,
		scrape:      services.NewScrapeService(browserClient, books, people, recs, enrichment),
		maintenance: services.NewMaintenanceService(bookRepo, recRepo, embeddings, weblookup),
	}
}

func newScrapeCmd() *cobra.Command {
	var pageURL, source string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape one recommenders page and upsert everything it lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := buildDeps()
			defer infra.ClosePostgresql(d.db)

			summary, err := d.scrape.ScrapeRecommendersPage(cmd.Context(), pageURL, source)
			if err != nil {
				return err
			}
			fmt.Printf("recommenders=%d books=%d links=%d skipped=%d\n",
				summary.Recommenders, summary.Books, summary.Links, summary.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "page to scrape")
	cmd.Flags().StringVar(&source, "source", "", "source label for the recommendations")
	cmd.MarkFlagRequired("url")
	cmd.MarkFlagRequired("source")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create extensions, tables and unique indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := infra.InitPostgresql()
			defer infra.ClosePostgresql(db)
			return infra.Migrate(db)
		},
	}
}

func newBackfillEmbeddingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-embeddings",
		Short: "Compute missing title/author/description embeddings",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := buildDeps()
			defer infra.ClosePostgresql(d.db)

			updated, err := d.maintenance.BackfillEmbeddings(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("updated %d books\n", updated)
			return nil
		},
	}
}

func newBackfillCoversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-covers",
		Short: "Find cover images for books without one",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := buildDeps()
			defer infra.ClosePostgresql(d.db)

			updated, err := d.maintenance.BackfillCovers(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("updated %d books\n", updated)
			return nil
		},
	}
}

func newRankPercentilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank-percentiles",
		Short: "Recompute recommendation counts and percentile ranks",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := buildDeps()
			defer infra.ClosePostgresql(d.db)

			updated, err := d.maintenance.RankPercentiles(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("ranked %d books\n", updated)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var role string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the ingest API",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := utils.CreateToken(role, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "ingest", "role claim for the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
