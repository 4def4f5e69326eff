package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "collector",
		Short: "Scraping and maintenance jobs for the book-recommendation dataset",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	root.AddCommand(newScrapeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newBackfillEmbeddingsCmd())
	root.AddCommand(newBackfillCoversCmd())
	root.AddCommand(newRankPercentilesCmd())
	root.AddCommand(newTokenCmd())

	if err := root.Execute(); err != nil {
		log.Printf("collector: %v", err)
		os.Exit(1)
	}
}
