package enrichment_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"bookgraph/internal/services"
	"bookgraph/pkg/utils"
)

var Module = fx.Provide(
	ProvideEmbeddingClient,
	ProvideLLMClient,
	ProvideEnrichmentService)

func ProvideEmbeddingClient() utils.EmbeddingClientInterface {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}
	return utils.NewOpenAIEmbeddingClient(apiKey, os.Getenv("OPENAI_MODEL"))
}

func ProvideLLMClient() utils.LLMClientInterface {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	client, err := utils.NewGeminiClient(apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	return client
}

func ProvideEnrichmentService(llm utils.LLMClientInterface) services.EnrichmentServiceInterface {
	return services.NewEnrichmentService(llm)
}
