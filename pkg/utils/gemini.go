package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// BookEnrichment is the declared output structure of the book enrichment
// prompt. The genre list still has to pass the controlled-vocabulary filter.
type BookEnrichment struct {
	Genres      []string `json:"genres"`
	Description string   `json:"description"`
}

type LLMClientInterface interface {
	GenerateBookEnrichment(ctx context.Context, title, author string) (*BookEnrichment, error)
	ClassifyPersonType(ctx context.Context, fullName string) (string, error)
	SanitizeBookTitle(ctx context.Context, rawTitle string) (string, error)
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) generateJSON(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content")
	}

	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("gemini: unexpected response part")
	}

	content := cleanJSONResponse(string(txt))
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini: response is not valid json")
	}
	return content, nil
}

func (c *GeminiClient) GenerateBookEnrichment(ctx context.Context, title, author string) (*BookEnrichment, error) {
	prompt := fmt.Sprintf(`You are cataloguing books. Return **JSON only** matching exactly:
{"genres": ["..."], "description": "..."}

Pick 1-3 genres from this list only: %s.
Write a 2-3 sentence description of the book.

Book title: %s
Author: %s

Return JSON only. No comments, no markdown.`,
		strings.Join(GenreVocabulary, ", "), title, author)

	content, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var enrichment BookEnrichment
	if err := json.Unmarshal([]byte(content), &enrichment); err != nil {
		return nil, fmt.Errorf("gemini: unmarshal enrichment: %w", err)
	}
	if strings.TrimSpace(enrichment.Description) == "" {
		return nil, fmt.Errorf("gemini: empty description")
	}
	return &enrichment, nil
}

func (c *GeminiClient) ClassifyPersonType(ctx context.Context, fullName string) (string, error) {
	prompt := fmt.Sprintf(`Classify the notable person %q into a single occupation
category such as "Entrepreneur", "Author", "Scientist", "Investor", "Athlete",
"Artist", "Politician" or "Journalist". Return JSON only: {"type": "..."}`, fullName)

	content, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return "", err
	}

	var out struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return "", fmt.Errorf("gemini: unmarshal person type: %w", err)
	}
	if strings.TrimSpace(out.Type) == "" {
		return "", fmt.Errorf("gemini: empty person type")
	}
	return strings.TrimSpace(out.Type), nil
}

func (c *GeminiClient) SanitizeBookTitle(ctx context.Context, rawTitle string) (string, error) {
	prompt := fmt.Sprintf(`The following book title was scraped from a webpage and may
contain stray punctuation, series markers or reviewer notes. Return the clean
title only, as JSON: {"title": "..."}

Raw title: %q`, rawTitle)

	content, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return "", err
	}

	var out struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return "", fmt.Errorf("gemini: unmarshal title: %w", err)
	}
	if strings.TrimSpace(out.Title) == "" {
		return "", fmt.Errorf("gemini: empty title")
	}
	return strings.TrimSpace(out.Title), nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// cleanJSONResponse removes markdown fences and anything outside the outermost
// JSON value. JSON response mode usually makes this a no-op.
func cleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := strings.LastIndex(response, "}"); end > objStart {
			response = response[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := strings.LastIndex(response, "]"); end > arrStart {
			response = response[arrStart : end+1]
		}
	}

	return strings.TrimSpace(response)
}
