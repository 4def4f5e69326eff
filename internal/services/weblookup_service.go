package services

import (
	"context"
	"fmt"
	"net/url"

	"bookgraph/internal/browser"
	"bookgraph/pkg/utils"
)

// WebLookupService runs the search-and-extract flows against the browser
// automation layer: purchase links, social profiles and cover art.
type WebLookupServiceInterface interface {
	FindPurchaseLink(ctx context.Context, title, author string) (string, error)
	FindSocialURL(ctx context.Context, fullName string) (string, error)
	FindCoverImage(ctx context.Context, title, author string) (string, error)
}

type WebLookupService struct {
	browser   browser.Client
	searchURL string
}

func NewWebLookupService(b browser.Client) WebLookupServiceInterface {
	return &WebLookupService{
		browser:   b,
		searchURL: "https://www.google.com/search?q=",
	}
}

func (w *WebLookupService) search(ctx context.Context, query string) error {
	if err := w.browser.Navigate(ctx, w.searchURL+url.QueryEscape(query)); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrBrowserAction, err)
	}
	return nil
}

func (w *WebLookupService) FindPurchaseLink(ctx context.Context, title, author string) (string, error) {
	if err := w.search(ctx, fmt.Sprintf("%s %s book buy", title, author)); err != nil {
		return "", err
	}

	var result struct {
		URL string `json:"url"`
	}
	instruction := fmt.Sprintf("extract the URL of the first result where the book %q by %s can be purchased", title, author)
	if err := w.browser.Extract(ctx, instruction, &result); err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrBrowserAction, err)
	}
	return result.URL, nil
}

func (w *WebLookupService) FindSocialURL(ctx context.Context, fullName string) (string, error) {
	if err := w.search(ctx, fullName+" twitter"); err != nil {
		return "", err
	}

	var result struct {
		URL string `json:"url"`
	}
	instruction := fmt.Sprintf("extract the URL of the Twitter/X profile belonging to %s, or an empty string if none of the results is clearly theirs", fullName)
	if err := w.browser.Extract(ctx, instruction, &result); err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrBrowserAction, err)
	}
	return utils.CanonicalSocialURL(result.URL), nil
}

func (w *WebLookupService) FindCoverImage(ctx context.Context, title, author string) (string, error) {
	if err := w.search(ctx, fmt.Sprintf("%s %s book cover", title, author)); err != nil {
		return "", err
	}

	var result struct {
		URL string `json:"url"`
	}
	instruction := fmt.Sprintf("extract the image URL of the cover of the book %q by %s", title, author)
	if err := w.browser.Extract(ctx, instruction, &result); err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrBrowserAction, err)
	}
	return result.URL, nil
}
