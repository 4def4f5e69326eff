package response_models

type Recommendation struct {
	ID         string  `json:"id"`
	BookID     string  `json:"book_id"`
	PersonID   string  `json:"person_id"`
	Source     string  `json:"source"`
	SourceLink string  `json:"source_link,omitempty"`
	Book       *Book   `json:"book,omitempty"`
	Person     *Person `json:"person,omitempty"`
}

// ScrapeSummary is returned by the ingest endpoint and the scrape command.
type ScrapeSummary struct {
	Recommenders int `json:"recommenders"`
	Books        int `json:"books"`
	Links        int `json:"links"`
	Skipped      int `json:"skipped"`
}
