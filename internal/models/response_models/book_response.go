package response_models

type Book struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Author              string   `json:"author"`
	Genres              []string `json:"genres"`
	Description         string   `json:"description,omitempty"`
	PurchaseLink        string   `json:"purchase_link,omitempty"`
	CoverURL            string   `json:"cover_url,omitempty"`
	RecommendationCount int      `json:"recommendation_count"`
	Percentile          float64  `json:"percentile"`
	CreatedAt           string   `json:"created_at,omitempty"`
}
