package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

type Book struct {
	BaseModel
	Title        string         `gorm:"uniqueIndex:idx_books_title_author"`
	Author       string         `gorm:"uniqueIndex:idx_books_title_author"`
	BasicTitle   string         `gorm:"index"` // title before the first colon, used for trigram search
	Genres       pq.StringArray `gorm:"type:text[]"`
	Description  string
	PurchaseLink string
	CoverURL     string

	TitleEmbedding       pgvector.Vector `gorm:"type:vector(1536)"`
	AuthorEmbedding      pgvector.Vector `gorm:"type:vector(1536)"`
	DescriptionEmbedding pgvector.Vector `gorm:"type:vector(1536)"`

	RecommendationCount int
	Percentile          float64

	Recommendations []Recommendation `gorm:"foreignKey:BookID"`
}
