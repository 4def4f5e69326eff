package db_models

import "github.com/pgvector/pgvector-go"

type Person struct {
	BaseModel
	FullName    string `gorm:"uniqueIndex"`
	Type        string // occupation category, e.g. "Entrepreneur"
	Description string
	SocialURL   string

	DescriptionEmbedding pgvector.Vector `gorm:"type:vector(1536)"`

	Recommendations []Recommendation `gorm:"foreignKey:PersonID"`
}
