package db_models

import "github.com/google/uuid"

type Recommendation struct {
	BaseModel
	BookID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_recommendations_edge"`
	PersonID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_recommendations_edge"`
	Source   string    `gorm:"uniqueIndex:idx_recommendations_edge"`

	SourceLink string

	Book   Book   `gorm:"foreignKey:BookID"`
	Person Person `gorm:"foreignKey:PersonID"`
}
