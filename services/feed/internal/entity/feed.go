package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Feed is the Postgres row shape for one stored feed blob. The post array is
// kept as a single JSONB document; it is always read and replaced wholesale.
type Feed struct {
	FeedID    string         `gorm:"primaryKey;size:32" json:"feed_id"`
	Posts     datatypes.JSON `gorm:"type:jsonb;not null" json:"posts"`
	PostCount int            `gorm:"not null;default:0" json:"post_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Feed) TableName() string {
	return "feeds"
}
