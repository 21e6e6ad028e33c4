package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is an append-only rating left after a prediction.
type Feedback struct {
	ID        uint      `gorm:"primaryKey"`
	Disease   string    `gorm:"size:128;not null"`
	Rating    int       `gorm:"not null"`
	Comments  *string   `gorm:"type:text"`
	Email     *string   `gorm:"size:320"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (Feedback) TableName() string { return "feedback" }

// ClampRating forces a rating into [MinRating, MaxRating].
func ClampRating(r int) int {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}
