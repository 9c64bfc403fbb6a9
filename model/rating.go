package model

import "time"

type Rating struct {
	Score     int       `bson:"score" json:"score"`
	Label     string    `bson:"label" json:"label"`
	IPAddress string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent string    `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// RatingBucket is one histogram row of the stats endpoint, ordered by score
// ascending.
type RatingBucket struct {
	Score int    `bson:"_id" json:"score"`
	Count int    `bson:"count" json:"count"`
	Label string `bson:"label" json:"label"`
}

type RatingStats struct {
	Histogram     []RatingBucket `json:"stats"`
	TotalRatings  int            `json:"totalRatings"`
	AverageRating float64        `json:"averageRating"`
}
