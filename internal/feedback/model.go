package feedback

import "time"

// Record is one submitted rating. Records are append-only.
type Record struct {
	ID               string
	Rating           int
	Comments         string
	RecommendationID string
	PredictedCareer  string
	CreatedAt        time.Time
}
