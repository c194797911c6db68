package recommend

import "time"

// RecommendationResponse is the JSON form of a Recommendation.
type RecommendationResponse struct {
	RecommendationID string    `json:"recommendationId"`
	PredictedCareer  string    `json:"predictedCareer"`
	Confidence       float64   `json:"confidence"`
	SkillScore       int       `json:"skillScore"`
	InterestScore    int       `json:"interestScore"`
	Projects         []string  `json:"projects"`
	Roadmap          []string  `json:"roadmap"`
	Breakdown        []Metric  `json:"breakdown"`
	InputSource      string    `json:"inputSource"`
	ResumePreview    string    `json:"resumePreview,omitempty"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

// CatalogEntryResponse is the JSON form of one catalog lookup.
type CatalogEntryResponse struct {
	Career   string   `json:"career"`
	Known    bool     `json:"known"`
	Projects []string `json:"projects"`
	Roadmap  []string `json:"roadmap"`
}

type recommendRequest struct {
	Skills    string `json:"skills" binding:"max=5000"`
	Interests string `json:"interests" binding:"max=5000"`
}

func toResponse(rec Recommendation) RecommendationResponse {
	return RecommendationResponse{
		RecommendationID: rec.ID,
		PredictedCareer:  rec.PredictedCareer,
		Confidence:       rec.Confidence,
		SkillScore:       rec.SkillScore,
		InterestScore:    rec.InterestScore,
		Projects:         rec.Projects,
		Roadmap:          rec.Roadmap,
		Breakdown:        rec.Breakdown(),
		InputSource:      rec.InputSource,
		ResumePreview:    rec.ResumePreview,
		GeneratedAt:      rec.GeneratedAt,
	}
}
