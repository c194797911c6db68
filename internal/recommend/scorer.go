package recommend

import (
	"fmt"
	"math"
	"strings"

	"career-recommender/internal/model"
)

const maxSubScore = 100

// ScoreResult is the outcome of scoring one profile.
type ScoreResult struct {
	PredictedCareer string
	Confidence      float64
	SkillScore      int
	InterestScore   int
}

// Score classifies skills + " " + interests and derives the heuristic sub-scores.
func Score(skills, interests string, a *model.Artifacts) (ScoreResult, error) {
	if a == nil {
		return ScoreResult{}, ErrModelNotConfigured
	}
	vec := a.Vectorizer.Transform(skills + " " + interests)
	probs, err := a.Classifier.PredictProba(vec)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("predict: %w", err)
	}
	if len(probs) == 0 {
		return ScoreResult{}, fmt.Errorf("predict: %w: no class probabilities", model.ErrInvalidArtifact)
	}
	top := model.ArgMax(probs)
	career, err := a.Labels.InverseTransform(top)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("decode label: %w", err)
	}
	return ScoreResult{
		PredictedCareer: career,
		Confidence:      RoundConfidence(probs[top]),
		SkillScore:      SkillScore(skills),
		InterestScore:   InterestScore(interests),
	}, nil
}

// RoundConfidence converts a probability to a percentage rounded half-to-even at two decimals.
func RoundConfidence(p float64) float64 {
	return math.RoundToEven(p*100*100) / 100
}

// SkillScore counts comma-separated segments, empty ones included, at 10 points each.
func SkillScore(skills string) int {
	return min(len(strings.Split(skills, ","))*10, maxSubScore)
}

// InterestScore counts whitespace-separated words at 10 points each.
func InterestScore(interests string) int {
	return min(len(strings.Fields(interests))*10, maxSubScore)
}
