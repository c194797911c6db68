package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"career-recommender/internal/shared/metrics"
	"career-recommender/internal/shared/telemetry"
)

const DefaultRating = 3

// SubmitInput is one feedback submission.
type SubmitInput struct {
	Rating           int    `json:"rating" validate:"min=1,max=5"`
	Comments         string `json:"comments" validate:"max=2000"`
	RecommendationID string `json:"recommendationId" validate:"omitempty,uuid"`
	PredictedCareer  string `json:"predictedCareer" validate:"max=200"`
}

var validate = validator.New()

// Service validates and stores feedback.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Submit validates in and appends it to the log.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Record, error) {
	in.RecommendationID = strings.TrimSpace(in.RecommendationID)
	in.PredictedCareer = strings.TrimSpace(in.PredictedCareer)
	if err := validate.Struct(in); err != nil {
		return Record{}, fmt.Errorf("%w: %s", ErrInvalidInput, describe(err))
	}
	if s.Repo == nil {
		return Record{}, errors.New("feedback repo not configured")
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	rec := Record{
		ID:               uuid.NewString(),
		Rating:           in.Rating,
		Comments:         in.Comments,
		RecommendationID: in.RecommendationID,
		PredictedCareer:  in.PredictedCareer,
		CreatedAt:        now().UTC(),
	}
	if err := s.Repo.Append(ctx, rec); err != nil {
		telemetry.Error("feedback.append_failed", map[string]any{"feedback_id": rec.ID, "err": err})
		return Record{}, fmt.Errorf("append feedback: %w", err)
	}

	metrics.IncFeedbackSubmitted()
	telemetry.Info("feedback.submitted", map[string]any{
		"feedback_id":       rec.ID,
		"rating":            rec.Rating,
		"recommendation_id": rec.RecommendationID,
	})
	return rec, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Rating":
			parts = append(parts, "rating must be between 1 and 5")
		case "Comments":
			parts = append(parts, "comments must be at most 2000 characters")
		case "RecommendationID":
			parts = append(parts, "recommendationId must be a UUID")
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
