package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"career-recommender/internal/extract"
	"career-recommender/internal/model"
	"career-recommender/internal/report"
	"career-recommender/internal/shared/metrics"
	"career-recommender/internal/shared/telemetry"
)

// ReportRenderer turns a summary into a downloadable document.
type ReportRenderer interface {
	Render(s report.Summary) ([]byte, error)
}

// Service runs the extract, score, lookup and render pipeline.
type Service struct {
	Artifacts *model.Artifacts
	Catalog   *Catalog
	Renderer  ReportRenderer
	Now       func() time.Time
}

// Recommend scores the input and attaches catalog suggestions.
func (s *Service) Recommend(ctx context.Context, in Input) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}
	start := time.Now()
	id := uuid.NewString()
	metrics.IncRecommendationStarted()

	rec, err := s.recommend(ctx, id, in)
	metrics.ObserveRecommendationDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncRecommendationFailed()
		telemetry.Warn("recommendation.failed", map[string]any{
			"recommendation_id": id,
			"err":               err,
		})
		return Recommendation{}, err
	}

	metrics.IncRecommendationCompleted(rec.PredictedCareer)
	telemetry.Info("recommendation.complete", map[string]any{
		"recommendation_id": rec.ID,
		"predicted_career":  rec.PredictedCareer,
		"confidence":        rec.Confidence,
		"skill_score":       rec.SkillScore,
		"interest_score":    rec.InterestScore,
		"input_source":      rec.InputSource,
	})
	return rec, nil
}

func (s *Service) recommend(ctx context.Context, id string, in Input) (Recommendation, error) {
	resumeText, err := s.resumeText(ctx, in.Resume)
	if err != nil {
		return Recommendation{}, err
	}

	profile := ExtractProfile(ProfileInput{
		Skills:     in.Skills,
		Interests:  in.Interests,
		ResumeText: resumeText,
	})

	scored, err := Score(profile.Skills, profile.Interests, s.Artifacts)
	if err != nil {
		return Recommendation{}, fmt.Errorf("score: %w", err)
	}

	catalog := s.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	projects, roadmap := catalog.Lookup(scored.PredictedCareer)

	rec := Recommendation{
		ID:              id,
		PredictedCareer: scored.PredictedCareer,
		Confidence:      scored.Confidence,
		SkillScore:      scored.SkillScore,
		InterestScore:   scored.InterestScore,
		Projects:        projects,
		Roadmap:         roadmap,
		InputSource:     profile.Source(),
		GeneratedAt:     s.now(),
	}
	if in.Resume != nil {
		rec.ResumePreview = previewText(resumeText)
	}
	return rec, nil
}

// Report renders the PDF summary of rec.
func (s *Service) Report(rec Recommendation) ([]byte, error) {
	if s.Renderer == nil {
		return nil, errors.New("report renderer not configured")
	}
	data, err := s.Renderer.Render(report.Summary{
		Career:        rec.PredictedCareer,
		Confidence:    rec.Confidence,
		SkillScore:    rec.SkillScore,
		InterestScore: rec.InterestScore,
		Projects:      rec.Projects,
		Roadmap:       rec.Roadmap,
		GeneratedAt:   rec.GeneratedAt,
	})
	if err != nil {
		telemetry.Error("report.render_failed", map[string]any{
			"recommendation_id": rec.ID,
			"err":               err,
		})
		return nil, err
	}
	return data, nil
}

// RecommendWithReport runs Recommend and renders the report in one step. No result is returned if rendering fails.
func (s *Service) RecommendWithReport(ctx context.Context, in Input) (Recommendation, []byte, error) {
	rec, err := s.Recommend(ctx, in)
	if err != nil {
		return Recommendation{}, nil, err
	}
	data, err := s.Report(rec)
	if err != nil {
		return Recommendation{}, nil, fmt.Errorf("render report: %w", err)
	}
	return rec, data, nil
}

func (s *Service) resumeText(ctx context.Context, up *Upload) (string, error) {
	if up == nil {
		return "", nil
	}
	text, err := extract.ExtractTextFromBytes(ctx, up.Data, up.MimeType, up.FileName)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			return "", fmt.Errorf("%w: %v", ErrUnsupportedUpload, err)
		case errors.Is(err, extract.ErrMalformed):
			return "", fmt.Errorf("%w: %v", ErrMalformedUpload, err)
		default:
			return "", err
		}
	}
	return text, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
