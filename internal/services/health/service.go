package health

import (
	"career-recommender/internal/model"
)

// Service reports readiness of the loaded model bundle.
type Service struct {
	Artifacts     *model.Artifacts
	FeedbackStore string
}

// Status is the health payload.
type Status struct {
	OK            bool        `json:"ok"`
	Model         *model.Info `json:"model,omitempty"`
	FeedbackStore string      `json:"feedbackStore,omitempty"`
}

// NewService constructs a new health service.
func NewService(artifacts *model.Artifacts, feedbackStore string) *Service {
	return &Service{Artifacts: artifacts, FeedbackStore: feedbackStore}
}

// Status returns ok once a model bundle is loaded.
func (s *Service) Status() Status {
	if s == nil || s.Artifacts == nil {
		return Status{OK: false}
	}
	info := s.Artifacts.Info
	return Status{OK: true, Model: &info, FeedbackStore: s.FeedbackStore}
}
