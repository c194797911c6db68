package recommend

import "time"

const resumePreviewRunes = 1000

// Upload is a resume file received with a request.
type Upload struct {
	FileName string
	MimeType string
	Data     []byte
}

// Input is one recommendation request.
type Input struct {
	Skills    string
	Interests string
	Resume    *Upload
}

// Recommendation is the full result shown to the user. It is never persisted.
type Recommendation struct {
	ID              string
	PredictedCareer string
	Confidence      float64
	SkillScore      int
	InterestScore   int
	Projects        []string
	Roadmap         []string
	InputSource     string
	ResumePreview   string
	GeneratedAt     time.Time
}

// Metric is one bar of the score breakdown chart.
type Metric struct {
	Name  string  `json:"metric"`
	Score float64 `json:"score"`
}

// Breakdown lists the chart bars in display order.
func (r Recommendation) Breakdown() []Metric {
	return []Metric{
		{Name: "Confidence", Score: r.Confidence},
		{Name: "Skill Match", Score: float64(r.SkillScore)},
		{Name: "Interest Match", Score: float64(r.InterestScore)},
	}
}

func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= resumePreviewRunes {
		return text
	}
	return string(runes[:resumePreviewRunes])
}
