package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 19, 15, 4, 0, 0, time.UTC)

func sampleSummary() Summary {
	return Summary{
		Career:        "Data Scientist",
		Confidence:    86.53,
		SkillScore:    30,
		InterestScore: 30,
		Projects:      []string{"Loan Default Predictor", "Customer Segmentation", "Time Series Forecasting"},
		Roadmap:       []string{"Learn Python, NumPy, Pandas", "Apply for internships or freelance gigs"},
	}
}

func textLayer(t *testing.T, data []byte) string {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	plain, err := r.GetPlainText()
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = io.Copy(&buf, plain)
	require.NoError(t, err)
	return buf.String()
}

func TestRenderRoundTripsScalarFields(t *testing.T) {
	r := &Renderer{Now: func() time.Time { return fixedNow }}

	data, err := r.Render(sampleSummary())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	text := textLayer(t, data)
	for _, want := range []string{
		Title,
		"Generated on: 19 October 2026, 03:04 PM",
		"Recommended Career: Data Scientist",
		"Confidence: 86.53%",
		"Skill Match Score: 30",
		"Interest Match Score: 30",
		"Suggested Projects:",
		"- Customer Segmentation",
		"Career Roadmap:",
		"- Apply for internships or freelance gigs",
	} {
		assert.Contains(t, text, want)
	}
}

func TestRenderMissingLogoIsSkipped(t *testing.T) {
	r := &Renderer{LogoPath: filepath.Join(t.TempDir(), "logo.png"), Now: func() time.Time { return fixedNow }}

	data, err := r.Render(sampleSummary())
	require.NoError(t, err)
	assert.Contains(t, textLayer(t, data), "Recommended Career: Data Scientist")
}

func TestRenderUndecodableLogoIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	r := &Renderer{LogoPath: path, Now: func() time.Time { return fixedNow }}

	data, err := r.Render(sampleSummary())
	require.NoError(t, err)
	assert.Contains(t, textLayer(t, data), "Skill Match Score: 30")
}

func TestRenderWithLogo(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 20, G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	withLogo, err := (&Renderer{LogoPath: path, Now: func() time.Time { return fixedNow }}).Render(sampleSummary())
	require.NoError(t, err)
	without, err := (&Renderer{Now: func() time.Time { return fixedNow }}).Render(sampleSummary())
	require.NoError(t, err)

	assert.Contains(t, string(withLogo), "/Subtype /Image")
	assert.NotContains(t, string(without), "/Subtype /Image")
}

func TestRenderFallbackLists(t *testing.T) {
	s := Summary{
		Career:     "UX Designer",
		Confidence: 25,
		SkillScore: 10,
		Projects:   []string{"Explore open-source ideas on GitHub"},
		Roadmap:    []string{"Explore learning paths on LinkedIn Learning or Coursera"},
	}
	data, err := (&Renderer{Now: func() time.Time { return fixedNow }}).Render(s)
	require.NoError(t, err)

	text := textLayer(t, data)
	assert.Contains(t, text, "Confidence: 25.0%")
	assert.Contains(t, text, "Interest Match Score: 0")
	assert.True(t, strings.Contains(text, "- Explore open-source ideas on GitHub"))
}

func TestFormatConfidence(t *testing.T) {
	cases := map[float64]string{
		25:    "25.0",
		86.53: "86.53",
		100:   "100.0",
		0.12:  "0.12",
		33.3:  "33.3",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatConfidence(in))
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "05 March 2026, 09:07 AM", FormatTimestamp(time.Date(2026, time.March, 5, 9, 7, 0, 0, time.UTC)))
}

func TestRenderRejectsTextOutsideFontEncoding(t *testing.T) {
	r := &Renderer{Now: func() time.Time { return fixedNow }}

	cases := map[string]Summary{
		"career":  {Career: "数据科学家", Confidence: 50},
		"project": {Career: "Data Scientist", Projects: []string{"Build a → pipeline"}},
		"roadmap": {Career: "Data Scientist", Roadmap: []string{"Learn Ω notation"}},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := r.Render(s)
			require.ErrorIs(t, err, ErrUnencodableText)
			assert.Nil(t, data)
		})
	}
}

func TestRenderKeepsWindows1252Accents(t *testing.T) {
	r := &Renderer{Now: func() time.Time { return fixedNow }}

	data, err := r.Render(Summary{Career: "Développeur Backend", Projects: []string{"Café – POS"}})
	require.NoError(t, err)
	text := textLayer(t, data)
	assert.Contains(t, text, "Recommended Career: Développeur Backend")
}

func TestRenderPrefersSummaryTimestamp(t *testing.T) {
	r := &Renderer{Now: func() time.Time { return fixedNow }}
	s := sampleSummary()
	s.GeneratedAt = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

	data, err := r.Render(s)
	require.NoError(t, err)
	assert.Contains(t, textLayer(t, data), "Generated on: 19 October 2026, 09:30 AM")
}
