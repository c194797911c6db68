package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"career-recommender/internal/shared/telemetry"
)

const (
	Title       = "Career Recommendation Summary"
	FileName    = "career_summary.pdf"
	ContentType = "application/pdf"

	logoName = "logo"
)

// ErrUnencodableText is returned when a summary field holds characters the
// report's core fonts (Windows-1252) cannot represent.
var ErrUnencodableText = errors.New("text not representable in report font")

// Summary is everything printed on the one-page report.
type Summary struct {
	Career        string
	Confidence    float64
	SkillScore    int
	InterestScore int
	Projects      []string
	Roadmap       []string
	// GeneratedAt is printed as the generation time. Zero means the renderer's clock.
	GeneratedAt time.Time
}

// Renderer draws summaries as PDF documents. The zero value renders without a logo using the wall clock.
type Renderer struct {
	LogoPath string
	Now      func() time.Time
}

func New(logoPath string) *Renderer {
	return &Renderer{LogoPath: logoPath, Now: time.Now}
}

// Render returns the PDF bytes for s. A missing or unreadable logo is skipped; every other failure is returned.
func (r *Renderer) Render(s Summary) ([]byte, error) {
	if err := checkEncodable(s); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	now := s.GeneratedAt
	if now.IsZero() {
		now = time.Now()
		if r.Now != nil {
			now = r.Now()
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetTitle(Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	r.drawLogo(pdf)

	pdf.SetXY(50, 10)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(100, 10, tr(Title), "", 1, "C", false, 0, "")
	pdf.Ln(20)

	pdf.SetFont("Arial", "", 10)
	line(pdf, tr("Generated on: "+FormatTimestamp(now)))
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	line(pdf, tr("Recommended Career: "+s.Career))
	line(pdf, tr("Confidence: "+FormatConfidence(s.Confidence)+"%"))
	line(pdf, tr("Skill Match Score: "+strconv.Itoa(s.SkillScore)))
	line(pdf, tr("Interest Match Score: "+strconv.Itoa(s.InterestScore)))
	pdf.Ln(10)

	line(pdf, tr("Suggested Projects:"))
	for _, p := range s.Projects {
		line(pdf, tr("- "+p))
	}
	line(pdf, tr("Career Roadmap:"))
	for _, step := range s.Roadmap {
		line(pdf, tr("- "+step))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// checkEncodable rejects summaries the cp1252 translator would silently mangle.
func checkEncodable(s Summary) error {
	enc := charmap.Windows1252.NewEncoder()
	fields := append([]string{s.Career}, s.Projects...)
	fields = append(fields, s.Roadmap...)
	for _, f := range fields {
		if _, err := enc.String(f); err != nil {
			return fmt.Errorf("%w: %q", ErrUnencodableText, f)
		}
	}
	return nil
}

func line(pdf *fpdf.Fpdf, text string) {
	pdf.CellFormat(200, 10, text, "", 1, "", false, 0, "")
}

// drawLogo places the logo at the top left. Any failure leaves the page without it.
func (r *Renderer) drawLogo(pdf *fpdf.Fpdf) {
	if r.LogoPath == "" {
		return
	}
	data, err := os.ReadFile(r.LogoPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			telemetry.Warn("report.logo_skipped", map[string]any{"path": r.LogoPath, "err": err})
		} else {
			telemetry.Debug("report.logo_skipped", map[string]any{"path": r.LogoPath, "reason": "missing"})
		}
		return
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		telemetry.Debug("report.logo_skipped", map[string]any{"path": r.LogoPath, "err": err})
		return
	}

	opts := fpdf.ImageOptions{ImageType: format, ReadDpi: true}
	pdf.RegisterImageOptionsReader(logoName, opts, bytes.NewReader(data))
	if err := pdf.Error(); err != nil {
		pdf.ClearError()
		telemetry.Debug("report.logo_skipped", map[string]any{"path": r.LogoPath, "err": err})
		return
	}
	pdf.ImageOptions(logoName, 10, 8, 30, 0, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		pdf.ClearError()
		telemetry.Debug("report.logo_skipped", map[string]any{"path": r.LogoPath, "err": err})
	}
}
