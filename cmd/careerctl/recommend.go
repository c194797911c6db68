package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"career-recommender/internal/bootstrap"
	"career-recommender/internal/extract"
	"career-recommender/internal/recommend"
	"career-recommender/internal/report"
	"career-recommender/internal/shared/config"
)

func newRecommendCmd(loadConfig func() config.Config) *cobra.Command {
	var (
		skills    string
		interests string
		resume    string
		out       string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Predict a career from skills and interests or a resume",
		Example: `  careerctl recommend --skills "Python, SQL" --interests "data analysis"
  careerctl recommend --resume cv.docx --out career_summary.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig()
			app, err := bootstrap.BuildServices(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			in := recommend.Input{Skills: skills, Interests: interests}
			if resume != "" {
				up, err := readUpload(resume)
				if err != nil {
					return err
				}
				in.Resume = up
			}

			rec, err := app.RecommendService.Recommend(cmd.Context(), in)
			if err != nil {
				return err
			}

			if out != "" {
				pdf, err := app.RecommendService.Report(rec)
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, pdf, 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			printRecommendation(w, rec)
			if out != "" {
				fmt.Fprintf(w, "\nReport written to %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&skills, "skills", "", "Comma-separated skills")
	cmd.Flags().StringVar(&interests, "interests", "", "Free-text interests")
	cmd.Flags().StringVar(&resume, "resume", "", "Path to a resume (.docx, .pdf or .txt)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the PDF summary to this path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func readUpload(path string) (*recommend.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	name := filepath.Base(path)
	return &recommend.Upload{
		FileName: name,
		MimeType: extract.NormalizeMimeType("", name, data),
		Data:     data,
	}, nil
}

func printRecommendation(w io.Writer, rec recommend.Recommendation) {
	fmt.Fprintf(w, "Predicted Career: %s\n", rec.PredictedCareer)
	fmt.Fprintf(w, "Confidence: %s%%\n", report.FormatConfidence(rec.Confidence))
	fmt.Fprintf(w, "Skill Score: %d\n", rec.SkillScore)
	fmt.Fprintf(w, "Interest Score: %d\n", rec.InterestScore)
	fmt.Fprintln(w, "\nSuggested Projects:")
	for _, p := range rec.Projects {
		fmt.Fprintf(w, "  - %s\n", p)
	}
	fmt.Fprintln(w, "\nLearning Roadmap:")
	for _, step := range rec.Roadmap {
		fmt.Fprintf(w, "  - %s\n", step)
	}
	if preview := strings.TrimSpace(rec.ResumePreview); preview != "" {
		fmt.Fprintf(w, "\nResume preview:\n%s\n", preview)
	}
}
