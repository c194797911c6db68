package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"career-recommender/internal/bootstrap"
	"career-recommender/internal/feedback"
	"career-recommender/internal/shared/config"
)

func newFeedbackCmd(loadConfig func() config.Config) *cobra.Command {
	var in feedback.SubmitInput
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record a rating for a recommendation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig()
			repo, sqlDB, err := bootstrap.BuildFeedbackRepo(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if sqlDB != nil {
				defer sqlDB.Close()
			}

			rec, err := feedback.NewService(repo).Submit(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", feedback.ThankYou, rec.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&in.Rating, "rating", feedback.DefaultRating, "Rating from 1 to 5")
	cmd.Flags().StringVar(&in.Comments, "comments", "", "Free-text comments")
	cmd.Flags().StringVar(&in.RecommendationID, "recommendation-id", "", "Recommendation the feedback refers to")
	cmd.Flags().StringVar(&in.PredictedCareer, "career", "", "Predicted career the feedback refers to")
	return cmd
}
