// Command careerctl scores profiles, records feedback and manages model
// artifacts from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"career-recommender/internal/shared/config"
	"career-recommender/internal/shared/telemetry"
)

func newRootCmd() *cobra.Command {
	var (
		modelDir    string
		feedbackLog string
		logLevel    string
	)
	root := &cobra.Command{
		Use:           "careerctl",
		Short:         "Career recommender command line",
		Long:          "careerctl runs career recommendations against a trained model bundle, records feedback and validates or publishes model artifacts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&modelDir, "model-dir", "", "Directory holding the model artifacts (overrides MODEL_DIR)")
	root.PersistentFlags().StringVar(&feedbackLog, "feedback-log", "", "Feedback log file (overrides FEEDBACK_LOG_PATH)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")

	loadConfig := func() config.Config {
		cfg := config.Load()
		telemetry.SetOutput(root.ErrOrStderr(), telemetry.ParseLevel(logLevel))
		if modelDir != "" {
			cfg.ObjectStoreType = "local"
			cfg.LocalStoreDir = modelDir
		}
		if feedbackLog != "" {
			cfg.FeedbackLogPath = feedbackLog
		}
		return cfg
	}

	root.AddCommand(
		newRecommendCmd(loadConfig),
		newFeedbackCmd(loadConfig),
		newArtifactsCmd(loadConfig),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
