package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"career-recommender/internal/bootstrap"
	"career-recommender/internal/model"
	"career-recommender/internal/shared/config"
	localstore "career-recommender/internal/shared/storage/object/local"
)

const artifactContentType = "application/json"

func newArtifactsCmd(loadConfig func() config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Validate and publish model artifacts",
	}

	validateCmd := &cobra.Command{
		Use:   "validate <dir>",
		Short: "Check a model bundle against the artifact schemas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := bootstrap.ArtifactPaths(loadConfig())
			artifacts, err := validateBundle(cmd, args[0], paths)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s with %d features, classes %v\n",
				artifacts.Info.ClassifierType, artifacts.Info.Features, artifacts.Info.Classes)
			return nil
		},
	}

	pushCmd := &cobra.Command{
		Use:   "push <dir>",
		Short: "Validate a model bundle and upload it to the configured object store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			paths := bootstrap.ArtifactPaths(cfg)
			if _, err := validateBundle(cmd, args[0], paths); err != nil {
				return err
			}
			store, err := bootstrap.BuildStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			for _, kind := range model.Kinds {
				key := paths.Key(kind)
				data, err := os.ReadFile(filepath.Join(args[0], key))
				if err != nil {
					return fmt.Errorf("read %s: %w", kind, err)
				}
				n, err := store.SaveWithKey(cmd.Context(), key, artifactContentType, bytes.NewReader(data))
				if err != nil {
					return fmt.Errorf("push %s: %w", kind, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "pushed %s (%d bytes)\n", key, n)
			}
			return nil
		},
	}

	cmd.AddCommand(validateCmd, pushCmd)
	return cmd
}

// validateBundle runs the schema check on every file and then loads the
// bundle so cross-artifact consistency is checked too.
func validateBundle(cmd *cobra.Command, dir string, paths model.Paths) (*model.Artifacts, error) {
	for _, kind := range model.Kinds {
		data, err := os.ReadFile(filepath.Join(dir, paths.Key(kind)))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", kind, err)
		}
		if err := model.Validate(kind, data); err != nil {
			return nil, err
		}
	}
	return model.Load(cmd.Context(), localstore.New(dir), paths)
}
