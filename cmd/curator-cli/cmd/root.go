package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"curator/internal/adapters/miniostore"
	"curator/internal/adapters/openaicls"
	"curator/internal/config"
	"curator/internal/ports"
)

var (
	configPath string
	cfg        *config.Config
	storage    ports.Storage
	classifier ports.Classifier
)

var rootCmd = &cobra.Command{
	Use:   "curator-cli",
	Short: "CLI for tagging and organizing cloud file archives",
	Long: `curator-cli tags every file in a storage bucket with a category label
chosen by an LLM classifier, then organizes tagged files into a
Year/Month/Category folder hierarchy derived from each file's creation
time and tag.

Both passes skip work already done, so they are safe to re-run and
resume where a previous run stopped.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		storage, err = miniostore.New(cfg.Storage)
		if err != nil {
			return err
		}
		classifier = openaicls.New(cfg.Classifier, cfg.LabelSet())
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.Path(), "path to the config file")
}
