package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/application/commands"
	"curator/internal/ports"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Tag every untagged file with a category label",
	Long: `Crawl the whole archive and tag each untagged file. Compatible files
are downloaded and classified by the LLM; incompatible ones are tagged
Uncategorized without a download. Files that already carry a tag are
skipped, so the crawl can be re-run after a crash or after the daily
classification quota runs out.

Examples:
  curator-cli tag
  curator-cli --config prod.yaml tag`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sink := ports.ProgressFunc(func(message string) {
			fmt.Println(message)
		})

		tagCmd := commands.NewTagFilesCommand(storage, classifier, sink, cfg.PageSize)
		_, err := tagCmd.Execute(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
}
