package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/application/commands"
	"curator/internal/ports"
)

var moveFiles bool

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Place files into Year/Month/Category folders",
	Long: `Walk the whole archive and place each file under
<root>/<year>/<month>/<category>, where year and month come from the
file's creation time and the category from its tag. Untagged files go
under Uncategorized. Files already present at their destination are
skipped.

By default files are copied and the originals stay where they are; pass
--move to move them instead.

Examples:
  curator-cli organize
  curator-cli organize --move`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sink := ports.ProgressFunc(func(message string) {
			fmt.Println(message)
		})

		mode := commands.ModeCopy
		if moveFiles {
			mode = commands.ModeMove
		}

		organizeCmd := commands.NewOrganizeFilesCommand(storage, sink, cfg.Organize.RootFolder, mode, cfg.PageSize)
		_, err := organizeCmd.Execute(cmd.Context())
		return err
	},
}

func init() {
	organizeCmd.Flags().BoolVar(&moveFiles, "move", false, "move files instead of copying them")
	rootCmd.AddCommand(organizeCmd)
}
