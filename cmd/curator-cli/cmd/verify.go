package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the classifier accepts the configured API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := classifier.Verify(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("classifier credential accepted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
