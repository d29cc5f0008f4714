package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srazzak/tutorsite/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default tutorsite configuration file",
	Long:  `Writes .tutorsite.yml (or the file named by --config) with the default settings, ready to edit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(cfgFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile)
		}
		if err := config.DefaultConfig().Save(cfgFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
