package cmd

import "github.com/spf13/cobra"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tutorsite",
	Short: "Course catalog site with a protected document viewer",
	Long: `tutorsite serves a tutor's course catalog: a page per course level, and a
viewer that converts Word notes from the content tree into read-only HTML.
The other commands convert and check documents from the command line.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".tutorsite.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
