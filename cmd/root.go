// Package cmd provides command-line interface commands for contribrole
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Ahmed-Tahan7/TestDiscord/internal/log"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contribrole",
	Short: "Grant a Discord role to GitHub contributors",
	Long: `contribrole - give contributors their Discord role from CI

Looks up the GitHub user that triggered the workflow in a mapping file
(GitHub username -> Discord user ID) and grants them a role in your
Discord guild through the bot API.

Features:
  • One-shot role assignment from a GitHub Actions step
  • Mapping file maintenance and linting
  • Optional webhook announcement for new contributors`,
	Example: `  # Assign the contributor role to $GITHUB_ACTOR
  contribrole assign

  # Check the mapping file in CI
  contribrole mapping check --mapping users.json

  # Add yourself to the mapping
  contribrole mapping add octocat 175928847299117063`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
}
