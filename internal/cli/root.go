// Package cli implements the soccorso command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "soccorso",
	Short: "Soccorso — first-aid training progression engine",
	Long: `Soccorso is the progression backend of the first-aid training course:
XP, levels, streaks, quests, badges and exam history for the local player,
plus the API server the web client talks to.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
