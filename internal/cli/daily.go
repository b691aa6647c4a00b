package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soccorso-app/soccorso/internal/daemon"
)

func init() {
	rootCmd.AddCommand(dailyCmd)
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show today's daily challenge scenario",
	RunE:  runDaily,
}

func runDaily(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	fmt.Printf("Today's challenge: %s\n", d.Progress.DailyChallenge())
	return nil
}
