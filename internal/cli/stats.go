package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soccorso-app/soccorso/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the local player's progress",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rec, err := d.Progress.Progress(d.Config.Player.ID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Level\t%d\n", rec.Level)
	fmt.Fprintf(w, "XP (spendable)\t%d\n", rec.XP)
	fmt.Fprintf(w, "XP (lifetime)\t%d\n", rec.LifetimeXP)
	fmt.Fprintf(w, "XP (this week)\t%d\n", rec.WeeklyXP)
	fmt.Fprintf(w, "Streak\t%d days\n", rec.Streak)
	fmt.Fprintf(w, "Perfect answers\t%d in a row\n", rec.PerfectStreak)
	fmt.Fprintf(w, "Badges\t%d\n", len(rec.Badges))
	fmt.Fprintf(w, "Exams taken\t%d\n", len(rec.ExamAttempts))
	return w.Flush()
}
