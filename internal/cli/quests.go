package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soccorso-app/soccorso/internal/daemon"
	"github.com/soccorso-app/soccorso/internal/domain"
)

func init() {
	questsCmd.Flags().BoolVar(&questsWeekly, "weekly", false, "Show the weekly roster instead of today's")
	rootCmd.AddCommand(questsCmd)
}

var questsWeekly bool

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "Show the active quest roster",
	RunE:  runQuests,
}

func runQuests(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	window := domain.WindowDaily
	if questsWeekly {
		window = domain.WindowWeekly
	}

	quests, claimed, err := d.Progress.QuestRoster(d.Config.Player.ID, window)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUEST\tTARGET\tREWARD\tDONE")
	for _, q := range quests {
		done := ""
		if q.Completed {
			done = "✓"
		}
		fmt.Fprintf(w, "%s\t%d\t%d XP\t%s\n", q.Title, q.Target, q.Reward, done)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if claimed {
		fmt.Println("\nRoster reward already claimed.")
	}
	return nil
}
