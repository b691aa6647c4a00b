package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soccorso-app/soccorso/internal/daemon"
	"github.com/soccorso-app/soccorso/internal/infra/catalog"
)

func init() {
	rootCmd.AddCommand(shopCmd)
	shopCmd.AddCommand(shopBuyCmd)
}

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "List the shop catalog",
	RunE:  runShop,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <item-id>",
	Short: "Buy a shop item with spendable XP",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopBuy,
}

func runShop(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tNAME\tPRICE")
	for category, items := range catalog.ShopItems {
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d XP\n", it.ID, category, it.Name, it.Price)
		}
	}
	return w.Flush()
}

func runShopBuy(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rec, err := d.Progress.Purchase(d.Config.Player.ID, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Bought %s — %d XP remaining.\n", args[0], rec.XP)
	return nil
}
