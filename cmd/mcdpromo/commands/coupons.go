package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mcdpromo-backend/services/promo"
)

func init() {
	rootCmd.AddCommand(couponsCmd)
}

var couponsCmd = &cobra.Command{
	Use:   "coupons",
	Short: "Lists the coupons currently in the account.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := readConfig()
		client := createMcpClient(ctx, config)

		coupons := fetchCoupons(ctx, client)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Coupon", "Price", "Validity"})
		for _, c := range coupons {
			t.AppendRow(table.Row{c.Title, "¥" + c.Price, promo.ShortValidity(c.Validity)})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
