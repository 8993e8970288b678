package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fullCmd)
}

var fullCmd = &cobra.Command{
	Use:   "full",
	Short: "Runs the complete flow: fetch calendar, claim coupons, push report.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := readConfig()
		client := createMcpClient(ctx, config)

		date, reference := serverDate(ctx, client)
		days := fetchCalendar(ctx, client, reference)
		if len(days) > 0 {
			saveSnapshot(config, days, date)
		} else {
			slog.Warn("no upcoming activities found")
		}

		claim := claimCoupons(ctx, client)
		coupons := fetchCoupons(ctx, client)

		publishReport(ctx, config, days, claim, coupons)
		recordRun(ctx, config, "full", days, claim, coupons)
	},
}
