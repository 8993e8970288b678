package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mcdpromo-backend/lib/serviceutil"
	"mcdpromo-backend/lib/sqliteutil"
	"mcdpromo-backend/services/runlog"
	runlogdb "mcdpromo-backend/services/runlog/db"
)

var runsLimit *int

func init() {
	runsLimit = runsCmd.Flags().IntP("limit", "n", 20, "How many runs to show.")
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs [--limit <n>]",
	Short: "Shows the most recent claim runs.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := readConfig()

		database, err := sqliteutil.OpenDB(runlogdb.Schema, config.RunlogDb)
		if err != nil {
			serviceutil.Fatal("failed to open run log", err)
		}
		defer database.Close()

		entries, err := runlog.NewService(database).Recent(ctx, *runsLimit)
		if err != nil {
			serviceutil.Fatal("failed to read run log", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Time", "Mode", "Success", "Failed", "Coupons", "Activity Days", "Message"})
		for _, e := range entries {
			t.AppendRow(table.Row{
				e.Time.Format("2006-01-02 15:04"),
				e.Mode,
				e.Success,
				e.Failed,
				e.Coupons,
				e.Activities,
				e.Message,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
