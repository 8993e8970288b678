package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"mcdpromo-backend/lib/scrapers/mcdmcp"
	"mcdpromo-backend/lib/timezone"
	"mcdpromo-backend/services/promo"
)

func init() {
	rootCmd.AddCommand(calendarCmd)
}

// serverDate asks the upstream for its notion of "today". Falling back
// to local Beijing time keeps the month filter working when the tool
// call fails.
func serverDate(ctx context.Context, client *mcdmcp.Client) (string, time.Time) {
	date, err := client.NowDate(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to get server time, using local time", "err", err)
		return "", time.Time{}
	}
	parsed, err := time.ParseInLocation("2006-01-02", date, timezone.Location)
	if err != nil {
		slog.WarnContext(ctx, "unparseable server date", "date", date, "err", err)
		return date, time.Time{}
	}
	return date, parsed
}

func fetchCalendar(ctx context.Context, client *mcdmcp.Client, reference time.Time) []promo.DayActivities {
	text, err := client.CampaignCalendar(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "calendar query failed", "err", err)
		return nil
	}
	return promo.ExtractCalendar(text, reference)
}

func saveSnapshot(config Config, days []promo.DayActivities, date string) {
	store := promo.NewStore(config.SnapshotPath)
	err := store.Save(promo.Snapshot{ServerDate: date, Activities: days})
	if err != nil {
		slog.Error("failed to save calendar snapshot", "err", err)
		return
	}
	slog.Info("calendar snapshot saved", "path", config.SnapshotPath, "days", len(days))
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Fetches the monthly activity calendar, saves a snapshot and prints the claim schedule.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := readConfig()
		client := createMcpClient(ctx, config)

		date, reference := serverDate(ctx, client)
		days := fetchCalendar(ctx, client, reference)
		if len(days) == 0 {
			slog.Warn("no activities found this month")
			return
		}
		saveSnapshot(config, days, date)

		fmt.Println("Schedule:")
		for _, s := range promo.CronSchedules(days) {
			fmt.Printf("  %s: %s (%d activities)\n", s.Date, s.Cron, len(s.Activities))
		}

		tg := createTelegramClient(config)
		if !tg.Configured() {
			slog.Info("telegram not configured, skipping push")
			return
		}
		err := tg.SendMessage(ctx, promo.FormatCalendarUpdate(days, config.PagesUrl))
		if err != nil {
			slog.ErrorContext(ctx, "telegram push failed", "err", err)
		}
	},
}
