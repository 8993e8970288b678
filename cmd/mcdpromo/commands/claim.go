package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mcdpromo-backend/lib/scrapers/mcdmcp"
	"mcdpromo-backend/lib/sqliteutil"
	"mcdpromo-backend/lib/timezone"
	"mcdpromo-backend/services/promo"
	"mcdpromo-backend/services/runlog"
	runlogdb "mcdpromo-backend/services/runlog/db"
)

func init() {
	rootCmd.AddCommand(claimCmd)
}

func claimCoupons(ctx context.Context, client *mcdmcp.Client) promo.ClaimResult {
	text, err := client.AutoBindCoupons(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "claim failed", "err", err)
		return promo.ClaimResult{Coupons: []string{}}
	}
	result := promo.ExtractClaimResult(text)
	if result.Message != "" {
		slog.InfoContext(ctx, "nothing to claim", "message", result.Message)
	} else {
		slog.InfoContext(ctx, "claim done", "success", result.Success, "failed", result.Failed)
	}
	return result
}

func fetchCoupons(ctx context.Context, client *mcdmcp.Client) []promo.CouponRecord {
	text, err := client.MyCoupons(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "coupon query failed", "err", err)
		return nil
	}
	coupons := promo.ExtractCoupons(text)
	slog.InfoContext(ctx, "found available coupons", "count", len(coupons))
	return coupons
}

// publishReport pushes the Telegram summary and writes the static HTML
// page. Both are best-effort; a failed push never fails the run.
func publishReport(ctx context.Context, config Config, days []promo.DayActivities, claim promo.ClaimResult, coupons []promo.CouponRecord) {
	now := timezone.Now()

	tg := createTelegramClient(config)
	if tg.Configured() {
		err := tg.SendMessage(ctx, promo.FormatReport(days, claim, coupons, config.PagesUrl, now))
		if err != nil {
			slog.ErrorContext(ctx, "telegram push failed", "err", err)
		}
	} else {
		slog.Info("telegram not configured, skipping push")
	}

	page, err := promo.RenderPage(days, claim, coupons, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render report page", "err", err)
		return
	}
	err = os.WriteFile(config.PagePath, page, 0644)
	if err != nil {
		slog.ErrorContext(ctx, "failed to write report page", "err", err)
		return
	}
	slog.Info("report page written", "path", config.PagePath)
}

func recordRun(ctx context.Context, config Config, mode string, days []promo.DayActivities, claim promo.ClaimResult, coupons []promo.CouponRecord) {
	database, err := sqliteutil.OpenDB(runlogdb.Schema, config.RunlogDb)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open run log", "err", err)
		return
	}
	defer database.Close()

	err = runlog.NewService(database).Record(ctx, runlog.Entry{
		Mode:       mode,
		Success:    claim.Success,
		Failed:     claim.Failed,
		Coupons:    len(coupons),
		Activities: len(days),
		Message:    claim.Message,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to record run", "err", err)
	}
}

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claims today's coupons and pushes a report, using the saved calendar snapshot.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := readConfig()
		client := createMcpClient(ctx, config)

		date, _ := serverDate(ctx, client)
		if date != "" {
			slog.Info("server date", "date", date)
		}

		var days []promo.DayActivities
		snapshot, err := promo.NewStore(config.SnapshotPath).Load()
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("calendar snapshot not found", "path", config.SnapshotPath)
		} else if err != nil {
			slog.Error("failed to load calendar snapshot", "err", err)
		} else {
			days = snapshot.Activities
			today := timezone.Now().Format("2006-01-02")
			if date != "" {
				today = date
			}
			if todays := promo.TodayActivities(days, today); len(todays) > 0 {
				slog.Info("today has activities", "count", len(todays))
			}
		}

		claim := claimCoupons(ctx, client)
		coupons := fetchCoupons(ctx, client)

		publishReport(ctx, config, days, claim, coupons)
		recordRun(ctx, config, "claim", days, claim, coupons)
	},
}
