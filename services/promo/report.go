package promo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"mcdpromo-backend/lib/textutil"
)

// FormatReport renders the Telegram markdown summary of one full run:
// calendar overview, the claim outcome, and the owned coupons bucketed
// by price.
func FormatReport(days []DayActivities, claim ClaimResult, coupons []CouponRecord, pagesURL string, now time.Time) string {
	var b strings.Builder

	b.WriteString("🍔 *麦当劳优惠券自动领取报告*\n")
	fmt.Fprintf(&b, "⏰ `%s`\n\n", now.Format("2006-01-02 15:04:05"))

	total := 0
	for _, day := range days {
		total += day.Count
	}
	b.WriteString("📊 *数据概览*\n")
	fmt.Fprintf(&b, "• 本月活动: %d 个\n", total)
	fmt.Fprintf(&b, "• 可用优惠券: %d 张\n", len(coupons))
	if claim.Message != "" {
		fmt.Fprintf(&b, "• %s\n", claim.Message)
	} else {
		fmt.Fprintf(&b, "• 新领取: %d 张\n", claim.Success)
	}
	b.WriteString("\n")

	if len(days) > 0 {
		b.WriteString("📅 *近期活动*\n")
		shown := days
		if len(shown) > 3 {
			shown = shown[:3]
		}
		for _, day := range shown {
			fmt.Fprintf(&b, "\n*%s* (%d个)\n", day.Date, len(day.Activities))
			for i, activity := range day.Activities {
				if i == 3 {
					fmt.Fprintf(&b, "  • ...还有%d个\n", len(day.Activities)-3)
					break
				}
				fmt.Fprintf(&b, "  • %s\n", textutil.TruncateRunes(activity.Title, 30))
			}
		}
		if len(days) > 3 {
			fmt.Fprintf(&b, "\n📌 还有%d天有活动\n", len(days)-3)
		}
		b.WriteString("\n")
	}

	if len(coupons) > 0 {
		fmt.Fprintf(&b, "🎟️ *我的优惠券* (%d张)\n\n", len(coupons))

		sorted := make([]CouponRecord, len(coupons))
		copy(sorted, coupons)
		sort.SliceStable(sorted, func(i, j int) bool {
			return couponPrice(sorted[i]) < couponPrice(sorted[j])
		})

		writeBucket := func(header string, match func(float64) bool) {
			wroteHeader := false
			for _, c := range sorted {
				price := couponPrice(c)
				if !match(price) {
					continue
				}
				if !wroteHeader {
					b.WriteString(header)
					wroteHeader = true
				}
				fmt.Fprintf(&b, "• ¥%.1f %s (%s)\n", price, c.Title, ShortValidity(c.Validity))
			}
			if wroteHeader {
				b.WriteString("\n")
			}
		}
		writeBucket("💵 *超值优惠 (<10元)*\n", func(p float64) bool { return p < 10 })
		writeBucket("💰 *实惠套餐 (10-20元)*\n", func(p float64) bool { return p >= 10 && p < 20 })
		writeBucket("🌟 *豪华组合 (>20元)*\n", func(p float64) bool { return p >= 20 })
	} else {
		b.WriteString("🎟️ 暂无可用优惠券\n")
	}

	if pagesURL != "" {
		fmt.Fprintf(&b, "\n🔗 [查看详情](%s)\n", pagesURL)
	}

	return strings.TrimRight(b.String(), "\n")
}

func couponPrice(c CouponRecord) float64 {
	price, err := strconv.ParseFloat(c.Price, 64)
	if err != nil {
		return 0
	}
	return price
}

// FormatCalendarUpdate renders the monthly notification sent after the
// calendar snapshot was refreshed: day and activity totals plus the
// first ten activity dates.
func FormatCalendarUpdate(days []DayActivities, pagesURL string) string {
	total := 0
	for _, day := range days {
		total += day.Count
	}

	var b strings.Builder
	b.WriteString("📅 *本月活动日历已更新*\n\n")
	fmt.Fprintf(&b, "• 活动天数: %d 天\n", len(days))
	fmt.Fprintf(&b, "• 总活动数: %d 个\n\n", total)
	b.WriteString("*活动日期:*\n")
	for i, day := range days {
		if i == 10 {
			fmt.Fprintf(&b, "• ...还有%d天\n", len(days)-10)
			break
		}
		fmt.Fprintf(&b, "• %s (%d个活动)\n", day.Date, day.Count)
	}
	if pagesURL != "" {
		fmt.Fprintf(&b, "\n🔗 [查看详情](%s)", pagesURL)
	}
	return strings.TrimRight(b.String(), "\n")
}
