package promo

import (
	"bytes"
	_ "embed"
	"fmt"
	"regexp"
	"text/template"
	"time"

	"mcdpromo-backend/lib/textutil"
)

//go:embed page.tmpl
var pageTemplateText string

// The source text is markdown lifted out of an app, full of escaped
// newlines and label fragments. The template escapes every value it
// interpolates, so text/template with an explicit esc func is enough
// here and keeps the escaping identical between title and content.
var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"esc":     textutil.EscapeHTML,
	"display": textutil.CleanDisplay,
}).Parse(pageTemplateText))

type pageData struct {
	Timestamp       string
	Date            string
	TotalActivities int
	Days            []DayActivities
	Claim           ClaimResult
	Coupons         []couponView
}

type couponView struct {
	CouponRecord
	ValidityRows []validityRow
}

type validityRow struct {
	Icon  string
	Label string
	Value string
}

var validityDatesRegex = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s*[\d:]*\s*-\s*(\d{4}-\d{2}-\d{2})\s*[\d:]*`)
var validityTimeRegex = regexp.MustCompile(`(\d{2}:\d{2})-(\d{2}:\d{2})\s*(?:\d{2}:\d{2}-\d{2}:\d{2})?$`)
var validityWeekRegex = regexp.MustCompile(`(周[一二三四五六日、]+)`)

// validityRows breaks a free-text validity window into labeled display
// rows. Unknown or unparseable text falls back to a single verbatim
// row.
func validityRows(validity string) []validityRow {
	if validity == "" || validity == unknownValidity {
		return []validityRow{{Icon: "📅", Value: "有效期未知"}}
	}

	var rows []validityRow
	if m := validityDatesRegex.FindStringSubmatch(validity); m != nil {
		rows = append(rows,
			validityRow{Icon: "📅", Label: "开始:", Value: m[1]},
			validityRow{Icon: "📅", Label: "结束:", Value: m[2]})
	}
	if m := validityTimeRegex.FindStringSubmatch(validity); m != nil {
		rows = append(rows, validityRow{Icon: "⏰", Label: "时段:", Value: fmt.Sprintf("%s-%s", m[1], m[2])})
	}
	if m := validityWeekRegex.FindStringSubmatch(validity); m != nil {
		rows = append(rows, validityRow{Icon: "📆", Label: "限:", Value: m[1]})
	}
	if rows == nil {
		rows = []validityRow{{Icon: "📅", Value: validity}}
	}
	return rows
}

// RenderPage produces the standalone HTML status page published after
// a full run.
func RenderPage(days []DayActivities, claim ClaimResult, coupons []CouponRecord, now time.Time) ([]byte, error) {
	total := 0
	for _, day := range days {
		total += day.Count
	}

	views := make([]couponView, 0, len(coupons))
	for _, c := range coupons {
		views = append(views, couponView{
			CouponRecord: c,
			ValidityRows: validityRows(c.Validity),
		})
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Timestamp:       now.Format("2006-01-02 15:04:05"),
		Date:            now.Format("2006-01-02"),
		TotalActivities: total,
		Days:            days,
		Claim:           claim,
		Coupons:         views,
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
