package promo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"mcdpromo-backend/lib/timezone"
)

func beijingDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 10, 30, 0, 0, timezone.Location)
}

func TestExtractCalendar(t *testing.T) {
	ref := beijingDate(2026, time.January, 17)

	text := "本月活动日历\n" +
		"#### 2026年1月16日\n" +
		"- **活动标题**：过期活动\n" +
		"#### 2026年1月17日\n" +
		"- **活动标题**：会员日半价桶\n" +
		"  **活动内容介绍**：当日全天可用\n" +
		"  **活动图片介绍**：<img src=\"https://img.example.com/a.png\">\n" +
		"- **活动标题**：免费麦乐鸡\n" +
		"#### 1月18日\n" +
		"- **活动标题**：早餐特惠\n" +
		"#### 2026年2月1日\n" +
		"- **活动标题**：下月活动\n"

	days := ExtractCalendar(text, ref)

	// the 16th is in the past, February is out of the window; the 18th
	// has no explicit year and defaults to the reference year
	diff := cmp.Diff(
		[]DayActivities{
			{
				Date:  "2026-01-17",
				Count: 2,
				Activities: []ActivityRecord{
					{
						Title:   "会员日半价桶",
						Content: "当日全天可用",
						Img:     "https://img.example.com/a.png",
					},
					{Title: "免费麦乐鸡"},
				},
			},
			{
				Date:       "2026-01-18",
				Count:      1,
				Activities: []ActivityRecord{{Title: "早餐特惠"}},
			},
		},
		days,
	)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractCalendarEmptyInput(t *testing.T) {
	require.Empty(t, ExtractCalendar("", beijingDate(2026, time.January, 17)))
	require.Empty(t, ExtractCalendar("没有任何日期标题的纯文本", beijingDate(2026, time.January, 17)))
}

func TestExtractCalendarDropsEmptyDays(t *testing.T) {
	text := "#### 2026年1月20日\n这一天没有任何活动条目\n" +
		"#### 2026年1月21日\n- **活动标题**：有效活动\n"
	days := ExtractCalendar(text, beijingDate(2026, time.January, 17))
	require.Len(t, days, 1)
	require.Equal(t, "2026-01-21", days[0].Date)
}

func TestExtractCalendarDuplicateDateHeaders(t *testing.T) {
	// a repeated date header yields a second entry in source order, not
	// a merge into the first
	text := "#### 2026年1月20日\n- **活动标题**：上午场\n" +
		"#### 2026年1月21日\n- **活动标题**：次日活动\n" +
		"#### 2026年1月20日\n- **活动标题**：下午场\n"
	days := ExtractCalendar(text, beijingDate(2026, time.January, 17))

	diff := cmp.Diff(
		[]DayActivities{
			{
				Date:       "2026-01-20",
				Count:      1,
				Activities: []ActivityRecord{{Title: "上午场"}},
			},
			{
				Date:       "2026-01-21",
				Count:      1,
				Activities: []ActivityRecord{{Title: "次日活动"}},
			},
			{
				Date:       "2026-01-20",
				Count:      1,
				Activities: []ActivityRecord{{Title: "下午场"}},
			},
		},
		days,
	)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractCalendarMalformedDay(t *testing.T) {
	// Feb 30 normalizes under time.Date; the header must be dropped,
	// not rewritten to March
	text := "#### 2026年2月30日\n- **活动标题**：坏日期\n"
	days := ExtractCalendar(text, beijingDate(2026, time.February, 1))
	require.Empty(t, days)
}

func TestExtractCalendarEscapedNewlines(t *testing.T) {
	// feeds arrive with literal backslash-n sequences instead of real
	// line breaks
	text := "#### 2026年1月18日\\n- **活动标题**：转义换行活动\\n  **活动内容介绍**：介绍文字\\n"
	days := ExtractCalendar(text, beijingDate(2026, time.January, 17))
	require.Len(t, days, 1)
	require.Equal(t, "转义换行活动", days[0].Activities[0].Title)
	require.Equal(t, "介绍文字", days[0].Activities[0].Content)
}

func TestExtractActivityDetailsTitleFallsBackToFirstLine(t *testing.T) {
	content := "\n- **活动标题**\n裸标题活动\n"
	activities := ExtractActivityDetails(content)
	require.Len(t, activities, 1)
	require.Equal(t, "裸标题活动", activities[0].Title)
}

func TestExtractActivityDetailsContentTruncation(t *testing.T) {
	long := ""
	for i := 0; i < 350; i++ {
		long += "字"
	}
	content := "\n- **活动标题**：长文活动\n  **活动内容介绍**：" + long + "\n"
	activities := ExtractActivityDetails(content)
	require.Len(t, activities, 1)

	runes := []rune(activities[0].Content)
	require.Len(t, runes, 303)
	require.Equal(t, "...", string(runes[300:]))
}

func TestExtractActivityDetailsFallbackPairing(t *testing.T) {
	// no "- " list structure and a preamble line; titles and images
	// are collected independently and paired by position
	content := "今日活动如下\n**活动标题**：第一个活动\n<img src=\"https://img.example.com/1.png\">\n" +
		"**活动标题**：第二个活动\n<img src=\"https://img.example.com/2.png\">\n"
	activities := ExtractActivityDetails(content)
	require.Len(t, activities, 2)
	require.Equal(t, "第一个活动", activities[0].Title)
	require.Equal(t, "https://img.example.com/1.png", activities[0].Img)
	require.Equal(t, "第二个活动", activities[1].Title)
	require.Equal(t, "https://img.example.com/2.png", activities[1].Img)
}

func TestExtractActivityDetailsEmpty(t *testing.T) {
	require.Empty(t, ExtractActivityDetails(""))
	require.Empty(t, ExtractActivityDetails("   \n  \n"))
}
