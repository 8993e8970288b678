// Package promo turns the loosely formatted text the upstream MCP
// tools return into typed records: per-day promotion activities, claim
// confirmations and owned coupons. Every extractor in this package is
// a total, pure function: malformed input degrades to empty results or
// field defaults, never to an error. The records feed both the report
// layer and the persisted calendar snapshot, so identical input text
// must always produce identical records.
package promo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mcdpromo-backend/lib/textutil"
	"mcdpromo-backend/lib/timezone"
)

// DayActivities groups the activities announced for one calendar day.
// Count always equals len(Activities).
type DayActivities struct {
	Date       string           `json:"date"`
	Count      int              `json:"count"`
	Activities []ActivityRecord `json:"activities"`
}

// ActivityRecord is one promotional event. Content is capped at 300
// runes; Img may be empty.
type ActivityRecord struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Img     string `json:"img"`
}

// matches date headers like "#### 2026年1月17日" or "### 1月17日"; the
// year is optional and defaults to the reference year.
var dateHeaderRegex = regexp.MustCompile(`####?\s*(?:(\d+)年)?(\d+)月(\d+)日`)

const contentRuneLimit = 300

// ExtractCalendar splits the monthly activity feed into per-day
// blocks. Days outside the reference month, days strictly before the
// reference date, and days whose block yields no activities are all
// dropped. A zero referenceDate means "now" in Beijing time; callers
// pass the server-reported date when they have one.
//
// Duplicate date headers are kept as separate entries in source order;
// the upstream has been observed to repeat a day when a promotion is
// amended mid-month.
func ExtractCalendar(text string, referenceDate time.Time) []DayActivities {
	if text == "" {
		return nil
	}

	if referenceDate.IsZero() {
		referenceDate = timezone.Now()
	}
	refDay := timezone.Midnight(referenceDate)

	matches := dateHeaderRegex.FindAllStringSubmatchIndex(text, -1)

	var days []DayActivities
	for i, match := range matches {
		year := refDay.Year()
		if match[2] >= 0 {
			parsed, err := strconv.Atoi(text[match[2]:match[3]])
			if err != nil {
				continue
			}
			year = parsed
		}
		month, err := strconv.Atoi(text[match[4]:match[5]])
		if err != nil {
			continue
		}
		day, err := strconv.Atoi(text[match[6]:match[7]])
		if err != nil {
			continue
		}

		if month != int(refDay.Month()) || year != refDay.Year() {
			continue
		}

		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, timezone.Location)
		// time.Date normalizes out-of-range components (Feb 30 becomes
		// Mar 2); treat any normalization as a malformed header
		if int(date.Month()) != month || date.Day() != day {
			continue
		}
		if date.Before(refDay) {
			continue
		}

		start := match[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		activities := ExtractActivityDetails(text[start:end])
		if len(activities) == 0 {
			continue
		}

		days = append(days, DayActivities{
			Date:       fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			Count:      len(activities),
			Activities: activities,
		})
	}

	return days
}

const activityTitleLabel = "**活动标题**"

// splits a day block at each "- **活动标题**" list item; line-anchored
// so the first item still splits after normalization trimmed the
// leading newline
var activityMarkerRegex = regexp.MustCompile(`(?m)^-\s*\*\*活动标题\*\*`)

var titleAfterColonRegex = regexp.MustCompile(`^[：:]\s*([^\n]+)`)
var firstLineRegex = regexp.MustCompile(`^\s*([^\n]+)`)
var contentIntroRegex = regexp.MustCompile(`(?s)\*\*活动内容介绍\*\*[：:]\s*(.*?)(?:\*\*活动图片介绍\*\*|$)`)

// scans a flat run of labeled titles; stops at a real newline, a still
// escaped newline, or end of text
var labeledTitleRegex = regexp.MustCompile(`\*\*活动标题\*\*[：:][ \t]*(.+?)(?:\\n|\n|$)`)

// ExtractActivityDetails parses the inner content of one day's block
// into activity records.
//
// The primary strategy splits the block at each "activity title" list
// item and pulls title, introduction and image out of each piece. When
// that yields nothing (the upstream sometimes flattens days into bare
// title+image runs with no list structure), a fallback scan collects
// every labeled title and every image tag independently and pairs them
// by position. The pairing is a heuristic: nothing in the source text
// ties the n-th image to the n-th title, so a mismatch upstream is
// reproduced rather than corrected.
func ExtractActivityDetails(content string) []ActivityRecord {
	content = textutil.Normalize(content)
	if content == "" {
		return nil
	}

	var activities []ActivityRecord

	blocks := activityMarkerRegex.Split(content, -1)
	for i, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}

		if i == 0 {
			// block 0 precedes the first list marker. It is an
			// activity only when it opens with a bare title label
			// (no list dash); anything else is preamble
			block = strings.TrimSpace(block)
			if !strings.HasPrefix(block, activityTitleLabel) {
				continue
			}
			block = block[len(activityTitleLabel):]
		}

		title := ""
		if m := titleAfterColonRegex.FindStringSubmatch(block); m != nil {
			title = m[1]
		} else if m := firstLineRegex.FindStringSubmatch(block); m != nil {
			title = m[1]
		}
		title = textutil.CleanDisplay(title)

		intro := ""
		if m := contentIntroRegex.FindStringSubmatch(block); m != nil {
			intro = m[1]
		}
		intro = textutil.TruncateRunes(textutil.CleanDisplay(intro), contentRuneLimit)

		if title == "" {
			continue
		}
		activities = append(activities, ActivityRecord{
			Title:   title,
			Content: intro,
			Img:     firstImageSrc(block),
		})
	}

	if len(activities) > 0 {
		return activities
	}

	// fallback: flat title+image runs
	titleMatches := labeledTitleRegex.FindAllStringSubmatch(content, -1)
	imgs := allImageSrcs(content)

	for i, m := range titleMatches {
		title := textutil.CleanDisplay(m[1])
		if title == "" {
			continue
		}
		img := ""
		if i < len(imgs) {
			img = imgs[i]
		}
		activities = append(activities, ActivityRecord{
			Title: title,
			Img:   img,
		})
	}

	return activities
}
