package promo

import (
	"fmt"
	"time"
)

// CronSchedule is one calendar day translated into a UTC cron line
// that fires shortly after the Beijing midnight when its activities
// unlock.
type CronSchedule struct {
	Date       string   `json:"date"`
	Cron       string   `json:"cron"`
	Activities []string `json:"activities"`
}

// CronSchedules derives a cron expression per calendar day. Beijing
// 00:05 on the activity date is 16:05 UTC the previous day, which is
// what scheduler hosts running in UTC need.
func CronSchedules(days []DayActivities) []CronSchedule {
	var schedules []CronSchedule
	for _, day := range days {
		t, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}
		utc := t.Add(-8 * time.Hour)

		titles := make([]string, 0, len(day.Activities))
		for _, activity := range day.Activities {
			titles = append(titles, activity.Title)
		}

		schedules = append(schedules, CronSchedule{
			Date:       day.Date,
			Cron:       fmt.Sprintf("5 16 %d %d *", utc.Day(), int(utc.Month())),
			Activities: titles,
		})
	}
	return schedules
}
