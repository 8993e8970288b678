package promo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCronSchedules(t *testing.T) {
	days := []DayActivities{
		{Date: "2026-01-17", Count: 1, Activities: []ActivityRecord{{Title: "会员日半价桶"}}},
		{Date: "2026-01-01", Count: 1, Activities: []ActivityRecord{{Title: "元旦特惠"}}},
		{Date: "not-a-date", Count: 1, Activities: []ActivityRecord{{Title: "坏日期"}}},
	}

	schedules := CronSchedules(days)
	require.Len(t, schedules, 2)

	// Beijing 00:05 on the 17th is 16:05 UTC on the 16th
	require.Equal(t, "2026-01-17", schedules[0].Date)
	require.Equal(t, "5 16 16 1 *", schedules[0].Cron)
	require.Equal(t, []string{"会员日半价桶"}, schedules[0].Activities)

	// month boundary rolls back into December
	require.Equal(t, "5 16 31 12 *", schedules[1].Cron)
}
