package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Shanghai")
	if err != nil {
		panic(err)
	}
}

// force timezone to be Beijing because the upstream promotion calendar
// speaks Beijing dates, and servers deployed elsewhere would shift
// <time.Time>.Year()/Month()/Day() across the date line
func Now() time.Time {
	return time.Now().In(Location)
}

// Midnight truncates t to the start of its day in Beijing time.
func Midnight(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}
