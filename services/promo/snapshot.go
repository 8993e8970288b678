package promo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mcdpromo-backend/lib/timezone"
)

// Snapshot is the persisted calendar state. ServerDate is the date the
// upstream reported at fetch time, kept separately so a stale snapshot
// is detectable.
type Snapshot struct {
	UpdatedAt  string          `json:"updated_at"`
	ServerDate string          `json:"server_date,omitempty"`
	Activities []DayActivities `json:"activities"`
}

// Store reads and writes calendar snapshots at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) Store {
	return Store{path: path}
}

// Save writes the snapshot as indented json. A nil activity list is
// written as an empty array so downstream readers always see a list.
func (s Store) Save(snapshot Snapshot) error {
	if snapshot.Activities == nil {
		snapshot.Activities = []DayActivities{}
	}
	if snapshot.UpdatedAt == "" {
		snapshot.UpdatedAt = timezone.Now().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot back. Callers distinguish a missing file via
// errors.Is(err, os.ErrNotExist).
func (s Store) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Snapshot{}, err
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}
	return snapshot, nil
}

// TodayActivities returns the entries scheduled for the given date.
// Dates match by exact string, the same "YYYY-MM-DD" form both sides
// are produced in.
func TodayActivities(days []DayActivities, date string) []ActivityRecord {
	for _, day := range days {
		if day.Date == date {
			return day.Activities
		}
	}
	return nil
}

// ActivityDates lists the dates present in the calendar, in calendar
// order.
func ActivityDates(days []DayActivities) []string {
	dates := make([]string, 0, len(days))
	for _, day := range days {
		dates = append(dates, day.Date)
	}
	return dates
}
