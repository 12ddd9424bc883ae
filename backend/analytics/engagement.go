package analytics

import (
	"math"
	"sort"
	"time"
)

// ProgressRecord is the per-enrollment snapshot the engagement reducers work
// over: one record per (user, course), validated and defaulted at the facade
// boundary.
type ProgressRecord struct {
	LessonsCompleted int
	Sessions         int
	OverallProgress  int // 0-100
	LastActivity     time.Time
}

// LearningStreak counts consecutive calendar days with at least one
// completion, anchored at today. If there is no activity dated today the
// streak is 0, even when yesterday had activity; the anchor is strict.
func LearningStreak(completions []time.Time, now time.Time) int {
	if len(completions) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(completions))
	for _, ts := range completions {
		seen[dayKey(ts)] = true
	}

	streak := 0
	for day := now; seen[dayKey(day)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// LearningVelocity is lessons per day over the trailing 30 days. The
// denominator is always 30, not the count of active days.
func LearningVelocity(records []ProgressRecord, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -30)
	total := 0
	for _, r := range records {
		if r.LastActivity.After(cutoff) {
			total += r.LessonsCompleted
		}
	}
	return float64(total) / 30
}

// ConsistencyScore is the share of the trailing 7 days that saw any activity,
// as a 0-100 percentage.
func ConsistencyScore(records []ProgressRecord, now time.Time) int {
	cutoff := now.AddDate(0, 0, -7)
	days := make(map[string]bool)
	for _, r := range records {
		if r.LastActivity.After(cutoff) {
			days[dayKey(r.LastActivity)] = true
		}
	}
	return int(math.Round(float64(len(days)) / 7 * 100))
}

// FocusScore is lessons completed per session as a percentage; 0 when no
// sessions were recorded.
func FocusScore(records []ProgressRecord) int {
	lessons, sessions := 0, 0
	for _, r := range records {
		lessons += r.LessonsCompleted
		sessions += r.Sessions
	}
	if sessions == 0 {
		return 0
	}
	return int(math.Round(float64(lessons) / float64(sessions) * 100))
}

// ImprovementRate splits the chronologically sorted records in half and
// returns the rounded difference of mean overall progress (second minus
// first). Fewer than two records yields 0.
func ImprovementRate(records []ProgressRecord) int {
	if len(records) < 2 {
		return 0
	}

	sorted := make([]ProgressRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LastActivity.Before(sorted[j].LastActivity)
	})

	mid := len(sorted) / 2
	return int(math.Round(meanProgress(sorted[mid:]) - meanProgress(sorted[:mid])))
}

func meanProgress(records []ProgressRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += float64(r.OverallProgress)
	}
	return sum / float64(len(records))
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
