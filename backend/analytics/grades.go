// Package analytics is the pure aggregation core: every function here is a
// total, I/O-free reducer over already-fetched collections. Callers that fail
// to fetch must pass empty slices and will get the defined zero-state results.
package analytics

import (
	"math"
	"sort"
	"time"

	"learnhub/backend/models"
)

const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// LetterGrade maps a percentage to the fine-grained 13-band scale. Inputs
// outside [0,100] are clamped before banding.
func LetterGrade(percentage float64) string {
	p := clampPercent(percentage)
	switch {
	case p >= 97:
		return "A+"
	case p >= 93:
		return "A"
	case p >= 90:
		return "A-"
	case p >= 87:
		return "B+"
	case p >= 83:
		return "B"
	case p >= 80:
		return "B-"
	case p >= 77:
		return "C+"
	case p >= 73:
		return "C"
	case p >= 70:
		return "C-"
	case p >= 67:
		return "D+"
	case p >= 63:
		return "D"
	case p >= 60:
		return "D-"
	default:
		return "F"
	}
}

var gpaTable = map[string]float64{
	"A+": 4.0,
	"A":  4.0,
	"A-": 3.7,
	"B+": 3.3,
	"B":  3.0,
	"B-": 2.7,
	"C+": 2.3,
	"C":  2.0,
	"C-": 1.7,
	"D+": 1.3,
	"D":  1.0,
	"D-": 0.7,
	"F":  0.0,
}

// GPAPoints converts a letter grade to grade points on the 0.0-4.0 scale.
// Unknown letters (including "N/A") map to 0.
func GPAPoints(letter string) float64 {
	return gpaTable[letter]
}

type GradeStats struct {
	TotalPoints       float64        `json:"total_points"`
	TotalMaxPoints    float64        `json:"total_max_points"`
	AveragePercentage int            `json:"average_percentage"`
	LetterGrade       string         `json:"letter_grade"`
	GPA               float64        `json:"gpa"`
	GradeCount        int            `json:"grade_count"`
	CountsByType      map[string]int `json:"counts_by_type"`
}

// CourseStats aggregates a flat grade list point-weighted: the average is
// sum(points)/sum(maxPoints), not the mean of individual percentages. Empty
// input yields the zero result with letter "N/A".
func CourseStats(grades []models.Grade) GradeStats {
	stats := GradeStats{LetterGrade: "N/A", CountsByType: make(map[string]int)}
	if len(grades) == 0 {
		return stats
	}

	for _, g := range grades {
		stats.TotalPoints += g.Points
		stats.TotalMaxPoints += g.MaxPoints
		stats.CountsByType[g.Type]++
	}
	stats.GradeCount = len(grades)

	if stats.TotalMaxPoints > 0 {
		pct := stats.TotalPoints / stats.TotalMaxPoints * 100
		stats.AveragePercentage = int(math.Round(pct))
		stats.LetterGrade = LetterGrade(pct)
		stats.GPA = GPAPoints(stats.LetterGrade)
	}
	return stats
}

// OverallGPA groups grades by course, derives each course's point-weighted
// GPA, and returns the unweighted arithmetic mean across courses. Credit
// hours are not modeled. No grades means 0.
func OverallGPA(grades []models.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}

	byCourse := make(map[uint][]models.Grade)
	for _, g := range grades {
		byCourse[g.CourseID] = append(byCourse[g.CourseID], g)
	}

	var sum float64
	for _, courseGrades := range byCourse {
		sum += CourseStats(courseGrades).GPA
	}
	return sum / float64(len(byCourse))
}

type Distribution struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
	D int `json:"d"`
	F int `json:"f"`
}

// GradeDistribution buckets grades into the coarse 5-letter scale used by
// charts (90/80/70/60 cutoffs). This is intentionally a different table from
// LetterGrade: collapsing +/- modifiers changes where e.g. 91% lands, and the
// chart semantics depend on the coarse scale.
func GradeDistribution(grades []models.Grade) Distribution {
	var d Distribution
	for _, g := range grades {
		switch {
		case g.Percentage >= 90:
			d.A++
		case g.Percentage >= 80:
			d.B++
		case g.Percentage >= 70:
			d.C++
		case g.Percentage >= 60:
			d.D++
		default:
			d.F++
		}
	}
	return d
}

// Trend compares the mean percentage of the chronologically first and second
// halves of the grade list. A swing of more than 2 points either way is a
// trend; fewer than two grades is stable by definition.
func Trend(grades []models.Grade) string {
	if len(grades) < 2 {
		return TrendStable
	}

	sorted := make([]models.Grade, len(grades))
	copy(sorted, grades)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].GradedAt.Before(sorted[j].GradedAt)
	})

	mid := len(sorted) / 2
	first := meanPercentage(sorted[:mid])
	second := meanPercentage(sorted[mid:])

	switch diff := second - first; {
	case diff > 2:
		return TrendUp
	case diff < -2:
		return TrendDown
	default:
		return TrendStable
	}
}

// AssignmentStatus classifies an assignment's due date against the clock.
// Computed at read time, never stored.
func AssignmentStatus(dueAt, now time.Time) string {
	if sameDay(dueAt, now) {
		return models.AssignmentDueToday
	}
	if dueAt.Before(now) {
		return models.AssignmentOverdue
	}
	if dueAt.Sub(now) <= 72*time.Hour {
		return models.AssignmentDueSoon
	}
	return models.AssignmentUpcoming
}

// Percentage derives the rounded percentage for a points pair; 0 when
// maxPoints is 0.
func Percentage(points, maxPoints float64) int {
	if maxPoints <= 0 {
		return 0
	}
	return int(math.Round(points / maxPoints * 100))
}

func meanPercentage(grades []models.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += float64(g.Percentage)
	}
	return sum / float64(len(grades))
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
