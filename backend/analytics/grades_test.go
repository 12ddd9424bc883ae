package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"learnhub/backend/models"
)

func TestLetterGradeBands(t *testing.T) {
	cases := map[float64]string{
		100: "A+", 97: "A+", 96: "A", 93: "A", 92: "A-", 90: "A-",
		89: "B+", 87: "B+", 85: "B", 83: "B", 81: "B-", 80: "B-",
		78: "C+", 77: "C+", 75: "C", 73: "C", 71: "C-", 70: "C-",
		68: "D+", 67: "D+", 64: "D", 63: "D", 61: "D-", 60: "D-",
		59: "F", 0: "F",
	}
	for pct, want := range cases {
		assert.Equal(t, want, LetterGrade(pct), "percentage %v", pct)
	}

	// clamped, never undefined
	assert.Equal(t, "F", LetterGrade(-10))
	assert.Equal(t, "A+", LetterGrade(150))
}

func TestLetterGradeMonotonic(t *testing.T) {
	prev := 4.0
	for p := 100; p >= 0; p-- {
		points := GPAPoints(LetterGrade(float64(p)))
		assert.LessOrEqual(t, points, prev, "band inversion at %d", p)
		prev = points
	}
}

func TestGPARoundTrip(t *testing.T) {
	assert.Equal(t, 4.0, GPAPoints(LetterGrade(93)))
	assert.Equal(t, 0.0, GPAPoints(LetterGrade(59)))
}

func TestCourseStatsEmpty(t *testing.T) {
	stats := CourseStats(nil)
	assert.Equal(t, "N/A", stats.LetterGrade)
	assert.Equal(t, 0, stats.AveragePercentage)
	assert.Equal(t, 0.0, stats.GPA)
	assert.Equal(t, 0, stats.GradeCount)
}

func TestCourseStatsPointWeighted(t *testing.T) {
	grades := []models.Grade{
		{Type: models.GradeQuiz, Points: 10, MaxPoints: 10, Percentage: 100},
		{Type: models.GradeExam, Points: 50, MaxPoints: 100, Percentage: 50},
	}
	stats := CourseStats(grades)

	// 60/110 = 55%, not the 75% a grade-weighted average would give
	assert.Equal(t, 55, stats.AveragePercentage)
	assert.Equal(t, "F", stats.LetterGrade)
	assert.Equal(t, 1, stats.CountsByType[models.GradeQuiz])
	assert.Equal(t, 1, stats.CountsByType[models.GradeExam])
}

func TestOverallGPAUnweightedMean(t *testing.T) {
	grades := []models.Grade{
		// course 1: 95% -> A -> 4.0, many points
		{CourseID: 1, Points: 950, MaxPoints: 1000},
		// course 2: 65% -> D -> 1.0, few points
		{CourseID: 2, Points: 6.5, MaxPoints: 10},
	}
	assert.InDelta(t, 2.5, OverallGPA(grades), 0.001)
	assert.Equal(t, 0.0, OverallGPA(nil))
}

func TestDistributionUsesCoarseBands(t *testing.T) {
	grades := []models.Grade{
		{Percentage: 91}, // A- on the fine scale, A bucket here
		{Percentage: 85},
		{Percentage: 72},
		{Percentage: 61},
		{Percentage: 12},
	}
	d := GradeDistribution(grades)
	assert.Equal(t, Distribution{A: 1, B: 1, C: 1, D: 1, F: 1}, d)
}

func TestTrend(t *testing.T) {
	day := func(n int) time.Time { return time.Date(2026, 3, n, 0, 0, 0, 0, time.UTC) }

	up := []models.Grade{
		{Percentage: 70, GradedAt: day(1)},
		{Percentage: 72, GradedAt: day(2)},
		{Percentage: 80, GradedAt: day(3)},
		{Percentage: 85, GradedAt: day(4)},
	}
	assert.Equal(t, TrendUp, Trend(up))

	down := []models.Grade{
		{Percentage: 90, GradedAt: day(1)},
		{Percentage: 60, GradedAt: day(2)},
	}
	assert.Equal(t, TrendDown, Trend(down))

	stable := []models.Grade{
		{Percentage: 80, GradedAt: day(1)},
		{Percentage: 81, GradedAt: day(2)},
	}
	assert.Equal(t, TrendStable, Trend(stable))

	// fewer than two grades is stable by definition
	assert.Equal(t, TrendStable, Trend(nil))
	assert.Equal(t, TrendStable, Trend(up[:1]))
}

func TestTrendSortsChronologically(t *testing.T) {
	day := func(n int) time.Time { return time.Date(2026, 3, n, 0, 0, 0, 0, time.UTC) }
	// delivered out of order; chronological halves still trend up
	grades := []models.Grade{
		{Percentage: 90, GradedAt: day(4)},
		{Percentage: 60, GradedAt: day(1)},
		{Percentage: 85, GradedAt: day(3)},
		{Percentage: 62, GradedAt: day(2)},
	}
	assert.Equal(t, TrendUp, Trend(grades))
}

func TestAssignmentStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, models.AssignmentOverdue, AssignmentStatus(now.AddDate(0, 0, -2), now))
	assert.Equal(t, models.AssignmentDueToday, AssignmentStatus(now.Add(5*time.Hour), now))
	assert.Equal(t, models.AssignmentDueSoon, AssignmentStatus(now.AddDate(0, 0, 2), now))
	assert.Equal(t, models.AssignmentUpcoming, AssignmentStatus(now.AddDate(0, 0, 10), now))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 0, Percentage(5, 0))
}
