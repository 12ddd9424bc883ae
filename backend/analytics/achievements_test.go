package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func findAchievement(t *testing.T, list []Achievement, id string) Achievement {
	t.Helper()
	for _, a := range list {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %q missing", id)
	return Achievement{}
}

func TestEvaluateAchievements(t *testing.T) {
	agg := Aggregates{
		EnrolledCourses:  2,
		CompletedCourses: 0,
		StreakDays:       9,
		LessonsCompleted: 12,
		HoursSpent:       3,
		Consistency:      40,
	}
	list := EvaluateAchievements(agg)
	assert.Len(t, list, 6)

	first := findAchievement(t, list, "first_enrollment")
	assert.True(t, first.Unlocked)
	assert.Equal(t, first.MaxProgress, first.Progress) // progress is clamped at target

	streak := findAchievement(t, list, "week_streak")
	assert.True(t, streak.Unlocked)
	assert.Equal(t, 7, streak.Progress)

	fifty := findAchievement(t, list, "fifty_lessons")
	assert.False(t, fifty.Unlocked)
	assert.Equal(t, 12, fifty.Progress)
	assert.Equal(t, 50, fifty.MaxProgress)

	finisher := findAchievement(t, list, "course_complete")
	assert.False(t, finisher.Unlocked)
}

func TestAchievementsRegressRelock(t *testing.T) {
	unlocked := findAchievement(t, EvaluateAchievements(Aggregates{StreakDays: 7}), "week_streak")
	assert.True(t, unlocked.Unlocked)

	// streak reset: the evaluation is stateless, so the unlock flips back off
	relocked := findAchievement(t, EvaluateAchievements(Aggregates{StreakDays: 0}), "week_streak")
	assert.False(t, relocked.Unlocked)
	assert.Equal(t, 0, relocked.Progress)
}

func TestEvaluateGoals(t *testing.T) {
	goals := EvaluateGoals(Aggregates{WeeklyLessons: 15, GPA: 3.2, StreakDays: 30})

	byID := make(map[string]Goal)
	for _, g := range goals {
		byID[g.ID] = g
	}

	weekly := byID["weekly_lessons"]
	assert.True(t, weekly.Achieved)
	assert.Equal(t, 10.0, weekly.Progress) // clamped to target
	assert.Equal(t, 100, weekly.PercentDone)

	gpa := byID["gpa_target"]
	assert.False(t, gpa.Achieved)
	assert.Equal(t, 91, gpa.PercentDone)

	assert.True(t, byID["streak_goal"].Achieved)
}
