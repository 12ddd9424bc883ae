package analytics

import "math"

// Aggregates is the snapshot of a user's current statistics that the
// achievement and goal rules compare against.
type Aggregates struct {
	EnrolledCourses  int
	CompletedCourses int
	StreakDays       int
	LessonsCompleted int
	HoursSpent       float64
	Consistency      int // 0-100
	GPA              float64
	WeeklyLessons    int
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	MaxProgress int    `json:"max_progress"`
}

type achievementRule struct {
	id          string
	name        string
	description string
	category    string
	rarity      string
	target      int
	value       func(Aggregates) int
}

var achievementRules = []achievementRule{
	{"first_enrollment", "First Steps", "Enroll in your first course", "learning", "common", 1,
		func(a Aggregates) int { return a.EnrolledCourses }},
	{"course_complete", "Finisher", "Complete a course", "learning", "common", 1,
		func(a Aggregates) int { return a.CompletedCourses }},
	{"week_streak", "Week Warrior", "Keep a 7-day learning streak", "engagement", "rare", 7,
		func(a Aggregates) int { return a.StreakDays }},
	{"fifty_lessons", "Half Century", "Complete 50 lessons", "learning", "rare", 50,
		func(a Aggregates) int { return a.LessonsCompleted }},
	{"hundred_hours", "Marathoner", "Spend 100 hours learning", "engagement", "epic", 100,
		func(a Aggregates) int { return int(a.HoursSpent) }},
	{"consistent_learner", "Clockwork", "Hit 90% weekly consistency", "engagement", "epic", 90,
		func(a Aggregates) int { return a.Consistency }},
}

// EvaluateAchievements recomputes the full unlock state from the current
// aggregates. There is no memory of past unlocks: if a metric regresses (a
// streak resets, say) the achievement locks again. That is intended; the
// evaluation is a stateless function of the snapshot.
func EvaluateAchievements(agg Aggregates) []Achievement {
	out := make([]Achievement, 0, len(achievementRules))
	for _, rule := range achievementRules {
		value := rule.value(agg)
		if value > rule.target {
			value = rule.target
		}
		if value < 0 {
			value = 0
		}
		out = append(out, Achievement{
			ID:          rule.id,
			Name:        rule.name,
			Description: rule.description,
			Category:    rule.category,
			Rarity:      rule.rarity,
			Unlocked:    value >= rule.target,
			Progress:    value,
			MaxProgress: rule.target,
		})
	}
	return out
}

type Goal struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Progress    float64 `json:"progress"`
	Target      float64 `json:"target"`
	Achieved    bool    `json:"achieved"`
	PercentDone int     `json:"percent_done"`
}

// EvaluateGoals reports progress toward the fixed goal set. Like
// achievements, goals are recomputed in full on every refresh.
func EvaluateGoals(agg Aggregates) []Goal {
	goals := []Goal{
		{ID: "weekly_lessons", Name: "Complete 10 lessons this week", Progress: float64(agg.WeeklyLessons), Target: 10},
		{ID: "gpa_target", Name: "Hold a 3.5 GPA", Progress: agg.GPA, Target: 3.5},
		{ID: "streak_goal", Name: "Build a 30-day streak", Progress: float64(agg.StreakDays), Target: 30},
	}
	for i := range goals {
		g := &goals[i]
		if g.Progress > g.Target {
			g.Progress = g.Target
		}
		if g.Progress < 0 {
			g.Progress = 0
		}
		g.Achieved = g.Progress >= g.Target
		g.PercentDone = int(math.Round(g.Progress / g.Target * 100))
	}
	return goals
}
