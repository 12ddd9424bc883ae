package services

import (
	"log"
	"time"

	"learnhub/backend/analytics"
	"learnhub/backend/models"
	"learnhub/backend/store"
)

// InsightsService assembles the input collections for the pure analytics
// core and exposes the derived aggregates. Every fetch failure degrades to
// an empty slice so the reducers always run over well-formed input.
type InsightsService struct {
	Store  store.Store
	Logger *log.Logger
	Grades *GradeService
}

func NewInsightsService(st store.Store, logger *log.Logger, grades *GradeService) *InsightsService {
	return &InsightsService{Store: st, Logger: logger, Grades: grades}
}

type EngagementStats struct {
	StreakDays      int     `json:"streak_days"`
	Velocity        float64 `json:"velocity"` // lessons/day over trailing 30d
	Consistency     int     `json:"consistency"`
	Focus           int     `json:"focus"`
	ImprovementRate int     `json:"improvement_rate"`
}

func (s *InsightsService) activityTimes(userID uint) []time.Time {
	records, err := s.Store.ListActivity(userID)
	if err != nil {
		s.Logger.Printf("activity for user %d: %v", userID, err)
		return nil
	}
	times := make([]time.Time, 0, len(records))
	for _, r := range records {
		times = append(times, r.OccurredAt)
	}
	return times
}

// progressRecords maps each enrollment into the analytics snapshot shape.
func (s *InsightsService) progressRecords(userID uint) []analytics.ProgressRecord {
	enrollments, err := s.Store.ListEnrollmentsByUser(userID)
	if err != nil {
		s.Logger.Printf("enrollments for user %d: %v", userID, err)
		return nil
	}

	records := make([]analytics.ProgressRecord, 0, len(enrollments))
	for _, e := range enrollments {
		lessons, err := s.Store.ListLessonProgress(userID, e.CourseID)
		if err != nil {
			s.Logger.Printf("lesson progress %d/%d: %v", userID, e.CourseID, err)
			continue
		}
		completed := 0
		for _, lp := range lessons {
			if lp.Completed {
				completed++
			}
		}
		records = append(records, analytics.ProgressRecord{
			LessonsCompleted: completed,
			Sessions:         e.Sessions,
			OverallProgress:  e.Progress,
			LastActivity:     e.LastAccessedAt,
		})
	}
	return records
}

func (s *InsightsService) Engagement(userID uint) EngagementStats {
	now := s.Store.Now()
	records := s.progressRecords(userID)
	return EngagementStats{
		StreakDays:      analytics.LearningStreak(s.activityTimes(userID), now),
		Velocity:        analytics.LearningVelocity(records, now),
		Consistency:     analytics.ConsistencyScore(records, now),
		Focus:           analytics.FocusScore(records),
		ImprovementRate: analytics.ImprovementRate(records),
	}
}

// Aggregates builds the snapshot the achievement and goal rules evaluate.
func (s *InsightsService) Aggregates(userID uint) analytics.Aggregates {
	now := s.Store.Now()

	enrollments, err := s.Store.ListEnrollmentsByUser(userID)
	if err != nil {
		s.Logger.Printf("enrollments for user %d: %v", userID, err)
		enrollments = nil
	}
	completedCourses := 0
	for _, e := range enrollments {
		if e.Status == models.EnrollmentCompleted {
			completedCourses++
		}
	}

	lessonsCompleted := 0
	var hoursSpent float64
	for _, e := range enrollments {
		lessons, err := s.Store.ListLessonProgress(userID, e.CourseID)
		if err != nil {
			continue
		}
		for _, lp := range lessons {
			if lp.Completed {
				lessonsCompleted++
			}
			hoursSpent += lp.TimeSpentMinutes / 60
		}
	}

	activity := s.activityTimes(userID)
	weekCutoff := now.AddDate(0, 0, -7)
	weeklyLessons := 0
	for _, ts := range activity {
		if ts.After(weekCutoff) {
			weeklyLessons++
		}
	}

	records := s.progressRecords(userID)
	return analytics.Aggregates{
		EnrolledCourses:  len(enrollments),
		CompletedCourses: completedCourses,
		StreakDays:       analytics.LearningStreak(activity, now),
		LessonsCompleted: lessonsCompleted,
		HoursSpent:       hoursSpent,
		Consistency:      analytics.ConsistencyScore(records, now),
		GPA:              s.Grades.OverallGPA(userID),
		WeeklyLessons:    weeklyLessons,
	}
}

func (s *InsightsService) Achievements(userID uint) []analytics.Achievement {
	return analytics.EvaluateAchievements(s.Aggregates(userID))
}

func (s *InsightsService) Goals(userID uint) []analytics.Goal {
	return analytics.EvaluateGoals(s.Aggregates(userID))
}
