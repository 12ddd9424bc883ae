package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/models"
)

func TestAddGradeDerivesFields(t *testing.T) {
	st := newTestStore(t)
	svc := NewGradeService(st, testLogger())
	course := seedCourse(t, st)
	ada := seedUser(t, st, "ada")
	instructor := seedUser(t, st, "grace")
	enroll(t, st, ada.ID, course.ID)

	res, grade := svc.AddGrade(instructor.ID, GradeInput{
		StudentID: ada.ID,
		CourseID:  course.ID,
		Type:      models.GradeExam,
		Points:    88,
		MaxPoints: 100,
		Published: true,
	})
	require.True(t, res.Success)
	require.NotNil(t, grade)
	assert.Equal(t, 88, grade.Percentage)
	assert.Equal(t, "B+", grade.LetterGrade)
	assert.Equal(t, instructor.ID, grade.GradedBy)
	assert.False(t, grade.GradedAt.IsZero())
}

func TestAddGradeChecksReferences(t *testing.T) {
	st := newTestStore(t)
	svc := NewGradeService(st, testLogger())
	course := seedCourse(t, st)
	ada := seedUser(t, st, "ada")

	in := GradeInput{StudentID: ada.ID, CourseID: course.ID, Type: models.GradeQuiz, Points: 5, MaxPoints: 10}

	// student not enrolled
	res, _ := svc.AddGrade(1, in)
	assert.False(t, res.Success)

	enroll(t, st, ada.ID, course.ID)

	in.CourseID = 9999
	res, _ = svc.AddGrade(1, in)
	assert.False(t, res.Success)

	in.CourseID = course.ID
	missing := uint(9999)
	in.AssignmentID = &missing
	res, _ = svc.AddGrade(1, in)
	assert.False(t, res.Success)
}

func TestGradeAnalyticsAccessors(t *testing.T) {
	st := newTestStore(t)
	svc := NewGradeService(st, testLogger())
	course := seedCourse(t, st)
	ada := seedUser(t, st, "ada")
	enroll(t, st, ada.ID, course.ID)

	for _, points := range []float64{95, 85, 75} {
		res, _ := svc.AddGrade(1, GradeInput{
			StudentID: ada.ID, CourseID: course.ID,
			Type: models.GradeQuiz, Points: points, MaxPoints: 100,
		})
		require.True(t, res.Success)
	}

	stats := svc.CourseStats(ada.ID, course.ID)
	assert.Equal(t, 85, stats.AveragePercentage) // 255/300, point-weighted
	assert.Equal(t, "B", stats.LetterGrade)
	assert.Equal(t, 3, stats.GradeCount)

	dist := svc.Distribution(ada.ID)
	assert.Equal(t, 1, dist.A)
	assert.Equal(t, 1, dist.B)
	assert.Equal(t, 1, dist.C)

	assert.InDelta(t, 3.0, svc.OverallGPA(ada.ID), 0.001)

	// fetch failure policy: unknown student reduces over the empty list
	empty := svc.CourseStats(9999, course.ID)
	assert.Equal(t, "N/A", empty.LetterGrade)
}

func TestSubmitModuleQuiz(t *testing.T) {
	st := newTestStore(t)
	grades := NewGradeService(st, testLogger())
	svc := NewCourseService(st, testLogger(), grades)
	ada := seedUser(t, st, "ada")

	course := &models.Course{
		Title:  "Quiz course",
		Status: models.CourseStatusPublished,
		Content: models.CourseContent{Modules: []models.CourseModule{{
			ID: "m1", Title: "M1",
			Lessons: []models.CourseLesson{{ID: "l1", Title: "L1"}},
			Questions: []models.QuizQuestion{
				{ID: "q1", Question: "2+2?", Options: []models.QuizOption{
					{ID: "a", Text: "3"}, {ID: "b", Text: "4", IsCorrect: true},
				}},
				{ID: "q2", Question: "capital of France?", Options: []models.QuizOption{
					{ID: "a", Text: "Paris", IsCorrect: true}, {ID: "b", Text: "Lyon"},
				}},
			},
		}}},
	}
	require.NoError(t, st.CreateCourse(course))
	enroll(t, st, ada.ID, course.ID)

	res, grade := svc.SubmitModuleQuiz(ada.ID, course.ID, "m1", map[string]string{"q1": "b", "q2": "b"})
	require.True(t, res.Success)
	require.NotNil(t, grade)
	assert.Equal(t, 1.0, grade.Points)
	assert.Equal(t, 2.0, grade.MaxPoints)
	assert.Equal(t, 50, grade.Percentage)
	assert.Equal(t, models.GradeQuiz, grade.Type)

	// no quiz on an unknown module
	res, _ = svc.SubmitModuleQuiz(ada.ID, course.ID, "nope", nil)
	assert.False(t, res.Success)
}
