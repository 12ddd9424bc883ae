package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/models"
)

func moduleProgressByID(t *testing.T, svc *ProgressService, userID, courseID uint) map[string]models.ModuleProgress {
	t.Helper()
	list, err := svc.Store.ListModuleProgress(userID, courseID)
	require.NoError(t, err)
	out := make(map[string]models.ModuleProgress, len(list))
	for _, mp := range list {
		out[mp.ModuleID] = mp
	}
	return out
}

func TestMarkLessonCompleteHalfCourse(t *testing.T) {
	st := newTestStore(t)
	svc := NewProgressService(st, testLogger())
	course := seedCourse(t, st)
	user := seedUser(t, st, "ada")
	enroll(t, st, user.ID, course.ID)

	require.True(t, svc.MarkLessonComplete(user.ID, course.ID, "m1", "l1", 10).Success)
	require.True(t, svc.MarkLessonComplete(user.ID, course.ID, "m1", "l2", 15).Success)

	modules := moduleProgressByID(t, svc, user.ID, course.ID)
	m1 := modules["m1"]
	assert.True(t, m1.Completed)
	assert.Equal(t, 2, m1.LessonsCompleted)
	assert.Equal(t, 2, m1.TotalLessons)
	if m2, okm := modules["m2"]; okm {
		assert.False(t, m2.Completed)
	}

	enrollment, err := st.GetEnrollment(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.Progress)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestMarkLessonCompleteIdempotent(t *testing.T) {
	st := newTestStore(t)
	svc := NewProgressService(st, testLogger())
	course := seedCourse(t, st)
	user := seedUser(t, st, "ada")
	enroll(t, st, user.ID, course.ID)

	first := svc.MarkLessonComplete(user.ID, course.ID, "m1", "l1", 5)
	require.True(t, first.Success)
	second := svc.MarkLessonComplete(user.ID, course.ID, "m1", "l1", 5)
	require.True(t, second.Success)
	assert.Equal(t, "Lesson already completed", second.Message)

	lessons, err := st.ListLessonProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Len(t, lessons, 1)

	enrollment, err := st.GetEnrollment(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, enrollment.Progress)
}

func TestCompletionOrderIndependent(t *testing.T) {
	st := newTestStore(t)
	svc := NewProgressService(st, testLogger())
	course := seedCourse(t, st)
	user := seedUser(t, st, "ada")
	enroll(t, st, user.ID, course.ID)

	// reverse order, with a duplicate thrown in
	for _, pair := range [][2]string{{"m2", "l4"}, {"m2", "l3"}, {"m2", "l3"}, {"m1", "l2"}, {"m1", "l1"}} {
		require.True(t, svc.MarkLessonComplete(user.ID, course.ID, pair[0], pair[1], 0).Success)
	}

	enrollment, err := st.GetEnrollment(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, enrollment.Progress)
	assert.Equal(t, models.EnrollmentCompleted, enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)

	modules := moduleProgressByID(t, svc, user.ID, course.ID)
	assert.True(t, modules["m1"].Completed)
	assert.True(t, modules["m2"].Completed)
}

func TestMarkLessonCompleteFailures(t *testing.T) {
	st := newTestStore(t)
	svc := NewProgressService(st, testLogger())
	course := seedCourse(t, st)
	user := seedUser(t, st, "ada")

	// not enrolled
	assert.False(t, svc.MarkLessonComplete(user.ID, course.ID, "m1", "l1", 0).Success)

	enroll(t, st, user.ID, course.ID)
	assert.False(t, svc.MarkLessonComplete(user.ID, course.ID, "nope", "l1", 0).Success)
	assert.False(t, svc.MarkLessonComplete(user.ID, course.ID, "m1", "nope", 0).Success)
	assert.False(t, svc.MarkLessonComplete(user.ID, 9999, "m1", "l1", 0).Success)
}

func TestCourseProgressAccessor(t *testing.T) {
	st := newTestStore(t)
	svc := NewProgressService(st, testLogger())
	course := seedCourse(t, st)
	user := seedUser(t, st, "ada")
	enroll(t, st, user.ID, course.ID)

	require.True(t, svc.MarkLessonComplete(user.ID, course.ID, "m1", "l1", 30).Success)

	progress, err := svc.CourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, progress.Enrollment.Progress)
	assert.Len(t, progress.Lessons, 1)
	assert.True(t, progress.Lessons[0].Completed)

	_, err = svc.CourseProgress(user.ID, 9999)
	assert.Error(t, err)
}
