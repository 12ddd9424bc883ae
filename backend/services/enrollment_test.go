package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/models"
)

func TestEnrollAndDrop(t *testing.T) {
	st := newTestStore(t)
	svc := NewEnrollmentService(st, testLogger())
	course := seedCourse(t, st)
	ada := seedUser(t, st, "ada")
	bob := seedUser(t, st, "bob")

	require.True(t, svc.Enroll(ada.ID, course.ID).Success)
	require.True(t, svc.Enroll(bob.ID, course.ID).Success)

	// duplicate is rejected by the pre-check
	dup := svc.Enroll(ada.ID, course.ID)
	assert.False(t, dup.Success)
	assert.Equal(t, "Already enrolled in this course", dup.Message)

	fresh, err := st.GetCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.StudentCount)

	// dropping recounts instead of leaving the count stale
	require.True(t, svc.Drop(bob.ID, course.ID).Success)
	fresh, err = st.GetCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.StudentCount)

	enrollment, err := st.GetEnrollment(bob.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentDropped, enrollment.Status)
}

func TestEnrollRejectsUnpublished(t *testing.T) {
	st := newTestStore(t)
	svc := NewEnrollmentService(st, testLogger())
	ada := seedUser(t, st, "ada")

	draft := &models.Course{Title: "WIP", Status: models.CourseStatusDraft}
	require.NoError(t, st.CreateCourse(draft))

	assert.False(t, svc.Enroll(ada.ID, draft.ID).Success)
	assert.False(t, svc.Enroll(ada.ID, 9999).Success)
}

func TestDropWithoutEnrollment(t *testing.T) {
	st := newTestStore(t)
	svc := NewEnrollmentService(st, testLogger())
	course := seedCourse(t, st)
	ada := seedUser(t, st, "ada")

	assert.False(t, svc.Drop(ada.ID, course.ID).Success)
}
