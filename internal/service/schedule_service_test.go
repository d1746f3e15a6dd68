package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schooldesk/timetable_bot/internal/model"
	"github.com/schooldesk/timetable_bot/internal/repository"
)

func newTestService(t *testing.T, moveAcrossDays bool) (*ScheduleService, *repository.MemorySessionStore) {
	t.Helper()
	store := repository.NewMemorySessionStore()
	return NewScheduleService(store, moveAcrossDays, zap.NewNop()), store
}

func candidate() model.ClassSession {
	return model.ClassSession{
		Subject:    "Математика",
		StartTime:  model.NewTimeOfDay(9, 0),
		EndTime:    model.NewTimeOfDay(10, 0),
		Room:       "204",
		Instructor: "Иванов",
		Grade:      "7",
	}
}

func TestCreateEmptyDay(t *testing.T) {
	svc, store := newTestService(t, false)
	ctx := context.Background()

	session, err := svc.Create(ctx, model.Monday, candidate())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, session.ID)

	sessions, err := store.LoadDay(ctx, model.Monday)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, session.ID, sessions[0].ID)
}

func TestCreateInstructorConflict(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Monday, candidate())
	require.NoError(t, err)

	// Тот же преподаватель, другой класс, пересечение по времени
	second := candidate()
	second.Grade = "8"
	second.StartTime = model.NewTimeOfDay(9, 30)
	second.EndTime = model.NewTimeOfDay(10, 30)

	_, err = svc.Create(ctx, model.Monday, second)

	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, model.ConflictInstructor, conflict.Kind)
	assert.Equal(t, "Математика", conflict.Existing.Subject)

	// Отклонённый кандидат не записан
	sessions, err := svc.GetDay(ctx, model.Monday)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestCreateGradeConflict(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Monday, candidate())
	require.NoError(t, err)

	// Другой преподаватель, тот же класс
	second := candidate()
	second.Instructor = "Петров"
	second.StartTime = model.NewTimeOfDay(9, 30)
	second.EndTime = model.NewTimeOfDay(10, 30)

	_, err = svc.Create(ctx, model.Monday, second)

	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, model.ConflictGrade, conflict.Kind)
}

func TestCreateDifferentInstructorAndGradeAdmitted(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Monday, candidate())
	require.NoError(t, err)

	second := candidate()
	second.Instructor = "Петров"
	second.Grade = "8"
	second.StartTime = model.NewTimeOfDay(9, 30)
	second.EndTime = model.NewTimeOfDay(10, 30)

	_, err = svc.Create(ctx, model.Monday, second)
	require.NoError(t, err)

	sessions, err := svc.GetDay(ctx, model.Monday)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestCreateBackToBackAdmitted(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Monday, candidate())
	require.NoError(t, err)

	next := candidate()
	next.StartTime = model.NewTimeOfDay(10, 0)
	next.EndTime = model.NewTimeOfDay(11, 0)

	_, err = svc.Create(ctx, model.Monday, next)
	require.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.ClassSession)
	}{
		{"missing subject", func(c *model.ClassSession) { c.Subject = "" }},
		{"missing room", func(c *model.ClassSession) { c.Room = "" }},
		{"missing instructor", func(c *model.ClassSession) { c.Instructor = "" }},
		{"unknown grade", func(c *model.ClassSession) { c.Grade = "13" }},
		{"start equals end", func(c *model.ClassSession) { c.EndTime = c.StartTime }},
		{"start after end", func(c *model.ClassSession) {
			c.StartTime = model.NewTimeOfDay(11, 0)
			c.EndTime = model.NewTimeOfDay(10, 0)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := candidate()
			tt.mutate(&bad)

			_, err := svc.Create(ctx, model.Monday, bad)

			var validation *model.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestCreateUnknownDay(t *testing.T) {
	svc, _ := newTestService(t, false)

	_, err := svc.Create(context.Background(), model.AllDays, candidate())

	var validation *model.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestCreateForAllDays(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	outcomes, err := svc.CreateForAllDays(ctx, candidate())
	require.NoError(t, err)
	require.Len(t, outcomes, 6)

	seen := make(map[uuid.UUID]bool)
	for _, outcome := range outcomes {
		require.True(t, outcome.Admitted(), "day %s", outcome.Day)
		require.NotNil(t, outcome.Session)
		assert.False(t, seen[outcome.Session.ID], "session ids must be distinct")
		seen[outcome.Session.ID] = true
	}

	week, err := svc.GetWeek(ctx)
	require.NoError(t, err)
	assert.Len(t, week, 6)
}

func TestCreateForAllDaysPartialConflict(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	// Занимаем среду тем же преподавателем
	blocker := candidate()
	blocker.Grade = "9"
	_, err := svc.Create(ctx, model.Wednesday, blocker)
	require.NoError(t, err)

	outcomes, err := svc.CreateForAllDays(ctx, candidate())
	require.NoError(t, err)
	require.Len(t, outcomes, 6)

	admitted := 0
	for _, outcome := range outcomes {
		if outcome.Day == model.Wednesday {
			require.NotNil(t, outcome.Conflict)
			assert.Equal(t, model.ConflictInstructor, outcome.Conflict.Kind)
			assert.Equal(t, model.Wednesday, outcome.Conflict.Day)
			continue
		}
		require.True(t, outcome.Admitted(), "day %s", outcome.Day)
		admitted++
	}
	assert.Equal(t, 5, admitted)
}

func TestEditSameTimesNoSelfConflict(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Monday, candidate())
	require.NoError(t, err)

	updated := *created
	updated.Room = "305"

	result, err := svc.Edit(ctx, model.Monday, created.ID, updated)
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.ID)
	assert.Equal(t, "305", result.Room)

	sessions, err := svc.GetDay(ctx, model.Monday)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "305", sessions[0].Room)
}

func TestEditConflictNotPersisted(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	first, err := svc.Create(ctx, model.Monday, candidate())
	require.NoError(t, err)

	second := candidate()
	second.Instructor = "Петров"
	second.Grade = "8"
	second.StartTime = model.NewTimeOfDay(11, 0)
	second.EndTime = model.NewTimeOfDay(12, 0)
	createdSecond, err := svc.Create(ctx, model.Monday, second)
	require.NoError(t, err)

	// Пытаемся сдвинуть второе занятие на время первого с тем же классом
	moved := *createdSecond
	moved.Grade = first.Grade
	moved.StartTime = first.StartTime
	moved.EndTime = first.EndTime

	_, err = svc.Edit(ctx, model.Monday, createdSecond.ID, moved)

	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)

	// Исходное состояние не тронуто
	sessions, err := svc.GetDay(ctx, model.Monday)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, model.NewTimeOfDay(11, 0), sessions[1].StartTime)
}

func TestEditMoveToOtherDayKeepsStaleEntry(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Monday, candidate())
	require.NoError(t, err)

	// Перенос на вторник: занятие добавляется туда, а запись на
	// понедельнике остаётся (moveAcrossDays выключен)
	_, err = svc.Edit(ctx, model.Tuesday, created.ID, *created)
	require.NoError(t, err)

	monday, err := svc.GetDay(ctx, model.Monday)
	require.NoError(t, err)
	assert.Len(t, monday, 1)

	tuesday, err := svc.GetDay(ctx, model.Tuesday)
	require.NoError(t, err)
	assert.Len(t, tuesday, 1)
}

func TestEditMoveToOtherDayPurgesWhenEnabled(t *testing.T) {
	svc, _ := newTestService(t, true)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Monday, candidate())
	require.NoError(t, err)

	_, err = svc.Edit(ctx, model.Tuesday, created.ID, *created)
	require.NoError(t, err)

	monday, err := svc.GetDay(ctx, model.Monday)
	require.NoError(t, err)
	assert.Empty(t, monday)

	tuesday, err := svc.GetDay(ctx, model.Tuesday)
	require.NoError(t, err)
	require.Len(t, tuesday, 1)
	assert.Equal(t, created.ID, tuesday[0].ID)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Monday, candidate())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, model.Monday, created.ID))

	sessions, err := svc.GetDay(ctx, model.Monday)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDeleteNonExistentIsNoOp(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Monday, candidate())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, model.Monday, uuid.New()))

	sessions, err := svc.GetDay(ctx, model.Monday)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, created.ID, sessions[0].ID)
}
