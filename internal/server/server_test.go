package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schooldesk/timetable_bot/internal/model"
	"github.com/schooldesk/timetable_bot/internal/repository"
	"github.com/schooldesk/timetable_bot/internal/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := repository.NewMemorySessionStore()
	svc := service.NewScheduleService(store, false, zap.NewNop())
	return New(svc, zap.NewNop())
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func validRequest() SessionRequest {
	return SessionRequest{
		Subject:    "Математика",
		StartTime:  "09:00",
		EndTime:    "10:00",
		Room:       "204",
		Instructor: "Иванов",
		Grade:      "7",
	}
}

func TestCreateAndGetDay(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(jsonRequest(t, http.MethodPost, "/api/timetable/monday", validRequest()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.ClassSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, model.NewTimeOfDay(9, 0), created.StartTime)

	resp, err = s.app.Test(jsonRequest(t, http.MethodGet, "/api/timetable/monday", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var sessions []model.ClassSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, created.ID, sessions[0].ID)
}

func TestCreateConflictReturns409(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(jsonRequest(t, http.MethodPost, "/api/timetable/monday", validRequest()))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	second := validRequest()
	second.Grade = "8"
	second.StartTime = "09:30"
	second.EndTime = "10:30"

	resp, err = s.app.Test(jsonRequest(t, http.MethodPost, "/api/timetable/monday", second))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateValidationReturns400(t *testing.T) {
	s := newTestServer(t)

	bad := validRequest()
	bad.StartTime = "10:00"
	bad.EndTime = "09:00"

	resp, err := s.app.Test(jsonRequest(t, http.MethodPost, "/api/timetable/monday", bad))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateUnknownDayReturns400(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(jsonRequest(t, http.MethodPost, "/api/timetable/someday", validRequest()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateAllDaysReportsPerDay(t *testing.T) {
	s := newTestServer(t)

	// Занимаем среду тем же преподавателем
	blocker := validRequest()
	blocker.Grade = "9"
	resp, err := s.app.Test(jsonRequest(t, http.MethodPost, "/api/timetable/wednesday", blocker))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = s.app.Test(jsonRequest(t, http.MethodPost, "/api/timetable/all", validRequest()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)

	var outcomes []DayOutcomeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&outcomes))
	require.Len(t, outcomes, 6)

	admitted := 0
	for _, outcome := range outcomes {
		if outcome.Day == model.Wednesday {
			assert.False(t, outcome.Admitted)
			require.NotNil(t, outcome.Conflict)
			assert.Equal(t, model.ConflictInstructor, outcome.Conflict.Kind)
			continue
		}
		assert.True(t, outcome.Admitted, "day %s", outcome.Day)
		admitted++
	}
	assert.Equal(t, 5, admitted)
}

func TestUpdateSession(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(jsonRequest(t, http.MethodPost, "/api/timetable/monday", validRequest()))
	require.NoError(t, err)

	var created model.ClassSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	updated := validRequest()
	updated.Room = "305"

	target := fmt.Sprintf("/api/timetable/monday/%s", created.ID)
	resp, err = s.app.Test(jsonRequest(t, http.MethodPut, target, updated))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result model.ClassSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, created.ID, result.ID)
	assert.Equal(t, "305", result.Room)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(jsonRequest(t, http.MethodPost, "/api/timetable/monday", validRequest()))
	require.NoError(t, err)

	var created model.ClassSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	target := fmt.Sprintf("/api/timetable/monday/%s", created.ID)

	resp, err = s.app.Test(jsonRequest(t, http.MethodDelete, target, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Повторное удаление того же id — тоже успех
	resp, err = s.app.Test(jsonRequest(t, http.MethodDelete, target, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestGetWeekIncludesEmptyDays(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(jsonRequest(t, http.MethodGet, "/api/timetable", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var week map[model.Weekday][]model.ClassSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&week))
	assert.Len(t, week, 6)
}
