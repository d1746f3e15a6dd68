package repository

import (
	"context"
	"sync"

	"github.com/schooldesk/timetable_bot/internal/model"
)

// MemorySessionStore хранит расписание в памяти. Используется в тестах
// и для локального запуска без базы. Контракт тот же, что у Postgres:
// ReplaceDay — безусловная перезапись без проверки версий.
type MemorySessionStore struct {
	mu   sync.RWMutex
	days map[model.Weekday][]model.ClassSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		days: make(map[model.Weekday][]model.ClassSession),
	}
}

func (s *MemorySessionStore) LoadDay(_ context.Context, day model.Weekday) ([]model.ClassSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySessions(s.days[day]), nil
}

func (s *MemorySessionStore) LoadAllDays(_ context.Context) (map[model.Weekday][]model.ClassSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	week := make(map[model.Weekday][]model.ClassSession, len(s.days))
	for day, sessions := range s.days {
		if len(sessions) == 0 {
			continue
		}
		week[day] = copySessions(sessions)
	}

	return week, nil
}

func (s *MemorySessionStore) ReplaceDay(_ context.Context, day model.Weekday, sessions []model.ClassSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.days[day] = copySessions(sessions)
	return nil
}

func copySessions(sessions []model.ClassSession) []model.ClassSession {
	if sessions == nil {
		return nil
	}
	out := make([]model.ClassSession, len(sessions))
	copy(out, sessions)
	return out
}
