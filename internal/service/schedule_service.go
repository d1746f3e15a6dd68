package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schooldesk/timetable_bot/internal/model"
	"github.com/schooldesk/timetable_bot/internal/schedule"
)

// SessionStore порт к хранилищу дневных расписаний. Движок конфликтов
// и сервис не зависят от конкретного хранилища.
type SessionStore interface {
	LoadDay(ctx context.Context, day model.Weekday) ([]model.ClassSession, error)
	LoadAllDays(ctx context.Context) (map[model.Weekday][]model.ClassSession, error)
	ReplaceDay(ctx context.Context, day model.Weekday, sessions []model.ClassSession) error
}

// ScheduleService оркестрирует создание, редактирование и удаление занятий:
// читает день через хранилище, спрашивает движок конфликтов, пишет результат.
//
// Каждая операция — отдельные чтение и запись без транзакционной связки,
// поэтому два одновременных писателя в один день могут затереть друг друга.
// Сервис гарантирует отсутствие конфликтов только при отсутствии
// одновременных писателей в тот же день.
type ScheduleService struct {
	store SessionStore
	// moveAcrossDays: при переносе занятия на другой день редактированием
	// удалять ли запись со старого дня. По умолчанию выключено — старая
	// запись остаётся (поведение исходной системы).
	moveAcrossDays bool
	validate       *validator.Validate
	logger         *zap.Logger
}

func NewScheduleService(store SessionStore, moveAcrossDays bool, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		store:          store,
		moveAcrossDays: moveAcrossDays,
		validate:       validator.New(),
		logger:         logger,
	}
}

// validateCandidate проверяет кандидата до обращения к хранилищу
func (s *ScheduleService) validateCandidate(candidate model.ClassSession) error {
	if err := s.validate.Struct(candidate); err != nil {
		return &model.ValidationError{Err: err}
	}

	if !candidate.Grade.Valid() {
		return &model.ValidationError{Err: fmt.Errorf("unknown grade %q", candidate.Grade)}
	}

	if candidate.StartTime >= candidate.EndTime {
		return &model.ValidationError{Err: errors.New("start time must be before end time")}
	}

	return nil
}

// Create добавляет занятие в расписание одного дня. Кандидат без id
// получает новый. При конфликте возвращается *model.ConflictError,
// ничего не записывается.
func (s *ScheduleService) Create(ctx context.Context, day model.Weekday, candidate model.ClassSession) (*model.ClassSession, error) {
	if !day.Valid() {
		return nil, &model.ValidationError{Err: fmt.Errorf("unknown weekday %q", day)}
	}

	if err := s.validateCandidate(candidate); err != nil {
		return nil, err
	}

	sessions, err := s.store.LoadDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load day: %w", err)
	}

	if conflict := schedule.CheckConflict(day, candidate, sessions, uuid.Nil); conflict != nil {
		return nil, conflict
	}

	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}

	sessions = append(sessions, candidate)
	if err := s.store.ReplaceDay(ctx, day, sessions); err != nil {
		return nil, fmt.Errorf("replace day: %w", err)
	}

	s.logger.Info("Class session created",
		zap.String("session_id", candidate.ID.String()),
		zap.String("day", string(day)),
		zap.String("subject", candidate.Subject),
		zap.String("instructor", candidate.Instructor),
		zap.String("grade", string(candidate.Grade)),
		zap.String("time", candidate.StartTime.String()+"-"+candidate.EndTime.String()),
	)

	session := candidate
	return &session, nil
}

// CreateForAllDays раскладывает заявку на 6 независимых дневных операций.
// Каждый принятый день получает собственную копию занятия со своим id.
// Отката нет: конфликт или ошибка хранилища в одном дне не отменяет уже
// записанные дни, результат сообщается по-дневно.
func (s *ScheduleService) CreateForAllDays(ctx context.Context, candidate model.ClassSession) ([]model.DayOutcome, error) {
	if err := s.validateCandidate(candidate); err != nil {
		return nil, err
	}

	week, err := s.store.LoadAllDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("load all days: %w", err)
	}

	outcomes := make([]model.DayOutcome, 0, len(model.Weekdays()))
	for _, day := range model.Weekdays() {
		outcome := model.DayOutcome{Day: day}
		sessions := week[day]

		if conflict := schedule.CheckConflict(day, candidate, sessions, uuid.Nil); conflict != nil {
			outcome.Conflict = conflict
			outcomes = append(outcomes, outcome)
			continue
		}

		daily := candidate
		daily.ID = uuid.New()

		if err := s.store.ReplaceDay(ctx, day, append(sessions, daily)); err != nil {
			outcome.Err = fmt.Errorf("replace day %s: %w", day, err)
			outcomes = append(outcomes, outcome)
			continue
		}

		outcome.Session = &daily
		outcomes = append(outcomes, outcome)
	}

	admitted := 0
	for _, outcome := range outcomes {
		if outcome.Admitted() {
			admitted++
		}
	}

	s.logger.Info("Class session created for all days",
		zap.String("subject", candidate.Subject),
		zap.String("instructor", candidate.Instructor),
		zap.String("grade", string(candidate.Grade)),
		zap.Int("admitted_days", admitted),
		zap.Int("total_days", len(outcomes)),
	)

	return outcomes, nil
}

// Edit заменяет занятие с данным id в расписании дня. Само занятие
// исключается из проверки конфликтов, так что его можно сохранить
// с прежним временем без самоконфликта.
//
// Если занятия с таким id в целевом дне нет (занятие перенесли на другой
// день), обновлённая версия добавляется в целевой день. Запись на прежнем
// дне при этом остаётся, если сервис не создан с moveAcrossDays.
func (s *ScheduleService) Edit(ctx context.Context, day model.Weekday, id uuid.UUID, updated model.ClassSession) (*model.ClassSession, error) {
	if !day.Valid() {
		return nil, &model.ValidationError{Err: fmt.Errorf("unknown weekday %q", day)}
	}

	if id == uuid.Nil {
		return nil, &model.ValidationError{Err: errors.New("session id is required")}
	}

	updated.ID = id

	if err := s.validateCandidate(updated); err != nil {
		return nil, err
	}

	sessions, err := s.store.LoadDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load day: %w", err)
	}

	if conflict := schedule.CheckConflict(day, updated, sessions, id); conflict != nil {
		return nil, conflict
	}

	replaced := false
	for i := range sessions {
		if sessions[i].ID == id {
			sessions[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, updated)
	}

	if err := s.store.ReplaceDay(ctx, day, sessions); err != nil {
		return nil, fmt.Errorf("replace day: %w", err)
	}

	if !replaced && s.moveAcrossDays {
		if err := s.purgeFromOtherDays(ctx, day, id); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Class session updated",
		zap.String("session_id", id.String()),
		zap.String("day", string(day)),
		zap.String("subject", updated.Subject),
		zap.Bool("moved", !replaced),
	)

	session := updated
	return &session, nil
}

// purgeFromOtherDays убирает занятие со всех дней кроме целевого после
// переноса редактированием
func (s *ScheduleService) purgeFromOtherDays(ctx context.Context, target model.Weekday, id uuid.UUID) error {
	week, err := s.store.LoadAllDays(ctx)
	if err != nil {
		return fmt.Errorf("load all days: %w", err)
	}

	for day, sessions := range week {
		if day == target {
			continue
		}

		filtered := sessions[:0:0]
		for _, session := range sessions {
			if session.ID != id {
				filtered = append(filtered, session)
			}
		}

		if len(filtered) == len(sessions) {
			continue
		}

		if err := s.store.ReplaceDay(ctx, day, filtered); err != nil {
			return fmt.Errorf("replace day %s: %w", day, err)
		}

		s.logger.Info("Stale session removed after move",
			zap.String("session_id", id.String()),
			zap.String("day", string(day)),
		)
	}

	return nil
}

// Delete убирает занятие из расписания дня. Удаление несуществующего id —
// успешная пустая операция, список не меняется и запись не выполняется.
func (s *ScheduleService) Delete(ctx context.Context, day model.Weekday, id uuid.UUID) error {
	if !day.Valid() {
		return &model.ValidationError{Err: fmt.Errorf("unknown weekday %q", day)}
	}

	sessions, err := s.store.LoadDay(ctx, day)
	if err != nil {
		return fmt.Errorf("load day: %w", err)
	}

	filtered := sessions[:0:0]
	for _, session := range sessions {
		if session.ID != id {
			filtered = append(filtered, session)
		}
	}

	if len(filtered) == len(sessions) {
		return nil
	}

	if err := s.store.ReplaceDay(ctx, day, filtered); err != nil {
		return fmt.Errorf("replace day: %w", err)
	}

	s.logger.Info("Class session deleted",
		zap.String("session_id", id.String()),
		zap.String("day", string(day)),
	)

	return nil
}

// GetDay возвращает расписание одного дня
func (s *ScheduleService) GetDay(ctx context.Context, day model.Weekday) ([]model.ClassSession, error) {
	if !day.Valid() {
		return nil, &model.ValidationError{Err: fmt.Errorf("unknown weekday %q", day)}
	}
	return s.store.LoadDay(ctx, day)
}

// GetWeek возвращает расписание всех учебных дней
func (s *ScheduleService) GetWeek(ctx context.Context) (map[model.Weekday][]model.ClassSession, error) {
	return s.store.LoadAllDays(ctx)
}
