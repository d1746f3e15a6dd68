package model

import "fmt"

// ConflictKind вид конфликта расписания
type ConflictKind string

const (
	// ConflictInstructor преподаватель уже ведёт занятие в это время
	ConflictInstructor ConflictKind = "instructor"
	// ConflictGrade у класса уже есть занятие в это время
	ConflictGrade ConflictKind = "grade"
)

// ConflictError отклонение кандидата движком конфликтов.
// Несёт занятие, с которым произошло пересечение, чтобы вызывающий
// мог показать понятное сообщение.
type ConflictError struct {
	Kind     ConflictKind `json:"kind"`
	Day      Weekday      `json:"day"`
	Existing ClassSession `json:"existing"`
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case ConflictInstructor:
		return fmt.Sprintf(
			"instructor %s is already teaching %s (grade %s) on %s %s-%s",
			e.Existing.Instructor,
			e.Existing.Subject,
			e.Existing.Grade,
			e.Day,
			e.Existing.StartTime,
			e.Existing.EndTime,
		)
	case ConflictGrade:
		return fmt.Sprintf(
			"grade %s already has %s on %s %s-%s",
			e.Existing.Grade,
			e.Existing.Subject,
			e.Day,
			e.Existing.StartTime,
			e.Existing.EndTime,
		)
	}
	return fmt.Sprintf("schedule conflict on %s", e.Day)
}

// ValidationError некорректный кандидат (пустые поля, время вне диапазона,
// начало не раньше конца)
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid class session: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DayOutcome результат одной дневной операции при создании "на все дни".
// Дни обрабатываются независимо, отката уже записанных дней нет.
type DayOutcome struct {
	Day      Weekday        `json:"day"`
	Session  *ClassSession  `json:"session,omitempty"`  // принятая дневная копия
	Conflict *ConflictError `json:"conflict,omitempty"` // причина отклонения
	Err      error          `json:"-"`                  // ошибка хранилища
}

// Admitted сообщает была ли дневная копия записана
func (o DayOutcome) Admitted() bool {
	return o.Session != nil && o.Conflict == nil && o.Err == nil
}
