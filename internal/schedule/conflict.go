package schedule

import (
	"github.com/google/uuid"

	"github.com/schooldesk/timetable_bot/internal/model"
)

// CheckConflict решает, может ли кандидат быть добавлен в расписание дня.
// existing — полный список занятий ровно одного дня. excludeID исключает
// редактируемое занятие из проверки (uuid.Nil — не исключать ничего).
//
// Возвращает первый найденный конфликт либо nil. Результат зависит только
// от аргументов.
func CheckConflict(day model.Weekday, candidate model.ClassSession, existing []model.ClassSession, excludeID uuid.UUID) *model.ConflictError {
	for _, session := range existing {
		if excludeID != uuid.Nil && session.ID == excludeID {
			continue
		}

		if !Overlaps(candidate.StartTime, candidate.EndTime, session.StartTime, session.EndTime) {
			continue
		}

		if session.Instructor == candidate.Instructor {
			return &model.ConflictError{
				Kind:     model.ConflictInstructor,
				Day:      day,
				Existing: session,
			}
		}

		if session.Grade == candidate.Grade {
			return &model.ConflictError{
				Kind:     model.ConflictGrade,
				Day:      day,
				Existing: session,
			}
		}
	}

	return nil
}
