package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schooldesk/timetable_bot/internal/model"
)

// SessionRepository хранит занятия в Postgres. Список занятий дня
// нормализован в строки (day, id), позиция сохраняет порядок списка.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// LoadDay возвращает полный список занятий дня в сохранённом порядке.
// Если занятий нет — пустой список.
func (r *SessionRepository) LoadDay(ctx context.Context, day model.Weekday) ([]model.ClassSession, error) {
	query := `
		SELECT id, subject, start_minutes, end_minutes, room, instructor, grade, lecture_number
		FROM class_sessions
		WHERE day = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, string(day))
	if err != nil {
		return nil, fmt.Errorf("load day %s: %w", day, err)
	}
	defer rows.Close()

	var sessions []model.ClassSession
	for rows.Next() {
		var session model.ClassSession
		err := rows.Scan(
			&session.ID,
			&session.Subject,
			&session.StartTime,
			&session.EndTime,
			&session.Room,
			&session.Instructor,
			&session.Grade,
			&session.LectureNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load day %s: %w", day, err)
	}

	return sessions, nil
}

// LoadAllDays возвращает занятия всех учебных дней одной выборкой
func (r *SessionRepository) LoadAllDays(ctx context.Context) (map[model.Weekday][]model.ClassSession, error) {
	query := `
		SELECT day, id, subject, start_minutes, end_minutes, room, instructor, grade, lecture_number
		FROM class_sessions
		ORDER BY day, position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load all days: %w", err)
	}
	defer rows.Close()

	week := make(map[model.Weekday][]model.ClassSession)
	for rows.Next() {
		var day string
		var session model.ClassSession
		err := rows.Scan(
			&day,
			&session.ID,
			&session.Subject,
			&session.StartTime,
			&session.EndTime,
			&session.Room,
			&session.Instructor,
			&session.Grade,
			&session.LectureNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		week[model.Weekday(day)] = append(week[model.Weekday(day)], session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load all days: %w", err)
	}

	return week, nil
}

// ReplaceDay безусловно перезаписывает весь список занятий дня.
// Примитив "последняя запись побеждает": ни слияния, ни проверки версий.
func (r *SessionRepository) ReplaceDay(ctx context.Context, day model.Weekday, sessions []model.ClassSession) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM class_sessions WHERE day = $1`, string(day))
	if err != nil {
		return fmt.Errorf("clear day %s: %w", day, err)
	}

	insert := `
		INSERT INTO class_sessions (day, position, id, subject, start_minutes, end_minutes, room, instructor, grade, lecture_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for position, session := range sessions {
		_, err = tx.Exec(
			ctx, insert,
			string(day),
			position,
			session.ID,
			session.Subject,
			session.StartTime,
			session.EndTime,
			session.Room,
			session.Instructor,
			session.Grade,
			session.LectureNumber,
		)
		if err != nil {
			return fmt.Errorf("insert session %s: %w", session.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace day %s: %w", day, err)
	}

	return nil
}
