package repository

import (
	"context"

	"github.com/SilviaMahr/StudyVerse/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CompletedCourseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCompletedCourseRepository(db *pgxpool.Pool, logger *zap.Logger) *CompletedCourseRepository {
	return &CompletedCourseRepository{
		db:     db,
		logger: logger,
	}
}

// NamesForUser returns the names of all courses the user has completed.
func (r *CompletedCourseRepository) NamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := squirrel.Select("l.name").
		From("completed_lvas cl").
		Join("lvas l ON cl.lva_id = l.id").
		Where(squirrel.Eq{"cl.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *CompletedCourseRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CompletedCourse, error) {
	query := squirrel.Select("l.id", "l.name", "l.ects").
		From("completed_lvas cl").
		Join("lvas l ON cl.lva_id = l.id").
		Where(squirrel.Eq{"cl.user_id": userID}).
		OrderBy("l.name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.CompletedCourse
	for rows.Next() {
		var c models.CompletedCourse
		if err := rows.Scan(&c.CourseID, &c.Name, &c.ECTS); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

// Add records one completed course. The association is append/remove only.
func (r *CompletedCourseRepository) Add(ctx context.Context, userID uuid.UUID, courseID int64) error {
	query := squirrel.Insert("completed_lvas").
		Columns("user_id", "lva_id").
		Values(userID, courseID).
		Suffix("ON CONFLICT DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CompletedCourseRepository) Remove(ctx context.Context, userID uuid.UUID, courseID int64) error {
	query := squirrel.Delete("completed_lvas").
		Where(squirrel.Eq{"user_id": userID, "lva_id": courseID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
