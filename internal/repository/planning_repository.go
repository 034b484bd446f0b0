package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SilviaMahr/StudyVerse/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var planningColumns = []string{
	"id", "user_id", "title", "semester", "target_ects", "preferred_days",
	"mandatory_courses", "plan_json", "planning_context", "created_at", "last_modified",
}

type PlanningRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPlanningRepository(db *pgxpool.Pool, logger *zap.Logger) *PlanningRepository {
	return &PlanningRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PlanningRepository) Create(ctx context.Context, p *models.Planning) error {
	query := squirrel.Insert("plannings").
		Columns("user_id", "title", "semester", "target_ects", "preferred_days",
			"mandatory_courses", "created_at", "last_modified").
		Values(p.UserID, p.Title, p.Semester, p.TargetECTS, p.PreferredDays,
			p.MandatoryCourses, p.CreatedAt, p.LastModified).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&p.ID)
}

// GetByID returns the planning only when it belongs to the given user.
func (r *PlanningRepository) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*models.Planning, error) {
	query := squirrel.Select(planningColumns...).
		From("plannings").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Planning
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.UserID, &p.Title, &p.Semester, &p.TargetECTS, &p.PreferredDays,
		&p.MandatoryCourses, &p.PlanJSON, &p.PlanningContext, &p.CreatedAt, &p.LastModified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Recent lists the user's planning sessions, newest modification first.
func (r *PlanningRepository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Planning, error) {
	query := squirrel.Select(planningColumns...).
		From("plannings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("last_modified DESC").
		Limit(uint64(limit)).
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

	var plannings []models.Planning
	for rows.Next() {
		var p models.Planning
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Title, &p.Semester, &p.TargetECTS, &p.PreferredDays,
			&p.MandatoryCourses, &p.PlanJSON, &p.PlanningContext, &p.CreatedAt, &p.LastModified,
		); err != nil {
			return nil, err
		}
		plannings = append(plannings, p)
	}

	return plannings, rows.Err()
}

func (r *PlanningRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("plannings").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Touch bumps last_modified, keeping the recent-plannings ordering current.
func (r *PlanningRepository) Touch(ctx context.Context, id int64, userID uuid.UUID) error {
	return r.update(ctx, id, userID, squirrel.Update("plannings").
		Set("last_modified", time.Now()))
}

func (r *PlanningRepository) Rename(ctx context.Context, id int64, userID uuid.UUID, title string) error {
	return r.update(ctx, id, userID, squirrel.Update("plannings").
		Set("title", title).
		Set("last_modified", time.Now()))
}

// StorePlan saves the generated plan and the planning context it was built
// from, so later chat turns can reuse the exact parameters.
func (r *PlanningRepository) StorePlan(ctx context.Context, id int64, userID uuid.UUID, planJSON []byte, planningContext string) error {
	return r.update(ctx, id, userID, squirrel.Update("plannings").
		Set("plan_json", planJSON).
		Set("planning_context", planningContext).
		Set("last_modified", time.Now()))
}

func (r *PlanningRepository) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	query := squirrel.Delete("plannings").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PlanningRepository) update(ctx context.Context, id int64, userID uuid.UUID, builder squirrel.UpdateBuilder) error {
	query := builder.
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
