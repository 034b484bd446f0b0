package repository

import (
	"context"

	"github.com/SilviaMahr/StudyVerse/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// electiveHierarchyLevel marks the curriculum subtree of free-choice courses.
const electiveHierarchyLevel = "Wahlfach"

type CurriculumRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCurriculumRepository(db *pgxpool.Pool, logger *zap.Logger) *CurriculumRepository {
	return &CurriculumRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CurriculumRepository) Courses(ctx context.Context) ([]models.CurriculumCourse, error) {
	query := squirrel.Select("id", "name", "ects", "hierarchielevel0", "hierarchielevel1", "hierarchielevel2").
		From("lvas").
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryCourses(ctx, query)
}

// Electives returns the registered elective courses, the source of the
// elective registry used by the eligibility filter.
func (r *CurriculumRepository) Electives(ctx context.Context) ([]models.CurriculumCourse, error) {
	query := squirrel.Select("id", "name", "ects", "hierarchielevel0", "hierarchielevel1", "hierarchielevel2").
		From("lvas").
		Where(squirrel.Eq{"hierarchielevel0": electiveHierarchyLevel}).
		OrderBy("hierarchielevel1", "name").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryCourses(ctx, query)
}

// IdealPlan loads the recommended study progression used as LLM context.
func (r *CurriculumRepository) IdealPlan(ctx context.Context, studyMode, startMode string) ([]models.IdealPlanEntry, error) {
	query := squirrel.Select("semester_num", "lva_name", "semester_type", "ects").
		From("ideal_study_plan").
		Where(squirrel.Eq{"study_mode": studyMode, "study_start_mode": startMode}).
		OrderBy("semester_num", "lva_name").
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

	var entries []models.IdealPlanEntry
	for rows.Next() {
		var e models.IdealPlanEntry
		if err := rows.Scan(&e.SemesterNum, &e.CourseName, &e.SemesterType, &e.ECTS); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// PrerequisiteChains loads the known prerequisite chains: course name to the
// list of courses it requires. Kept as data so chains can be updated without
// redeploying the matching logic.
func (r *CurriculumRepository) PrerequisiteChains(ctx context.Context) (map[string][]string, error) {
	query := squirrel.Select("course_name", "required_course").
		From("prerequisite_chains").
		OrderBy("course_name").
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

	chains := make(map[string][]string)
	for rows.Next() {
		var course, required string
		if err := rows.Scan(&course, &required); err != nil {
			return nil, err
		}
		chains[course] = append(chains[course], required)
	}

	return chains, rows.Err()
}

func (r *CurriculumRepository) queryCourses(ctx context.Context, query squirrel.SelectBuilder) ([]models.CurriculumCourse, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.CurriculumCourse
	for rows.Next() {
		var c models.CurriculumCourse
		if err := rows.Scan(&c.ID, &c.Name, &c.ECTS, &c.Hierarchy0, &c.Hierarchy1, &c.Hierarchy2); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, rows.Err()
}
