package repository

import (
	"context"

	"github.com/SilviaMahr/StudyVerse/internal/models"
	"github.com/SilviaMahr/StudyVerse/internal/retrieval"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// courseTable is the embedded catalog corpus filled by the external ETL
// pipeline. Its metadata keys form the schema contract in models.CourseMetadata.
const courseTable = "studyverse_data"

type CourseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCourseRepository(db *pgxpool.Pool, logger *zap.Logger) *CourseRepository {
	return &CourseRepository{
		db:     db,
		logger: logger,
	}
}

// SearchSimilar runs the hybrid query: cosine-distance ordering against the
// query embedding, restricted by the compiled metadata predicate. Rows with
// malformed metadata are skipped with a warning, never failing the call.
func (r *CourseRepository) SearchSimilar(ctx context.Context, embedding []float32, filter retrieval.Condition, fetchLimit int) ([]models.Course, error) {
	vec := pgtype.FlatArray[float32](embedding)

	query := squirrel.Select("id", "content", "metadata", "url").
		Column(squirrel.Expr("1 - (embedding <=> ?::vector) AS similarity", vec)).
		From(courseTable).
		OrderByClause(squirrel.Expr("embedding <=> ?::vector", vec)).
		PlaceholderFormat(squirrel.Dollar)

	if pred := retrieval.Predicate(filter); pred != nil {
		query = query.Where(pred)
	}
	if fetchLimit > 0 {
		query = query.Limit(uint64(fetchLimit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.Course
	for rows.Next() {
		var (
			id         int64
			content    string
			rawMeta    []byte
			url        *string
			similarity *float64
		)
		if err := rows.Scan(&id, &content, &rawMeta, &url, &similarity); err != nil {
			return nil, err
		}

		md, err := models.ParseCourseMetadata(rawMeta)
		if err != nil {
			r.logger.Warn("Skipping course chunk with invalid metadata",
				zap.Int64("id", id),
				zap.Error(err),
			)
			continue
		}

		course := models.Course{
			ID:       id,
			Content:  content,
			Metadata: md,
		}
		if url != nil {
			course.SourceURL = *url
		}
		if similarity != nil {
			course.Similarity = *similarity
		}
		results = append(results, course)
	}

	return results, rows.Err()
}

// SearchByName looks courses up by name or course number, independent of the
// embedding path. Used to resolve an alias or an explicitly named LVA to its
// full records.
func (r *CourseRepository) SearchByName(ctx context.Context, name string, limit int) ([]models.Course, error) {
	pattern := "%" + name + "%"

	query := squirrel.Select("id", "content", "metadata", "url").
		From(courseTable).
		Where(squirrel.Or{
			squirrel.ILike{"content": pattern},
			squirrel.ILike{"metadata->>'lva_name'": pattern},
			squirrel.ILike{"metadata->>'lva_nr'": pattern},
		}).
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

	var results []models.Course
	for rows.Next() {
		var (
			id      int64
			content string
			rawMeta []byte
			url     *string
		)
		if err := rows.Scan(&id, &content, &rawMeta, &url); err != nil {
			return nil, err
		}

		md, err := models.ParseCourseMetadata(rawMeta)
		if err != nil {
			r.logger.Warn("Skipping course chunk with invalid metadata",
				zap.Int64("id", id),
				zap.Error(err),
			)
			continue
		}

		course := models.Course{
			ID:       id,
			Content:  content,
			Metadata: md,
		}
		if url != nil {
			course.SourceURL = *url
		}
		results = append(results, course)
	}

	return results, rows.Err()
}
