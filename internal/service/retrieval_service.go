package service

import (
	"context"

	"github.com/SilviaMahr/StudyVerse/internal/models"
	"github.com/SilviaMahr/StudyVerse/internal/retrieval"
	"github.com/SilviaMahr/StudyVerse/pkg/config"

	"go.uber.org/zap"
)

// Embedder is the external text-to-vector capability.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// CourseSearcher is the similarity-search capability of the corpus store.
type CourseSearcher interface {
	SearchSimilar(ctx context.Context, embedding []float32, filter retrieval.Condition, fetchLimit int) ([]models.Course, error)
	SearchByName(ctx context.Context, name string, limit int) ([]models.Course, error)
}

// RetrievalService executes hybrid (metadata + similarity) search over the
// embedded course corpus and deduplicates the chunk hits down to one entry
// per LVA identity.
type RetrievalService struct {
	courses  CourseSearcher
	embedder Embedder
	config   *config.RAGConfig
	logger   *zap.Logger
}

func NewRetrievalService(courses CourseSearcher, embedder Embedder, cfg *config.RAGConfig, logger *zap.Logger) *RetrievalService {
	return &RetrievalService{
		courses:  courses,
		embedder: embedder,
		config:   cfg,
		logger:   logger,
	}
}

// Retrieve returns up to limit unique courses ordered by descending
// similarity to the query text, restricted by the metadata filter.
//
// Retrieval failure never propagates: embedding or query errors are logged
// and an empty list is returned, since "nothing found" is a valid state for
// a recommendation pipeline and callers translate it into a user message.
func (s *RetrievalService) Retrieve(ctx context.Context, queryText string, filter retrieval.Condition, limit int) []models.Course {
	// Over-fetch raw chunk rows: deduplication collapses every time-slot
	// chunk of the same LVA, so limit alone would starve the result.
	fetchLimit := limit * s.overFetch()
	return s.search(ctx, queryText, filter, fetchLimit, limit)
}

// RetrieveAll returns every unique matching course, used for semester-plan
// generation where the planner needs the complete candidate set. No
// early-stop applies; the fetch floor is the only bound.
func (s *RetrievalService) RetrieveAll(ctx context.Context, queryText string, filter retrieval.Condition) []models.Course {
	return s.search(ctx, queryText, filter, s.allFetchFloor(), 0)
}

func (s *RetrievalService) search(ctx context.Context, queryText string, filter retrieval.Condition, fetchLimit, uniqueLimit int) []models.Course {
	embedding, err := s.embedder.EmbedQuery(ctx, queryText)
	if err != nil {
		s.logger.Error("Embedding call failed, returning empty result",
			zap.Error(err),
		)
		return nil
	}

	rows, err := s.courses.SearchSimilar(ctx, embedding, filter, fetchLimit)
	if err != nil {
		s.logger.Error("Similarity search failed, returning empty result",
			zap.Error(err),
		)
		return nil
	}

	unique := dedupeByIdentity(rows, uniqueLimit)

	s.logger.Info("Hybrid retrieval completed",
		zap.Int("fetched", len(rows)),
		zap.Int("unique", len(unique)),
	)

	return unique
}

// RetrieveByName resolves a course name, alias expansion or course number to
// full records via substring lookup, independent of the embedding path.
func (s *RetrievalService) RetrieveByName(ctx context.Context, name string, limit int) []models.Course {
	if limit <= 0 {
		limit = 5
	}

	results, err := s.courses.SearchByName(ctx, name, limit)
	if err != nil {
		s.logger.Error("Course name search failed, returning empty result",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil
	}

	return results
}

// dedupeByIdentity keeps the first (highest-similarity) chunk per course
// identity. Rows are expected in similarity-descending order. Chunks without
// a full identity (generic curriculum entries) are kept as themselves.
// A uniqueLimit of 0 disables the early stop.
func dedupeByIdentity(rows []models.Course, uniqueLimit int) []models.Course {
	seen := make(map[models.CourseIdentity]struct{})
	var unique []models.Course

	for _, row := range rows {
		if id, ok := row.Identity(); ok {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}

		unique = append(unique, row)

		if uniqueLimit > 0 && len(unique) >= uniqueLimit {
			break
		}
	}

	return unique
}

func (s *RetrievalService) overFetch() int {
	if s.config != nil && s.config.OverFetch > 0 {
		return s.config.OverFetch
	}
	return 20
}

func (s *RetrievalService) allFetchFloor() int {
	if s.config != nil && s.config.AllFetchFloor > 0 {
		return s.config.AllFetchFloor
	}
	return 5000
}
