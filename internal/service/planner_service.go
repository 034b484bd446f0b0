package service

import (
	"context"
	"sync"

	"github.com/SilviaMahr/StudyVerse/internal/models"
	"github.com/SilviaMahr/StudyVerse/internal/retrieval"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompletedLister yields the names of courses a user has already passed.
type CompletedLister interface {
	NamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// CurriculumSource provides the static curriculum data the eligibility
// filter consults.
type CurriculumSource interface {
	Electives(ctx context.Context) ([]models.CurriculumCourse, error)
	PrerequisiteChains(ctx context.Context) (map[string][]string, error)
}

// PlanResult is the full outcome of one recommendation run, including the
// parsed query and the compiled filter so callers can explain what was
// searched for.
type PlanResult struct {
	Eligible []models.Course
	Excluded []ExcludedCourse
	Parsed   retrieval.ParsedQuery
	Filter   retrieval.Condition
}

// PlannerService orchestrates the recommendation flow: parse the query,
// retrieve candidates against the compiled metadata filter, then partition
// them by eligibility.
type PlannerService struct {
	retriever   *RetrievalService
	eligibility *EligibilityFilter
	completed   CompletedLister
	curriculum  CurriculumSource
	logger      *zap.Logger

	mu             sync.Mutex
	curriculumOnce bool
	electives      []string
	chains         map[string][]string
}

func NewPlannerService(
	retriever *RetrievalService,
	eligibility *EligibilityFilter,
	completed CompletedLister,
	curriculum CurriculumSource,
	logger *zap.Logger,
) *PlannerService {
	return &PlannerService{
		retriever:   retriever,
		eligibility: eligibility,
		completed:   completed,
		curriculum:  curriculum,
		logger:      logger,
	}
}

// Plan runs the full pipeline for one user query. Failures in the completed
// list or curriculum lookups degrade the filtering rather than abort the
// run: a plan built from incomplete context is still more useful than none.
func (s *PlannerService) Plan(ctx context.Context, userQuery string, userID uuid.UUID) PlanResult {
	parsed := retrieval.ParseQuery(userQuery)
	filter := retrieval.BuildFilter(parsed)

	candidates := s.retriever.RetrieveAll(ctx, userQuery, filter)

	completed := s.completedNames(ctx, userID)
	electives, chains := s.curriculumData(ctx)

	result := s.eligibility.Filter(candidates, completed, FilterOptions{
		TargetSemester: parsed.Semester,
		OriginalQuery:  userQuery,
		UserNamed:      parsed.DesiredCourses,
		Electives:      electives,
		Chains:         chains,
	})

	s.logger.Info("plan candidates filtered",
		zap.Int("retrieved", len(candidates)),
		zap.Int("eligible", len(result.Eligible)),
		zap.Int("excluded", len(result.Excluded)),
	)

	return PlanResult{
		Eligible: result.Eligible,
		Excluded: result.Excluded,
		Parsed:   parsed,
		Filter:   filter,
	}
}

// Answer retrieves context for a free-form study question. No metadata
// filter applies; only already-completed courses are removed so answers do
// not recommend finished work.
func (s *PlannerService) Answer(ctx context.Context, question string, userID uuid.UUID, limit int) []models.Course {
	candidates := s.retriever.Retrieve(ctx, question, nil, limit)
	completed := s.completedNames(ctx, userID)

	result := s.eligibility.FilterCompleted(candidates, completed)
	return result.Eligible
}

func (s *PlannerService) completedNames(ctx context.Context, userID uuid.UUID) []string {
	names, err := s.completed.NamesForUser(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load completed courses, filtering without them",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil
	}
	return names
}

// curriculumData loads electives and prerequisite chains once per process.
// A failed load is retried on the next call instead of being cached.
func (s *PlannerService) curriculumData(ctx context.Context) ([]string, map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.curriculumOnce {
		return s.electives, s.chains
	}

	electives, err := s.curriculum.Electives(ctx)
	if err != nil {
		s.logger.Warn("failed to load electives", zap.Error(err))
		return nil, nil
	}
	chains, err := s.curriculum.PrerequisiteChains(ctx)
	if err != nil {
		s.logger.Warn("failed to load prerequisite chains", zap.Error(err))
		return nil, nil
	}

	names := make([]string, 0, len(electives))
	for _, e := range electives {
		names = append(names, e.Name)
	}

	s.electives = names
	s.chains = chains
	s.curriculumOnce = true

	return s.electives, s.chains
}
