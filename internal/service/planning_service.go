package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SilviaMahr/StudyVerse/internal/dto"
	"github.com/SilviaMahr/StudyVerse/internal/models"
	"github.com/SilviaMahr/StudyVerse/internal/repository"
	"github.com/SilviaMahr/StudyVerse/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultRecentLimit = 10

// PlanningService owns the planning lifecycle: CRUD on planning sessions and
// plan generation through the retrieval pipeline and the LLM synthesizer.
type PlanningService struct {
	plannings  *repository.PlanningRepository
	curriculum *repository.CurriculumRepository
	planner    *PlannerService
	llm        *LLMService
	ragCfg     *config.RAGConfig
	logger     *zap.Logger
}

func NewPlanningService(
	plannings *repository.PlanningRepository,
	curriculum *repository.CurriculumRepository,
	planner *PlannerService,
	llm *LLMService,
	ragCfg *config.RAGConfig,
	logger *zap.Logger,
) *PlanningService {
	return &PlanningService{
		plannings:  plannings,
		curriculum: curriculum,
		planner:    planner,
		llm:        llm,
		ragCfg:     ragCfg,
		logger:     logger,
	}
}

func (s *PlanningService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreatePlanningRequest) (*dto.PlanningResponse, error) {
	now := time.Now()
	planning := &models.Planning{
		UserID:           userID,
		Title:            req.Title,
		Semester:         req.Semester,
		TargetECTS:       req.TargetECTS,
		PreferredDays:    req.PreferredDays,
		MandatoryCourses: req.MandatoryCourses,
		CreatedAt:        now,
		LastModified:     now,
	}

	if err := s.plannings.Create(ctx, planning); err != nil {
		return nil, err
	}

	return planningResponse(planning), nil
}

func (s *PlanningService) Get(ctx context.Context, id int64, userID uuid.UUID) (*dto.PlanningResponse, error) {
	planning, err := s.plannings.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return planningResponse(planning), nil
}

func (s *PlanningService) Recent(ctx context.Context, userID uuid.UUID, limit int) (*dto.RecentPlanningsResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	plannings, err := s.plannings.Recent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.plannings.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RecentPlanningsResponse{Total: total}
	for i := range plannings {
		resp.Plannings = append(resp.Plannings, *planningResponse(&plannings[i]))
	}
	return resp, nil
}

func (s *PlanningService) Rename(ctx context.Context, id int64, userID uuid.UUID, title string) error {
	return s.plannings.Rename(ctx, id, userID, title)
}

func (s *PlanningService) Touch(ctx context.Context, id int64, userID uuid.UUID) error {
	return s.plannings.Touch(ctx, id, userID)
}

func (s *PlanningService) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	return s.plannings.Delete(ctx, id, userID)
}

// GeneratePlan runs the full recommendation pipeline for a stored planning
// session and persists the resulting plan together with its planning
// context.
func (s *PlanningService) GeneratePlan(ctx context.Context, id int64, userID uuid.UUID) (*dto.GeneratedPlanResponse, error) {
	planning, err := s.plannings.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	query := buildPlanQuery(planning)
	s.logger.Info("generating plan",
		zap.Int64("planning_id", id),
		zap.String("query", query),
	)

	result := s.planner.Plan(ctx, query, userID)

	idealPlan, err := s.curriculum.IdealPlan(ctx, s.ragCfg.IdealPlanMode, s.ragCfg.IdealPlanStart)
	if err != nil {
		s.logger.Warn("failed to load ideal study plan", zap.Error(err))
	}

	plan, planningContext, err := s.llm.GenerateSemesterPlan(ctx, PlanRequest{
		UserQuery:      query,
		Candidates:     result.Eligible,
		ECTSTarget:     planning.TargetECTS,
		PreferredDays:  planning.PreferredDays,
		CompletedNames: s.planner.completedNames(ctx, userID),
		DesiredNames:   result.Parsed.DesiredCourses,
		Excluded:       result.Excluded,
		IdealPlan:      idealPlan,
	})
	if err != nil {
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}

	if err := s.plannings.StorePlan(ctx, id, userID, planJSON, planningContext); err != nil {
		return nil, err
	}

	resp := &dto.GeneratedPlanResponse{
		PlanningID: id,
		Plan:       planJSON,
	}
	for _, ex := range result.Excluded {
		resp.Excluded = append(resp.Excluded, dto.ExcludedInfo{
			Name:                 ex.Course.Metadata.Name,
			Type:                 string(ex.Course.Metadata.Type),
			Reason:               string(ex.Reason),
			MissingPrerequisites: ex.MissingPrerequisites,
		})
	}

	return resp, nil
}

// buildPlanQuery turns stored planning preferences into the natural-language
// query the parser and retriever operate on.
func buildPlanQuery(p *models.Planning) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ich möchte %d ECTS im %s machen", p.TargetECTS, p.Semester)

	if len(p.PreferredDays) > 0 {
		fmt.Fprintf(&b, ", an %s", strings.Join(p.PreferredDays, ", "))
	}
	if p.MandatoryCourses != "" {
		fmt.Fprintf(&b, ". Ich möchte unbedingt folgende LVAs machen: %s", p.MandatoryCourses)
	}

	return b.String()
}

func planningResponse(p *models.Planning) *dto.PlanningResponse {
	return &dto.PlanningResponse{
		ID:               p.ID,
		Title:            p.Title,
		Semester:         p.Semester,
		TargetECTS:       p.TargetECTS,
		PreferredDays:    p.PreferredDays,
		MandatoryCourses: p.MandatoryCourses,
		Plan:             p.PlanJSON,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		LastModified:     p.LastModified.Format(time.RFC3339),
	}
}
