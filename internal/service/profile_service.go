package service

import (
	"context"

	"github.com/SilviaMahr/StudyVerse/internal/dto"
	"github.com/SilviaMahr/StudyVerse/internal/models"
	"github.com/SilviaMahr/StudyVerse/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileService exposes the curriculum and a user's completed-course set.
type ProfileService struct {
	completed  *repository.CompletedCourseRepository
	curriculum *repository.CurriculumRepository
	logger     *zap.Logger
}

func NewProfileService(
	completed *repository.CompletedCourseRepository,
	curriculum *repository.CurriculumRepository,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		completed:  completed,
		curriculum: curriculum,
		logger:     logger,
	}
}

func (s *ProfileService) CompletedCourses(ctx context.Context, userID uuid.UUID) ([]dto.CompletedCourseResponse, error) {
	courses, err := s.completed.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CompletedCourseResponse, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, dto.CompletedCourseResponse{
			CourseID: c.CourseID,
			Name:     c.Name,
			ECTS:     c.ECTS,
		})
	}
	return resp, nil
}

// SetCompleted replaces the user's completed set with the given course IDs.
// Additions and removals are computed against the current state so untouched
// rows keep their insertion order.
func (s *ProfileService) SetCompleted(ctx context.Context, userID uuid.UUID, courseIDs []int64) error {
	current, err := s.completed.ListForUser(ctx, userID)
	if err != nil {
		return err
	}

	want := make(map[int64]bool, len(courseIDs))
	for _, id := range courseIDs {
		want[id] = true
	}
	have := make(map[int64]bool, len(current))
	for _, c := range current {
		have[c.CourseID] = true
	}

	for id := range want {
		if !have[id] {
			if err := s.completed.Add(ctx, userID, id); err != nil {
				return err
			}
		}
	}
	for id := range have {
		if !want[id] {
			if err := s.completed.Remove(ctx, userID, id); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *ProfileService) Curriculum(ctx context.Context) (*dto.CurriculumResponse, error) {
	courses, err := s.curriculum.Courses(ctx)
	if err != nil {
		return nil, err
	}
	return curriculumResponse(courses), nil
}

func (s *ProfileService) Electives(ctx context.Context) (*dto.CurriculumResponse, error) {
	courses, err := s.curriculum.Electives(ctx)
	if err != nil {
		return nil, err
	}
	return curriculumResponse(courses), nil
}

func curriculumResponse(courses []models.CurriculumCourse) *dto.CurriculumResponse {
	resp := &dto.CurriculumResponse{Total: len(courses)}
	for _, c := range courses {
		resp.Courses = append(resp.Courses, dto.CurriculumCourseResponse{
			ID:         c.ID,
			Name:       c.Name,
			ECTS:       c.ECTS,
			Hierarchy0: c.Hierarchy0,
			Hierarchy1: c.Hierarchy1,
			Hierarchy2: c.Hierarchy2,
		})
	}
	return resp
}
