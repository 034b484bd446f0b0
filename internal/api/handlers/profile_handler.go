package handlers

import (
	"github.com/SilviaMahr/StudyVerse/internal/dto"
	"github.com/SilviaMahr/StudyVerse/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// CompletedCourses godoc
// @Summary List the user's completed courses
// @Tags profile
// @Produce json
// @Success 200 {array} dto.CompletedCourseResponse
// @Router /profile/lvas/completed [get]
func (h *ProfileHandler) CompletedCourses(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.profileService.CompletedCourses(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list completed courses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list completed courses",
		})
	}

	return c.JSON(resp)
}

// SetCompleted godoc
// @Summary Replace the user's completed courses
// @Tags profile
// @Accept json
// @Param request body dto.UpdateCompletedRequest true "Completed course IDs"
// @Success 200 {object} map[string]string
// @Router /profile/lvas/completed [put]
func (h *ProfileHandler) SetCompleted(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCompletedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.profileService.SetCompleted(c.Context(), userID, req.CourseIDs); err != nil {
		h.logger.Error("Failed to update completed courses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update completed courses",
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// Curriculum godoc
// @Summary List all curriculum courses
// @Tags profile
// @Produce json
// @Success 200 {object} dto.CurriculumResponse
// @Router /profile/lvas [get]
func (h *ProfileHandler) Curriculum(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	resp, err := h.profileService.Curriculum(c.Context())
	if err != nil {
		h.logger.Error("Failed to load curriculum", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load curriculum",
		})
	}

	return c.JSON(resp)
}

// Electives godoc
// @Summary List elective curriculum courses
// @Tags profile
// @Produce json
// @Success 200 {object} dto.CurriculumResponse
// @Router /profile/lvas/electives [get]
func (h *ProfileHandler) Electives(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	resp, err := h.profileService.Electives(c.Context())
	if err != nil {
		h.logger.Error("Failed to load electives", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load electives",
		})
	}

	return c.JSON(resp)
}
