package handlers

import (
	"strconv"

	"github.com/SilviaMahr/StudyVerse/internal/dto"
	"github.com/SilviaMahr/StudyVerse/internal/repository"
	"github.com/SilviaMahr/StudyVerse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlanningHandler struct {
	planningService *service.PlanningService
	logger          *zap.Logger
}

func NewPlanningHandler(planningService *service.PlanningService, logger *zap.Logger) *PlanningHandler {
	return &PlanningHandler{
		planningService: planningService,
		logger:          logger,
	}
}

// Create godoc
// @Summary Create a new planning session
// @Tags plannings
// @Accept json
// @Produce json
// @Param request body dto.CreatePlanningRequest true "Planning parameters"
// @Success 201 {object} dto.PlanningResponse
// @Failure 400 {object} map[string]string
// @Router /plannings/new [post]
func (h *PlanningHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreatePlanningRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.planningService.Create(c.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to create planning", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create planning",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Recent godoc
// @Summary List recent planning sessions
// @Tags plannings
// @Produce json
// @Param limit query int false "Maximum number of plannings" default(10)
// @Success 200 {object} dto.RecentPlanningsResponse
// @Router /plannings/recent [get]
func (h *PlanningHandler) Recent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", 10)

	resp, err := h.planningService.Recent(c.Context(), userID, limit)
	if err != nil {
		h.logger.Error("Failed to list plannings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list plannings",
		})
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get one planning session
// @Tags plannings
// @Produce json
// @Param id path int true "Planning ID"
// @Success 200 {object} dto.PlanningResponse
// @Failure 404 {object} map[string]string
// @Router /plannings/{id} [get]
func (h *PlanningHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := planningID(c)
	if err != nil {
		return err
	}

	resp, err := h.planningService.Get(c.Context(), id, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Planning not found",
			})
		}
		h.logger.Error("Failed to get planning", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get planning",
		})
	}

	return c.JSON(resp)
}

// Rename godoc
// @Summary Rename a planning session
// @Tags plannings
// @Accept json
// @Param id path int true "Planning ID"
// @Param request body dto.UpdatePlanningRequest true "New title"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /plannings/{id} [put]
func (h *PlanningHandler) Rename(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := planningID(c)
	if err != nil {
		return err
	}

	var req dto.UpdatePlanningRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.planningService.Rename(c.Context(), id, userID, req.Title); err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Planning not found",
			})
		}
		h.logger.Error("Failed to rename planning", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to rename planning",
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// Touch godoc
// @Summary Record access to a planning session
// @Tags plannings
// @Param id path int true "Planning ID"
// @Success 200 {object} map[string]string
// @Router /plannings/{id}/access [put]
func (h *PlanningHandler) Touch(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := planningID(c)
	if err != nil {
		return err
	}

	if err := h.planningService.Touch(c.Context(), id, userID); err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Planning not found",
			})
		}
		h.logger.Error("Failed to touch planning", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to touch planning",
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// Delete godoc
// @Summary Delete a planning session
// @Tags plannings
// @Param id path int true "Planning ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /plannings/{id} [delete]
func (h *PlanningHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := planningID(c)
	if err != nil {
		return err
	}

	if err := h.planningService.Delete(c.Context(), id, userID); err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Planning not found",
			})
		}
		h.logger.Error("Failed to delete planning", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete planning",
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// GeneratePlan godoc
// @Summary Generate a semester plan for a planning session
// @Tags plannings
// @Produce json
// @Param id path int true "Planning ID"
// @Success 200 {object} dto.GeneratedPlanResponse
// @Failure 404 {object} map[string]string
// @Router /plannings/{id}/generate-plan [post]
func (h *PlanningHandler) GeneratePlan(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := planningID(c)
	if err != nil {
		return err
	}

	resp, err := h.planningService.GeneratePlan(c.Context(), id, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Planning not found",
			})
		}
		h.logger.Error("Plan generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Plan generation failed",
		})
	}

	return c.JSON(resp)
}

// currentUserID reads the authenticated user from the request locals set by
// the auth middleware. Errors are fiber errors so the global ErrorHandler
// renders them.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return userID, nil
}

func planningID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid planning id")
	}
	return id, nil
}
