package service

import (
	"context"
	"time"

	"github.com/SilviaMahr/StudyVerse/internal/dto"
	"github.com/SilviaMahr/StudyVerse/internal/models"
	"github.com/SilviaMahr/StudyVerse/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const askContextLimit = 10

// ChatService handles follow-up conversations about a generated plan and
// free-form study questions.
type ChatService struct {
	chats     *repository.ChatRepository
	plannings *repository.PlanningRepository
	planner   *PlannerService
	llm       *LLMService
	logger    *zap.Logger
}

func NewChatService(
	chats *repository.ChatRepository,
	plannings *repository.PlanningRepository,
	planner *PlannerService,
	llm *LLMService,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		chats:     chats,
		plannings: plannings,
		planner:   planner,
		llm:       llm,
		logger:    logger,
	}
}

// SendMessage answers a question about an existing plan using its stored
// planning context and records both sides of the exchange.
func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	planning, err := s.plannings.GetByID(ctx, req.PlanningID, userID)
	if err != nil {
		return nil, err
	}

	userMsg := &models.ChatMessage{
		PlanningID: planning.ID,
		UserID:     userID,
		Role:       models.ChatRoleUser,
		Content:    sanitizeUTF8(req.Message),
		CreatedAt:  time.Now(),
	}
	if err := s.chats.Save(ctx, userMsg); err != nil {
		return nil, err
	}

	answer, err := s.llm.CreateChatAnswer(ctx, req.Message, planning.PlanningContext)
	if err != nil {
		return nil, err
	}

	assistantMsg := &models.ChatMessage{
		PlanningID: planning.ID,
		UserID:     userID,
		Role:       models.ChatRoleAssistant,
		Content:    sanitizeUTF8(answer),
		CreatedAt:  time.Now(),
	}
	if err := s.chats.Save(ctx, assistantMsg); err != nil {
		return nil, err
	}

	if err := s.plannings.Touch(ctx, planning.ID, userID); err != nil {
		s.logger.Warn("failed to touch planning after chat", zap.Error(err))
	}

	return chatMessageResponse(assistantMsg), nil
}

func (s *ChatService) History(ctx context.Context, planningID int64, userID uuid.UUID) (*dto.ChatHistoryResponse, error) {
	if _, err := s.plannings.GetByID(ctx, planningID, userID); err != nil {
		return nil, err
	}

	messages, err := s.chats.History(ctx, planningID, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ChatHistoryResponse{PlanningID: planningID}
	for i := range messages {
		resp.Messages = append(resp.Messages, *chatMessageResponse(&messages[i]))
	}
	return resp, nil
}

// AskQuestion answers a general study question without a planning session:
// retrieval without metadata filters, completed courses removed, then the
// LLM grounded in the remaining excerpts.
func (s *ChatService) AskQuestion(ctx context.Context, userID uuid.UUID, question string) (*dto.AskQuestionResponse, error) {
	sources := s.planner.Answer(ctx, question, userID, askContextLimit)

	answer, err := s.llm.AnswerStudyQuestion(ctx, question, sources)
	if err != nil {
		return nil, err
	}

	resp := &dto.AskQuestionResponse{Answer: answer}
	for _, c := range sources {
		resp.Sources = append(resp.Sources, dto.CourseResponse{
			Number:     c.Metadata.Number,
			Name:       c.Metadata.Name,
			Type:       string(c.Metadata.Type),
			ECTS:       c.Metadata.ECTS,
			Semester:   c.Metadata.Semester,
			Day:        c.Metadata.Day,
			Time:       c.Metadata.Time,
			Instructor: c.Metadata.Instructor,
			Similarity: c.Similarity,
		})
	}

	return resp, nil
}

func chatMessageResponse(m *models.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
