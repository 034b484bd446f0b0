package dto

type SendMessageRequest struct {
	PlanningID int64  `json:"planning_id" validate:"required"`
	Message    string `json:"message" validate:"required,max=4000"`
}

type ChatMessageResponse struct {
	ID        int64  `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type ChatHistoryResponse struct {
	PlanningID int64                 `json:"planning_id"`
	Messages   []ChatMessageResponse `json:"messages"`
}

type AskQuestionRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

type AskQuestionResponse struct {
	Answer  string           `json:"answer"`
	Sources []CourseResponse `json:"sources"`
}
