package repository

import (
	"context"

	"github.com/SilviaMahr/StudyVerse/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ChatRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChatRepository(db *pgxpool.Pool, logger *zap.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ChatRepository) Save(ctx context.Context, msg *models.ChatMessage) error {
	query := squirrel.Insert("chat_messages").
		Columns("planning_id", "user_id", "role", "content", "created_at").
		Values(msg.PlanningID, msg.UserID, msg.Role, msg.Content, msg.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&msg.ID)
}

// History returns the conversation of one planning in chronological order.
func (r *ChatRepository) History(ctx context.Context, planningID int64, userID uuid.UUID) ([]models.ChatMessage, error) {
	query := squirrel.Select("id", "planning_id", "user_id", "role", "content", "created_at").
		From("chat_messages").
		Where(squirrel.Eq{"planning_id": planningID, "user_id": userID}).
		OrderBy("created_at ASC", "id ASC").
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

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.PlanningID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
