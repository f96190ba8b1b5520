package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todoflow/internal/model"
)

// ConversationRepository handles the append-only message timeline.
type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// LatestByUser returns the user's most recently updated conversation,
// or (nil, nil) when the user has none yet.
func (r *ConversationRepository) LatestByUser(ctx context.Context, userID uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	return &conv, nil
}

func (r *ConversationRepository) Create(ctx context.Context, userID uint) (*model.Conversation, error) {
	conv := model.Conversation{UserID: userID}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return &conv, nil
}

func (r *ConversationRepository) AppendMessage(ctx context.Context, msg *model.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// Touch bumps the conversation's updated_at so it stays the user's
// most recent one.
func (r *ConversationRepository) Touch(ctx context.Context, conversationID uint, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", conversationID).
		Update("updated_at", at).Error; err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}
