package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todoflow/internal/model"
)

// UserRepository handles lookups and registration of users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreate finds a user by email, creating the row on first sight.
func (r *UserRepository) GetOrCreate(ctx context.Context, email, name string) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case err == gorm.ErrRecordNotFound:
		user = model.User{Email: email, Name: name}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// LinkTelegramChat records the chat a user's reminders should go to.
func (r *UserRepository) LinkTelegramChat(ctx context.Context, userID uint, chatID int64) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("telegram_chat_id", chatID).Error; err != nil {
		return fmt.Errorf("link telegram chat: %w", err)
	}
	return nil
}
