// internal/repository/session_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vocab_quiz/internal/model"
)

type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *model.QuizSession) error // トランザクション対応
	FindByID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.QuizSession, error)
}

type gormSessionRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *model.QuizSession) error {
	// SessionIDはService層で採番済み想定
	result := tx.WithContext(ctx).Create(session)
	return result.Error
}

func (r *gormSessionRepository) FindByID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.QuizSession, error) {
	var session model.QuizSession
	result := db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &session, nil
}
