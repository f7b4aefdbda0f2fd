// internal/repository/result_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vocab_quiz/internal/model"
)

type ResultRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, result *model.QuizResult) error // 同一セッションの再送信は上書き
	FindBySessionID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.QuizResult, error)
}

type gormResultRepository struct{}

func NewGormResultRepository() ResultRepository {
	return &gormResultRepository{}
}

func (r *gormResultRepository) Upsert(ctx context.Context, tx *gorm.DB, result *model.QuizResult) error {
	// 主キー(session_id)衝突時は全カラムを更新する
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		UpdateAll: true,
	}).Create(result)
	return res.Error
}

func (r *gormResultRepository) FindBySessionID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.QuizResult, error) {
	var result model.QuizResult
	res := db.WithContext(ctx).Where("session_id = ?", sessionID).First(&result)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, res.Error
	}
	return &result, nil
}
