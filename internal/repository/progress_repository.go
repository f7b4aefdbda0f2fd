// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vocab_quiz/internal/model"
)

type ProgressRepository interface {
	FindByUserID(ctx context.Context, db *gorm.DB, userID string) (*model.UserProgress, error)
	Save(ctx context.Context, tx *gorm.DB, progress *model.UserProgress) error                  // 作成・更新兼用
	AppendHistory(ctx context.Context, tx *gorm.DB, entry *model.QuizHistory, maxEntries int) error    // 上限超過分は古い順に削除
	FindHistory(ctx context.Context, db *gorm.DB, userID string, limit int) ([]*model.QuizHistory, error) // 新しい順
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &progress, nil
}

func (r *gormProgressRepository) Save(ctx context.Context, tx *gorm.DB, progress *model.UserProgress) error {
	// Saveは主キーに基づいてInsert or Updateを行う
	result := tx.WithContext(ctx).Save(progress)
	return result.Error
}

func (r *gormProgressRepository) AppendHistory(ctx context.Context, tx *gorm.DB, entry *model.QuizHistory, maxEntries int) error {
	if err := tx.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}

	// 新しい順で maxEntries 件を残し、それ以外を削除する
	keep := tx.WithContext(ctx).
		Model(&model.QuizHistory{}).
		Select("history_id").
		Where("user_id = ?", entry.UserID).
		Order("submitted_at DESC").
		Limit(maxEntries)

	result := tx.WithContext(ctx).
		Where("user_id = ? AND history_id NOT IN (?)", entry.UserID, keep).
		Delete(&model.QuizHistory{})
	return result.Error
}

func (r *gormProgressRepository) FindHistory(ctx context.Context, db *gorm.DB, userID string, limit int) ([]*model.QuizHistory, error) {
	var entries []*model.QuizHistory
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}
