// internal/service/progress_service.go
package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"vocab_quiz/internal/config"
	"vocab_quiz/internal/middleware"
	"vocab_quiz/internal/model"
	"vocab_quiz/internal/repository"
)

type ProgressService interface {
	GetDashboard(ctx context.Context, userID string) (*model.DashboardResponse, error)
}

type progressService struct {
	db       *gorm.DB
	progRepo repository.ProgressRepository
	cfg      *config.Config
}

func NewProgressService(db *gorm.DB, progRepo repository.ProgressRepository, cfg *config.Config) ProgressService {
	return &progressService{
		db:       db,
		progRepo: progRepo,
		cfg:      cfg,
	}
}

func (s *progressService) GetDashboard(ctx context.Context, userID string) (*model.DashboardResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	// 一度も参照されていないユーザーはNotFound。
	// （プレイ済みでスコア0のユーザーとは区別される）
	progress, err := s.progRepo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("User progress record not found")
			return nil, model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "user_id", model.ErrNotFound)
		}
		logger.Error("Failed to find user progress", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザー成績の取得に失敗しました。", "", err)
	}

	entries, err := s.progRepo.FindHistory(ctx, s.db, userID, s.cfg.Quiz.DashboardHistoryLimit)
	if err != nil {
		logger.Error("Failed to find quiz history", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "成績履歴の取得に失敗しました。", "", err)
	}

	items := make([]model.QuizHistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, model.QuizHistoryItem{
			SessionID: e.SessionID,
			Date:      e.SubmittedAt.UTC().Format(time.RFC3339),
			Level:     e.Level,
			Score:     round2(e.Score),
		})
	}

	logger.Info("Dashboard retrieved", "total_quizzes", progress.TotalQuizzes, "history_count", len(items))
	return &model.DashboardResponse{
		UserID:        progress.UserID,
		CurrentLevel:  progress.CurrentLevel,
		TotalQuizzes:  progress.TotalQuizzes,
		AverageScore:  round2(progress.AverageScore),
		RecentHistory: items,
	}, nil
}
