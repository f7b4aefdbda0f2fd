// internal/service/progress_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocab_quiz/internal/model"
	"vocab_quiz/internal/repository"
)

func TestProgressService_GetDashboard(t *testing.T) {
	t.Run("異常系: 一度も利用していないユーザー", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewProgressService(db, repository.NewGormProgressRepository(), testQuizConfig())

		dashboard, err := svc.GetDashboard(context.Background(), "unknown-user")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, dashboard)
	})

	t.Run("正常系: 平均スコアとスコアは小数第2位に丸めて返す", func(t *testing.T) {
		db := setupTestDB(t)
		ctx := context.Background()
		svc := NewProgressService(db, repository.NewGormProgressRepository(), testQuizConfig())

		// 3回分の集計済みレコードを直接投入する（250/3 = 83.333...）
		require.NoError(t, db.WithContext(ctx).Create(&model.UserProgress{
			UserID:       "user-1",
			CurrentLevel: model.LevelIntermediate,
			TotalQuizzes: 3,
			TotalScore:   250,
			AverageScore: 250.0 / 3.0,
		}).Error)

		submittedAt := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
		sessionID := uuid.New()
		require.NoError(t, db.WithContext(ctx).Create(&model.QuizHistory{
			HistoryID:   uuid.New(),
			UserID:      "user-1",
			SessionID:   sessionID,
			Level:       model.LevelIntermediate,
			Score:       100.0 / 3.0, // 33.333...
			SubmittedAt: submittedAt,
		}).Error)

		dashboard, err := svc.GetDashboard(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", dashboard.UserID)
		assert.Equal(t, model.LevelIntermediate, dashboard.CurrentLevel)
		assert.Equal(t, 3, dashboard.TotalQuizzes)
		assert.Equal(t, 83.33, dashboard.AverageScore)
		require.Len(t, dashboard.RecentHistory, 1)
		assert.Equal(t, sessionID, dashboard.RecentHistory[0].SessionID)
		assert.Equal(t, 33.33, dashboard.RecentHistory[0].Score)
		assert.Equal(t, "2025-06-01T12:30:00Z", dashboard.RecentHistory[0].Date)
	})

	t.Run("正常系: 履歴は設定の上限件数までを新しい順で返す", func(t *testing.T) {
		db := setupTestDB(t)
		ctx := context.Background()
		cfg := testQuizConfig()
		svc := NewProgressService(db, repository.NewGormProgressRepository(), cfg)

		require.NoError(t, db.WithContext(ctx).Create(&model.UserProgress{
			UserID:       "user-1",
			CurrentLevel: model.LevelBeginner,
			TotalQuizzes: 8,
			TotalScore:   640,
			AverageScore: 80,
		}).Error)

		base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		sessionIDs := make([]uuid.UUID, 0, 8)
		for i := 0; i < 8; i++ {
			id := uuid.New()
			sessionIDs = append(sessionIDs, id)
			require.NoError(t, db.WithContext(ctx).Create(&model.QuizHistory{
				HistoryID:   uuid.New(),
				UserID:      "user-1",
				SessionID:   id,
				Level:       model.LevelBeginner,
				Score:       80,
				SubmittedAt: base.Add(time.Duration(i) * time.Hour),
			}).Error)
		}

		dashboard, err := svc.GetDashboard(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, dashboard.RecentHistory, cfg.Quiz.DashboardHistoryLimit)
		for i, item := range dashboard.RecentHistory {
			assert.Equal(t, sessionIDs[7-i], item.SessionID)
		}
	})
}
