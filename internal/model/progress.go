// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LatestQuiz は直近の回答送信のスナップショットです。
type LatestQuiz struct {
	SessionID   *uuid.UUID `gorm:"type:uuid" json:"session_id,omitempty"`
	Score       float64    `json:"score"`
	Total       int        `json:"total"`
	Level       string     `json:"level"`
	Focus       string     `json:"focus"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// UserProgress はユーザーごとの累積成績です。
// 初回のクイズ開始または回答送信で遅延生成され、以降は回答送信ごとに更新されます。
type UserProgress struct {
	UserID       string     `gorm:"primaryKey" json:"user_id"`
	CurrentLevel string     `gorm:"not null;default:beginner" json:"current_level"`
	TotalQuizzes int        `gorm:"not null;default:0" json:"total_quizzes"`
	TotalScore   float64    `gorm:"not null;default:0" json:"total_score"`
	AverageScore float64    `gorm:"not null;default:0" json:"average_score"`
	Latest       LatestQuiz `gorm:"embedded;embeddedPrefix:latest_" json:"latest_quiz"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// QuizHistory はユーザーの直近の成績履歴1件です。
// ユーザーごとに新しい順で最大10件保持し、超過分は古いものから削除されます。
type QuizHistory struct {
	HistoryID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID      string    `gorm:"not null;index" json:"-"`
	SessionID   uuid.UUID `gorm:"type:uuid;not null" json:"session_id"`
	Level       string    `gorm:"not null" json:"level"`
	Score       float64   `gorm:"not null" json:"score"`
	SubmittedAt time.Time `gorm:"not null;index" json:"date"`
}

func (QuizHistory) TableName() string {
	return "quiz_history"
}

// QuizHistoryItem はダッシュボードに返す履歴1件のDTOです。
type QuizHistoryItem struct {
	SessionID uuid.UUID `json:"session_id"`
	Date      string    `json:"date"`
	Level     string    `json:"level"`
	Score     float64   `json:"score"`
}

// ダッシュボードレスポンスDTO
type DashboardResponse struct {
	UserID        string            `json:"user_id"`
	CurrentLevel  string            `json:"current_level"`
	TotalQuizzes  int               `json:"total_quizzes"`
	AverageScore  float64           `json:"average_score"`
	RecentHistory []QuizHistoryItem `json:"recent_history"`
}
