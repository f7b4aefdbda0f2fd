// internal/model/quiz.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// クイズの難易度レベル
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Question は生成された4択問題1問を表します。
// CorrectAnswer は Options のいずれかと完全一致します。
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// QuizSession は1回のクイズ（ユーザー・レベル・問題列の組）を表します。
// 作成後は不変で、削除もされません。
type QuizSession struct {
	SessionID     uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"session_id"`
	UserID        string                           `gorm:"not null;index" json:"user_id"`
	Level         string                           `gorm:"not null" json:"level"`
	Focus         string                           `gorm:"not null" json:"focus"`
	QuestionCount int                              `gorm:"not null" json:"question_count"`
	Questions     datatypes.JSONType[[]Question]   `gorm:"not null" json:"-"`
	CreatedAt     time.Time                        `json:"created_at"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// クイズ開始リクエストDTO
type QuizStartRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	Level         string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	QuestionCount int    `json:"question_count" validate:"omitempty,min=5,max=20"`
	Focus         string `json:"focus" validate:"omitempty,max=100"`
}

// QuestionView はクライアントに返す問題です。正解は含めません。
type QuestionView struct {
	QuestionNumber int      `json:"question_number"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
}

// クイズ開始・問題再取得レスポンスDTO
type QuizStartResponse struct {
	SessionID      uuid.UUID      `json:"session_id"`
	Level          string         `json:"level"`
	TotalQuestions int            `json:"total_questions"`
	Questions      []QuestionView `json:"questions"`
}

// クイズ回答送信リクエストDTO
// Answers は出題順と同じ並びであることが前提です。
type QuizSubmitRequest struct {
	SessionID string   `json:"session_id" validate:"required,uuid"`
	UserID    string   `json:"user_id" validate:"required"`
	Answers   []string `json:"answers" validate:"required,min=1,max=50"`
}

// QuestionResult は1問分の採点結果です。
type QuestionResult struct {
	QuestionNumber int    `json:"question_number"`
	UserAnswer     string `json:"user_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// クイズ回答送信レスポンスDTO
type QuizSubmitResponse struct {
	SessionID      uuid.UUID        `json:"session_id"`
	Score          float64          `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	CorrectCount   int              `json:"correct_count"`
	Results        []QuestionResult `json:"results"`
}
