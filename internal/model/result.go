// internal/model/result.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizResult は1回の回答送信の記録です。セッションIDをキーとし、
// 同じセッションが再送信された場合は上書きされます。
type QuizResult struct {
	SessionID      uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"session_id"`
	UserID         string                       `gorm:"not null;index" json:"user_id"`
	Score          float64                      `gorm:"not null" json:"score"`
	TotalQuestions int                          `gorm:"not null" json:"total_questions"`
	Answers        datatypes.JSONType[[]string] `gorm:"not null" json:"answers"`
	Level          string                       `json:"level"`
	Focus          string                       `json:"focus"`
	SubmittedAt    time.Time                    `gorm:"not null" json:"submitted_at"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
