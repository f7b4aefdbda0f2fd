// internal/service/generator.go
package service

import (
	"context"
	"fmt"

	"vocab_quiz/internal/config"
	"vocab_quiz/internal/middleware"
	"vocab_quiz/internal/model"
)

// QuestionGenerator は外部のテキスト生成サービスから4択問題を取得します。
// 返り値の問題列は検証済み（件数一致・選択肢4つ・正解が選択肢に含まれる）です。
type QuestionGenerator interface {
	Generate(ctx context.Context, level string, count int) ([]model.Question, error)
	// Configured は生成サービスが利用可能な設定かどうかを返します（ヘルスチェック用）。
	Configured() bool
}

// buildQuestionPrompt は生成サービスに渡す指示文を組み立てます。
// 厳密なJSON配列のみを返すように指示します。
func buildQuestionPrompt(level string, count int) string {
	return fmt.Sprintf(`Generate %d TOEFL vocabulary multiple-choice questions at %s level.
Each question should test vocabulary in context.
Return ONLY a JSON array with this exact structure, no additional text:
[{"question": "...", "options": ["A", "B", "C", "D"], "correct_answer": "A"}]

Make sure:
- Questions test vocabulary understanding in context
- All 4 options are plausible
- Correct answer is clearly marked
- Questions are appropriate for %s level TOEFL preparation`, count, level, level)
}

// --- LogGenerator ---
// APIキー未設定時に使うフォールバック。呼び出しは常に利用不可エラーになります。
type LogGenerator struct{}

func (g *LogGenerator) Generate(ctx context.Context, level string, count int) ([]model.Question, error) {
	logger := middleware.GetLogger(ctx)
	logger.Warn("Question generation requested but no API key is configured", "level", level, "count", count)
	return nil, model.NewAppError(
		"GENERATION_UNAVAILABLE",
		"問題生成サービスが利用できません（APIキー未設定）。",
		"",
		model.ErrGenerationUnavailable,
	)
}

func (g *LogGenerator) Configured() bool {
	return false
}

// NewQuestionGenerator は設定に応じて生成器を返します。
func NewQuestionGenerator(cfg *config.OpenAIConfig) QuestionGenerator {
	if cfg.APIKey == "" {
		return &LogGenerator{}
	}
	return NewOpenAIGenerator(cfg)
}
