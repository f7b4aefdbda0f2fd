// internal/service/scoring.go
package service

import (
	"math"

	"vocab_quiz/internal/model"
)

// ScoreSummary は1回の採点の集計結果です。
type ScoreSummary struct {
	Results      []model.QuestionResult
	CorrectCount int
	TotalCount   int
	Percent      float64 // 0〜100、小数第2位まで
}

// round2 は小数第2位への丸めです。丸め方式はゼロから遠い方への
// 四捨五入（math.Round）で固定しています。
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ScoreAnswers は回答列を正解と突き合わせて採点します。副作用はありません。
// 回答と設問はインデックスで対応づけるため、件数の一致を最初に確認します。
// 比較は大文字小文字を区別する完全一致です。
func ScoreAnswers(questions []model.Question, answers []string) (*ScoreSummary, error) {
	if len(answers) != len(questions) {
		return nil, model.NewAppError(
			"ANSWER_COUNT_MISMATCH",
			"回答数が問題数と一致しません。",
			"answers",
			model.ErrInvalidInput,
		)
	}

	summary := &ScoreSummary{
		Results:    make([]model.QuestionResult, 0, len(questions)),
		TotalCount: len(questions),
	}

	for i, q := range questions {
		isCorrect := answers[i] == q.CorrectAnswer
		if isCorrect {
			summary.CorrectCount++
		}
		summary.Results = append(summary.Results, model.QuestionResult{
			QuestionNumber: i + 1,
			UserAnswer:     answers[i],
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      isCorrect,
		})
	}

	summary.Percent = round2(float64(summary.CorrectCount) * 100 / float64(summary.TotalCount))
	return summary, nil
}
