// internal/service/generator_openai.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"vocab_quiz/internal/config"
	"vocab_quiz/internal/middleware"
	"vocab_quiz/internal/model"
)

const generatorSystemPrompt = "You are a TOEFL vocabulary test expert. Return only valid JSON."

// OpenAIGenerator はOpenAIのchat completions APIを直接呼び出す実装です。
// リトライは行いません（再試行の判断は呼び出し側に委ねる）。
type OpenAIGenerator struct {
	cfg        *config.OpenAIConfig
	httpClient *http.Client
}

func NewOpenAIGenerator(cfg *config.OpenAIConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		cfg: cfg,
		// タイムアウトはリクエストごとのcontextで制御する
		httpClient: &http.Client{},
	}
}

func (g *OpenAIGenerator) Configured() bool {
	return g.cfg.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (g *OpenAIGenerator) Generate(ctx context.Context, level string, count int) ([]model.Question, error) {
	logger := middleware.GetLogger(ctx).With("level", level, "count", count)
	logger.Info("Generating quiz questions")

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout())
	defer cancel()

	content, err := g.complete(ctx, buildQuestionPrompt(level, count))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Error("Question generation timed out", "timeout", g.cfg.Timeout())
			return nil, model.NewAppError(
				"GENERATION_TIMEOUT",
				"問題生成サービスが応答しませんでした。時間をおいて再度お試しください。",
				"",
				model.ErrGenerationTimeout,
			)
		}
		logger.Error("Question generation request failed", "error", err)
		return nil, model.NewAppError(
			"GENERATION_UNAVAILABLE",
			"問題生成サービスが利用できません。",
			"",
			model.ErrGenerationUnavailable,
		)
	}
	logger.Info("Received response from generation service")

	questions, err := parseGeneratedQuestions(content, count)
	if err != nil {
		logger.Error("Failed to validate generated questions", "error", err)
		return nil, err
	}

	return questions, nil
}

// complete はchat completionsを1回呼び出し、応答本文のテキストを返します。
func (g *OpenAIGenerator) complete(ctx context.Context, prompt string) (string, error) {
	payload := chatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: generatorSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(g.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("unexpected response body (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if completion.Error != nil {
			return "", fmt.Errorf("generation API error (status %d): %s", resp.StatusCode, completion.Error.Message)
		}
		return "", fmt.Errorf("generation API returned status %d", resp.StatusCode)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("generation API returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// stripCodeFence は応答を囲むMarkdownのコードフェンスを取り除きます。
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = content[len("```json"):]
	} else if strings.HasPrefix(content, "```") {
		content = content[len("```"):]
	}
	if strings.HasSuffix(content, "```") {
		content = content[:len(content)-len("```")]
	}
	return strings.TrimSpace(content)
}

// parseGeneratedQuestions は生成サービスの応答を検証済みの問題列に変換します。
// 外部サービスの出力は信用せず、構造と件数を必ず確認します。
func parseGeneratedQuestions(content string, count int) ([]model.Question, error) {
	var questions []model.Question
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &questions); err != nil {
		return nil, model.NewAppError(
			"GENERATION_PARSE_ERROR",
			"生成された問題の解析に失敗しました。",
			"",
			model.ErrGenerationParse,
		)
	}

	if len(questions) != count {
		return nil, model.NewAppError(
			"GENERATION_COUNT_MISMATCH",
			fmt.Sprintf("生成された問題数が一致しません（期待 %d 件、実際 %d 件）。", count, len(questions)),
			"",
			model.ErrGenerationCountMismatch,
		)
	}

	for i, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, model.NewAppError(
				"GENERATION_PARSE_ERROR",
				fmt.Sprintf("生成された問題の形式が正しくありません（%d問目）。", i+1),
				"",
				model.ErrGenerationParse,
			)
		}
	}

	return questions, nil
}

func validateQuestion(q model.Question) error {
	if q.Question == "" {
		return errors.New("empty question text")
	}
	if len(q.Options) != config.OptionsPerQuestion {
		return fmt.Errorf("expected %d options, got %d", config.OptionsPerQuestion, len(q.Options))
	}
	for _, opt := range q.Options {
		if q.CorrectAnswer == opt {
			return nil
		}
	}
	return errors.New("correct answer is not one of the options")
}
