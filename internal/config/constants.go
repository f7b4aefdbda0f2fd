// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "VocabQuizAPI"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort               = ":8080"
	DefaultLogLevel                 = "info"
	DefaultOpenAIModel              = "gpt-4o-mini"
	DefaultOpenAIBaseURL            = "https://api.openai.com/v1"
	DefaultGenerationTimeoutSeconds = 30
	DefaultMaxRecentHistory         = 10
	DefaultDashboardHistoryLimit    = 5
)

// クイズ仕様の固定値
const (
	MinQuestionCount     = 5
	MaxQuestionCount     = 20
	DefaultQuestionCount = 10
	DefaultQuizFocus     = "Vocabulary"
	OptionsPerQuestion   = 4
)
