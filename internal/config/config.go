// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// OpenAIConfig は問題生成に使う外部LLMサービスの設定です。
// APIKey は環境変数 OPENAI_API_KEY から読み込むことを想定しています。
type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout は生成リクエスト1回あたりの待ち時間上限を返します。
func (c OpenAIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type QuizConfig struct {
	MaxRecentHistory      int `mapstructure:"max_recent_history"`
	DashboardHistoryLimit int `mapstructure:"dashboard_history_limit"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	// LLMのAPIキーとDB URLは慣例的な環境変数名にも紐付ける
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("database.url", "DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.OpenAI.Model == "" {
		Cfg.OpenAI.Model = DefaultOpenAIModel
	}
	if Cfg.OpenAI.BaseURL == "" {
		Cfg.OpenAI.BaseURL = DefaultOpenAIBaseURL
	}
	if Cfg.OpenAI.TimeoutSeconds <= 0 {
		Cfg.OpenAI.TimeoutSeconds = DefaultGenerationTimeoutSeconds
	}
	if Cfg.Quiz.MaxRecentHistory <= 0 {
		Cfg.Quiz.MaxRecentHistory = DefaultMaxRecentHistory
	}
	if Cfg.Quiz.DashboardHistoryLimit <= 0 {
		Cfg.Quiz.DashboardHistoryLimit = DefaultDashboardHistoryLimit
	}
	if Cfg.Database.URL == "" {
		log.Println("Database URL is not set. Falling back to in-memory sqlite (state is lost on shutdown).")
	}
	if Cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not found. Question generation will be unavailable.")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("OpenAI Model: %s", Cfg.OpenAI.Model)
	log.Printf("Generation Timeout: %ds", Cfg.OpenAI.TimeoutSeconds)
	log.Printf("OpenAI Configured: %t", Cfg.OpenAI.APIKey != "")

	return nil
}
