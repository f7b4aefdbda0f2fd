// internal/repository/db.go
package repository

import (
	"log/slog"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vocab_quiz/internal/model"
)

// NewDB はGORMのDB接続を初期化します。databaseURL が空の場合は
// インメモリsqliteにフォールバックします（プロセス終了とともに状態は消えます）。
func NewDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	var dialector gorm.Dialector
	inMemory := databaseURL == ""
	if inMemory {
		dialector = sqlite.Open("file::memory:?cache=shared")
	} else {
		dialector = postgres.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: slogGormLogger,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if inMemory {
		// 共有キャッシュの:memory:はコネクションを増やすとSQLITE_BUSYを起こすため1本に固定
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(
		&model.QuizSession{},
		&model.QuizResult{},
		&model.UserProgress{},
		&model.QuizHistory{},
	); err != nil {
		appLogger.Error("Failed to run auto migration", slog.Any("error", err))
		return nil, err
	}

	appLogger.Info("Database connection established with GORM", slog.Bool("in_memory", inMemory))

	return db, nil
}
