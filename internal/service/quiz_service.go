// internal/service/quiz_service.go
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vocab_quiz/internal/config"
	"vocab_quiz/internal/middleware"
	"vocab_quiz/internal/model"
	"vocab_quiz/internal/repository"
)

type QuizService interface {
	StartQuiz(ctx context.Context, req *model.QuizStartRequest) (*model.QuizStartResponse, error)
	GetQuizQuestions(ctx context.Context, sessionID uuid.UUID) (*model.QuizStartResponse, error)
	SubmitQuiz(ctx context.Context, req *model.QuizSubmitRequest) (*model.QuizSubmitResponse, error)
}

type quizService struct {
	db          *gorm.DB // トランザクション用にDB接続を持つ
	generator   QuestionGenerator
	sessionRepo repository.SessionRepository
	resultRepo  repository.ResultRepository
	progRepo    repository.ProgressRepository
	cfg         *config.Config

	// ユーザー単位の直列化用。同一ユーザーの送信同士が
	// 集計のread-modify-writeで競合しないようにする。
	userLocks sync.Map // map[string]*sync.Mutex
}

func NewQuizService(
	db *gorm.DB,
	generator QuestionGenerator,
	sessionRepo repository.SessionRepository,
	resultRepo repository.ResultRepository,
	progRepo repository.ProgressRepository,
	cfg *config.Config,
) QuizService {
	return &quizService{
		db:          db,
		generator:   generator,
		sessionRepo: sessionRepo,
		resultRepo:  resultRepo,
		progRepo:    progRepo,
		cfg:         cfg,
	}
}

func (s *quizService) lockFor(userID string) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *quizService) StartQuiz(ctx context.Context, req *model.QuizStartRequest) (*model.QuizStartResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", req.UserID, "level", req.Level)

	count := req.QuestionCount
	if count == 0 {
		count = config.DefaultQuestionCount
	}
	focus := req.Focus
	if focus == "" {
		focus = config.DefaultQuizFocus
	}

	// 外部呼び出しはロックを持たずに行う
	questions, err := s.generator.Generate(ctx, req.Level, count)
	if err != nil {
		return nil, err
	}

	session := &model.QuizSession{
		SessionID:     uuid.New(),
		UserID:        req.UserID,
		Level:         req.Level,
		Focus:         focus,
		QuestionCount: count,
		Questions:     datatypes.NewJSONType(questions),
	}

	mu := s.lockFor(req.UserID)
	mu.Lock()
	defer mu.Unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.sessionRepo.Create(ctx, tx, session); err != nil {
			logger.Error("Error creating quiz session in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "クイズセッションの保存に失敗しました。", "", err)
		}
		// ユーザーの進捗レコードを遅延生成する（初回のクイズ開始時）
		if err := s.ensureProgress(ctx, tx, req.UserID); err != nil {
			logger.Error("Error ensuring user progress record", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザー情報の初期化に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Quiz session started", "session_id", session.SessionID, "question_count", count)
	return buildStartResponse(session), nil
}

func (s *quizService) GetQuizQuestions(ctx context.Context, sessionID uuid.UUID) (*model.QuizStartResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, s.db, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SESSION_NOT_FOUND", "クイズセッションが見つかりません。", "session_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズセッションの取得に失敗しました。", "", err)
	}
	return buildStartResponse(session), nil
}

func (s *quizService) SubmitQuiz(ctx context.Context, req *model.QuizSubmitRequest) (*model.QuizSubmitResponse, error) {
	logger := middleware.GetLogger(ctx).With("session_id", req.SessionID, "user_id", req.UserID)

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, model.NewAppError("INVALID_SESSION_ID", "session_idの形式が正しくありません。", "session_id", model.ErrInvalidInput)
	}

	session, err := s.sessionRepo.FindByID(ctx, s.db, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SESSION_NOT_FOUND", "クイズセッションが見つかりません。", "session_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズセッションの取得に失敗しました。", "", err)
	}

	// 所有者チェック。不一致の場合はセッション内容を一切返さない。
	if session.UserID != req.UserID {
		logger.Warn("User does not own the quiz session", "owner_id", session.UserID)
		return nil, model.NewAppError("FORBIDDEN", "ユーザーIDがクイズセッションと一致しません。", "user_id", model.ErrForbidden)
	}

	// 採点（純粋関数）。回答数の検証はこの中で最初に行われる。
	questions := session.Questions.Data()
	summary, err := ScoreAnswers(questions, req.Answers)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &model.QuizResult{
		SessionID:      session.SessionID,
		UserID:         session.UserID,
		Score:          summary.Percent,
		TotalQuestions: summary.TotalCount,
		Answers:        datatypes.NewJSONType(req.Answers),
		Level:          session.Level,
		Focus:          session.Focus,
		SubmittedAt:    now,
	}

	// 同一ユーザーの集計更新を直列化する
	mu := s.lockFor(req.UserID)
	mu.Lock()
	defer mu.Unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.resultRepo.Upsert(ctx, tx, result); err != nil {
			logger.Error("Error saving quiz result in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "採点結果の保存に失敗しました。", "", err)
		}
		if err := s.recordProgress(ctx, tx, session, result); err != nil {
			logger.Error("Error updating user progress in transaction", "error", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Quiz submitted",
		"score", summary.Percent,
		"correct_count", summary.CorrectCount,
		"total_questions", summary.TotalCount,
	)

	return &model.QuizSubmitResponse{
		SessionID:      session.SessionID,
		Score:          summary.Percent,
		TotalQuestions: summary.TotalCount,
		CorrectCount:   summary.CorrectCount,
		Results:        summary.Results,
	}, nil
}

// ensureProgress はユーザーの進捗レコードがなければ初期値で作成します。
func (s *quizService) ensureProgress(ctx context.Context, tx *gorm.DB, userID string) error {
	_, err := s.progRepo.FindByUserID(ctx, tx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return err
	}
	return s.progRepo.Save(ctx, tx, &model.UserProgress{
		UserID:       userID,
		CurrentLevel: model.LevelBeginner,
	})
}

// recordProgress は採点結果をユーザーの累積成績に畳み込みます。
// 呼び出し元のトランザクションとユーザーロックの中で実行される前提です。
func (s *quizService) recordProgress(ctx context.Context, tx *gorm.DB, session *model.QuizSession, result *model.QuizResult) error {
	progress, err := s.progRepo.FindByUserID(ctx, tx, result.UserID)
	if errors.Is(err, model.ErrNotFound) {
		progress = &model.UserProgress{
			UserID:       result.UserID,
			CurrentLevel: model.LevelBeginner,
		}
	} else if err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザー成績の取得に失敗しました。", "", err)
	}

	progress.TotalQuizzes++
	progress.TotalScore += result.Score
	progress.AverageScore = progress.TotalScore / float64(progress.TotalQuizzes)
	progress.CurrentLevel = session.Level
	sessionID := session.SessionID
	submittedAt := result.SubmittedAt
	progress.Latest = model.LatestQuiz{
		SessionID:   &sessionID,
		Score:       result.Score,
		Total:       result.TotalQuestions,
		Level:       session.Level,
		Focus:       session.Focus,
		SubmittedAt: &submittedAt,
	}

	if err := s.progRepo.Save(ctx, tx, progress); err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザー成績の更新に失敗しました。", "", err)
	}

	entry := &model.QuizHistory{
		HistoryID:   uuid.New(),
		UserID:      result.UserID,
		SessionID:   session.SessionID,
		Level:       session.Level,
		Score:       result.Score,
		SubmittedAt: result.SubmittedAt,
	}
	if err := s.progRepo.AppendHistory(ctx, tx, entry, s.cfg.Quiz.MaxRecentHistory); err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "成績履歴の更新に失敗しました。", "", err)
	}

	return nil
}

// buildStartResponse はセッションからクライアント向けの問題一覧を組み立てます。
// 正解はレスポンスに含めません。
func buildStartResponse(session *model.QuizSession) *model.QuizStartResponse {
	questions := session.Questions.Data()
	views := make([]model.QuestionView, 0, len(questions))
	for i, q := range questions {
		views = append(views, model.QuestionView{
			QuestionNumber: i + 1,
			Question:       q.Question,
			Options:        q.Options,
		})
	}

	total := session.QuestionCount
	if total == 0 {
		total = len(questions)
	}

	return &model.QuizStartResponse{
		SessionID:      session.SessionID,
		Level:          session.Level,
		TotalQuestions: total,
		Questions:      views,
	}
}
