// internal/handlers/quiz_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"vocab_quiz/internal/model"
	"vocab_quiz/internal/service"
	"vocab_quiz/internal/webutil"
)

type QuizHandler struct {
	service service.QuizService
	logger  *slog.Logger
}

func NewQuizHandler(s service.QuizService, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		service: s,
		logger:  logger,
	}
}

// StartQuiz は新しいクイズセッションを開始するハンドラ
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartQuiz"))

	var req model.QuizStartRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := validateRequest(logger, &req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.StartQuiz(r.Context(), &req)
	if err != nil {
		logger.Error("Error starting quiz in service", slog.Any("error", err), slog.String("user_id", req.UserID))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Quiz started successfully", slog.String("session_id", resp.SessionID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetQuizQuestions は保存済みセッションの問題一覧を再取得するハンドラ
func (h *QuizHandler) GetQuizQuestions(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuizQuestions"))

	sessionIDStr := chi.URLParam(r, "session_id")
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		logger.Warn("Invalid session ID format in URL", slog.String("session_id_str", sessionIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "session_idの形式が正しくありません。", "session_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("session_id", sessionID.String()))

	resp, err := h.service.GetQuizQuestions(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Quiz session not found", slog.Any("error", err))
		} else {
			logger.Error("Error getting quiz questions from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Quiz questions retrieved successfully")
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// SubmitQuiz は回答を採点し、ユーザーの成績に反映するハンドラ
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitQuiz"))

	var req model.QuizSubmitRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("session_id", req.SessionID), slog.String("user_id", req.UserID))

	if appErr := validateRequest(logger, &req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.SubmitQuiz(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrForbidden) || errors.Is(err, model.ErrInvalidInput) {
			logger.Warn("Quiz submission rejected", slog.Any("error", err))
		} else {
			logger.Error("Error submitting quiz in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Quiz submitted successfully", slog.Float64("score", resp.Score))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// validateRequest は共有バリデータでリクエストDTOを検証し、
// 最初のエラーを日本語メッセージに翻訳して返します。
func validateRequest(logger *slog.Logger, req interface{}) *model.AppError {
	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			return model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
		}
		logger.Error("Unexpected error during validation", slog.Any("error", err))
		return model.NewAppError("INTERNAL_SERVER_ERROR", "リクエストの検証中にエラーが発生しました。", "", model.ErrInternalServer)
	}
	return nil
}
