// internal/handlers/dashboard_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vocab_quiz/internal/model"
	"vocab_quiz/internal/service"
	"vocab_quiz/internal/webutil"
)

type DashboardHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewDashboardHandler(s service.ProgressService, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service: s,
		logger:  logger,
	}
}

// GetDashboard はユーザーの累積成績と直近の履歴を返すハンドラ
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDashboard"))

	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		logger.Warn("Missing user ID in URL")
		appErr := model.NewAppError("INVALID_URL_PARAM", "user_idが指定されていません。", "user_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID))

	resp, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("User progress not found", slog.Any("error", err))
		} else {
			logger.Error("Error getting dashboard from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Dashboard retrieved successfully")
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
