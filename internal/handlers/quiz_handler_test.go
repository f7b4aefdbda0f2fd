// internal/handlers/quiz_handler_test.go
package handlers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vocab_quiz/internal/handlers"
	"vocab_quiz/internal/model"
	"vocab_quiz/internal/service/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newQuizServer(t *testing.T) (*httptest.Server, *mocks.MockQuizService) {
	t.Helper()

	mockService := mocks.NewMockQuizService(t)
	handler := handlers.NewQuizHandler(mockService, discardLogger())

	router := chi.NewRouter()
	router.Post("/api/quiz/start", handler.StartQuiz)
	router.Get("/api/quiz/questions/{session_id}", handler.GetQuizQuestions)
	router.Post("/api/quiz/submit", handler.SubmitQuiz)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, mockService
}

func sampleStartResponse(sessionID uuid.UUID) *model.QuizStartResponse {
	return &model.QuizStartResponse{
		SessionID:      sessionID,
		Level:          model.LevelBeginner,
		TotalQuestions: 5,
		Questions: []model.QuestionView{
			{QuestionNumber: 1, Question: "What does ubiquitous mean?", Options: []string{"A", "B", "C", "D"}},
		},
	}
}

func TestQuizHandler_StartQuiz(t *testing.T) {
	validBody := model.QuizStartRequest{
		UserID:        "user-1",
		Level:         model.LevelBeginner,
		QuestionCount: 5,
	}

	tests := []struct {
		name          string
		body          interface{}
		setupMock     func(m *mocks.MockQuizService)
		expectedCode  int
		expectedError string // エラーレスポンスのcode。空なら成功レスポンスを検証する
	}{
		{
			name: "正常系: クイズを開始できる",
			body: validBody,
			setupMock: func(m *mocks.MockQuizService) {
				m.On("StartQuiz", mock.Anything, mock.MatchedBy(func(req *model.QuizStartRequest) bool {
					return req.UserID == "user-1" && req.Level == model.LevelBeginner && req.QuestionCount == 5
				})).Return(sampleStartResponse(uuid.New()), nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "異常系: JSONとして不正なボディ",
			body:          `{"user_id": "user-1", `,
			setupMock:     func(m *mocks.MockQuizService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "INVALID_REQUEST_BODY",
		},
		{
			name: "異常系: user_id未指定",
			body: model.QuizStartRequest{Level: model.LevelBeginner},
			setupMock:     func(m *mocks.MockQuizService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "VALIDATION_ERROR",
		},
		{
			name: "異常系: 不正なレベル",
			body: model.QuizStartRequest{UserID: "user-1", Level: "expert"},
			setupMock:     func(m *mocks.MockQuizService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "VALIDATION_ERROR",
		},
		{
			name: "異常系: 問題数が下限未満",
			body: model.QuizStartRequest{UserID: "user-1", Level: model.LevelBeginner, QuestionCount: 4},
			setupMock:     func(m *mocks.MockQuizService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "VALIDATION_ERROR",
		},
		{
			name: "異常系: 問題数が上限超過",
			body: model.QuizStartRequest{UserID: "user-1", Level: model.LevelBeginner, QuestionCount: 21},
			setupMock:     func(m *mocks.MockQuizService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "VALIDATION_ERROR",
		},
		{
			name: "異常系: 生成サービスが利用できない",
			body: validBody,
			setupMock: func(m *mocks.MockQuizService) {
				m.On("StartQuiz", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("GENERATION_UNAVAILABLE", "問題生成サービスが利用できません。", "", model.ErrGenerationUnavailable)).Once()
			},
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "GENERATION_UNAVAILABLE",
		},
		{
			name: "異常系: 生成サービスがタイムアウト",
			body: validBody,
			setupMock: func(m *mocks.MockQuizService) {
				m.On("StartQuiz", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("GENERATION_TIMEOUT", "問題生成サービスが応答しませんでした。", "", model.ErrGenerationTimeout)).Once()
			},
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "GENERATION_TIMEOUT",
		},
		{
			name: "異常系: 生成結果の検証に失敗",
			body: validBody,
			setupMock: func(m *mocks.MockQuizService) {
				m.On("StartQuiz", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("GENERATION_PARSE_ERROR", "生成された問題の解析に失敗しました。", "", model.ErrGenerationParse)).Once()
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "GENERATION_PARSE_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, mockService := newQuizServer(t)
			tt.setupMock(mockService)

			bodyBytes := sendRequest(t, server, httpRequestDetails{
				Method: http.MethodPost,
				Path:   "/api/quiz/start",
				Body:   tt.body,
			}, tt.expectedCode)

			if tt.expectedError != "" {
				verifyErrorResponse(t, bodyBytes, tt.expectedError)
				return
			}

			var resp model.QuizStartResponse
			require.NoError(t, json.Unmarshal(bodyBytes, &resp))
			assert.NotEqual(t, uuid.Nil, resp.SessionID)
			assert.Equal(t, model.LevelBeginner, resp.Level)
			assert.Equal(t, 5, resp.TotalQuestions)
			require.NotEmpty(t, resp.Questions)
			assert.NotEmpty(t, resp.Questions[0].Options)
		})
	}
}

func TestQuizHandler_GetQuizQuestions(t *testing.T) {
	sessionID := uuid.New()

	tests := []struct {
		name          string
		path          string
		setupMock     func(m *mocks.MockQuizService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "正常系: 問題一覧を取得できる",
			path: "/api/quiz/questions/" + sessionID.String(),
			setupMock: func(m *mocks.MockQuizService) {
				m.On("GetQuizQuestions", mock.Anything, sessionID).
					Return(sampleStartResponse(sessionID), nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "異常系: session_idがUUIDでない",
			path:          "/api/quiz/questions/not-a-uuid",
			setupMock:     func(m *mocks.MockQuizService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "INVALID_URL_PARAM",
		},
		{
			name: "異常系: セッションが存在しない",
			path: "/api/quiz/questions/" + sessionID.String(),
			setupMock: func(m *mocks.MockQuizService) {
				m.On("GetQuizQuestions", mock.Anything, sessionID).
					Return(nil, model.NewAppError("SESSION_NOT_FOUND", "クイズセッションが見つかりません。", "session_id", model.ErrNotFound)).Once()
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "SESSION_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, mockService := newQuizServer(t)
			tt.setupMock(mockService)

			bodyBytes := sendRequest(t, server, httpRequestDetails{
				Method: http.MethodGet,
				Path:   tt.path,
			}, tt.expectedCode)

			if tt.expectedError != "" {
				verifyErrorResponse(t, bodyBytes, tt.expectedError)
				return
			}

			var resp model.QuizStartResponse
			require.NoError(t, json.Unmarshal(bodyBytes, &resp))
			assert.Equal(t, sessionID, resp.SessionID)
		})
	}
}

func TestQuizHandler_SubmitQuiz(t *testing.T) {
	sessionID := uuid.New()
	validBody := model.QuizSubmitRequest{
		SessionID: sessionID.String(),
		UserID:    "user-1",
		Answers:   []string{"A", "B", "C", "D", "A"},
	}

	successResp := &model.QuizSubmitResponse{
		SessionID:      sessionID,
		Score:          80.00,
		TotalQuestions: 5,
		CorrectCount:   4,
		Results: []model.QuestionResult{
			{QuestionNumber: 1, UserAnswer: "A", CorrectAnswer: "B", IsCorrect: false},
		},
	}

	tests := []struct {
		name          string
		body          interface{}
		setupMock     func(m *mocks.MockQuizService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "正常系: 回答を採点できる",
			body: validBody,
			setupMock: func(m *mocks.MockQuizService) {
				m.On("SubmitQuiz", mock.Anything, mock.MatchedBy(func(req *model.QuizSubmitRequest) bool {
					return req.SessionID == sessionID.String() && req.UserID == "user-1" && len(req.Answers) == 5
				})).Return(successResp, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "異常系: session_idがUUID形式でない",
			body:          model.QuizSubmitRequest{SessionID: "not-a-uuid", UserID: "user-1", Answers: []string{"A"}},
			setupMock:     func(m *mocks.MockQuizService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "VALIDATION_ERROR",
		},
		{
			name:          "異常系: 回答が空",
			body:          model.QuizSubmitRequest{SessionID: sessionID.String(), UserID: "user-1"},
			setupMock:     func(m *mocks.MockQuizService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "VALIDATION_ERROR",
		},
		{
			name: "異常系: セッションが存在しない",
			body: validBody,
			setupMock: func(m *mocks.MockQuizService) {
				m.On("SubmitQuiz", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("SESSION_NOT_FOUND", "クイズセッションが見つかりません。", "session_id", model.ErrNotFound)).Once()
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "SESSION_NOT_FOUND",
		},
		{
			name: "異常系: 他ユーザーのセッション",
			body: validBody,
			setupMock: func(m *mocks.MockQuizService) {
				m.On("SubmitQuiz", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("FORBIDDEN", "ユーザーIDがクイズセッションと一致しません。", "user_id", model.ErrForbidden)).Once()
			},
			expectedCode:  http.StatusForbidden,
			expectedError: "FORBIDDEN",
		},
		{
			name: "異常系: 回答数が問題数と一致しない",
			body: validBody,
			setupMock: func(m *mocks.MockQuizService) {
				m.On("SubmitQuiz", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("ANSWER_COUNT_MISMATCH", "回答数が問題数と一致しません。", "answers", model.ErrInvalidInput)).Once()
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "ANSWER_COUNT_MISMATCH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, mockService := newQuizServer(t)
			tt.setupMock(mockService)

			bodyBytes := sendRequest(t, server, httpRequestDetails{
				Method: http.MethodPost,
				Path:   "/api/quiz/submit",
				Body:   tt.body,
			}, tt.expectedCode)

			if tt.expectedError != "" {
				verifyErrorResponse(t, bodyBytes, tt.expectedError)
				return
			}

			var resp model.QuizSubmitResponse
			require.NoError(t, json.Unmarshal(bodyBytes, &resp))
			assert.Equal(t, sessionID, resp.SessionID)
			assert.Equal(t, 80.00, resp.Score)
			assert.Equal(t, 4, resp.CorrectCount)
			require.Len(t, resp.Results, 1)
			assert.False(t, resp.Results[0].IsCorrect)
		})
	}
}
