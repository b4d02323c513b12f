package create_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/laundry-service/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/laundry-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/laundry-service/internal/models"
	services "github.com/magabrotheeeer/laundry-service/internal/services/subscription"
)

// MockService мок сервиса абонементов.
type MockService struct {
	mock.Mock
}

func (m *MockService) Subscribe(ctx context.Context, userUID string, req models.DummySubscription) (int, error) {
	args := m.Called(ctx, userUID, req)
	return args.Int(0), args.Error(1)
}

func TestCreateSubscriptionHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name           string
		userUID        string
		requestBody    string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное оформление",
			userUID:     "uid-1",
			requestBody: `{"plan": "family", "card_last4": "4242"}`,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "uid-1", models.DummySubscription{
					Plan:      "family",
					CardLast4: "4242",
				}).Return(7, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":7`,
		},
		{
			name:           "нет uid в контексте",
			userUID:        "",
			requestBody:    `{"plan": "family"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "unauthorized",
		},
		{
			name:           "некорректный JSON",
			userUID:        "uid-1",
			requestBody:    `{"plan": `,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "пустой тариф не проходит валидацию",
			userUID:        "uid-1",
			requestBody:    `{"plan": ""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Plan is a required field",
		},
		{
			name:           "номер карты из букв не проходит валидацию",
			userUID:        "uid-1",
			requestBody:    `{"plan": "basic", "card_last4": "abcd"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field CardLast4",
		},
		{
			name:        "неизвестный тариф",
			userUID:     "uid-1",
			requestBody: `{"plan": "platinum"}`,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "uid-1", mock.Anything).
					Return(0, services.ErrUnknownPlan)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "unknown plan",
		},
		{
			name:        "внутренняя ошибка сервиса",
			userUID:     "uid-1",
			requestBody: `{"plan": "basic"}`,
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, "uid-1", mock.Anything).
					Return(0, errors.New("db connection lost"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not create subscription",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := create.New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/subscriptions",
				bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "test-request-id")
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
