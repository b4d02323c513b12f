package updatestatus_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/laundry-service/internal/http/handlers/order/updatestatus"
	"github.com/magabrotheeeer/laundry-service/internal/models"
	services "github.com/magabrotheeeer/laundry-service/internal/services/order"
	"github.com/magabrotheeeer/laundry-service/internal/storage/repository"
)

// MockService мок сервиса заказов.
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, id int, status string) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func TestUpdateStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name           string
		orderID        string
		requestBody    string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешная смена статуса",
			orderID:     "42",
			requestBody: `{"status": "washing"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 42, "washing").
					Return(&models.Order{ID: 42, UserUID: "uid-1", Status: models.StatusWashing}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"washing"`,
		},
		{
			name:           "некорректный id в url",
			orderID:        "abc",
			requestBody:    `{"status": "washing"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "failed to decode id from url",
		},
		{
			name:           "некорректный JSON",
			orderID:        "42",
			requestBody:    `{"status": `,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "пустой статус не проходит валидацию",
			orderID:        "42",
			requestBody:    `{"status": ""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Status is a required field",
		},
		{
			name:        "неизвестный статус",
			orderID:     "42",
			requestBody: `{"status": "teleported"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 42, "teleported").
					Return(nil, services.ErrUnknownStatus)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "unknown order status",
		},
		{
			name:        "заказ не найден",
			orderID:     "99",
			requestBody: `{"status": "washing"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 99, "washing").
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "order not found",
		},
		{
			name:        "внутренняя ошибка сервиса",
			orderID:     "42",
			requestBody: `{"status": "washing"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 42, "washing").
					Return(nil, errors.New("db connection lost"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not update order status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := updatestatus.New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut,
				"/orders/"+tt.orderID+"/status", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "test-request-id")

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.orderID)
			ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
