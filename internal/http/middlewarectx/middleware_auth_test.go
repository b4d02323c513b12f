package middlewarectx_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/laundry-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// MockAuthService мок сервиса аутентификации.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	testUser := &models.User{
		UID:   "uid-1",
		Email: "alice@example.com",
		Role:  models.RoleUser,
	}

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(m *MockAuthService)
		expectedStatus int
		expectedBody   string
		wantNextCalled bool
	}{
		{
			name:       "валидный токен пропускает запрос дальше",
			authHeader: "Bearer valid-token",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateToken", mock.Anything, "valid-token").Return(testUser, nil)
			},
			expectedStatus: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "заголовок Authorization отсутствует",
			authHeader:     "",
			setupMock:      func(_ *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "missing or invalid authorization header",
		},
		{
			name:           "заголовок без префикса Bearer",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMock:      func(_ *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "missing or invalid authorization header",
		},
		{
			name:       "невалидный токен",
			authHeader: "Bearer bad-token",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateToken", mock.Anything, "bad-token").
					Return(nil, errors.New("token is expired"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.setupMock(mockService)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				assert.Equal(t, "alice@example.com", r.Context().Value(middlewarectx.User))
				assert.Equal(t, models.RoleUser, r.Context().Value(middlewarectx.Role))
				assert.Equal(t, "uid-1", r.Context().Value(middlewarectx.UserUID))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			middlewarectx.JWTMiddleware(mockService, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockService.AssertExpectations(t)
		})
	}
}
