package middlewarectx_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/laundry-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/laundry-service/internal/models"
)

func TestAdminOnlyMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name           string
		role           any
		expectedStatus int
		wantNextCalled bool
	}{
		{
			name:           "администратор проходит",
			role:           models.RoleAdmin,
			expectedStatus: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "обычный пользователь получает 403",
			role:           models.RoleUser,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "роль отсутствует в контексте",
			role:           nil,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			if tt.role != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.Role, tt.role)
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			middlewarectx.AdminOnlyMiddleware(logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
		})
	}
}
