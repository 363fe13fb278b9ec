package middlewares_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogi/blogi-api/internal/middlewares"
	"github.com/blogi/blogi-api/internal/models"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("valid token propagates the identity", func(t *testing.T) {
		mockResolver := middlewares.NewMockTokenResolver(ctrl)
		mockResolver.EXPECT().
			GetTokenFromRequest(gomock.Any(), gomock.Any()).
			Return("token123", nil)
		mockResolver.EXPECT().
			Resolve(gomock.Any(), "token123").
			Return(&models.Identity{ID: 42, Username: "alice"}, nil)

		var seen *models.Identity
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middlewares.GetIdentityFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		handler := middlewares.AuthMiddleware(mockResolver)(next)

		req := httptest.NewRequest(http.MethodGet, "/api/blogs/", nil)
		req.Header.Set("Authorization", "Bearer token123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, int64(42), seen.ID)
		assert.Equal(t, "alice", seen.Username)
	})

	t.Run("missing token", func(t *testing.T) {
		mockResolver := middlewares.NewMockTokenResolver(ctrl)
		mockResolver.EXPECT().
			GetTokenFromRequest(gomock.Any(), gomock.Any()).
			Return("", errors.New("authorization header missing"))

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		handler := middlewares.AuthMiddleware(mockResolver)(next)

		req := httptest.NewRequest(http.MethodGet, "/api/blogs/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "unauthorized", errResp.ErrorType)
		assert.Equal(t, "Authentication required", errResp.Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockResolver := middlewares.NewMockTokenResolver(ctrl)
		mockResolver.EXPECT().
			GetTokenFromRequest(gomock.Any(), gomock.Any()).
			Return("garbage", nil)
		mockResolver.EXPECT().
			Resolve(gomock.Any(), "garbage").
			Return(nil, errors.New("token is malformed"))

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		})

		handler := middlewares.AuthMiddleware(mockResolver)(next)

		req := httptest.NewRequest(http.MethodGet, "/api/blogs/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})
}

func TestGetIdentityFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, middlewares.GetIdentityFromContext(req.Context()))
}
