package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogi/blogi-api/internal/handlers"
	"github.com/blogi/blogi-api/internal/models"
	"github.com/blogi/blogi-api/internal/services"
)

func TestDeletePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := models.Identity{ID: 42, Username: "alice"}

	newRequest := func(id string) *http.Request {
		req := httptest.NewRequest(http.MethodDelete, "/api/blogs/"+id, nil)
		return withIdentity(withURLParam(req, "id", id), identity)
	}

	t.Run("successful delete", func(t *testing.T) {
		mockSvc := handlers.NewMockPostDeleter(ctrl)
		mockSvc.EXPECT().
			Delete(gomock.Any(), identity, int64(5)).
			Return(nil)

		handler := handlers.NewDeletePostHandler(mockSvc)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("5"))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp handlers.MessageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Blog post deleted successfully", resp.Message)
	})

	t.Run("not the owner", func(t *testing.T) {
		mockSvc := handlers.NewMockPostDeleter(ctrl)
		mockSvc.EXPECT().
			Delete(gomock.Any(), identity, int64(5)).
			Return(services.ErrNotPostOwner)

		handler := handlers.NewDeletePostHandler(mockSvc)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("5"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := handlers.NewMockPostDeleter(ctrl)
		mockSvc.EXPECT().
			Delete(gomock.Any(), identity, int64(99)).
			Return(services.ErrPostNotFound)

		handler := handlers.NewDeletePostHandler(mockSvc)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest("99"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		mockSvc := handlers.NewMockPostDeleter(ctrl)
		handler := handlers.NewDeletePostHandler(mockSvc)

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/blogs/5", nil), "id", "5")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
