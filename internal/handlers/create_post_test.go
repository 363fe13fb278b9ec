package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogi/blogi-api/internal/handlers"
	"github.com/blogi/blogi-api/internal/middlewares"
	"github.com/blogi/blogi-api/internal/models"
	"github.com/blogi/blogi-api/internal/services"
)

// withIdentity stamps an authenticated identity onto the request, the way
// the auth middleware would.
func withIdentity(r *http.Request, identity models.Identity) *http.Request {
	return r.WithContext(middlewares.SetIdentityToContext(r.Context(), &identity))
}

func TestCreatePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := models.Identity{ID: 42, Username: "alice"}

	t.Run("successful create", func(t *testing.T) {
		mockSvc := handlers.NewMockPostCreator(ctrl)
		mockSvc.EXPECT().
			Create(gomock.Any(), identity, "Hello", "World", (*string)(nil)).
			Return(&models.PostView{ID: 1, Title: "Hello", Content: "World", UserID: 42, AuthorUsername: "alice"}, nil)

		handler := handlers.NewCreatePostHandler(mockSvc)

		req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/blogs/",
			bytes.NewBufferString(`{"title":"Hello","content":"World"}`)), identity)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var view models.PostView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, int64(1), view.ID)
		assert.Equal(t, "alice", view.AuthorUsername)
	})

	t.Run("image url is forwarded", func(t *testing.T) {
		mockSvc := handlers.NewMockPostCreator(ctrl)
		mockSvc.EXPECT().
			Create(gomock.Any(), identity, "Hello", "World", gomock.Any()).
			DoAndReturn(func(_ interface{}, _ models.Identity, _, _ string, imageURL *string) (*models.PostView, error) {
				require.NotNil(t, imageURL)
				assert.Equal(t, "https://example.com/pic.png", *imageURL)
				return &models.PostView{ID: 2, UserID: 42}, nil
			})

		handler := handlers.NewCreatePostHandler(mockSvc)

		req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/blogs/",
			bytes.NewBufferString(`{"title":"Hello","content":"World","image_url":"https://example.com/pic.png"}`)), identity)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		mockSvc := handlers.NewMockPostCreator(ctrl)
		handler := handlers.NewCreatePostHandler(mockSvc)

		req := httptest.NewRequest(http.MethodPost, "/api/blogs/",
			bytes.NewBufferString(`{"title":"Hello","content":"World"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("validation failure", func(t *testing.T) {
		mockSvc := handlers.NewMockPostCreator(ctrl)
		mockSvc.EXPECT().
			Create(gomock.Any(), identity, "", "", (*string)(nil)).
			Return(nil, services.NewValidationError(
				models.ErrorDetail{Field: "title", Message: "Title cannot be empty", Code: models.CodeEmptyField},
				models.ErrorDetail{Field: "content", Message: "Content cannot be empty", Code: models.CodeEmptyField},
			))

		handler := handlers.NewCreatePostHandler(mockSvc)

		req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/blogs/",
			bytes.NewBufferString(`{"title":"","content":""}`)), identity)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		require.Len(t, errResp.Details, 2)
		assert.Equal(t, "title", errResp.Details[0].Field)
		assert.Equal(t, "content", errResp.Details[1].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		mockSvc := handlers.NewMockPostCreator(ctrl)
		handler := handlers.NewCreatePostHandler(mockSvc)

		req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/blogs/",
			bytes.NewBufferString(`{`)), identity)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
