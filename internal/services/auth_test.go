package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogi/blogi-api/internal/models"
	"github.com/blogi/blogi-api/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		mockSetup func(reader *services.MockUserReader, writer *services.MockUserWriter)
		wantErr   error
		wantField string // non-empty means a ValidationError on this field
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			password: "Secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
				reader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
				writer.EXPECT().
					Save(gomock.Any(), "alice", "alice@example.com", gomock.Any()).
					Return(&models.UserDB{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)
			},
		},
		{
			name:      "weak password",
			username:  "bob",
			email:     "bob@example.com",
			password:  "password",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {},
			wantField: "password",
		},
		{
			name:      "short username",
			username:  "ab",
			email:     "ab@example.com",
			password:  "Secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {},
			wantField: "username",
		},
		{
			name:      "bad email",
			username:  "carol",
			email:     "not-an-email",
			password:  "Secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {},
			wantField: "email",
		},
		{
			name:     "username taken",
			username: "dave",
			email:    "dave@example.com",
			password: "Secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByUsername(gomock.Any(), "dave").
					Return(&models.UserDB{ID: 2, Username: "dave"}, nil)
			},
			wantErr: services.ErrUsernameTaken,
		},
		{
			name:     "email taken",
			username: "erin",
			email:    "erin@example.com",
			password: "Secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByUsername(gomock.Any(), "erin").Return(nil, nil)
				reader.EXPECT().GetByEmail(gomock.Any(), "erin@example.com").
					Return(&models.UserDB{ID: 3, Email: "erin@example.com"}, nil)
			},
			wantErr: services.ErrEmailTaken,
		},
		{
			name:     "writer error",
			username: "frank",
			email:    "frank@example.com",
			password: "Secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByUsername(gomock.Any(), "frank").Return(nil, nil)
				reader.EXPECT().GetByEmail(gomock.Any(), "frank@example.com").Return(nil, nil)
				writer.EXPECT().
					Save(gomock.Any(), "frank", "frank@example.com", gomock.Any()).
					Return(nil, errors.New("save error"))
			},
			wantErr: errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockPosts := services.NewMockPostRemover(ctrl)
			mockJWT := services.NewMockTokenIssuer(ctrl)
			tt.mockSetup(mockReader, mockWriter)

			svc := services.NewAuthService(mockReader, mockWriter, mockPosts, mockJWT)

			user, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.wantField != "" {
				var vErr *services.ValidationError
				assert.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Details[0].Field)
				assert.Nil(t, user)
				return
			}
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
		})
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockPosts := services.NewMockPostRemover(ctrl)
	mockJWT := services.NewMockTokenIssuer(ctrl)

	var storedHash string
	mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
	mockReader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
	mockWriter.EXPECT().
		Save(gomock.Any(), "alice", "alice@example.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, username, email, passwordHash string) (*models.UserDB, error) {
			storedHash = passwordHash
			return &models.UserDB{ID: 1, Username: username, Email: email, PasswordHash: passwordHash}, nil
		})

	svc := services.NewAuthService(mockReader, mockWriter, mockPosts, mockJWT)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "Secret123")
	assert.NoError(t, err)

	// The plaintext is never stored; the hash verifies against it.
	assert.NotEqual(t, "Secret123", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("Secret123")))
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	password := "Secret123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := &models.UserDB{ID: 42, Username: "alice", PasswordHash: string(hashed)}

	tests := []struct {
		name      string
		username  string
		password  string
		mockSetup func(reader *services.MockUserReader, jwt *services.MockTokenIssuer)
		wantToken string
		wantErr   error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: password,
			mockSetup: func(reader *services.MockUserReader, jwt *services.MockTokenIssuer) {
				reader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
				jwt.EXPECT().Generate(gomock.Any(), "alice", int64(42)).Return("token123", nil)
			},
			wantToken: "token123",
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: password,
			mockSetup: func(reader *services.MockUserReader, jwt *services.MockTokenIssuer) {
				reader.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "WrongPass1",
			mockSetup: func(reader *services.MockUserReader, jwt *services.MockTokenIssuer) {
				reader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "reader error",
			username: "alice",
			password: password,
			mockSetup: func(reader *services.MockUserReader, jwt *services.MockTokenIssuer) {
				reader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockPosts := services.NewMockPostRemover(ctrl)
			mockJWT := services.NewMockTokenIssuer(ctrl)
			tt.mockSetup(mockReader, mockJWT)

			svc := services.NewAuthService(mockReader, mockWriter, mockPosts, mockJWT)

			token, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuthService_DeleteUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("deletes posts before the user", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		mockPosts := services.NewMockPostRemover(ctrl)
		mockJWT := services.NewMockTokenIssuer(ctrl)

		mockReader.EXPECT().GetByID(gomock.Any(), int64(42)).
			Return(&models.UserDB{ID: 42, Username: "alice"}, nil)
		gomock.InOrder(
			mockPosts.EXPECT().DeleteByUserID(gomock.Any(), int64(42)).Return(nil),
			mockWriter.EXPECT().Delete(gomock.Any(), int64(42)).Return(nil),
		)

		svc := services.NewAuthService(mockReader, mockWriter, mockPosts, mockJWT)
		assert.NoError(t, svc.DeleteUser(context.Background(), 42))
	})

	t.Run("unknown user", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		mockPosts := services.NewMockPostRemover(ctrl)
		mockJWT := services.NewMockTokenIssuer(ctrl)

		mockReader.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, nil)

		svc := services.NewAuthService(mockReader, mockWriter, mockPosts, mockJWT)
		assert.ErrorIs(t, svc.DeleteUser(context.Background(), 99), services.ErrUserNotFound)
	})

	t.Run("post deletion failure stops the cascade", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		mockPosts := services.NewMockPostRemover(ctrl)
		mockJWT := services.NewMockTokenIssuer(ctrl)

		mockReader.EXPECT().GetByID(gomock.Any(), int64(42)).
			Return(&models.UserDB{ID: 42}, nil)
		mockPosts.EXPECT().DeleteByUserID(gomock.Any(), int64(42)).
			Return(errors.New("delete error"))

		svc := services.NewAuthService(mockReader, mockWriter, mockPosts, mockJWT)
		assert.EqualError(t, svc.DeleteUser(context.Background(), 42), "delete error")
	})
}
