package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndResolve(t *testing.T) {
	j := New("test-secret", "HS256", time.Minute)
	ctx := context.Background()

	token, err := j.Generate(ctx, "alice", 42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	identity, err := j.Resolve(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New("test-secret", "HS256", -time.Minute) // already expired
	ctx := context.Background()

	token, err := j.Generate(ctx, "alice", 42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	identity, err := j.Resolve(ctx, token)
	assert.Error(t, err)
	assert.Nil(t, identity)
}

func TestJWT_TamperedToken(t *testing.T) {
	j := New("test-secret", "HS256", time.Minute)
	ctx := context.Background()

	token, err := j.Generate(ctx, "alice", 42)
	assert.NoError(t, err)

	// Flip a character in the signature
	tampered := token[:len(token)-2] + "xx"
	identity, err := j.Resolve(ctx, tampered)
	assert.Error(t, err)
	assert.Nil(t, identity)
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := New("secret-one", "HS256", time.Minute)
	verifier := New("secret-two", "HS256", time.Minute)
	ctx := context.Background()

	token, err := issuer.Generate(ctx, "alice", 42)
	assert.NoError(t, err)

	identity, err := verifier.Resolve(ctx, token)
	assert.Error(t, err)
	assert.Nil(t, identity)
}

func TestJWT_MalformedToken(t *testing.T) {
	j := New("test-secret", "HS256", time.Minute)
	ctx := context.Background()

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		identity, err := j.Resolve(ctx, bad)
		assert.Error(t, err, "expected error for %q", bad)
		assert.Nil(t, identity)
	}
}

func TestJWT_UnknownAlgorithmFallsBack(t *testing.T) {
	j := New("test-secret", "NOPE", time.Minute)
	ctx := context.Background()

	token, err := j.Generate(ctx, "bob", 7)
	assert.NoError(t, err)

	identity, err := j.Resolve(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), identity.ID)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New("test-secret", "HS256", time.Minute)
	ctx := context.Background()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer sometoken", want: "sometoken"},
		{name: "lowercase scheme", header: "bearer sometoken", want: "sometoken"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "no token", header: "Bearer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
