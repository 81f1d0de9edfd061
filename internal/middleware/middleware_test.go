package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/identity"

	"github.com/stretchr/testify/assert"
)

type tokenAuth map[string]string

func (a tokenAuth) VerifyIDToken(_ context.Context, token string) (identity.Identity, error) {
	uid, ok := a[token]
	if !ok {
		return identity.Identity{}, ierr.Unauthorizedf("invalid token")
	}
	return identity.Identity{UID: uid, Token: token}, nil
}

func echoUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserID(r.Context())))
	})
}

func TestAuth(t *testing.T) {
	h := Auth(tokenAuth{"good": "alice"})(echoUID())

	tests := []struct {
		header string
		status int
		body   string
	}{
		{"", http.StatusUnauthorized, ""},
		{"Basic abc", http.StatusUnauthorized, ""},
		{"Bearer ", http.StatusUnauthorized, ""},
		{"Bearer bad", http.StatusUnauthorized, ""},
		{"Bearer good", http.StatusOK, "alice"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, tt.status, w.Code, tt.header)
		if tt.status == http.StatusOK {
			assert.Equal(t, tt.body, w.Body.String())
		} else {
			assert.Contains(t, w.Body.String(), `"error"`)
		}
	}
}

func TestRateLimiterPerKey(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Handler(echoUID())

	do := func(remote string) int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = remote
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000"))
}

func TestRateLimiterDisabled(t *testing.T) {
	h := NewRateLimiter(0, 0).Handler(echoUID())
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
