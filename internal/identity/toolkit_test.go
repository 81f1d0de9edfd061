package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ierr "dearmind-backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newToolkitServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "web-key", r.URL.Query().Get("key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch r.URL.Path {
		case "/accounts:signInWithPassword":
			if body["password"] != "secret1" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`))
				return
			}
			w.Write([]byte(`{"idToken":"token-123","email":"a@b.c"}`))
		case "/accounts:sendOobCode":
			assert.Equal(t, "PASSWORD_RESET", body["requestType"])
			if body["email"] == "missing@b.c" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_NOT_FOUND"}}`))
				return
			}
			w.Write([]byte(`{"email":"a@b.c"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestToolkitSignIn(t *testing.T) {
	srv := newToolkitServer(t)
	tk := NewToolkit(srv.URL, "web-key", srv.Client())

	token, err := tk.SignInWithPassword(context.Background(), "a@b.c", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)

	_, err = tk.SignInWithPassword(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, ierr.Unauthorized)
}

func TestToolkitPasswordReset(t *testing.T) {
	srv := newToolkitServer(t)
	tk := NewToolkit(srv.URL, "web-key", srv.Client())

	assert.NoError(t, tk.SendPasswordReset(context.Background(), "a@b.c"))

	err := tk.SendPasswordReset(context.Background(), "missing@b.c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMAIL_NOT_FOUND")
}

func TestToolkitRequiresApiKey(t *testing.T) {
	_, err := NewToolkit("http://127.0.0.1:0", "", nil).SignInWithPassword(context.Background(), "a", "b")
	assert.Error(t, err)
}
