package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	ierr "dearmind-backend/internal/errors"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const DefaultToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// Toolkit talks to the Identity Toolkit REST API with the project's web api key.
type Toolkit struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewToolkit(baseURL, apiKey string, client *http.Client) Toolkit {
	if baseURL == "" {
		baseURL = DefaultToolkitURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return Toolkit{baseURL: baseURL, apiKey: apiKey, client: client}
}

// SignInWithPassword exchanges credentials for an id token.
func (t Toolkit) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	body, status, err := t.post(ctx, "accounts:signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", fmt.Errorf("sign in with password: %w", err)
	}
	if status != http.StatusOK {
		log.Debug().Msgf("sign in rejected: %s", gjson.GetBytes(body, "error.message").String())
		return "", ierr.Unauthorizedf("invalid email or password")
	}

	idToken := gjson.GetBytes(body, "idToken").String()
	if idToken == "" {
		return "", fmt.Errorf("sign in with password: empty id token")
	}
	return idToken, nil
}

func (t Toolkit) SendPasswordReset(ctx context.Context, email string) error {
	body, status, err := t.post(ctx, "accounts:sendOobCode", map[string]interface{}{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	})
	if err != nil {
		return fmt.Errorf("send password reset: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("send password reset: status %d, %s", status, gjson.GetBytes(body, "error.message").String())
	}
	return nil
}

func (t Toolkit) post(ctx context.Context, method string, payload interface{}) ([]byte, int, error) {
	if t.apiKey == "" {
		return nil, 0, fmt.Errorf("FIREBASE_API_KEY is not configured")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", t.baseURL, method, url.QueryEscape(t.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
