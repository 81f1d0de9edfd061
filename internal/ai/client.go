package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dearmind-backend/internal/identity"
	"dearmind-backend/internal/metrics"
	"dearmind-backend/internal/model"
)

const (
	chatPath    = "/ai/chat"
	initPath    = "/ai/chat/init"
	analyzePath = "/ai/analyze"
	rewardPath  = "/ai/reward"

	maxErrorBody = 512
)

type Client struct {
	baseURL     string
	http        *http.Client
	chatTimeout time.Duration
}

var (
	_ Assistant     = Client{}
	_ Analyzer      = Client{}
	_ RewardPainter = Client{}
)

func NewClient(baseURL string, chatTimeout time.Duration, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        httpClient,
		chatTimeout: chatTimeout,
	}
}

type chatRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat is the only call bounded by a timeout.
func (c Client) Chat(ctx context.Context, message string, history []Message) (string, error) {
	if c.chatTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.chatTimeout)
		defer cancel()
	}
	if history == nil {
		history = []Message{}
	}

	var resp chatResponse
	if err := c.do(ctx, "chat", http.MethodPost, chatPath, chatRequest{Message: message, History: history}, &resp); err != nil {
		return "", err
	}
	if resp.Reply == "" {
		return "", fmt.Errorf("ai chat: empty reply")
	}
	return resp.Reply, nil
}

type initResponse struct {
	Message string `json:"message"`
}

func (c Client) Init(ctx context.Context) (string, error) {
	var resp initResponse
	if err := c.do(ctx, "chat_init", http.MethodGet, initPath, nil, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "", fmt.Errorf("ai chat init: empty message")
	}
	return resp.Message, nil
}

type analyzeRequest struct {
	ImageUrl string  `json:"imageUrl"`
	Text     *string `json:"text,omitempty"`
}

func (c Client) Analyze(ctx context.Context, imageUrl string, text *string) (Analysis, error) {
	var resp Analysis
	if err := c.do(ctx, "analyze", http.MethodPost, analyzePath, analyzeRequest{ImageUrl: imageUrl, Text: text}, &resp); err != nil {
		return Analysis{}, err
	}

	resp.EmotionType = model.EmotionType(strings.ToUpper(string(resp.EmotionType)))
	if !resp.EmotionType.Valid() {
		return Analysis{}, fmt.Errorf("ai analyze: unknown emotion type %q", resp.EmotionType)
	}
	return resp, nil
}

func (c Client) Paint(ctx context.Context, req RewardRequest) (RewardResult, error) {
	if req.Diaries == nil {
		req.Diaries = []string{}
	}

	var resp RewardResult
	if err := c.do(ctx, "reward", http.MethodPost, rewardPath, req, &resp); err != nil {
		return RewardResult{}, err
	}
	if resp.Image == "" && resp.ImageUrl == "" {
		return RewardResult{}, fmt.Errorf("ai reward: no image in response")
	}
	return resp, nil
}

func (c Client) do(ctx context.Context, operation, method, path string, payload, out interface{}) (err error) {
	start := time.Now()
	defer func() { metrics.RecordAICall(operation, time.Since(start), err) }()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("ai %s: %w", operation, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("ai %s: %w", operation, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if id, ok := identity.FromContext(ctx); ok && id.Token != "" {
		req.Header.Set("Authorization", "Bearer "+id.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ai %s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("ai %s: status %d: %s", operation, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ai %s: decode response: %w", operation, err)
	}
	return nil
}
