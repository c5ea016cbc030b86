package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"meal-tracker/internal/domain"
)

// Client habla con el microservicio de chat y calorias. Todo error sale envuelto en domain.ErrUpstream.
type Client struct {
	baseURL string
	signer  *TokenSigner
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, signer *TokenSigner, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		signer:  signer,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type caloriesResponse struct {
	Calories int `json:"calories"`
}

func (c *Client) Chat(ctx context.Context, ownerID, message string) (string, error) {
	var out chatResponse
	if err := c.post(ctx, ownerID, "/chat", chatRequest{Message: message}, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", fmt.Errorf("%w: empty chat response", domain.ErrUpstream)
	}
	return out.Response, nil
}

func (c *Client) CalculateCalories(ctx context.Context, ownerID string, recipe domain.UserRecipeFields) (int, error) {
	var out caloriesResponse
	if err := c.post(ctx, ownerID, "/calculate-calories", recipe, &out); err != nil {
		return 0, err
	}
	return out.Calories, nil
}

func (c *Client) post(ctx context.Context, ownerID, path string, body, out any) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.signer != nil {
		token, err := c.signer.Sign(ownerID)
		if err != nil {
			return fmt.Errorf("sign service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: do request: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("chat service error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(respBody, 512)),
		)
		return fmt.Errorf("%w: status=%d", domain.ErrUpstream, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: unmarshal response: %v", domain.ErrUpstream, err)
	}
	return nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
