package openrouter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/ports/secondary"
	"gitlab.com/thinkfirst.net/internal/domain"
)

var ErrNotConfigured = errors.New("openrouter api key is not configured")

const (
	dataPrefix = "data:"
	doneMarker = "[DONE]"
	appTitle   = "ThinkFirst"
)

var _ secondary.ChatCompleter = (*Client)(nil)

// Client streams chat completions from an OpenAI compatible endpoint.
// The API key is sent as an OAuth2 bearer token.
type Client struct {
	url         string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	logger      primary.Logger
}

func NewClient(cfg *config.MentorConfig, logger primary.Logger) *Client {
	var httpClient *http.Client
	if cfg.ApiKey != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.ApiKey, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.Background(), src)
	}
	return &Client{
		url:         cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  httpClient,
		logger:      logger,
	}
}

type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
	Stream      bool                 `json:"stream"`
}

type apiError struct {
	Message string `json:"message"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

func (c *Client) StreamChat(ctx context.Context, messages []domain.ChatMessage, onDelta func(string) error) (string, error) {
	if c.httpClient == nil {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Stream:      true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("X-Title", appTitle)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Chat completion request failed", "error", err)
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(resp)
	}

	full, err := readStream(resp.Body, onDelta)
	if err != nil {
		c.logger.Error("Chat completion stream failed", "error", err)
		return full, err
	}
	return full, nil
}

// readStream consumes server-sent events until [DONE] or EOF
func readStream(r io.Reader, onDelta func(string) error) (string, error) {
	var full strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// blank lines separate events, ":" lines are keep-alive comments
		if line == "" || strings.HasPrefix(line, ":") || !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
		if payload == doneMarker {
			break
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		if chunk.Error != nil {
			return full.String(), fmt.Errorf("chat completion error: %s", chunk.Error.Message)
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			full.WriteString(choice.Delta.Content)
			if onDelta != nil {
				if err := onDelta(choice.Delta.Content); err != nil {
					return full.String(), err
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("failed to read chat stream: %w", err)
	}
	return full.String(), nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var parsed struct {
		Error *apiError `json:"error"`
	}
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode, parsed.Error.Message)
	}
	return fmt.Errorf("chat completion failed with status %d", resp.StatusCode)
}
