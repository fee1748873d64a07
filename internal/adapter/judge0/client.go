package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"

	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/ports/primary"
	"gitlab.com/thinkfirst.net/internal/core/ports/secondary"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

var _ secondary.CodeExecutor = (*Client)(nil)

const maxErrorBody = 4 << 10

// Client runs programs synchronously on a Judge0 server
type Client struct {
	baseURL       string
	httpClient    *http.Client
	cpuTimeLimit  float64
	memoryLimitKB int
	logger        primary.Logger
}

func NewClient(cfg *config.Judge0Config, logger primary.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		cpuTimeLimit:  cfg.CPUTimeLimit,
		memoryLimitKB: cfg.MemoryLimitKB,
		logger:        logger,
	}
}

// Execute submits source with wait=true and returns the finished run.
// Compile and runtime failures are not errors, they come back in the result status.
func (c *Client) Execute(ctx context.Context, source string, language domain.Language, stdin string) (*domain.ExecutionResult, error) {
	languageID, ok := languageIDs[language.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.UnsupportedLanguage, language)
	}

	body, err := json.Marshal(submissionRequest{
		SourceCode:   source,
		LanguageID:   languageID,
		Stdin:        stdin,
		CPUTimeLimit: c.cpuTimeLimit,
		MemoryLimit:  c.memoryLimitKB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	url := c.baseURL + "/submissions?base64_encoded=false&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isUnreachable(err) {
			c.logger.Error("Judge0 is unreachable", "url", c.baseURL, "error", err)
			return nil, fmt.Errorf("%w: Judge0 server is not running at %s. Please start it with: docker-compose -f docker-compose.judge0.yml up -d",
				errs.EngineUnavailable, c.baseURL)
		}
		c.logger.Error("Judge0 request failed", "url", c.baseURL, "error", err)
		return nil, fmt.Errorf("%w: %v", errs.EngineError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp)
	}

	var details submissionDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", errs.EngineError, err)
	}

	c.logger.Debug("Judge0 run finished",
		"language", language,
		"status", details.Status.Description,
		"token", details.Token)

	return details.toResult(), nil
}

func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := strings.TrimSpace(string(raw))

	var parsed errorResponse
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
		detail = parsed.Error
	}
	c.logger.Error("Judge0 returned an error status", "status", resp.StatusCode, "body", detail)
	if detail == "" {
		return fmt.Errorf("%w: status %d", errs.EngineError, resp.StatusCode)
	}
	return fmt.Errorf("%w: status %d: %s", errs.EngineError, resp.StatusCode, detail)
}

func (d *submissionDetails) toResult() *domain.ExecutionResult {
	return &domain.ExecutionResult{
		Stdout:            deref(d.Stdout),
		Stderr:            deref(d.Stderr),
		CompileOutput:     deref(d.CompileOutput),
		Message:           deref(d.Message),
		StatusID:          d.Status.ID,
		StatusDescription: d.Status.Description,
		Time:              deref(d.Time),
		MemoryKB:          d.Memory,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isUnreachable reports whether err means nothing is listening at the engine address
func isUnreachable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial" && !opErr.Timeout()
}
