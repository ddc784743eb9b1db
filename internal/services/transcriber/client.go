package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Config holds configuration for the transcription client
type Config struct {
	APIKey   string
	Endpoint string // Default: https://api.openai.com/v1/audio/transcriptions
	Model    string // Default: whisper-1

	Timeout     time.Duration // Per-request timeout, default 30s
	MaxAttempts int           // Default: 3
	RetryDelay  time.Duration // Fixed delay between attempts, default 2s

	RequestsPerMinute int // Default: 60
}

// Service defines the interface for remote speech-to-text
type Service interface {
	// Transcribe sends the audio file to the transcription endpoint,
	// retrying transient failures up to the configured attempt count
	Transcribe(ctx context.Context, fileLocation string) (string, error)
}

// Client talks to a Whisper-style transcription endpoint
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config
}

// NewClient creates a transcription client
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.openai.com/v1/audio/transcriptions"
	}
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1),
		config:      cfg,
	}
}

// ValidateAPIKey checks the key shape without making a request
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrInvalidAPIKey
	}
	if !strings.HasPrefix(key, "sk-") || len(key) < 20 {
		return ErrInvalidAPIKeyFormat
	}
	return nil
}

// Transcribe sends the audio file and retries transient failures with a
// fixed delay. Configuration and file errors fail immediately.
func (c *Client) Transcribe(ctx context.Context, fileLocation string) (string, error) {
	if err := ValidateAPIKey(c.config.APIKey); err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		text, err := c.transcribeOnce(ctx, fileLocation)
		if err == nil {
			return text, nil
		}

		if !isRetryable(err) {
			return "", err
		}

		lastErr = err
		if attempt < c.config.MaxAttempts {
			log.Printf("[DEBUG] Transcription attempt %d/%d failed: %v", attempt, c.config.MaxAttempts, err)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.config.RetryDelay):
			}
		}
	}

	if lastErr != nil {
		return "", lastErr
	}
	return "", &TranscriptionError{Message: fmt.Sprintf("failed after %d attempts", c.config.MaxAttempts)}
}

// isRetryable reports whether an error is transient. Configuration and
// file errors are caller-fixable and never retried.
func isRetryable(err error) bool {
	if errors.Is(err, ErrInvalidAPIKey) || errors.Is(err, ErrInvalidAPIKeyFormat) || errors.Is(err, ErrFileRead) {
		return false
	}
	return true
}

// transcribeOnce performs a single multipart upload
func (c *Client) transcribeOnce(ctx context.Context, fileLocation string) (string, error) {
	fileData, err := os.ReadFile(fileLocation)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}

	body, contentType, err := buildMultipartBody(fileData, c.config.Model)
	if err != nil {
		return "", fmt.Errorf("building request body: %w", err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
			return "", ErrServerTimeout
		}
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusGatewayTimeout {
		return "", ErrServerTimeout
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyErrorResponse(resp.StatusCode, respBody)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &TranscriptionError{StatusCode: resp.StatusCode, Message: "unparseable response body"}
	}

	return result.Text, nil
}

// buildMultipartBody assembles the file and model parts
func buildMultipartBody(fileData []byte, model string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="audio.m4a"`)
	header.Set("Content-Type", "audio/m4a")

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(fileData); err != nil {
		return nil, "", err
	}

	if err := writer.WriteField("model", model); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

// classifyErrorResponse extracts a structured error message when the
// endpoint returns one, falling back to the raw body
func classifyErrorResponse(statusCode int, body []byte) error {
	var structured struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Error.Message != "" {
		return &TranscriptionError{StatusCode: statusCode, Message: structured.Error.Message}
	}

	return &TranscriptionError{StatusCode: statusCode, Message: string(body)}
}
