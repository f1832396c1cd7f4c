package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/apperror"
)

var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY is not configured")

type GenerateRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// TextGenerator turns a prompt into text. Errors are *apperror.Error:
// failed-precondition when no credential is configured, internal otherwise.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type anthropicGenerator struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewAnthropicGenerator(cfg config.Anthropic) TextGenerator {
	limit := rate.Inf
	if cfg.MaxRequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.MaxRequestsPerMinute))
	}
	return &anthropicGenerator{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

func (g *anthropicGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if g.apiKey == "" {
		slog.Info(ErrMissingAPIKey.Error())
		return "", apperror.Wrap(apperror.FailedPrecondition, "API configuration error", ErrMissingAPIKey)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", apperror.Wrap(apperror.Internal, "text generation was cancelled", err)
	}

	text, err := g.call(ctx, req)
	if err != nil {
		slog.Info(err.Error())
		return "", apperror.Wrap(apperror.Internal, "Error processing AI response", err)
	}
	return text, nil
}

func (g *anthropicGenerator) call(ctx context.Context, req GenerateRequest) (string, error) {
	reqBody := anthropicRequest{
		Model:       g.model,
		MaxTokens:   req.MaxTokens,
		System:      req.System,
		Temperature: req.Temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", g.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call Anthropic API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("anthropic api error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	for _, block := range apiResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", errors.New("no text content in Claude API response")
}
