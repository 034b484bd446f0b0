// Package embedding provides the text-to-vector capability consumed by the
// hybrid retriever. The stored corpus is embedded with the same model, so
// the model name is part of the contract with the ingestion pipeline.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SilviaMahr/StudyVerse/pkg/config"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY not set")

type GeminiClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	logger     *zap.Logger
}

// NewGeminiClient fails fast when the API key is missing; a retriever
// without embeddings is a configuration error, not a degraded mode.
func NewGeminiClient(cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &GeminiClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     cfg.APIKey,
		model:      cfg.EmbeddingModel,
		baseURL:    defaultBaseURL,
		logger:     logger,
	}, nil
}

type embedContentRequest struct {
	Model   string  `json:"model"`
	Content content `json:"content"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type embedContentResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// EmbedQuery returns the fixed-length embedding of the given text.
func (c *GeminiClient) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	reqBody := embedContentRequest{
		Model:   "models/" + c.model,
		Content: content{Parts: []part{{Text: text}}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode embedding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:embedContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("embedding request returned %d: %s", resp.StatusCode, body)
	}

	var result embedContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}

	if len(result.Embedding.Values) == 0 {
		return nil, errors.New("embedding response contained no values")
	}

	return result.Embedding.Values, nil
}
