package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type OllamaProvider struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

var _ EmbeddingProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL: baseURL,
		Model:   model,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (p *OllamaProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	// Ollama has no task-type hint; the parameter is accepted for
	// interface parity and ignored.
	reqPayload := ollamaEmbedRequest{
		Model:  p.Model,
		Prompt: text,
	}
	body, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/api/embeddings", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama embedding request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", res.StatusCode, string(resBody))
	}

	var parsed ollamaEmbedResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return nil, err
	}
	return parsed.Embedding, nil
}

// GenerateBatch loops sequentially; the Ollama embedding endpoint is
// single-text, so order preservation is trivial and any failure aborts
// the whole batch.
func (p *OllamaProvider) GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if len(texts) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds maximum of %d", len(texts), MaxBatchSize)
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := p.Generate(ctx, text, taskType)
		if err != nil {
			return nil, fmt.Errorf("embedding %d of %d failed: %w", i+1, len(texts), err)
		}
		out[i] = vector
	}
	return out, nil
}
