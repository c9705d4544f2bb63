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

const geminiEmbeddingModel = "text-embedding-004"

type GeminiProvider struct {
	ApiKey string
	Client *http.Client
}

var _ EmbeddingProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		ApiKey: apiKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Gemini wire format ---

type geminiContentPart struct {
	Text string `json:"text"`
}

type geminiEmbedContent struct {
	Parts []geminiContentPart `json:"parts"`
}

type geminiEmbedRequest struct {
	Model    string             `json:"model"`
	Content  geminiEmbedContent `json:"content"`
	TaskType string             `json:"taskType,omitempty"`
}

type geminiBatchEmbedRequest struct {
	Requests []geminiEmbedRequest `json:"requests"`
}

type geminiEmbeddingValues struct {
	Values []float32 `json:"values"`
}

type geminiEmbedResponse struct {
	Embedding geminiEmbeddingValues `json:"embedding"`
}

type geminiBatchEmbedResponse struct {
	Embeddings []geminiEmbeddingValues `json:"embeddings"`
}

func (p *GeminiProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	reqPayload := geminiEmbedRequest{
		Model: "models/" + geminiEmbeddingModel,
		Content: geminiEmbedContent{
			Parts: []geminiContentPart{{Text: text}},
		},
		TaskType: taskType,
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:embedContent",
		geminiEmbeddingModel,
	)

	body, err := p.post(ctx, endpoint, reqPayload)
	if err != nil {
		return nil, err
	}

	var parsed geminiEmbedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	return parsed.Embedding.Values, nil
}

func (p *GeminiProvider) GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if len(texts) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds maximum of %d", len(texts), MaxBatchSize)
	}

	batch := geminiBatchEmbedRequest{
		Requests: make([]geminiEmbedRequest, len(texts)),
	}
	for i, text := range texts {
		batch.Requests[i] = geminiEmbedRequest{
			Model: "models/" + geminiEmbeddingModel,
			Content: geminiEmbedContent{
				Parts: []geminiContentPart{{Text: text}},
			},
			TaskType: taskType,
		}
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:batchEmbedContents",
		geminiEmbeddingModel,
	)

	body, err := p.post(ctx, endpoint, batch)
	if err != nil {
		return nil, err
	}

	var parsed geminiBatchEmbedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	// A count mismatch means the backend dropped part of the batch;
	// surfacing it protects the caller's index alignment.
	if len(parsed.Embeddings) != len(texts) {
		return nil, fmt.Errorf("batch embedding count mismatch: sent %d, got %d", len(texts), len(parsed.Embeddings))
	}

	out := make([][]float32, len(texts))
	for i, e := range parsed.Embeddings {
		out[i] = e.Values
	}
	return out, nil
}

func (p *GeminiProvider) post(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	reqJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(reqJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from gemini response, code %d, body %s", res.StatusCode, string(resByte))
	}
	return resByte, nil
}
