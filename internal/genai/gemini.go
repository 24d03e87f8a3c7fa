package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rescuelink/rescuelink-backend/internal/model"
)

// Generator produces text from a prompt via an external model provider.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProviderError is returned when the generation provider rejects a call.
// It carries the provider's HTTP status and raw error body for debugging.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("generation provider error (%d): %s", e.Status, e.Body)
}

// GeminiClient calls the Google Generative Language API.
type GeminiClient struct {
	client *resty.Client
	apiKey string
	model  string
}

// NewGeminiClient creates a client for the given model. baseURL is the API
// root, e.g. https://generativelanguage.googleapis.com.
func NewGeminiClient(baseURL, apiKey, model string) *GeminiClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(2 * time.Minute)
	return &GeminiClient{client: c, apiKey: apiKey, model: model}
}

// generateRequest / generateResponse structs for JSON binding

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single synchronous generateContent call. No retries, no
// streaming. A non-2xx status yields *ProviderError; a 2xx response with no
// usable text yields model.ErrEmptyGeneration.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: generation provider API key is empty", model.ErrConfiguration)
	}

	reqBody := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(&reqBody).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	if resp.IsError() {
		return "", &ProviderError{Status: resp.StatusCode(), Body: resp.String()}
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}

	text := ""
	if len(gr.Candidates) > 0 && len(gr.Candidates[0].Content.Parts) > 0 {
		text = strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text)
	}
	if text == "" {
		return "", model.ErrEmptyGeneration
	}
	return text, nil
}
