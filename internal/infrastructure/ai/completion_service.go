package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prepkingdom/kingdom-api/internal/domain"
)

type completionServiceImpl struct {
	baseURL string
	apiKey  string
	model   string
	client  *retryablehttp.Client
}

// NewCompletionService creates a client for an OpenAI-compatible chat
// completion API with JSON schema response formatting
func NewCompletionService(baseURL, apiKey, model string) domain.CompletionService {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 60 * time.Second
	client.Logger = nil

	return &completionServiceImpl{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  client,
	}
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *jsonSchema `json:"json_schema,omitempty"`
}

type jsonSchema struct {
	Name   string      `json:"name"`
	Strict bool        `json:"strict"`
	Schema interface{} `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends prompt with a structured-output schema and unmarshals
// the model's reply into out
func (s *completionServiceImpl) Generate(ctx context.Context, prompt string, schema interface{}, out interface{}) error {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}
	if schema != nil {
		reqBody.ResponseFormat = &responseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchema{
				Name:   "response",
				Strict: true,
				Schema: schema,
			},
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := s.baseURL + "/chat/completions"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, payload)
	if err != nil {
		return fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read completion response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return fmt.Errorf("failed to decode completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "completion request rejected"
		if chatResp.Error != nil {
			msg = chatResp.Error.Message
		}
		return fmt.Errorf("completion API returned %d: %s", resp.StatusCode, msg)
	}
	if len(chatResp.Choices) == 0 {
		return fmt.Errorf("completion API returned no choices")
	}

	if err := json.Unmarshal([]byte(chatResp.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("failed to parse generated content: %w", err)
	}
	return nil
}
