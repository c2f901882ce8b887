package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pdf-summarizer/internal/domain"
)

// sandboxSummary is returned in sandbox mode instead of calling the API.
const sandboxSummary = "This is a test summary generated for automated testing purposes."

const summaryMaxTokens = 500

// SummaryService implements domain.Summarizer against an OpenAI-compatible
// chat completions endpoint. The model is chosen by the entitlement checker
// and passed through untouched.
type SummaryService struct {
	logger     domain.Logger
	apiKey     string
	baseURL    string
	httpClient *http.Client
	sandbox    bool
}

// NewSummaryService creates a new summary service instance
func NewSummaryService(config domain.Config, logger domain.Logger) *SummaryService {
	return &SummaryService{
		logger:  logger,
		apiKey:  config.GetOpenAIKey(),
		baseURL: strings.TrimSuffix(config.GetOpenAIBaseURL(), "/"),
		httpClient: &http.Client{
			Timeout: config.GetSummaryTimeout(),
		},
		sandbox: config.IsTesting(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize generates a summary of the given text using the given model.
func (s *SummaryService) Summarize(ctx context.Context, text string, model string, format domain.SummaryFormat) (string, error) {
	if s.sandbox {
		return sandboxSummary, nil
	}

	reqBody := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful assistant that summarizes PDF documents."},
			{Role: "user", Content: buildPrompt(text, format)},
		},
		MaxTokens:   summaryMaxTokens,
		Temperature: 0.5,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("summarization API error: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("summarization API returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	summary := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("empty summary from model")
	}
	return summary, nil
}

// buildPrompt shapes the instruction per summary format.
func buildPrompt(text string, format domain.SummaryFormat) string {
	var instruction string
	switch format {
	case domain.FormatTodoList:
		instruction = "Summarize the following text as an actionable to-do list."
	case domain.FormatInteractive:
		instruction = "Summarize the following text as a set of sections with questions a reader can expand on."
	case domain.FormatVisual:
		instruction = "Summarize the following text as a structured outline suitable for rendering as a visual diagram."
	case domain.FormatFlowchart:
		instruction = "Summarize the following text as flowchart steps in order."
	default:
		instruction = "Please summarize the following text in a concise, well-structured format. Focus on the key points and main ideas."
	}
	return instruction + "\n\n" + text
}
