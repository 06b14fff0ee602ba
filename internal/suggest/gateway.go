// Package suggest wraps the Gemini generateContent endpoint and turns
// free-text goals and descriptions into structured task proposals. It
// is a stateless adapter; without an API key every call degrades to a
// safe default instead of failing.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/pkg/logger"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Suggestion is one AI-proposed task.
type Suggestion struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
}

// Analysis is the refined form of a task description.
type Analysis struct {
	Priority           models.TaskPriority `json:"priority"`
	RefinedDescription string              `json:"refinedDescription"`
}

type Gateway struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGateway(apiKey, model string) *Gateway {
	return &Gateway{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Request/response wire types for generateContent.

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func priorityEnum() []string {
	return []string{
		string(models.PriorityHigh),
		string(models.PriorityMedium),
		string(models.PriorityLow),
	}
}

// generate sends one prompt with a constrained output schema and
// returns the raw JSON text of the first candidate.
func (g *Gateway) generate(ctx context.Context, prompt string, responseSchema *schema) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", apperrors.ErrSuggestionUnavailable, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrSuggestionUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrSuggestionUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", apperrors.ErrSuggestionUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", apperrors.ErrSuggestionUnavailable, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", apperrors.ErrSuggestionUnavailable, err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateSubtasks breaks a high-level goal into 3-5 actionable tasks.
// Without an API key it returns an empty list; a service or decode
// failure is propagated so the caller can tell the user.
func (g *Gateway) GenerateSubtasks(ctx context.Context, goal string) ([]Suggestion, error) {
	if g.apiKey == "" {
		logger.SystemLogger.Warn("No Gemini API key configured, skipping subtask generation")
		return []Suggestion{}, nil
	}

	prompt := fmt.Sprintf(
		`Break down the following goal into 3-5 specific, actionable tasks for a project management dashboard. Goal: %q`,
		goal)
	responseSchema := &schema{
		Type: "ARRAY",
		Items: &schema{
			Type: "OBJECT",
			Properties: map[string]*schema{
				"title":       {Type: "STRING", Description: "Short title of the task"},
				"description": {Type: "STRING", Description: "Detailed description"},
				"priority":    {Type: "STRING", Enum: priorityEnum()},
			},
			Required: []string{"title", "description", "priority"},
		},
	}

	text, err := g.generate(ctx, prompt, responseSchema)
	if err != nil {
		logger.ErrorLogger.Error("Gemini subtask generation failed", zap.Error(err))
		return nil, err
	}
	if text == "" {
		return []Suggestion{}, nil
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		logger.ErrorLogger.Error("Gemini returned unparsable suggestions", zap.Error(err))
		return nil, fmt.Errorf("%w: decoding suggestions: %v", apperrors.ErrSuggestionUnavailable, err)
	}
	return suggestions, nil
}

// AnalyzeTask asks for a priority and a rewritten description. Unlike
// GenerateSubtasks this never propagates a failure: on any error the
// caller gets MEDIUM priority and the description unchanged.
func (g *Gateway) AnalyzeTask(ctx context.Context, description string) Analysis {
	fallback := Analysis{Priority: models.PriorityMedium, RefinedDescription: description}
	if g.apiKey == "" {
		return fallback
	}

	prompt := fmt.Sprintf(
		`Analyze this task description. Suggest a priority level and a more professional, concise description. Description: %q`,
		description)
	responseSchema := &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"priority":           {Type: "STRING", Enum: priorityEnum()},
			"refinedDescription": {Type: "STRING"},
		},
		Required: []string{"priority", "refinedDescription"},
	}

	text, err := g.generate(ctx, prompt, responseSchema)
	if err != nil || text == "" {
		logger.ErrorLogger.Error("Gemini analysis failed, using fallback", zap.Error(err))
		return fallback
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		logger.ErrorLogger.Error("Gemini analysis unparsable, using fallback", zap.Error(err))
		return fallback
	}
	if !models.ValidPriority(analysis.Priority) {
		return fallback
	}
	return analysis
}
