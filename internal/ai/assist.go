package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-deepseek/deepseek"
	"github.com/go-deepseek/deepseek/request"

	"github.com/Leandrogm81/Compromissos/internal/clock"
	"github.com/Leandrogm81/Compromissos/internal/config"
	"github.com/Leandrogm81/Compromissos/internal/models"
)

// Suggestion is a set of reminder field values extracted from free text.
// Values are advisory: the caller reviews and may discard them before
// anything is persisted.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // YYYY-MM-DD, empty if not inferable
	Time        string `json:"time"` // HH:MM, empty if not inferable
	Icon        string `json:"icon"`
}

const systemPrompt = `You extract reminder fields from free-form text.
Respond with a single JSON object and nothing else, using exactly these keys:
{"title": string, "description": string, "date": "YYYY-MM-DD" or "", "time": "HH:MM" or "", "icon": string}
The title is a short imperative phrase. Leave date or time empty when the text
does not state one. The icon is a single emoji matching the activity, or "".`

// Assistant extracts reminder fields from natural-language text via the
// DeepSeek chat API.
type Assistant struct {
	client deepseek.Client
	cfg    config.AIConfig
	rules  []models.ImageAiRule
}

func NewAssistant(cfg config.AIConfig, rules []models.ImageAiRule) (*Assistant, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("DeepSeek API key is required (store one with the keyring command or set DEEPSEEK_API_KEY)")
	}

	client, err := deepseek.NewClient(cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create DeepSeek client: %w", err)
	}

	return &Assistant{client: client, cfg: cfg, rules: rules}, nil
}

// SuggestFields asks the model to extract reminder fields from text. Stored
// extraction rules are appended to the system prompt as extra instructions.
func (a *Assistant) SuggestFields(ctx context.Context, text string) (*Suggestion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	prompt := systemPrompt
	for _, rule := range a.rules {
		prompt += "\nAdditional instruction (" + rule.Name + "): " + rule.Instruction
	}

	messages := []*request.Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: text},
	}

	chatReq := &request.ChatCompletionsRequest{
		Model:     a.cfg.Model,
		Messages:  messages,
		MaxTokens: a.cfg.MaxTokens,
		Stream:    false,
	}

	resp, err := a.client.CallChatCompletionsChat(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("DeepSeek API request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("DeepSeek API returned no choices")
	}

	return parseSuggestion(resp.Choices[0].Message.Content)
}

// parseSuggestion decodes the model's reply, tolerating markdown fences and
// surrounding prose. Returned date/time parts are validated against the civil
// calendar; invalid ones are blanked rather than failing the whole extraction.
func parseSuggestion(content string) (*Suggestion, error) {
	raw := extractJSON(content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to parse model reply: %w", err)
	}
	if s.Title == "" {
		return nil, fmt.Errorf("model reply missing title")
	}

	if s.Date != "" && s.Time != "" {
		if _, err := clock.ToInstant(s.Date, s.Time, "UTC"); err != nil {
			s.Date = ""
			s.Time = ""
		}
	}

	return &s, nil
}

func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}
