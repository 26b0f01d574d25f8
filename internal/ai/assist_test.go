package ai

import (
	"testing"

	"github.com/Leandrogm81/Compromissos/internal/config"
)

func testAIConfig(key string) config.AIConfig {
	return config.AIConfig{APIKey: key, Model: "deepseek-chat", Timeout: 5, MaxTokens: 256}
}

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Suggestion
	}{
		{
			"plain json",
			`{"title":"Pay rent","description":"transfer before noon","date":"2024-03-01","time":"09:00","icon":"🏠"}`,
			Suggestion{Title: "Pay rent", Description: "transfer before noon", Date: "2024-03-01", Time: "09:00", Icon: "🏠"},
		},
		{
			"markdown fenced",
			"```json\n{\"title\":\"Dentist\",\"description\":\"\",\"date\":\"\",\"time\":\"\",\"icon\":\"\"}\n```",
			Suggestion{Title: "Dentist"},
		},
		{
			"surrounding prose",
			`Here is the extraction: {"title":"Call mom","description":"","date":"","time":"","icon":"📞"} Hope that helps!`,
			Suggestion{Title: "Call mom", Icon: "📞"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSuggestion(tt.content)
			if err != nil {
				t.Fatalf("parseSuggestion() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("parseSuggestion() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseSuggestionBlanksInvalidDatetime(t *testing.T) {
	got, err := parseSuggestion(`{"title":"Pay rent","date":"2024-02-31","time":"09:00"}`)
	if err != nil {
		t.Fatalf("parseSuggestion() error = %v", err)
	}
	if got.Date != "" || got.Time != "" {
		t.Errorf("invalid date/time not blanked: %+v", got)
	}
	if got.Title != "Pay rent" {
		t.Errorf("title lost: %+v", got)
	}
}

func TestParseSuggestionErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no json at all", "I could not extract anything."},
		{"broken json", `{"title": "Pay rent`},
		{"missing title", `{"description":"something"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseSuggestion(tt.content); err == nil {
				t.Error("parseSuggestion() succeeded, want error")
			}
		})
	}
}

func TestNewAssistantRequiresKey(t *testing.T) {
	if _, err := NewAssistant(testAIConfig(""), nil); err == nil {
		t.Error("NewAssistant() without API key succeeded")
	}
}
