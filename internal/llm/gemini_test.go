package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:          "test-key",
		Model:           "gemini-flash",
		BaseURL:         server.URL,
		TopP:            1,
		TopK:            1,
		SafetyThreshold: "BLOCK_MEDIUM_AND_ABOVE",
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": finish,
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     12,
			"candidatesTokenCount": 34,
			"totalTokenCount":      46,
		},
	}
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply("Think of a cell as a tiny city.", "STOP"))
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:      "You are a teacher.",
		Messages:    []Message{{Role: RoleUser, Content: "Teach cells."}},
		MaxTokens:   9000,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Think of a cell as a tiny city." {
		t.Fatalf("unexpected content %q", resp.Text())
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 34 || resp.Usage.TotalTokens != 46 {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}

	safety, _ := body["safetySettings"].([]any)
	if len(safety) != 4 {
		t.Fatalf("expected 4 safety settings in request, got %v", body["safetySettings"])
	}
}

func TestGeminiProvider_StructuredOutputStripsFence(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply("```json\n{\"correct_points\":[\"a\"],\"missing_points\":[]}\n```", "STOP"))
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "grade"}},
		Schema:   feedbackTestSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != `{"correct_points":["a"],"missing_points":[]}` {
		t.Fatalf("unexpected content %q", resp.Text())
	}
}

func TestGeminiProvider_EmptyText(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{"finishReason": "SAFETY"}},
		})
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("", "x"))
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 503, "message": "overloaded", "status": "UNAVAILABLE"},
		})
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("", "x"))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-1.5-flash-latest", "gemini-1.5-flash-latest"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSafetySettings(t *testing.T) {
	if got := geminiSafetySettings(""); got != nil {
		t.Fatalf("expected no settings for empty threshold, got %d", len(got))
	}
	got := geminiSafetySettings("BLOCK_ONLY_HIGH")
	if len(got) != len(geminiHarmCategories) {
		t.Fatalf("expected %d settings, got %d", len(geminiHarmCategories), len(got))
	}
	for _, s := range got {
		if s.Threshold != genai.HarmBlockThresholdBlockOnlyHigh {
			t.Fatalf("unexpected threshold %q", s.Threshold)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct_points": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"missing_points": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"verdict": map[string]any{"type": "string", "enum": []any{"complete", "partial"}},
		},
		"required":             []any{"correct_points", "missing_points"},
		"additionalProperties": false,
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["correct_points"].Type != genai.TypeArray {
		t.Fatalf("expected ARRAY for correct_points, got %s", schema.Properties["correct_points"].Type)
	}
	if schema.Properties["missing_points"].Items.Type != genai.TypeString {
		t.Fatalf("expected STRING items, got %s", schema.Properties["missing_points"].Items.Type)
	}
	if len(schema.Properties["verdict"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %d", len(schema.Properties["verdict"].Enum))
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_RequiredStringSlice(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type":     "object",
		"required": []string{"correct_points", "missing_points"},
	})

	want := []string{"correct_points", "missing_points"}
	if !reflect.DeepEqual(schema.Required, want) {
		t.Fatalf("Required = %q, want %q", schema.Required, want)
	}
}
