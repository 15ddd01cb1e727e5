package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/abhisek/teachme/internal/llm"
)

const testOriginal = "Photosynthesis converts light into chemical energy in chloroplasts."

func TestStateFor(t *testing.T) {
	if StateFor(nil).IsResuming() {
		t.Error("nil prior should be initial")
	}
	if StateFor(&Feedback{CorrectPoints: []string{"x"}, MissingPoints: []string{}}).IsResuming() {
		t.Error("empty missing points should be initial")
	}
	s := StateFor(&Feedback{MissingPoints: []string{"a", "b", "a"}})
	if !s.IsResuming() {
		t.Fatal("non-empty missing points should resume")
	}
	if !reflect.DeepEqual(s.Prior(), []string{"a", "b"}) {
		t.Errorf("Prior() = %q", s.Prior())
	}
}

func TestAssess_Initial(t *testing.T) {
	reply := `{"correct_points":["Named chloroplasts"],"missing_points":["Explain light energy","Mention glucose"]}`
	mock := llm.NewMockProvider(llm.MockText(reply))
	e := NewEngine(mock, DefaultConfig())

	got := e.Assess(context.Background(), testOriginal, "Plants make food.", Initial())
	want := Feedback{
		CorrectPoints: []string{"Named chloroplasts"},
		MissingPoints: []string{"Explain light energy", "Mention glucose"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Assess() = %+v, want %+v", got, want)
	}

	req := mock.LastCall()
	if req.Schema != FeedbackSchema {
		t.Error("assessment must request structured output")
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, testOriginal) || !strings.Contains(msg, "Plants make food.") {
		t.Error("prompt missing original text or summary")
	}
	if strings.Contains(msg, "Previous Points to Improve") {
		t.Error("initial prompt should not mention previous points")
	}
}

func TestAssess_InitialExcellent(t *testing.T) {
	reply, _ := json.Marshal(Excellent())
	e := NewEngine(llm.NewMockProvider(llm.MockText(string(reply))), DefaultConfig())

	got := e.Assess(context.Background(), testOriginal, "A perfect summary.", Initial())
	if !Converged(got) {
		t.Fatal("excellent verdict should be converged")
	}
	if got.CorrectPoints[0] != "Excellent understanding! You've captured all the key points accurately." {
		t.Errorf("CorrectPoints = %q", got.CorrectPoints)
	}
}

func TestAssess_ResumingNarrows(t *testing.T) {
	prior := []string{"Explain light energy", "Mention glucose", "Name the pigment"}
	reply := `{"correct_points":["Good progress! You've improved on some points.","Keep working on the remaining areas."],` +
		`"missing_points":["Name the pigment","Something brand new","Explain light energy","Name the pigment"]}`
	mock := llm.NewMockProvider(llm.MockText(reply))
	e := NewEngine(mock, DefaultConfig())

	got := e.Assess(context.Background(), testOriginal, "Revised.", Resuming(prior))

	want := []string{"Explain light energy", "Name the pigment"}
	if !reflect.DeepEqual(got.MissingPoints, want) {
		t.Errorf("MissingPoints = %q, want %q", got.MissingPoints, want)
	}
	if len(got.CorrectPoints) != 2 {
		t.Errorf("CorrectPoints = %q", got.CorrectPoints)
	}

	msg := mock.LastCall().Messages[0].Content
	for _, p := range prior {
		if !strings.Contains(msg, p) {
			t.Errorf("resuming prompt missing prior point %q", p)
		}
	}
}

func TestAssess_ResumingConverges(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty list", `{"correct_points":["done"],"missing_points":[]}`},
		{"blank items only", `{"correct_points":["done"],"missing_points":["  "]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(llm.NewMockProvider(llm.MockText(tt.reply)), DefaultConfig())
			got := e.Assess(context.Background(), testOriginal, "Revised.", Resuming([]string{"Mention glucose"}))
			if !reflect.DeepEqual(got, Complete()) {
				t.Errorf("Assess() = %+v, want convergence verdict", got)
			}
		})
	}
}

func TestAssess_ResumingEchoVariantsStayOpen(t *testing.T) {
	prior := []string{"Mention glucose", "Explain the role of chlorophyll"}
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "punctuation and spacing",
			reply: `{"correct_points":[],"missing_points":["Mention glucose.","Explain the role of chlorophyll "]}`,
			want:  prior,
		},
		{
			name:  "case and inner spaces",
			reply: `{"correct_points":[],"missing_points":["explain  the ROLE of chlorophyll!"]}`,
			want:  []string{"Explain the role of chlorophyll"},
		},
		{
			name:  "nothing recognizable",
			reply: `{"correct_points":[],"missing_points":["Unrelated point"]}`,
			want:  prior,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(llm.NewMockProvider(llm.MockText(tt.reply)), DefaultConfig())
			got := e.Assess(context.Background(), testOriginal, "Revised.", Resuming(prior))
			if Converged(got) {
				t.Fatalf("Assess() = %+v, should not converge", got)
			}
			if !reflect.DeepEqual(got.MissingPoints, tt.want) {
				t.Errorf("MissingPoints = %q, want %q", got.MissingPoints, tt.want)
			}
		})
	}
}

func TestAssess_Degraded(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockError(&llm.ErrRateLimit{Err: errors.New("slow down")})},
		{"not json", llm.MockText("Great summary!")},
		{"missing key", llm.MockText(`{"correct_points":[]}`)},
		{"wrong type", llm.MockText(`{"correct_points":"yes","missing_points":[]}`)},
		{"extra key", llm.MockText(`{"correct_points":[],"missing_points":[],"score":3}`)},
		{"array root", llm.MockText(`[]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(llm.NewMockProvider(tt.resp), DefaultConfig())
			got := e.Assess(context.Background(), testOriginal, "x", Initial())
			if !IsDegraded(got) {
				t.Errorf("Assess() = %+v, want degraded verdict", got)
			}
			if Converged(got) {
				t.Error("degraded verdict must not count as converged")
			}
		})
	}
}

func TestDegradedShape(t *testing.T) {
	out, err := json.Marshal(Degraded())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"correct_points":[],"missing_points":["Unable to analyze the summary. The system encountered an error. Please try submitting your summary again."]}`
	if string(out) != want {
		t.Errorf("Degraded() JSON = %s", out)
	}
}

func TestParseFeedback_Fenced(t *testing.T) {
	raw := json.RawMessage("```json\n{\"correct_points\":[\"a\"],\"missing_points\":[\"b\"]}\n```")
	f, err := parseFeedback(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.CorrectPoints[0] != "a" || f.MissingPoints[0] != "b" {
		t.Errorf("parseFeedback() = %+v", f)
	}
}
