package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("a.db")
	if got[:5] != "a.db?" {
		t.Errorf("withPragmas(a.db) = %q, want ? separator", got)
	}
	got = withPragmas("file:a.db?mode=rwc")
	if got[:19] != "file:a.db?mode=rwc&" {
		t.Errorf("withPragmas with query = %q, want & separator", got)
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "subtopics", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "fragment", InputTokens: 200, OutputTokens: 800, LatencyMs: 900, Success: true, RequestBody: "[user]\nteach", ResponseBody: "lesson"},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "fragment", LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].ID <= all[1].ID {
		t.Errorf("events not newest first: %d before %d", all[0].ID, all[1].ID)
	}
	if all[0].Success || all[0].ErrorMessage != "rate limited" {
		t.Errorf("newest event = %+v, want failed rate-limited event", all[0])
	}
	if time.Since(all[0].Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", all[0].Timestamp)
	}

	fragments, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "fragment", Limit: 1})
	if err != nil {
		t.Fatalf("query by purpose: %v", err)
	}
	if len(fragments) != 1 || fragments[0].Purpose != "fragment" {
		t.Fatalf("purpose filter returned %+v", fragments)
	}

	older, err := repo.QueryLLMEvents(ctx, QueryOpts{Before: int64(all[0].ID)})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(older) != 2 {
		t.Errorf("Before filter returned %d events, want 2", len(older))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		Purpose:      "assessment",
		Success:      true,
		RequestBody:  "req",
		ResponseBody: `{"correct_points":[],"missing_points":[]}`,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil || len(list) != 1 {
		t.Fatalf("query: %v (%d events)", err, len(list))
	}

	e, err := repo.GetLLMEvent(ctx, list[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.RequestBody != "req" || e.Model != "gpt-4o-mini" || !e.Success {
		t.Errorf("unexpected event: %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "a", Purpose: "fragment", InputTokens: 10, OutputTokens: 100, LatencyMs: 100},
		{Model: "a", Purpose: "fragment", InputTokens: 20, OutputTokens: 200, LatencyMs: 300},
		{Model: "b", Purpose: "subtopics", InputTokens: 5, OutputTokens: 1, LatencyMs: 50},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	frag := byPurpose[0]
	if frag.Purpose != "fragment" || frag.Calls != 2 || frag.InputTokens != 30 || frag.OutputTokens != 300 || frag.AvgLatencyMs != 200 {
		t.Errorf("fragment usage = %+v", frag)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "a" || byModel[0].Calls != 2 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("DB_PATH", filepath.Join(dir, "custom", "x.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != filepath.Join(dir, "custom", "x.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("DB_PATH", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != filepath.Join(dir, "teachme", "teachme.db") {
		t.Errorf("path = %q", p)
	}
}
