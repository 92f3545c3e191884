package common

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hiresight/internal/errors"
	"hiresight/internal/types"
)

func longDescription() string {
	return strings.TrimSpace(strings.Repeat("own the product roadmap and ship features ", 10))
}

func writePostingsFile(t *testing.T, data any) string {
	t.Helper()
	encoded, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "postings.json")
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPostingsSingleObject(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))
	path := writePostingsFile(t, types.JobPosting{
		Title: "Senior PM", Company: "Acme", Description: longDescription(),
	})

	postings, err := fp.LoadPostings(path)
	if err != nil {
		t.Fatalf("LoadPostings() error: %v", err)
	}
	if len(postings) != 1 || postings[0].Company != "Acme" {
		t.Errorf("postings = %+v, want single Acme posting", postings)
	}
}

func TestLoadPostingsArray(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))
	path := writePostingsFile(t, []types.JobPosting{
		{Title: "PM", Company: "Acme", Description: longDescription()},
		{Title: "Senior PM", Company: "Globex", Description: longDescription()},
	})

	postings, err := fp.LoadPostings(path)
	if err != nil {
		t.Fatalf("LoadPostings() error: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("got %d postings, want 2", len(postings))
	}
}

func TestLoadPostingsRejectsShortDescription(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))
	path := writePostingsFile(t, types.JobPosting{
		Title: "PM", Company: "Acme", Description: "too short",
	})

	if _, err := fp.LoadPostings(path); err == nil {
		t.Fatal("LoadPostings() expected validation error for short description")
	}
}

func TestLoadPostingsRejectsMalformedJSON(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := fp.LoadPostings(path); err == nil {
		t.Fatal("LoadPostings() expected parse error")
	}
}

func TestLoadPostingsMissingFile(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))
	if _, err := fp.LoadPostings(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("LoadPostings() expected error for missing file")
	}
}
