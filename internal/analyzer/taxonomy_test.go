package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "hiresight/internal/errors"
)

func TestDefaultTaxonomyShape(t *testing.T) {
	tax := DefaultTaxonomy()
	if len(tax) != 8 {
		t.Fatalf("DefaultTaxonomy() has %d categories, want 8", len(tax))
	}
	if tax[0].Name != "product_management" {
		t.Errorf("first category = %q, want product_management", tax[0].Name)
	}
	if tax[1].Name != "technical" {
		t.Errorf("second category = %q, want technical", tax[1].Name)
	}
}

func TestLoadTaxonomy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := `- category: languages
  skills:
    - go
    - rust
- category: infra
  skills:
    - terraform
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	tax, err := LoadTaxonomy(path)
	if err != nil {
		t.Fatalf("LoadTaxonomy() error: %v", err)
	}
	if len(tax) != 2 {
		t.Fatalf("LoadTaxonomy() has %d categories, want 2", len(tax))
	}
	if tax[0].Name != "languages" || tax[1].Name != "infra" {
		t.Errorf("category order not preserved: %v", tax)
	}
}

func TestLoadTaxonomyInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"missing name", "- skills: [go]\n"},
		{"empty skills", "- category: languages\n  skills: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "taxonomy.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadTaxonomy(path); err == nil {
				t.Error("LoadTaxonomy() expected error")
			}
		})
	}
}

func TestLoadTaxonomyMissingFile(t *testing.T) {
	_, err := LoadTaxonomy(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadTaxonomy() expected error")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Type != apperrors.ErrorTypeIO {
		t.Errorf("error = %v, want io AppError", err)
	}
}
