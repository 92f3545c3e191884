package config

import (
	"os"
	"path/filepath"
	"testing"

	"hiresight/internal/errors"
)

func testLogger() *errors.Logger {
	logger, _ := errors.New("debug")
	return logger
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int64
		wantErr bool
	}{
		{name: "int64 value", input: int64(42), want: 42},
		{name: "float64 value", input: float64(42.0), want: 42},
		{name: "string value", input: "42", want: 42},
		{name: "invalid string value", input: "not-a-number", wantErr: true},
		{name: "unsupported type", input: []string{"42"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersionValue(tt.input, "secret/data/test")

			if tt.wantErr {
				if err == nil {
					t.Fatal("parseVersionValue() = nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVersionValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseVersionValue() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "short value fully masked", value: "abc", want: "****"},
		{name: "eight chars fully masked", value: "12345678", want: "****"},
		{name: "long value keeps edges", value: "abcdefghijklmnop", want: "abcd****mnop"},
		{name: "empty value", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskSecret(tt.value); got != tt.want {
				t.Errorf("maskSecret(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, testLogger())
	if err != nil {
		t.Fatalf("NewVaultClient() error = %v", err)
	}
	if client != nil {
		t.Error("NewVaultClient() with disabled config should return nil client")
	}
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	cfg := &Config{}
	if err := ApplyVaultSecrets(cfg, testLogger()); err != nil {
		t.Fatalf("ApplyVaultSecrets() with vault disabled should be a no-op, got %v", err)
	}
}

func TestResolveVaultToken(t *testing.T) {
	t.Run("explicit token wins", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "s.explicit"})
		if err != nil {
			t.Fatalf("resolveVaultToken() error = %v", err)
		}
		if token != "s.explicit" {
			t.Errorf("resolveVaultToken() = %q, want %q", token, "s.explicit")
		}
	})

	t.Run("token file fallback", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "token")
		if err := os.WriteFile(tokenFile, []byte("s.from-file\n"), 0600); err != nil {
			t.Fatalf("failed to write token file: %v", err)
		}

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile})
		if err != nil {
			t.Fatalf("resolveVaultToken() error = %v", err)
		}
		if token != "s.from-file" {
			t.Errorf("resolveVaultToken() = %q, want %q", token, "s.from-file")
		}
	})

	t.Run("missing token", func(t *testing.T) {
		if _, err := resolveVaultToken(VaultConfig{}); err == nil {
			t.Error("resolveVaultToken() with no token source should fail")
		}
	})
}
