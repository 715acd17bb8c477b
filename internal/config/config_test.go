package config

import "testing"

func TestProfileLimit(t *testing.T) {
	cfg := &Config{FreeProfileLimit: 3, ProProfileLimit: 10}

	if got := cfg.ProfileLimit(false); got != 3 {
		t.Errorf("free limit = %d, want 3", got)
	}
	if got := cfg.ProfileLimit(true); got != 10 {
		t.Errorf("pro limit = %d, want 10", got)
	}
}

func TestParseSlugScope(t *testing.T) {
	tests := map[string]string{
		"user":    SlugScopeUser,
		"global":  SlugScopeGlobal,
		"":        SlugScopeUser,
		"GLOBAL":  SlugScopeUser,
		"invalid": SlugScopeUser,
	}
	for in, want := range tests {
		if got := parseSlugScope(in); got != want {
			t.Errorf("parseSlugScope(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDurationFallback(t *testing.T) {
	if got := parseDuration("nonsense", 5); got != 5 {
		t.Errorf("parseDuration fallback = %v, want 5", got)
	}
}
