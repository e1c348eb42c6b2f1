package realm

import (
	"flag"
	"path/filepath"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("realm", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Addr != "" {
		t.Fatalf("expected empty addr, got %q", cfg.Addr)
	}
	if cfg.Locale != "en" {
		t.Fatalf("expected default locale en, got %q", cfg.Locale)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("realm", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9001", "-addr", "127.0.0.1:9999", "-db", "/tmp/realm.db", "-locale", "pt-BR"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9001 {
		t.Fatalf("expected port 9001, got %d", cfg.Port)
	}
	if cfg.Addr != "127.0.0.1:9999" {
		t.Fatalf("expected addr override, got %q", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/realm.db" {
		t.Fatalf("expected db override, got %q", cfg.DBPath)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected locale override, got %q", cfg.Locale)
	}
}

func TestBuildRuntime(t *testing.T) {
	cfg := Config{
		Port:      8080,
		DBPath:    filepath.Join(t.TempDir(), "realm.db"),
		Locale:    "en",
		LogLevel:  "error",
		LogFormat: "text",
	}

	rt, err := BuildRuntime(cfg)
	if err != nil {
		t.Fatalf("build runtime: %v", err)
	}
	if rt.Dispatcher == nil || rt.Hub == nil || rt.Store == nil {
		t.Fatalf("runtime incomplete: %+v", rt)
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("close runtime: %v", err)
	}
}
