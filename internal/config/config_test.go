package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_BUYER", "")
	t.Setenv("REJECT_NEGATIVE_TOTAL", "")
	t.Setenv("SEED_DEMO_CATALOG", "")
	t.Setenv("MAX_SESSIONS", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DefaultBuyer != "Pelanggan" {
		t.Fatalf("expected default buyer Pelanggan, got %q", cfg.DefaultBuyer)
	}
	if cfg.RejectNegativeTotal {
		t.Fatalf("expected negative totals to be allowed by default")
	}
	if !cfg.SeedDemoCatalog {
		t.Fatalf("expected demo catalog seeding on by default")
	}
	if cfg.MaxSessions != 256 {
		t.Fatalf("expected default max sessions 256, got %d", cfg.MaxSessions)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("expected address :8080, got %q", cfg.Address())
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("REJECT_NEGATIVE_TOTAL", "true")
	t.Setenv("SEED_DEMO_CATALOG", "false")
	t.Setenv("MAX_SESSIONS", "4")

	cfg := Load()
	if cfg.Port != "9001" {
		t.Fatalf("expected port override, got %q", cfg.Port)
	}
	if !cfg.RejectNegativeTotal {
		t.Fatalf("expected REJECT_NEGATIVE_TOTAL=true to be honored")
	}
	if cfg.SeedDemoCatalog {
		t.Fatalf("expected SEED_DEMO_CATALOG=false to be honored")
	}
	if cfg.MaxSessions != 4 {
		t.Fatalf("expected max sessions 4, got %d", cfg.MaxSessions)
	}
}

func TestLoadIgnoresUnparsableOverrides(t *testing.T) {
	t.Setenv("REJECT_NEGATIVE_TOTAL", "maybe")
	t.Setenv("MAX_SESSIONS", "many")

	cfg := Load()
	if cfg.RejectNegativeTotal {
		t.Fatalf("expected unparsable bool to fall back to default")
	}
	if cfg.MaxSessions != 256 {
		t.Fatalf("expected unparsable int to fall back to 256, got %d", cfg.MaxSessions)
	}
}
