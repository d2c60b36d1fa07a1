package config

import "testing"

func TestParseOverridesMergesOverDefaults(t *testing.T) {
	out := parseOverrides("scissor=scissors, molass=treacle")
	if out["scissor"] != "scissors" {
		t.Errorf("custom pair not applied: %v", out["scissor"])
	}
	if out["molass"] != "treacle" {
		t.Errorf("custom pair should win over the default: %v", out["molass"])
	}
	if parseOverrides("")["molass"] != "molasses" {
		t.Errorf("default lost: %v", parseOverrides(""))
	}
}

func TestParseOverridesIgnoresGarbage(t *testing.T) {
	out := parseOverrides("noequals, =empty, key= , a=b")
	if out["a"] != "b" {
		t.Errorf("valid pair dropped: %v", out)
	}
	if _, ok := out["noequals"]; ok {
		t.Error("pair without = accepted")
	}
	if _, ok := out["key"]; ok {
		t.Error("pair with empty value accepted")
	}
	if len(out) != len(defaultSingularOverrides)+1 {
		t.Errorf("unexpected entries: %v", out)
	}
}

func TestLoadRequiresCoreSettings(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "secret")
	if _, err := Load(); err == nil {
		t.Error("missing MONGODB_URI should fail")
	}

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("missing JWT_SECRET should fail")
	}

	t.Setenv("JWT_SECRET", "secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "10000" {
		t.Errorf("default port = %q", cfg.Port)
	}
	if cfg.MongoDB != "safeplate" {
		t.Errorf("default db = %q", cfg.MongoDB)
	}
	if cfg.SingularOverrides["molass"] != "molasses" {
		t.Error("default singular overrides missing")
	}
}
