package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	// Point HOME at an empty directory so no user config interferes.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Resources.Hints.Initial != 3 || cfg.Resources.Hints.Max != 5 {
		t.Errorf("Hint defaults = %+v", cfg.Resources.Hints)
	}
	if cfg.Resources.Slices.Initial != 1 {
		t.Errorf("Slice defaults = %+v", cfg.Resources.Slices)
	}
	if cfg.Database.Path != "~/.mazetrace/mazetrace.db" {
		t.Errorf("Database path = %q", cfg.Database.Path)
	}

	size := cfg.Forge.SizeFor("beginner", "easy")
	if size.Width != 8 || size.Height != 5 {
		t.Errorf("beginner/easy size = %+v", size)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := []byte("resources:\n  hints:\n    initial: 9\n    reward: 2\n    max: 9\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Resources.Hints.Initial != 9 || cfg.Resources.Hints.Reward != 2 {
		t.Errorf("custom hints = %+v", cfg.Resources.Hints)
	}

	// An explicit path that does not exist is an error, not a fallback.
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with a missing explicit path should fail")
	}
}

func TestSizeForFallsBack(t *testing.T) {
	var empty ForgeConfig

	size := empty.SizeFor("expert", "hard")
	if size.Width != 44 || size.Height != 28 {
		t.Errorf("expert/hard fallback = %+v", size)
	}

	size = empty.SizeFor("nonsense", "nonsense")
	if size.Width < 2 || size.Height < 2 {
		t.Errorf("unknown pair should still yield a playable size, got %+v", size)
	}

	// Degenerate user entries are ignored in favor of the defaults.
	degenerate := ForgeConfig{Sizes: map[string]map[string]SizeConfig{
		"beginner": {"easy": {Width: 1, Height: 0}},
	}}
	size = degenerate.SizeFor("beginner", "easy")
	if size.Width != 8 || size.Height != 5 {
		t.Errorf("degenerate entry should fall back, got %+v", size)
	}
}

func TestTierAndDifficultyValidation(t *testing.T) {
	for _, tier := range SkillTiers {
		if !ValidTier(string(tier)) {
			t.Errorf("ValidTier(%q) = false", tier)
		}
	}
	if ValidTier("godlike") {
		t.Error("ValidTier should reject unknown tiers")
	}

	for _, d := range Difficulties {
		if !ValidDifficulty(string(d)) {
			t.Errorf("ValidDifficulty(%q) = false", d)
		}
	}
	if ValidDifficulty("nightmare") {
		t.Error("ValidDifficulty should reject unknown difficulties")
	}
}
