package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Store != "decisions.jsonl" {
		t.Errorf("Default Store = %q, want %q", cfg.Store, "decisions.jsonl")
	}
	if cfg.AuditDB != "" {
		t.Errorf("Default AuditDB = %q, want empty", cfg.AuditDB)
	}
	if cfg.ConfidenceTolerance != 0.05 {
		t.Errorf("Default ConfidenceTolerance = %v, want 0.05", cfg.ConfidenceTolerance)
	}
	want := []float64{0.1, 0.5, 2, 10}
	if len(cfg.SensitivityFactors) != len(want) {
		t.Fatalf("Default SensitivityFactors = %v, want %v", cfg.SensitivityFactors, want)
	}
	for i, f := range want {
		if cfg.SensitivityFactors[i] != f {
			t.Errorf("Default SensitivityFactors[%d] = %v, want %v", i, cfg.SensitivityFactors[i], f)
		}
	}
}

func TestMerge(t *testing.T) {
	dst := Default()
	src := &Config{
		Store:  "/custom/decisions.jsonl",
		Editor: "nvim",
	}

	result := merge(dst, src)

	if result.Store != "/custom/decisions.jsonl" {
		t.Errorf("merge Store = %q, want %q", result.Store, "/custom/decisions.jsonl")
	}
	if result.Editor != "nvim" {
		t.Errorf("merge Editor = %q, want %q", result.Editor, "nvim")
	}
	// Unset keys keep their defaults.
	if result.ConfidenceTolerance != 0.05 {
		t.Errorf("merge ConfidenceTolerance = %v, want 0.05", result.ConfidenceTolerance)
	}
	if len(result.SensitivityFactors) != 4 {
		t.Errorf("merge SensitivityFactors = %v, want default grid", result.SensitivityFactors)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "store: journal/decisions.jsonl\nconfidence_tolerance: 0.1\nsensitivity_factors: [0.25, 4]\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}
	if cfg.Store != "journal/decisions.jsonl" {
		t.Errorf("Store = %q, want %q", cfg.Store, "journal/decisions.jsonl")
	}
	if cfg.ConfidenceTolerance != 0.1 {
		t.Errorf("ConfidenceTolerance = %v, want 0.1", cfg.ConfidenceTolerance)
	}
	if len(cfg.SensitivityFactors) != 2 || cfg.SensitivityFactors[0] != 0.25 || cfg.SensitivityFactors[1] != 4 {
		t.Errorf("SensitivityFactors = %v, want [0.25 4]", cfg.SensitivityFactors)
	}
}

func TestLoadFromPathMissing(t *testing.T) {
	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if cfg != nil {
		t.Errorf("missing file should yield nil config, got %+v", cfg)
	}
}

func TestLoadFromPathMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFromPath(path); err == nil {
		t.Error("malformed YAML should error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FARSIGHT_STORE", "/env/decisions.jsonl")
	t.Setenv("FARSIGHT_AUDIT_DB", "/env/audit.db")
	t.Setenv("FARSIGHT_EDITOR", "vim")

	cfg := applyEnv(Default())

	if cfg.Store != "/env/decisions.jsonl" {
		t.Errorf("Store = %q, want env value", cfg.Store)
	}
	if cfg.AuditDB != "/env/audit.db" {
		t.Errorf("AuditDB = %q, want env value", cfg.AuditDB)
	}
	if cfg.Editor != "vim" {
		t.Errorf("Editor = %q, want env value", cfg.Editor)
	}
}

func TestLoadPrecedence(t *testing.T) {
	// Project file sets the store; env overrides it; flags override env.
	dir := t.TempDir()
	project := filepath.Join(dir, ".farsight.yaml")
	content := "store: project.jsonl\neditor: nano\n"
	if err := os.WriteFile(project, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FARSIGHT_CONFIG", project)
	t.Setenv("FARSIGHT_STORE", "env.jsonl")

	cfg, err := Load(&Config{Store: "flag.jsonl"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != "flag.jsonl" {
		t.Errorf("Store = %q, want flag to win", cfg.Store)
	}
	if cfg.Editor != "nano" {
		t.Errorf("Editor = %q, want project value to survive", cfg.Editor)
	}

	// Without the flag, env wins.
	cfg, err = Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != "env.jsonl" {
		t.Errorf("Store = %q, want env to win over project", cfg.Store)
	}
}

func TestResolveAuditDB(t *testing.T) {
	cfg := &Config{Store: "/data/journal/decisions.jsonl"}
	if got, want := cfg.ResolveAuditDB(), filepath.Join("/data/journal", "audit.db"); got != want {
		t.Errorf("ResolveAuditDB = %q, want %q", got, want)
	}

	cfg.AuditDB = "/elsewhere/audit.db"
	if got := cfg.ResolveAuditDB(); got != "/elsewhere/audit.db" {
		t.Errorf("ResolveAuditDB = %q, want configured path", got)
	}
}

func TestResolveSources(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, ".farsight.yaml")
	if err := os.WriteFile(project, []byte("store: project.jsonl\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FARSIGHT_CONFIG", project)
	t.Setenv("FARSIGHT_STORE", "")
	t.Setenv("FARSIGHT_AUDIT_DB", "")
	t.Setenv("FARSIGHT_EDITOR", "")

	rc := Resolve("")
	if rc.Store.Source != SourceProject {
		t.Errorf("Store source = %q, want %q", rc.Store.Source, SourceProject)
	}
	if rc.ConfidenceTolerance.Source != SourceDefault {
		t.Errorf("ConfidenceTolerance source = %q, want %q", rc.ConfidenceTolerance.Source, SourceDefault)
	}

	rc = Resolve("flag.jsonl")
	if rc.Store.Source != SourceFlag {
		t.Errorf("Store source = %q, want %q", rc.Store.Source, SourceFlag)
	}
}
