package main

import (
	"strings"
	"testing"

	"github.com/farsight-cli/farsight/internal/config"
)

func TestChooseEditorPrecedence(t *testing.T) {
	// "sh" is on PATH everywhere these tests run; the config value is not.
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "sh")

	cfg := &config.Config{Editor: "definitely-not-an-editor-zz"}
	if got := chooseEditor(cfg); got != "sh" {
		t.Errorf("chooseEditor = %q, want fallback to $EDITOR", got)
	}

	cfg.Editor = "sh -c"
	if got := chooseEditor(cfg); got != "sh -c" {
		t.Errorf("chooseEditor = %q, want config value to win", got)
	}
}

func TestBuildEditorCommand(t *testing.T) {
	cmd, err := buildEditorCommand("sh -n", "/tmp/record.yaml")
	if err != nil {
		t.Fatalf("buildEditorCommand: %v", err)
	}
	args := cmd.Args
	if len(args) != 3 || args[1] != "-n" || args[2] != "/tmp/record.yaml" {
		t.Errorf("args = %v", args)
	}
	if !strings.Contains(args[0], "sh") {
		t.Errorf("binary = %q, want sh", args[0])
	}
}

func TestBuildEditorCommandRejects(t *testing.T) {
	if _, err := buildEditorCommand("   ", "/tmp/x"); err == nil {
		t.Error("blank editor should error")
	}
	if _, err := buildEditorCommand("definitely-not-an-editor-zz", "/tmp/x"); err == nil {
		t.Error("missing binary should error")
	}
}
