package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/farsight-cli/farsight/internal/audit"
	"github.com/farsight-cli/farsight/internal/config"
	"github.com/farsight-cli/farsight/internal/decision"
)

var editCmd = &cobra.Command{
	Use:   "edit PREFIX",
	Short: "Edit a decision record in your editor",
	Long: `Open the full record as YAML in $VISUAL or $EDITOR (or the editor
config key), validate the result, show the change as a unified diff, and
save it. The id cannot be changed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore()
		if err != nil {
			return err
		}
		d, err := st.Get(args[0])
		if err != nil {
			return err
		}

		before, err := yaml.Marshal(&d)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}

		after, err := editInEditor(cfg, d.ID, before)
		if err != nil {
			return err
		}

		var edited decision.Decision
		if err := yaml.Unmarshal(after, &edited); err != nil {
			return fmt.Errorf("parse edited record: %w", err)
		}
		if edited.ID != d.ID {
			return fmt.Errorf("id changed from %s to %s; ids are immutable", d.ID, edited.ID)
		}
		if err := edited.Validate(); err != nil {
			return err
		}

		diff, err := unifiedDiff(before, after, d.ID+" (stored)", d.ID+" (edited)")
		if err != nil {
			return fmt.Errorf("diff records: %w", err)
		}
		if strings.TrimSpace(diff) == "" {
			fmt.Println("No changes.")
			return nil
		}
		fmt.Print(diff)

		if err := st.Update(edited); err != nil {
			return fmt.Errorf("saving decision: %w", err)
		}
		auditLog(cfg, audit.EventEdit, map[string]string{"id": edited.ID, "via": "editor"})

		fmt.Printf("Updated [%s]\n", edited.ID)
		return nil
	},
}

// editInEditor writes content to a temp file, opens it in the chosen
// editor, and returns the saved bytes.
func editInEditor(cfg *config.Config, id string, content []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "farsight-edit")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	path := filepath.Join(dir, id+".yaml")
	if err := os.WriteFile(path, content, 0600); err != nil {
		return nil, fmt.Errorf("write temp record: %w", err)
	}

	editor := chooseEditor(cfg)
	if editor == "" {
		return nil, fmt.Errorf("no editor found; set $EDITOR or the editor config key")
	}
	editCmd, err := buildEditorCommand(editor, path)
	if err != nil {
		return nil, fmt.Errorf("editor %q: %w", editor, err)
	}
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return nil, fmt.Errorf("editor exited: %w", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read edited record: %w", err)
	}
	return after, nil
}

// chooseEditor returns the first configured or discoverable editor:
// config key, $VISUAL, $EDITOR, then common terminal editors.
func chooseEditor(cfg *config.Config) string {
	candidates := []string{cfg.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR"), "nvim", "vim", "vi", "nano"}
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		argv := strings.Fields(candidate)
		if len(argv) == 0 {
			continue
		}
		if _, err := exec.LookPath(argv[0]); err != nil {
			continue
		}
		return candidate
	}
	return ""
}

// buildEditorCommand splits an editor setting like "code --wait" into a
// runnable command ending in path. GUI editors that fork by default get
// --wait so the edit blocks until the file is saved and closed.
func buildEditorCommand(editor, path string) (*exec.Cmd, error) {
	argv := strings.Fields(strings.TrimSpace(editor))
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty editor")
	}

	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, err
	}

	args := argv[1:]
	base := filepath.Base(bin)
	if base == "code" || base == "code-insiders" || base == "codium" || base == "vscodium" {
		hasWait := false
		for _, a := range args {
			if a == "--wait" {
				hasWait = true
				break
			}
		}
		if !hasWait {
			args = append(args, "--wait")
		}
	}

	args = append(args, path)
	return exec.Command(bin, args...), nil
}

func init() {
	rootCmd.AddCommand(editCmd)
}
