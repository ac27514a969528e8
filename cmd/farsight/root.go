package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/audit"
	"github.com/farsight-cli/farsight/internal/config"
	"github.com/farsight-cli/farsight/internal/store"
)

var (
	// Global flags
	storePath  string
	cfgFile    string
	jsonOutput bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "farsight",
	Short: "Decision journal with forecast calibration",
	Long: `farsight is a decision journal: log a decision as competing options,
forecast each option's outcomes across weighted metrics, and come back
months later to record what actually happened.

Over time it tells you whether your stated confidence matches reality.

Record:
  new          Create a decision
  metric       Add a weighted outcome metric
  option       Add an option and its forecasts
  decide       Record which option was chosen

Review:
  list         List decisions
  show         Show one decision in full
  analyze      Expected values and weight sensitivity
  pending      Decisions due for review
  score        Record actual outcomes
  calibration  How well-calibrated your forecasts are`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		syncConfigFlagToEnv()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Decision store path (default: decisions.jsonl)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .farsight.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func syncConfigFlagToEnv() {
	path := strings.TrimSpace(cfgFile)
	if path == "" {
		return
	}
	_ = os.Setenv("FARSIGHT_CONFIG", path)
}

// loadConfig resolves configuration with the --store flag as the only
// flag-level override.
func loadConfig() (*config.Config, error) {
	return config.Load(&config.Config{Store: storePath})
}

// openStore resolves configuration and opens the decision store it names.
func openStore() (*store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return store.New(cfg.Store), cfg, nil
}

// warnStoreIssues surfaces malformed lines skipped by the latest load.
func warnStoreIssues(st *store.Store) {
	for _, issue := range st.Issues() {
		fmt.Fprintf(os.Stderr, "warning: skipped corrupt record at %s\n", issue)
	}
}

// auditLog records a journal event, best-effort: a failing audit log warns
// on stderr and never fails the command that triggered it.
func auditLog(cfg *config.Config, eventType string, payload any) {
	logger := audit.NewLogger(cfg.ResolveAuditDB())
	if err := logger.Log(currentUser(), eventType, payload); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log: %v\n", err)
	}
}

// currentUser returns the current system username.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// VerbosePrintf prints only when verbose mode is enabled.
func VerbosePrintf(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}
