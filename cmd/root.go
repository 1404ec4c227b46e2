package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pcanas/mentat/internal/governance"
	"github.com/pcanas/mentat/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mentat",
	Short: "Governed AI tutor for programming students",
	Long: "Mentat mediates every student-AI interaction: it classifies intent, " +
		"enforces the activity's governance policy, generates pedagogically shaped " +
		"responses, and records an auditable cognitive trace of the session.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MENTAT_DB env var)")
	rootCmd.PersistentFlags().String("policy", "", "Path to governance policy YAML (overrides MENTAT_POLICY env var)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(risksCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MENTAT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolvePolicyStore builds the governance store from --policy, MENTAT_POLICY,
// or the default XDG config path. A missing policy file falls back to the
// default policy with a warning; a present but broken file stays fail-closed
// through the FileStore.
func resolvePolicyStore(cmd *cobra.Command) governance.Store {
	path, explicit := policyPath(cmd)

	if _, err := os.Stat(path); err != nil {
		if explicit {
			// An explicitly named file that can't be read must not be
			// silently replaced by a permissive default.
			return governance.NewFileStore(path, 0)
		}
		fmt.Fprintf(os.Stderr, "warning: no policy file at %s, using default policy\n", path)
		return &governance.StaticStore{Policy: governance.Default()}
	}
	return governance.NewFileStore(path, 0)
}

func policyPath(cmd *cobra.Command) (path string, explicit bool) {
	if p, _ := cmd.Flags().GetString("policy"); p != "" {
		return p, true
	}
	if p := os.Getenv("MENTAT_POLICY"); p != "" {
		return p, true
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "policy.yaml", false
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mentat", "policy.yaml"), false
}
