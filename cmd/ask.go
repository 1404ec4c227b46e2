package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pcanas/mentat/internal/gateway"
	"github.com/pcanas/mentat/internal/llm"
	"github.com/pcanas/mentat/internal/reason"
	"github.com/pcanas/mentat/internal/risk"
	"github.com/pcanas/mentat/internal/store"
	"github.com/pcanas/mentat/internal/strategy"
	"github.com/pcanas/mentat/internal/trace"
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Send one prompt through the tutoring pipeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sessionID, _ := cmd.Flags().GetString("session")
		activityID, _ := cmd.Flags().GetString("activity")
		codePath, _ := cmd.Flags().GetString("code")
		errPath, _ := cmd.Flags().GetString("errors")

		rctx := reason.Context{}
		if codePath != "" {
			code, err := os.ReadFile(codePath)
			if err != nil {
				return fmt.Errorf("read code file: %w", err)
			}
			rctx.Code = string(code)
		}
		if errPath != "" {
			errOut, err := os.ReadFile(errPath)
			if err != nil {
				return fmt.Errorf("read error file: %w", err)
			}
			rctx.ErrorOutput = string(errOut)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		cfg := llm.ConfigFromEnv()
		if cfg.Validate() != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				return fmt.Errorf("no LLM provider configured: set MENTAT_LLM_PROVIDER and its API key, or export a standard key env var")
			}
			cfg = discovered
		}
		provider, err := llm.NewProvider(ctx, cfg, st.LLMEventRepo())
		if err != nil {
			return fmt.Errorf("initialize LLM provider: %w", err)
		}

		gw := gateway.New(
			reason.NewEngine(nil, reason.DefaultConfig()),
			resolvePolicyStore(cmd),
			strategy.NewService(provider, strategy.DefaultConfig()),
			st.TraceRepo(),
			nil, // analysis runs synchronously below so the CLI can't exit early
			gateway.DefaultConfig(),
		)

		out, err := gw.Process(ctx, gateway.Input{
			SessionID:  sessionID,
			ActivityID: activityID,
			Prompt:     args[0],
			Ctx:        rctx,
		})
		if err != nil {
			return err
		}

		if out.Blocked {
			fmt.Println("⛔ This request was not sent to the model.")
			fmt.Println()
			fmt.Println(out.Message)
		} else {
			fmt.Printf("[%s]\n\n", out.Strategy)
			fmt.Println(out.Message)
			if len(out.FollowUps) > 0 {
				fmt.Println("\nBefore asking again:")
				for _, q := range out.FollowUps {
					fmt.Printf("  - %s\n", q)
				}
			}
		}

		// Mine the updated session for risks and persist the findings.
		analyzer := risk.NewAnalyzer(nil, st.RiskRepo())
		traces, err := st.TraceRepo().ListBySession(ctx, sessionID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: risk analysis skipped: %v\n", err)
			return nil
		}
		rep, err := analyzer.Analyze(ctx, trace.Sequence{SessionID: sessionID, Traces: traces})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: risk analysis failed: %v\n", err)
			return nil
		}
		if rep.TotalRisks() > 0 {
			level, _ := rep.HighestLevel()
			fmt.Printf("\n⚠ session risk: %d finding(s), highest %s — run `mentat risks %s`\n",
				rep.TotalRisks(), level, sessionID)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringP("session", "s", "default", "Session identifier")
	askCmd.Flags().StringP("activity", "a", "", "Activity identifier for policy lookup")
	askCmd.Flags().String("code", "", "Path to the student's current code")
	askCmd.Flags().String("errors", "", "Path to error output the student is seeing")
}

func sep(n int) string {
	return strings.Repeat("─", n)
}
