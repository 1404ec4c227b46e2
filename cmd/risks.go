package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pcanas/mentat/internal/risk"
	"github.com/pcanas/mentat/internal/store"
	"github.com/pcanas/mentat/internal/trace"
)

var risksCmd = &cobra.Command{
	Use:   "risks [session-id]",
	Short: "Analyze a session for behavioral risk patterns",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sessionID := "default"
		if len(args) == 1 {
			sessionID = args[0]
		}
		stored, _ := cmd.Flags().GetBool("stored")
		save, _ := cmd.Flags().GetBool("save")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		if stored {
			return printStoredRisks(cmd, st, sessionID)
		}

		var repo risk.Repo
		if save {
			repo = st.RiskRepo()
		}
		analyzer := risk.NewAnalyzer(nil, repo)

		traces, err := st.TraceRepo().ListBySession(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("load session traces: %w", err)
		}
		rep, err := analyzer.Analyze(ctx, trace.Sequence{SessionID: sessionID, Traces: traces})
		if err != nil {
			return err
		}

		fmt.Printf("Session %s — %s\n", sessionID, rep.OverallAssessment)
		if rep.TotalRisks() == 0 {
			return nil
		}
		fmt.Println(sep(72))
		for _, r := range rep.Risks() {
			fmt.Printf("%-22s  %-8s  %-10s  %s\n", r.Type, r.Level, r.Dimension, r.Description)
		}
		if recs := rep.Recommendations(); len(recs) > 0 {
			fmt.Println("\nRecommendations:")
			for _, rec := range recs {
				fmt.Printf("  - %s\n", rec)
			}
		}
		return nil
	},
}

var riskResolveCmd = &cobra.Command{
	Use:   "resolve <risk-id>",
	Short: "Mark a stored risk as addressed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid risk id %q: %w", args[0], err)
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

		if err := st.RiskRepo().Resolve(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Resolved.")
		return nil
	},
}

func printStoredRisks(cmd *cobra.Command, st *store.Store, sessionID string) error {
	risks, err := st.RiskRepo().ListBySession(cmd.Context(), sessionID)
	if err != nil {
		return fmt.Errorf("list stored risks: %w", err)
	}
	if len(risks) == 0 {
		fmt.Printf("No stored risks for session %q.\n", sessionID)
		return nil
	}

	fmt.Printf("%-36s  %-22s  %-8s  %-10s  %s\n", "ID", "Type", "Level", "Dimension", "Resolved")
	fmt.Println(sep(90))
	for _, r := range risks {
		fmt.Printf("%-36s  %-22s  %-8s  %-10s  %v\n", r.ID, r.Type, r.Level, r.Dimension, r.Resolved)
	}
	return nil
}

func init() {
	risksCmd.Flags().Bool("stored", false, "List persisted risks instead of analyzing")
	risksCmd.Flags().Bool("save", false, "Persist freshly detected risks")

	risksCmd.AddCommand(riskResolveCmd)
}
