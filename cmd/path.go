package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pcanas/mentat/internal/store"
	"github.com/pcanas/mentat/internal/trace"
)

var pathCmd = &cobra.Command{
	Use:   "path <session-id>",
	Short: "Reconstruct the cognitive path of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		rec := trace.NewReconstructor(st.TraceRepo())
		p, err := rec.ReconstructPath(cmd.Context(), sessionID)
		if err != nil {
			return err
		}

		if p.TotalTraces == 0 {
			fmt.Printf("No traces recorded for session %q.\n", sessionID)
			return nil
		}

		fmt.Printf("Session %s — %d trace(s)\n", sessionID, p.TotalTraces)
		fmt.Println(sep(60))

		fmt.Printf("States: %s\n", strings.Join(compressStates(p.States), " → "))

		if len(p.Transitions) > 0 {
			fmt.Println("\nTransitions:")
			for _, tr := range p.Transitions {
				fmt.Printf("  #%-3d %s → %s  (%s)\n",
					tr.Index, tr.From, tr.To, tr.Timestamp.Local().Format("15:04:05"))
			}
		}

		var sum float64
		for _, v := range p.AIDependency {
			sum += v
		}
		mean := sum / float64(len(p.AIDependency))
		fmt.Printf("\nAI dependency: mean %.2f over %d interaction(s)\n", mean, len(p.AIDependency))

		if len(p.StrategyChanges) > 0 {
			idx := make([]string, len(p.StrategyChanges))
			for i, n := range p.StrategyChanges {
				idx[i] = fmt.Sprintf("#%d", n)
			}
			fmt.Printf("Strategy changes at: %s\n", strings.Join(idx, ", "))
		}
		return nil
	},
}

// compressStates collapses runs of the same state so long sessions stay
// readable ("exploration ×3 → debugging ×2").
func compressStates(states []string) []string {
	var out []string
	for i := 0; i < len(states); {
		j := i
		for j < len(states) && states[j] == states[i] {
			j++
		}
		if n := j - i; n > 1 {
			out = append(out, fmt.Sprintf("%s ×%d", states[i], n))
		} else {
			out = append(out, states[i])
		}
		i = j
	}
	return out
}
