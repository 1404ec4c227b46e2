package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect governance policies",
}

var policyShowCmd = &cobra.Command{
	Use:   "show [activity-id]",
	Short: "Show the effective policy for an activity",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		activityID := ""
		if len(args) == 1 {
			activityID = args[0]
		}

		pol, err := resolvePolicyStore(cmd).GetEffectivePolicy(cmd.Context(), activityID)
		if err != nil {
			return fmt.Errorf("load policy: %w", err)
		}

		label := activityID
		if label == "" {
			label = "(global)"
		}
		fmt.Printf("Effective policy for %s\n", label)
		fmt.Println(sep(48))
		fmt.Printf("max help level:           %s\n", pol.MaxHelpLevel)
		fmt.Printf("block complete solutions: %v\n", pol.BlockCompleteSolutions)
		if pol.Version != "" {
			fmt.Printf("version:                  %s\n", pol.Version)
		}
		if len(pol.RiskThresholds) > 0 {
			fmt.Println("risk thresholds:")
			dims := make([]string, 0, len(pol.RiskThresholds))
			for dim := range pol.RiskThresholds {
				dims = append(dims, dim)
			}
			sort.Strings(dims)
			for _, dim := range dims {
				fmt.Printf("  %-12s %.2f\n", dim, pol.RiskThresholds[dim])
			}
		}
		return nil
	},
}

func init() {
	policyCmd.AddCommand(policyShowCmd)
}
