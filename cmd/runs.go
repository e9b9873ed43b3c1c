package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/runs"
	"github.com/kokeshes/wxk-check/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded diagnosis runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diagnosis runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		critical, _ := cmd.Flags().GetBool("critical")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.RunRepo().QueryRuns(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %-14s  %4s  %-18s  %-4s  %s\n",
			"Time", "Profile", "Load", "Top", "Crit", "Answers")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		shown := 0
		for i := range list {
			r := &list[i]
			if critical && !r.Critical {
				continue
			}
			mark := ""
			if r.Critical {
				mark = "⚠"
			}
			fmt.Fprintf(out, "%-16s  %-14s  %4d  %-18s  %-4s  %s\n",
				store.FormatListTime(r.CompletedAt), diagnosis.Profile(r.Profile).Label(),
				r.LoadLevel, strings.Join(runs.Codes(r), ","), mark, r.Answers)
			shown++
		}
		fmt.Fprintf(out, "\n%d runs\n", shown)
		return nil
	},
}

func init() {
	runsListCmd.Flags().Int("limit", 20, "Maximum runs to show (0 = all)")
	runsListCmd.Flags().Bool("critical", false, "Only runs with a critical code")

	runsCmd.AddCommand(runsListCmd)
}
