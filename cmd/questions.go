package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokeshes/wxk-check/internal/questionbank"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Browse the question bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions in the order they are asked",
	RunE: func(cmd *cobra.Command, args []string) error {
		evidence, _ := cmd.Flags().GetBool("evidence")

		bank, err := questionbank.LoadOrDefault(cfg.QuestionsPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%3s  %-16s  %s\n", "#", "ID", "Prompt")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for i, q := range bank.All() {
			fmt.Fprintf(out, "%3d  %-16s  %s\n", i+1, q.ID, q.Prompt)
			if evidence {
				fmt.Fprintf(out, "%3s  %-16s  yes: %s\n", "", "", q.OnYes)
				fmt.Fprintf(out, "%3s  %-16s  no:  %s\n", "", "", q.OnNo)
			}
		}

		fmt.Fprintf(out, "\n%d questions\n", bank.Len())
		return nil
	},
}

func init() {
	questionsListCmd.Flags().Bool("evidence", false, "Show the evidence each answer adds")

	questionsCmd.AddCommand(questionsListCmd)
}
