package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kokeshes/wxk-check/internal/catalog"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Browse the condition catalog",
}

var codesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List condition codes (optionally filtered by severity or domain)",
	RunE: func(cmd *cobra.Command, args []string) error {
		sevFlag, _ := cmd.Flags().GetString("severity")
		domain, _ := cmd.Flags().GetString("domain")

		cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
		if err != nil {
			return err
		}

		conds := cat.All()
		if domain != "" {
			conds = cat.ByDomain(domain)
			if len(conds) == 0 {
				return fmt.Errorf("no codes found for domain %q (domains: %s)",
					domain, strings.Join(cat.Domains(), ", "))
			}
		}
		if sevFlag != "" {
			sev, err := catalog.ParseSeverity(sevFlag)
			if err != nil {
				return err
			}
			var filtered []catalog.Condition
			for _, c := range conds {
				if c.Severity == sev {
					filtered = append(filtered, c)
				}
			}
			conds = filtered
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-6s  %-8s  %-14s  %-36s  %s\n",
			"Code", "Severity", "Domain", "Name", "Quick action")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, c := range conds {
			name := c.Name
			if c.Benign {
				name += " (ok)"
			}
			fmt.Fprintf(out, "%-6s  %-8s  %-14s  %-36s  %s\n",
				c.Code, c.Severity, c.Domain, truncate(name, 36), c.QuickAction)
		}

		fmt.Fprintf(out, "\n%d codes\n", len(conds))
		return nil
	},
}

func init() {
	codesListCmd.Flags().String("severity", "", "Filter by severity (critical, high, med, info)")
	codesListCmd.Flags().String("domain", "", "Filter by domain")

	codesCmd.AddCommand(codesListCmd)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
