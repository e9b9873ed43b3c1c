package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/draft"
	"github.com/kokeshes/wxk-check/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage log entries",
}

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a log entry, starting from the current draft",
	Long: `Save a log entry. Fields not given on the command line come from the
current draft, so "wxk-check diagnose --apply" followed by "wxk-check log add"
saves the diagnosed codes. The draft is updated to match the saved entry.`,
	RunE: runLogAdd,
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List log entries, newest first",
	RunE:  runLogList,
}

var logViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one log entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogView,
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one log entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.EntryRepo().Delete(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no entry with id %s", args[0])
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var logExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all entries as JSON (a .zst suffix compresses)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := store.DefaultExportName(time.Now())
		if len(args) == 1 {
			path = args[0]
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := store.ExportFile(cmd.Context(), st.EntryRepo(), path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", n, path)
		return nil
	},
}

var logImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all entries with an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.EntryRepo()
		existing, err := repo.Count(cmd.Context())
		if err != nil {
			return err
		}
		if existing > 0 {
			ok, err := confirm(cmd, fmt.Sprintf("Import replaces all %d existing entries. Continue?", existing))
			if err != nil || !ok {
				return err
			}
		}

		n, err := store.ImportFile(cmd.Context(), repo, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s\n", n, args[0])
		return nil
	},
}

var logWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete every log entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm(cmd, "Delete every log entry?")
		if err != nil || !ok {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.EntryRepo().Wipe(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("log wiped", zap.Int64("entries", n))
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries\n", n)
		return nil
	},
}

func init() {
	f := logAddCmd.Flags()
	f.String("profile", "", "Profile: relationship, work, counsel, solo or other")
	f.Int("load", 0, "Load level 0-10")
	f.StringSlice("codes", nil, "Condition codes (comma separated)")
	f.String("note", "", "Free-form note")
	f.StringSlice("actions", nil, "Quick actions taken: distance, scope, body, stop")
	f.String("boundary-template", "", "Boundary phrase")
	f.String("boundary-note", "", "Boundary note")

	f = logListCmd.Flags()
	f.Int("limit", 20, "Maximum entries to show (0 = all)")
	f.String("profile", "", "Only entries with this profile")
	f.String("code", "", "Only entries that include this code")
	f.String("since", "", "Only entries on or after this date (YYYY-MM-DD)")

	for _, c := range []*cobra.Command{logImportCmd, logWipeCmd} {
		c.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	}

	logCmd.AddCommand(logAddCmd, logListCmd, logViewCmd, logDeleteCmd,
		logExportCmd, logImportCmd, logWipeCmd)
}

func runLogAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	data, err := svc.drafts.Load(ctx)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("profile") {
		p, _ := flags.GetString("profile")
		data.Profile = string(diagnosis.ParseProfile(p))
	}
	if flags.Changed("load") {
		data.Overload, _ = flags.GetInt("load")
		data.Overload = diagnosis.ClampLoad(data.Overload)
	}
	if flags.Changed("codes") {
		codes, _ := flags.GetStringSlice("codes")
		sel := diagnosis.NewSelection(codes...)
		data.Codes = sel.Codes()
	}
	if flags.Changed("note") {
		data.Note, _ = flags.GetString("note")
	}
	if flags.Changed("actions") {
		names, _ := flags.GetStringSlice("actions")
		actions, err := parseActions(names)
		if err != nil {
			return err
		}
		data.Actions = actions
	}
	if flags.Changed("boundary-template") {
		data.BoundaryTemplate, _ = flags.GetString("boundary-template")
	}
	if flags.Changed("boundary-note") {
		data.BoundaryNote, _ = flags.GetString("boundary-note")
	}

	cat := svc.engine.Catalog()
	for _, code := range data.Codes {
		if !cat.Has(code) {
			logger.Warn("log entry has a code not in the catalog", zap.String("code", code))
		}
	}

	e := draft.Entry(data)
	if err := svc.store.EntryRepo().Append(ctx, e); err != nil {
		return err
	}
	if err := svc.drafts.Save(ctx, data); err != nil {
		logger.Warn("save draft", zap.Error(err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", e.ID)
	return nil
}

func parseActions(names []string) (store.Actions, error) {
	var a store.Actions
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "distance":
			a.Distance = true
		case "scope":
			a.Scope = true
		case "body":
			a.Body = true
		case "stop":
			a.Stop = true
		case "":
		default:
			return store.Actions{}, fmt.Errorf("unknown action %q (want distance, scope, body or stop)", n)
		}
	}
	return a, nil
}

func runLogList(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	opts := store.QueryOpts{}
	opts.Limit, _ = flags.GetInt("limit")
	if flags.Changed("profile") {
		p, _ := flags.GetString("profile")
		opts.Profile = string(diagnosis.ParseProfile(p))
	}
	opts.Code, _ = flags.GetString("code")
	if since, _ := flags.GetString("since"); since != "" {
		t, err := time.ParseInLocation(time.DateOnly, since, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since %q: want YYYY-MM-DD", since)
		}
		opts.From = t
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.EntryRepo().List(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-36s  %-16s  %-14s  %4s  %-20s  %s\n",
		"ID", "Time", "Profile", "Load", "Codes", "Note")
	fmt.Fprintln(out, strings.Repeat("─", 120))
	for _, e := range entries {
		fmt.Fprintf(out, "%-36s  %-16s  %-14s  %4d  %-20s  %s\n",
			e.ID, store.FormatListTime(e.Timestamp), diagnosis.Profile(e.Profile).Label(),
			e.Overload, truncate(strings.Join(e.Codes, ","), 20), truncate(oneLine(e.Note), 30))
	}
	fmt.Fprintf(out, "\n%d entries\n", len(entries))
	return nil
}

func runLogView(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	e, err := svc.store.EntryRepo().Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no entry with id %s", args[0])
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %s\n", e.ID)
	fmt.Fprintf(out, "Time:      %s\n", store.FormatListTime(e.Timestamp))
	fmt.Fprintf(out, "Profile:   %s\n", diagnosis.Profile(e.Profile).Label())
	fmt.Fprintf(out, "Load:      %d/%d\n", e.Overload, store.MaxOverload)
	fmt.Fprintln(out, "Codes:")
	if len(e.Codes) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	cat := svc.engine.Catalog()
	for _, code := range e.Codes {
		c := cat.Lookup(code)
		fmt.Fprintf(out, "  %-6s %s [%s]\n", code, c.Name, c.Severity)
	}
	if e.Actions.Any() {
		fmt.Fprintf(out, "Actions:   %s\n", strings.Join(e.Actions.Labels(), ", "))
	}
	if b := e.Boundary(); b != "" {
		fmt.Fprintf(out, "Boundary:  %s\n", b)
	}
	if e.Note != "" {
		fmt.Fprintf(out, "Note:\n  %s\n", strings.ReplaceAll(e.Note, "\n", "\n  "))
	}
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// confirm asks a yes/no question on stdin unless --yes was given.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	return ask(cmd.InOrStdin(), cmd.OutOrStdout(), question)
}

func ask(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, err
		}
		fmt.Fprintln(out)
		return false, nil
	}
	a, err := diagnosis.ParseAnswer(scanner.Text())
	if err != nil || !a.Yes() {
		fmt.Fprintln(out, "Cancelled.")
		return false, nil
	}
	return true, nil
}
