package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/runs"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Answer the questionnaire in the terminal",
	Long: `Ask every question in order on the terminal, then print the top codes.

Profile and load come from the current draft unless --profile or --load is
given. The run is recorded unless --no-save is set; --apply writes the
eligible codes into the draft so the next log entry starts with them.`,
	RunE: runDiagnose,
}

func init() {
	f := diagnoseCmd.Flags()
	f.String("profile", "", "Profile: relationship, work, counsel, solo or other (default: from the draft)")
	f.Int("load", 0, "Load level 0-10 (default: from the draft)")
	f.String("answers", "", "Answer without prompting, one y or n per question (e.g. ynnny...)")
	f.Bool("apply", false, "Write the eligible codes into the draft selection")
	f.Bool("no-save", false, "Do not record the run")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	sc, err := svc.drafts.Context(ctx)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("profile") {
		p, _ := cmd.Flags().GetString("profile")
		sc.Profile = diagnosis.Profile(p)
	}
	if cmd.Flags().Changed("load") {
		sc.LoadLevel, _ = cmd.Flags().GetInt("load")
	}
	sc = sc.Normalize()

	var res *diagnosis.Result
	if cmd.Flags().Changed("answers") {
		s, _ := cmd.Flags().GetString("answers")
		answers, err := diagnosis.ParseAnswers(s)
		if err != nil {
			return err
		}
		res, err = svc.engine.Evaluate(answers, sc)
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Profile: %s · Load %d/%d\n\n", sc.Profile.Label(), sc.LoadLevel, diagnosis.MaxLoad)
		res, err = askAll(svc.engine.NewSession(), cmd.InOrStdin(), out, sc)
		if err != nil {
			return err
		}
	}

	printResult(out, res)

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		if _, err := runs.Record(ctx, svc.store.RunRepo(), res); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		logger.Debug("run recorded", zap.String("session_id", res.SessionID))
	}

	if apply, _ := cmd.Flags().GetBool("apply"); apply {
		if len(res.Apply) == 0 {
			fmt.Fprintln(out, "Nothing to apply.")
			return nil
		}
		if _, err := svc.drafts.ApplyCodes(ctx, res.Apply); err != nil {
			return fmt.Errorf("apply to draft: %w", err)
		}
		fmt.Fprintf(out, "Applied to draft: %s\n", strings.Join(res.Apply, ", "))
	}
	return nil
}

// askAll prompts for every question on in and finishes the session.
func askAll(sess *diagnosis.Session, in io.Reader, out io.Writer, sc diagnosis.SessionContext) (*diagnosis.Result, error) {
	if err := sess.Start(); err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(in)

	for sess.State() == diagnosis.StateInProgress {
		q, err := sess.Current()
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "── Question %d/%d ──\n", sess.Index()+1, sess.Len())
		fmt.Fprintln(out, q.Prompt)

		for {
			fmt.Fprint(out, "[y/n]: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				return nil, fmt.Errorf("input closed after %d of %d questions", sess.Index(), sess.Len())
			}
			a, err := diagnosis.ParseAnswer(scanner.Text())
			if err != nil {
				fmt.Fprintln(out, "Please answer y or n.")
				continue
			}
			if err := sess.Answer(a); err != nil {
				return nil, err
			}
			break
		}
		fmt.Fprintln(out)
	}
	return sess.Finish(sc)
}

// printResult writes the ranked codes and the critical banner.
func printResult(w io.Writer, res *diagnosis.Result) {
	fmt.Fprintf(w, "── Result (%s · load %d) ──\n", res.Context.Profile.Label(), res.Context.LoadLevel)
	if res.Critical {
		fmt.Fprintln(w, "\033[31m⚠ Critical detected.\033[0m Start with #1's quick action. Step back, then reset scope or deadline if needed.")
	}
	for i, e := range res.Ranked {
		if e.IsMonitor() {
			fmt.Fprintf(w, "#%d %s (%s)\n", i+1, e.Code, e.Name)
		} else {
			fmt.Fprintf(w, "#%d %s %s [%s, score %d]\n", i+1, e.Code, e.Name, e.Severity, e.Score)
		}
		fmt.Fprintf(w, "   Quick: %s\n", e.QuickAction)
	}
	if len(res.Apply) > 0 {
		fmt.Fprintf(w, "Codes to apply: %s\n", strings.Join(res.Apply, ", "))
	}
}
