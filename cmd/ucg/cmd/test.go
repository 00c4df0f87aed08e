package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfranklin9000/ucg/token"
)

func newTestCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [files...]",
		Short: "evaluate files and report assert results",
		Long: `test evaluates the given files, collects every "assert" statement's
result, and prints a PASS/FAIL summary. The command exits with status 2 if
any assertion failed, distinct from the status 1 used for evaluation or
parse errors.`,
		RunE: mkRunE(c, runTest),
	}
	return cmd
}

// assertResult is one assert statement's recorded outcome.
type assertResult struct {
	desc string
	ok   bool
	pos  token.Pos
}

// collectingSink implements eval.AssertionSink, accumulating results in
// the order assert statements run.
type collectingSink struct {
	results []assertResult
}

func (s *collectingSink) Record(desc string, ok bool, pos token.Pos) {
	s.results = append(s.results, assertResult{desc: desc, ok: ok, pos: pos})
}

// assertionFailure is returned by runTest when at least one assertion
// failed, so Main can distinguish it from an evaluation error and map it
// to exit status 2 instead of 1.
type assertionFailure struct {
	failed, total int
}

func (e *assertionFailure) Error() string {
	return fmt.Sprintf("%d/%d assertions failed", e.failed, e.total)
}

func runTest(c *Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("test: no input files")
	}
	sink := &collectingSink{}
	_, err := evalFiles(c, args, sink, c.OutOrStdout())
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range sink.results {
		status := "PASS"
		if !r.ok {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(c.OutOrStdout(), "%s %s: %s\n", status, r.pos, r.desc)
	}
	fmt.Fprintf(c.OutOrStdout(), "%d passed, %d failed, %d total\n", len(sink.results)-failed, failed, len(sink.results))
	if failed > 0 {
		return &assertionFailure{failed: failed, total: len(sink.results)}
	}
	return nil
}
