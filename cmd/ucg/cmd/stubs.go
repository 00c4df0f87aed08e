package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newFmtCmd, newReplCmd, and newConvertersCmd are named per spec.md's CLI
// surface but out of scope: a formatter needs a pretty-printer over the
// AST and a REPL needs a line editor, neither of which this repository
// implements (spec.md §1 excludes both explicitly).

func newFmtCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [files...]",
		Short: "format UCG source files (not implemented in this build)",
		RunE:  mkRunE(c, notImplemented("fmt")),
	}
}

func newReplCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "interactive read-eval-print loop (not implemented in this build)",
		RunE:  mkRunE(c, notImplemented("repl")),
	}
}

func newConvertersCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "converters",
		Short: "list the registered out converters (not implemented in this build)",
		RunE:  mkRunE(c, notImplemented("converters")),
	}
}

func notImplemented(name string) runFunction {
	return func(c *Command, args []string) error {
		return fmt.Errorf("%s: not implemented in this build", name)
	}
}
