package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "evaluate files and run their out statements",
		Long: `build evaluates the given files and runs every "out" statement they
contain through the registered converters (json, yaml, toml, flags, exec,
txt, xml), writing the converted output to stdout.`,
		RunE: mkRunE(c, runBuild),
	}
	return cmd
}

func runBuild(c *Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("build: no input files")
	}
	_, err := evalFiles(c, args, nil, c.OutOrStdout())
	return err
}
