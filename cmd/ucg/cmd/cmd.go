// Copyright the UCG authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd implements the ucg command-line driver: build, test, eval,
// plus stubs for fmt, repl, and converters.
package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// runFunction is the shape every subcommand's business logic takes, wired
// into cobra via mkRunE.
type runFunction func(c *Command, args []string) error

// Command wraps a cobra.Command the way cmd/cue's Command does, so
// subcommands read/write through c.OutOrStdout()/c.OutOrStderr() instead of
// os.Stdout/os.Stderr directly, which is what lets tests capture output.
type Command struct {
	*cobra.Command
	root *cobra.Command
}

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

// Run executes the command tree built by New.
func (c *Command) Run(ctx context.Context) error {
	return c.root.ExecuteContext(ctx)
}

// SetOutput redirects stdout/stderr for the whole command tree, used by
// tests to capture output instead of writing to the real console.
func (c *Command) SetOutput(w io.Writer) {
	c.root.SetOut(w)
	c.root.SetErr(w)
}
