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

package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jfranklin9000/ucg/errors"
)

// New builds the ucg command tree, unexecuted.
func New(args []string) (*Command, error) {
	root := &cobra.Command{
		Use:           "ucg",
		Short:         "ucg evaluates Universal Configuration Grammar files",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	c := &Command{Command: root, root: root}

	addGlobalFlags(root.PersistentFlags())

	for _, sub := range []*cobra.Command{
		newBuildCmd(c),
		newTestCmd(c),
		newEvalCmd(c),
		newFmtCmd(c),
		newReplCmd(c),
		newConvertersCmd(c),
	} {
		root.AddCommand(sub)
	}

	root.SetArgs(args)
	return c, nil
}

// Main runs ucg with os.Args and returns the process exit code: 0 success,
// 1 evaluation/parse error, 2 assertion failures, 3 IO error, per spec.md
// §6.
func Main() int {
	c, _ := New(os.Args[1:])
	err := c.Run(context.Background())
	if err == nil {
		return 0
	}
	if _, ok := err.(*assertionFailure); ok {
		return 2
	}
	for _, e := range errors.Errors(err) {
		if e.Kind() == errors.IoError {
			errors.Print(os.Stderr, err)
			return 3
		}
	}
	errors.Print(os.Stderr, err)
	return 1
}
