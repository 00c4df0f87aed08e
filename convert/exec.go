package convert

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/google/shlex"

	"github.com/jfranklin9000/ucg/value"
)

// Exec renders argv from a command template and runs it, writing the
// child's stdout to w. v must be a tuple with a Str "cmd" field (a shell-
// like command line, tokenized with google/shlex the way a shell would
// split it) and a List "args" field; each token of the tokenized command
// line that contains "@" consumes the next args element, in order, and
// every "@" within that token is replaced with its rendered form. This
// mirrors the positional "%" format operator rather than introducing a
// second substitution syntax.
func Exec(v value.Value, w io.Writer) error {
	tuple, ok := v.(*value.Tuple)
	if !ok {
		return &kindError{op: "exec", kind: v.Kind()}
	}
	cmdV, ok := tuple.Get("cmd")
	if !ok {
		return fmt.Errorf("exec: missing 'cmd' field")
	}
	cmdStr, ok := cmdV.(value.Str)
	if !ok {
		return fmt.Errorf("exec: 'cmd' field must be Str, got %s", cmdV.Kind())
	}
	var args []value.Value
	if argsV, ok := tuple.Get("args"); ok {
		list, ok := argsV.(*value.List)
		if !ok {
			return fmt.Errorf("exec: 'args' field must be List, got %s", argsV.Kind())
		}
		args = list.Elems
	}

	tokens, err := shlex.Split(string(cmdStr))
	if err != nil {
		return fmt.Errorf("exec: invalid command template: %w", err)
	}
	ai := 0
	for i, t := range tokens {
		if !strings.Contains(t, "@") {
			continue
		}
		if ai >= len(args) {
			return fmt.Errorf("exec: command template has more '@' placeholders than args")
		}
		tokens[i] = strings.ReplaceAll(t, "@", value.Render(args[ai]))
		ai++
	}
	if ai != len(args) {
		return fmt.Errorf("exec: command template used %d of %d args", ai, len(args))
	}
	if len(tokens) == 0 {
		return fmt.Errorf("exec: empty command")
	}

	cmd := exec.Command(tokens[0], tokens[1:]...)
	cmd.Stdout = w
	return cmd.Run()
}
