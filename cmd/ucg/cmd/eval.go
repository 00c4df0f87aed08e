package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfranklin9000/ucg/eval"
	"github.com/jfranklin9000/ucg/parser"
	"github.com/jfranklin9000/ucg/value"
)

func newEvalCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate a single expression and print it",
		Long: `eval evaluates the expression given by --expression and prints its
canonical rendering. If a file is given, the expression is evaluated in a
scope that also sees that file's top-level let bindings.`,
		RunE: mkRunE(c, runEval),
	}
	cmd.Flags().StringP(string(flagExpression), "e", "", "the expression to evaluate")
	return cmd
}

func runEval(c *Command, args []string) error {
	expr := flagExpression.String(c.Flags())
	if expr == "" {
		return fmt.Errorf("eval: --expression is required")
	}

	settings := newSettings(c, nil, c.OutOrStdout())
	importer := eval.NewImporter(newResolver(flagStdRoot.String(c.Flags())), newLoader(flagRoot.String(c.Flags()), flagStdRoot.String(c.Flags())), settings)
	ctx := &eval.Context{Importer: importer, Settings: settings}

	root := value.NewRootEnv()
	root.Define("env", value.EnvProxy{})

	if len(args) > 0 {
		canon, err := importer.Resolve("", args[0])
		if err != nil {
			return err
		}
		v, err := importer.LoadCanonical(canon)
		if err != nil {
			return err
		}
		tup, ok := v.(*value.Tuple)
		if !ok {
			return fmt.Errorf("eval: %s did not evaluate to a tuple", args[0])
		}
		for _, f := range tup.Fields {
			root.Define(f.Name, f.Value)
		}
		ctx.CurrentFile = canon
	}

	x, err := parser.ParseExpr("<expression>", []byte(expr))
	if err != nil {
		return err
	}
	v, err := eval.Eval(x, root, ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), value.Render(v))
	return nil
}
