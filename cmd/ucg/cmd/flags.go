package cmd

import "github.com/spf13/pflag"

type flagName string

const (
	flagNostrict   flagName = "nostrict"
	flagRoot       flagName = "root"
	flagExpression flagName = "expression"
	flagStdRoot    flagName = "std-root"
)

func (f flagName) Bool(pf *pflag.FlagSet) bool {
	v, _ := pf.GetBool(string(f))
	return v
}

func (f flagName) String(pf *pflag.FlagSet) string {
	v, _ := pf.GetString(string(f))
	return v
}

func addGlobalFlags(pf *pflag.FlagSet) {
	pf.Bool(string(flagNostrict), false, "treat unset environment variables as Null instead of erroring")
	pf.String(string(flagRoot), ".", "root directory imports are resolved against")
	pf.String(string(flagStdRoot), "", "root directory for \"std/...\" imports")
}
