// Command ucg evaluates Universal Configuration Grammar files.
package main

import (
	"os"

	"github.com/jfranklin9000/ucg/cmd/ucg/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
