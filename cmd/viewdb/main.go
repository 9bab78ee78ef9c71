// Command viewdb is a demo front end for the viewdb store.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/viewdb/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
