// appwatch - desktop alerts when watched applications start
// Source: https://github.com/appwatch/appwatch

package main

import (
	"os"

	"github.com/appwatch/appwatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
