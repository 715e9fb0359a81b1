package main

import (
	"context"
	"os"

	"github.com/sdr-ops/dormerge/cmd/virtual-merge/run"
)

func main() {
	ctx := context.Background()
	if err := run.CLI(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
