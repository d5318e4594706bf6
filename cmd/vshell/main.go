// vshell - a virtual shell with a built-in awk.
//
// Runs command lines against Go implementations of awk, echo, cat and
// which over an in-memory filesystem, optionally layered on a read-only
// host directory.
package main

import (
	"context"
	"os"
	"os/signal"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
