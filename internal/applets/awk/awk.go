// Package awk implements the awk command on top of the record-language
// engine.
package awk

import (
	"context"
	"io"

	engine "github.com/kolkov/vshell/awk"
	"github.com/kolkov/vshell/internal/core"
)

// Run executes awk with the given arguments. Files, including -f program
// files, are read from the process's filesystem relative to its working
// directory.
func Run(ctx context.Context, p *core.Process, args []string) int {
	open := func(name string) (io.ReadCloser, error) {
		return p.Open(name)
	}
	code := engine.Exec(ctx, args, p.In, p.Out, p.Err, open)
	if p.Log != nil {
		p.Log.Debug("awk finished", "args", len(args), "status", code)
	}
	return code
}
