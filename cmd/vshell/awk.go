package main

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kolkov/vshell/internal/applets/awk"
	"github.com/kolkov/vshell/internal/core"
)

func newAwkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "awk [-F fs] [-v var=value] [-f progfile | 'prog'] [file ...]",
		Short: "Run awk directly on host files",
		Long: `Runs the built-in awk without a shell. File operands are read from the
host filesystem, or read-only from the root directory set by the config
file's root key or the VSHELL_ROOT environment variable. Every argument
after "awk" goes to awk itself, so --root is not accepted here.`,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, dir, err := hostFS(cmd)
			if err != nil {
				return err
			}
			p := &core.Process{
				Stdio: core.Stdio{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()},
				FS:    fs,
				Dir:   dir,
				Env:   map[string]string{},
			}
			return statusError(awk.Run(cmd.Context(), p, args))
		},
	}
}

// hostFS returns the filesystem awk reads from. Flag parsing is disabled
// for awk, so --root can only come from the config file or environment.
func hostFS(cmd *cobra.Command) (afero.Fs, string, error) {
	cfg, _, err := loadConfig(cmd, &rootOptions{})
	if err != nil {
		return nil, "", err
	}
	if cfg.Root != "" {
		fs, err := sessionFS(cfg.Root)
		return fs, "/", err
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	return afero.NewOsFs(), dir, nil
}
