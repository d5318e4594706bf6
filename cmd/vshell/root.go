package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kolkov/vshell"
	"github.com/kolkov/vshell/internal/config"
)

// exitStatus carries a command's exit status out of cobra.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

type rootOptions struct {
	command  string
	cfgFile  string
	root     string
	logLevel string
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	fmt.Fprintf(stderr, "vshell: %v\n", err)
	return 2
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "vshell [-c command]",
		Short: "A virtual shell with a built-in awk",
		Long: `vshell runs shell command lines against built-in commands (awk, cat,
echo, which, true, false) over a virtual filesystem. Nothing is executed
on the host.

Without -c, command lines are read from standard input, one per line.

Settings come from vshell.yaml (or .toml/.json) in the working directory
or the user config directory, VSHELL_* environment variables, and flags.`,
		Example: `  vshell -c "echo 'a b c' | awk '{print \$2}'"
  vshell --root ./data -c "awk -F, '{s += \$3} END {print s}' /sales.csv"
  vshell awk '{print \$1}' /etc/passwd`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.command, "command", "c", "", "run this command line and exit")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./vshell.yaml)")
	cmd.PersistentFlags().StringVar(&opts.root, "root", "", "host directory to expose read-only as /")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(newAwkCmd(), newVersionCmd())
	return cmd
}

func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, *log.Logger, error) {
	cfg, err := config.Load(opts.cfgFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "vshell",
		Level:  cfg.Level(),
	})
	return cfg, logger, nil
}

// sessionFS returns an in-memory filesystem, or one layered over a
// read-only host directory so writes never reach the host.
func sessionFS(root string) (afero.Fs, error) {
	if root == "" {
		return afero.NewMemMapFs(), nil
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root: %s is not a directory", root)
	}
	base := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), root))
	return afero.NewCopyOnWriteFs(base, afero.NewMemMapFs()), nil
}

func runShell(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	fs, err := sessionFS(cfg.Root)
	if err != nil {
		return err
	}
	env, err := vshell.New(vshell.Options{
		FS:     fs,
		Files:  cfg.FileMap(),
		Env:    cfg.Variables(),
		Logger: logger,
	})
	if err != nil {
		return err
	}
	logger.Debug("session ready", "root", cfg.Root, "files", len(cfg.Files))

	ctx := cmd.Context()
	in, out, errw := cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()
	if cmd.Flags().Changed("command") {
		return statusError(env.Run(ctx, opts.command, in, out, errw))
	}

	interactive := isTerminal(in)
	scanner := bufio.NewScanner(in)
	status := 0
	for {
		if interactive {
			fmt.Fprint(out, "$ ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		status = env.Run(ctx, line, strings.NewReader(""), out, errw)
		if ctx.Err() != nil {
			break
		}
	}
	if interactive {
		fmt.Fprintln(out)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return statusError(status)
}

func statusError(code int) error {
	if code == 0 {
		return nil
	}
	return exitStatus(code)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
