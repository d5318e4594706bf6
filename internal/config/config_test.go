package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "warn" || cfg.Path != "/bin:/usr/bin" || cfg.Root != "" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Level() != log.WarnLevel {
		t.Errorf("level = %v", cfg.Level())
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "vshell.yaml", `
log_level: debug
path: /bin
env:
  - GREETING=hello
  - Mixed=Case
files:
  - path: /Data.txt
    content: "a b\n"
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("level = %v", cfg.Level())
	}
	vars := cfg.Variables()
	if vars["GREETING"] != "hello" || vars["Mixed"] != "Case" || vars["PATH"] != "/bin" {
		t.Errorf("vars = %v", vars)
	}
	files := cfg.FileMap()
	if files["/Data.txt"] != "a b\n" {
		t.Errorf("files = %v", files)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "vshell.json", `{"env": ["X=1"]}`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variables()["X"] != "1" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadSearchesWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vshell.toml"), []byte("log_level = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "vshell.yaml", "log_level: info\nroot: /from/file\n")

	t.Setenv("VSHELL_LOG_LEVEL", "error")
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("environment did not override file: %q", cfg.LogLevel)
	}

	flags := pflag.NewFlagSet("vshell", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	flags.String("root", "", "")
	if err := flags.Parse([]string{"--log-level", "debug"}); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path, flags)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("flag did not override environment: %q", cfg.LogLevel)
	}
	if cfg.Root != "/from/file" {
		t.Errorf("unset flag overrode file: root = %q", cfg.Root)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "log_level: loud\n"},
		{"bad env", "env: [NOEQUALS]\n"},
		{"relative file", "files:\n  - path: rel.txt\n    content: x\n"},
		{"bad yaml", "log_level: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, "vshell.yaml", tt.content), nil); err == nil {
				t.Error("Load succeeded")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("Load of a missing explicit file succeeded")
	}
}
