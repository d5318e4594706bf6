package core

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func newProcess(t *testing.T, files map[string]string) *Process {
	t.Helper()
	mem := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(mem, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return &Process{FS: mem, Dir: "/home"}
}

func TestAbs(t *testing.T) {
	p := &Process{Dir: "/home/user"}
	tests := []struct {
		name string
		want string
	}{
		{"file.txt", "/home/user/file.txt"},
		{"../x", "/home/x"},
		{"/etc//passwd", "/etc/passwd"},
		{".", "/home/user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Abs(tt.name); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if got := (&Process{}).Abs("a"); got != "/a" {
		t.Errorf("empty Dir: got %q, want /a", got)
	}
}

func TestOpen(t *testing.T) {
	p := newProcess(t, map[string]string{"/home/notes.txt": "hi\n"})

	f, err := p.Open("notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(f)
	f.Close()
	if string(data) != "hi\n" {
		t.Errorf("got %q", data)
	}

	if _, err := p.Open("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
	if _, err := p.Open("/home"); !errors.Is(err, ErrIsDir) {
		t.Errorf("directory: err = %v", err)
	}
}

func TestExists(t *testing.T) {
	p := newProcess(t, map[string]string{"/bin/awk": ""})
	if !p.Exists("/bin/awk") {
		t.Error("/bin/awk should exist")
	}
	if p.Exists("/bin/sed") {
		t.Error("/bin/sed should not exist")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, "No such file or directory"},
		{fs.ErrPermission, "Permission denied"},
		{&fs.PathError{Op: "open", Path: "x", Err: ErrIsDir}, "Is a directory"},
		{&fs.PathError{Op: "read", Path: "x", Err: errors.New("boom")}, "boom"},
		{errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		if got := Describe(tt.err); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestErrors(t *testing.T) {
	var errBuf bytes.Buffer
	stdio := &Stdio{Err: &errBuf}
	if code := UsageError(stdio, "cat", "invalid option -- 'z'"); code != ExitUsage {
		t.Errorf("UsageError code = %d", code)
	}
	if code := FileError(stdio, "cat", "f", fs.ErrNotExist); code != ExitFailure {
		t.Errorf("FileError code = %d", code)
	}
	want := "cat: invalid option -- 'z'\ncat: f: No such file or directory\n"
	if errBuf.String() != want {
		t.Errorf("stderr = %q, want %q", errBuf.String(), want)
	}
}

func TestHelp(t *testing.T) {
	var buf bytes.Buffer
	Help{
		Name:    "which",
		Summary: "locate a command",
		Usage:   "which [-as] program ...",
		Options: []string{"-a  all"},
	}.Write(&buf)
	out := buf.String()
	for _, want := range []string{"which - locate a command", "Usage: which [-as] program ...", "  -a  all"} {
		if !strings.Contains(out, want) {
			t.Errorf("help %q missing %q", out, want)
		}
	}
}

func TestHasHelpFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--help"}, true},
		{[]string{"-n", "--help"}, true},
		{[]string{"--", "--help"}, false},
		{[]string{"-h"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasHelpFlag(tt.args); got != tt.want {
			t.Errorf("HasHelpFlag(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestSplitPath(t *testing.T) {
	got := SplitPath("/bin::/usr/bin:")
	if len(got) != 2 || got[0] != "/bin" || got[1] != "/usr/bin" {
		t.Errorf("got %q", got)
	}
}
