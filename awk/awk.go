package awk

import (
	"io"

	"github.com/kolkov/vshell/internal/interp"
	"github.com/kolkov/vshell/internal/parser"
)

// Version is the engine version string.
const Version = "0.2.0"

// Run executes a program with the given input.
// This is a convenience function for one-off execution.
// For repeated execution of the same program, use Compile followed by Program.Run.
//
// Parameters:
//   - program: program source code
//   - input: input data reader (can be nil for programs without input)
//   - config: execution configuration (can be nil for defaults)
//
// Returns the program output as a string, or an error if parsing
// or execution fails.
//
// Example:
//
//	output, err := awk.Run(`{ print $1 }`, strings.NewReader("hello world"), nil)
//	// output: "hello\n"
func Run(program string, input io.Reader, config *Config) (string, error) {
	prog, err := Compile(program)
	if err != nil {
		return "", err
	}
	return prog.Run(input, config)
}

// Compile parses a program and prepares it for execution.
// The returned Program can be executed multiple times with different inputs.
//
// Example:
//
//	prog, err := awk.Compile(`{ sum += $1 } END { print sum }`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	output1, _ := prog.Run(file1, nil)
//	output2, _ := prog.Run(file2, nil)
func Compile(program string) (*Program, error) {
	astProg, err := parser.Parse(program)
	if err != nil {
		return nil, publicError(err)
	}
	prog, err := interp.New(astProg)
	if err != nil {
		return nil, publicError(err)
	}
	return &Program{prog: prog, source: program}, nil
}

// MustCompile is like Compile but panics if the program cannot be compiled.
// It simplifies initialization of global program variables.
//
// Example:
//
//	var sumProgram = awk.MustCompile(`{ sum += $1 } END { print sum }`)
func MustCompile(program string) *Program {
	prog, err := Compile(program)
	if err != nil {
		panic(err)
	}
	return prog
}
