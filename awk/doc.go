// Package awk provides the record-language engine behind the shell's awk
// command.
//
// The language is the core of POSIX AWK: BEGIN and END blocks, pattern
// and range rules, fields, user functions, associative arrays and the
// usual built-ins. Regular expressions use coregex with POSIX
// leftmost-longest matching by default.
//
// # Quick Start
//
// For simple one-off execution:
//
//	output, err := awk.Run(`{ print $1 }`, strings.NewReader("hello world"), nil)
//
// With configuration:
//
//	output, err := awk.Run(program, input, &awk.Config{
//	    FS: ":",
//	    Variables: map[string]string{"threshold": "100"},
//	})
//
// # Compiled Programs
//
// For repeated execution of the same program:
//
//	prog, err := awk.Compile(`$1 > threshold { print $2 }`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, file := range files {
//	    output, err := prog.Run(file, &awk.Config{
//	        Variables: map[string]string{"threshold": "100"},
//	    })
//	    // ...
//	}
//
// # Command Lines
//
// [Exec] takes an awk argument vector, opens its files through an
// [Opener] and returns an exit status. The shell's awk command is a thin
// wrapper around it.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [SyntaxError]: errors in program source, reported before anything runs
//   - [InputError]: an input that could not be read
//   - [EvalError]: the first runtime error; the run itself continued
//   - [ExitError]: the program called exit with a nonzero status
//
// # Thread Safety
//
// Compiled [Program] objects are safe for concurrent use.
// Each call to [Program.Run] creates an independent execution context.
package awk
