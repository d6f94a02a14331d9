package stablehlo

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/pkg/errors"
)

// Builder is used to construct a StableHLO program (or "Module")
// See details in New.
type Builder struct {
	name string

	// functions holds all the functions created in the builder's scope.
	functions []*Function
}

// New creates a new Builder object holding a computation graph in construction.
//
// From a builder you can create functions.
// For each function you create operations (ops) one by one, until you defined the desired computation.
//
// You have to define the "main" function for your StableHLO program: you can use Builder.Main to do so, or
// Builder.NewFunction("main",...), it's the same.
//
// Once you are all set, call Builder.Build and it will return the StableHLO program (or "Module") as a []byte that can
// be used with PJRT.
//
// See github.com/gomlx/gopjrt for a Go API to PJRT.
func New(name string) *Builder {
	return &Builder{
		name: name,
	}
}

// Name of the program (module) being built.
func (b *Builder) Name() string {
	return b.name
}

// elementWriter represents elements of StableHLO that know how to write themselves.
type elementWriter interface {
	Write(w io.Writer, indentation string) error
}

// NewFunction creates a new function and adds it to the program.
//
// The function name must be unique in the program.
//
// The inputs are the values that the function will receive as arguments.
// Use Function.Input or Function.NamedInput to create them.
//
// The function body is defined by calling ops on the function object.
//
// See Function.
func (b *Builder) NewFunction(name string) *Function {
	fn := &Function{
		Builder: b,
		Name:    NormalizeIdentifier(name),
	}
	b.functions = append(b.functions, fn)
	return fn
}

const MainFunctionName = "main"

// Main creates the main function of the program.
// It is an alias to Builder.NewFunction("main").
//
// The main function is the entry point of the program, and it's the only function that can be called from outside the program.
//
// Every program must have a main function.
func (b *Builder) Main() *Function {
	return b.NewFunction(MainFunctionName)
}

const IndentationStep = "  "

// Write the StableHLO program (a readable string) to the given writer.
//
// It will write incomplete programs (without a main function or empty statements) without an error
// to help debugging.
//
// See Builder.Build to check and output the program.
func (b *Builder) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter, indentation string) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer, indentation)
	}

	// Write module header
	w("module @%s {\n", NormalizeIdentifier(b.name))

	// Write non-closure functions:
	var count int
	for _, fn := range b.functions {
		if fn.Parent != nil {
			continue
		}
		if count > 0 {
			w("\n\n")
		}
		we(fn, IndentationStep) // Indent functions inside module
		count++
	}
	w("\n}\n") // Close module block
	return err
}

// Build checks the validity and builds the StableHLO program.
//
// If you want the output of an incomplete program (without the checking), use Builder.Write instead.
func (b *Builder) Build() ([]byte, error) {
	hasMain := false
	var names []string
	for _, fn := range b.functions {
		if fn.Parent != nil {
			continue
		}
		if slices.Contains(names, fn.Name) {
			return nil, errors.Errorf("duplicate function name %q", fn.Name)
		}
		names = append(names, fn.Name)
		if fn.Name == MainFunctionName {
			hasMain = true
		}
		if !fn.Returned {
			return nil, errors.Errorf("function %q has no return statement", fn.Name)
		}
	}
	if !hasMain {
		return nil, errors.New("program must have a main function")
	}

	var buf bytes.Buffer
	err := b.Write(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
