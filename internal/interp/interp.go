// Package interp implements the lazy inline resolver and the
// tree-walking evaluator over an *ast.Node tree.
package interp

import (
	"io"

	"github.com/aardvark-lang/aardvark/internal/ast"
)

// Options bounds the interpreter's tables. The reference implementation
// hardcodes these as fixed C arrays (16 globals, 32 locals, 32
// functions, 128 stack slots); here they are per-instance and
// overridable, the functional-options idiom used throughout this
// codebase's constructors.
type Options struct {
	maxGlobals   int
	maxLocals    int
	maxFunctions int
	maxStack     int
}

// Option configures an Interp at construction time.
type Option func(*Options)

// WithMaxGlobals overrides the global-scope table ceiling (default 16).
func WithMaxGlobals(n int) Option { return func(o *Options) { o.maxGlobals = n } }

// WithMaxLocals overrides the local-scope table ceiling (default 32).
func WithMaxLocals(n int) Option { return func(o *Options) { o.maxLocals = n } }

// WithMaxFunctions overrides the function table ceiling (default 32).
func WithMaxFunctions(n int) Option { return func(o *Options) { o.maxFunctions = n } }

// WithStackSize overrides the value stack ceiling (default 128).
func WithStackSize(n int) Option { return func(o *Options) { o.maxStack = n } }

func defaultOptions() Options {
	return Options{maxGlobals: 16, maxLocals: 32, maxFunctions: 32, maxStack: 128}
}

// scopeEntry is a (fingerprint, slot) pair: frame-relative for locals,
// absolute for globals.
type scopeEntry struct {
	ident uint64
	slot  int64
}

// funcEntry is a (fingerprint, function node) pair, registered once
// while evaluating the program node's top level.
type funcEntry struct {
	ident uint64
	node  *ast.Node
}

// Interp encapsulates all interpreter state in an explicit instance
// rather than the reference's process-wide globals, so the interpreter
// can be reentrant and tests can use independent instances. Two Interp
// values never share a value stack, frame pointer, or scope table, so
// many programs can be evaluated concurrently in one process.
type Interp struct {
	output io.Writer
	opts   Options

	stack      []Value
	frameStart int

	local  []scopeEntry // stack, truncated on block exit
	global []scopeEntry // never popped; slots are absolute

	functions []funcEntry
}

// New builds an Interp that writes built-in output (print) to w. Passing
// nil discards output, which is convenient for tests that only care
// about the returned Value or an error.
func New(w io.Writer, opts ...Option) *Interp {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Interp{
		output: w,
		opts:   o,
		stack:  make([]Value, 0, o.maxStack),
	}
}
