// Package options holds the immutable compiler configuration. A
// configuration is built once per run, before any source input is read,
// and is never mutated afterwards.
package options

// DefaultNamespace is the global object generated code is exported under
// in non-module JavaScript environments.
const DefaultNamespace = "PS"

// Codegen holds the code-generation subset of the configuration.
type Codegen struct {
	// BrowserNamespace is the global object name generated code attaches to.
	BrowserNamespace string

	// DCERoots lists dead-code-elimination root modules. Non-empty enables
	// elimination: only the transitive dependency closure of these modules
	// is emitted. Ordered set semantics: insertion order is preserved,
	// duplicates are dropped.
	DCERoots []string

	// CodegenModules restricts which modules get JavaScript and externs
	// output. Empty means all compiled modules. Same ordered set semantics
	// as DCERoots.
	CodegenModules []string
}

// Options is the full compiler configuration. Flags compose orthogonally;
// no combination is invalid.
type Options struct {
	// NoPrelude disables injection of the implicit Prelude module.
	NoPrelude bool

	// NoTCO disables tail-call optimization.
	NoTCO bool

	// NoMagicDo disables the specialized effect-block code generation and
	// falls back to explicit bind chains.
	NoMagicDo bool

	// NoOpts disables the optimization phase.
	NoOpts bool

	// NoPrefix omits the generated-by header comment.
	NoPrefix bool

	// VerboseErrors enables verbose diagnostic output on failure.
	VerboseErrors bool

	// EntryModule names the module whose main is invoked by generated
	// code. Empty means no entry-point invocation is generated.
	EntryModule string

	Codegen Codegen
}

// Option configures a single setting on an Options value under construction.
type Option func(*Options)

// WithNoPrelude disables prelude injection.
func WithNoPrelude() Option {
	return func(o *Options) { o.NoPrelude = true }
}

// WithNoTCO disables tail-call optimization.
func WithNoTCO() Option {
	return func(o *Options) { o.NoTCO = true }
}

// WithNoMagicDo disables the specialized effect-block code generation.
func WithNoMagicDo() Option {
	return func(o *Options) { o.NoMagicDo = true }
}

// WithNoOpts disables the optimization phase.
func WithNoOpts() Option {
	return func(o *Options) { o.NoOpts = true }
}

// WithNoPrefix omits the generated-by header comment.
func WithNoPrefix() Option {
	return func(o *Options) { o.NoPrefix = true }
}

// WithVerboseErrors enables verbose diagnostics.
func WithVerboseErrors() Option {
	return func(o *Options) { o.VerboseErrors = true }
}

// WithEntryModule sets the module whose main is invoked by generated code.
func WithEntryModule(name string) Option {
	return func(o *Options) { o.EntryModule = name }
}

// WithBrowserNamespace overrides the default global namespace object.
func WithBrowserNamespace(ns string) Option {
	return func(o *Options) {
		if ns != "" {
			o.Codegen.BrowserNamespace = ns
		}
	}
}

// WithDCERoot adds a dead-code-elimination root module. Repeated insertion
// of the same name is a no-op; insertion order is preserved.
func WithDCERoot(name string) Option {
	return func(o *Options) {
		o.Codegen.DCERoots = insert(o.Codegen.DCERoots, name)
	}
}

// WithCodegenModule restricts codegen output to the named module (and any
// previously added ones). Same ordered set semantics as WithDCERoot.
func WithCodegenModule(name string) Option {
	return func(o *Options) {
		o.Codegen.CodegenModules = insert(o.Codegen.CodegenModules, name)
	}
}

// New builds a validated configuration from the given settings. New is
// pure: it performs no I/O and the returned value is treated as immutable
// by every consumer.
func New(opts ...Option) Options {
	o := Options{
		Codegen: Codegen{BrowserNamespace: DefaultNamespace},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// insert appends name to set unless already present.
func insert(set []string, name string) []string {
	for _, existing := range set {
		if existing == name {
			return set
		}
	}
	return append(set, name)
}
