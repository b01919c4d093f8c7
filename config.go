package idlc

// CompilerConfig carries every cross-cutting knob the pipeline consults,
// the way teacher's Config/cfgVal map threaded grammar.*/compiler.*
// settings through the parser and codegen stages. The settings here are a
// fixed, known shape rather than an open key-value map, since the CLI
// surface exposing them (spec §6) is itself fixed.
type CompilerConfig struct {
	// AllowUndefinedBehavior suppresses the constant-literal range check,
	// so an out-of-range literal is passed through textually instead of
	// being fatal.
	AllowUndefinedBehavior bool

	// SmallStructThreshold is the byte size at or below which MIR lowering
	// classifies a struct as StructSmall rather than StructBig. Defaults to
	// 16 bytes. Parameter marshaling does not depend on the class.
	SmallStructThreshold int

	// NoTypedObjects disables the C backend's generated per-interface
	// object-handle typedefs, falling back to the bare handle struct.
	NoTypedObjects bool

	// IncludeRoots are searched, in order, for an include path that
	// isn't relative to its includer's own directory. First match wins;
	// additional matches produce a Warning rather than a fatal.
	IncludeRoots []string

	// MarkingFile, if set, is prefixed (per backend comment style) onto
	// every generated file, e.g. a license header.
	MarkingFile string

	// TimePhases enables the optional per-phase timing report.
	TimePhases bool
}

// NewCompilerConfig returns a CompilerConfig primed with the defaults
// every invocation gets unless overridden by a CLI flag.
func NewCompilerConfig() *CompilerConfig {
	return &CompilerConfig{
		SmallStructThreshold: 16,
		IncludeRoots:         nil,
	}
}
