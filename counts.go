package idlc

// Counter tallies the buffer/object counts a function's marshaled call
// needs: one buffer per array parameter (primitive or struct), one
// buffer per single struct, one object per single interface parameter
// (N for an interface array), and at most one shared buffer per
// direction for bundled bare primitives. Grounded on
// idlc_codegen/src/counts.rs::Counter.
type Counter struct {
	BaseVisitor

	InputBuffers  int
	OutputBuffers int
	InputObjects  int
	OutputObjects int

	hasPrimitiveInput  bool
	hasPrimitiveOutput bool
}

func (c *Counter) VisitInputPrimitive(MIRParam)       { c.hasPrimitiveInput = true }
func (c *Counter) VisitInputPrimitiveBuffer(MIRParam) { c.InputBuffers++ }
func (c *Counter) VisitInputStruct(MIRParam)          { c.InputBuffers++ }
func (c *Counter) VisitInputStructBuffer(MIRParam)    { c.InputBuffers++ }
func (c *Counter) VisitInputObject(MIRParam)          { c.InputObjects++ }
func (c *Counter) VisitInputObjectArray(p MIRParam) {
	c.InputObjects += boundedCountOr(p.Shape, 1)
}

func (c *Counter) VisitOutputPrimitive(MIRParam)       { c.hasPrimitiveOutput = true }
func (c *Counter) VisitOutputPrimitiveBuffer(MIRParam) { c.OutputBuffers++ }
func (c *Counter) VisitOutputStruct(MIRParam)          { c.OutputBuffers++ }
func (c *Counter) VisitOutputStructBuffer(MIRParam)    { c.OutputBuffers++ }
func (c *Counter) VisitOutputObject(MIRParam)          { c.OutputObjects++ }
func (c *Counter) VisitOutputObjectArray(p MIRParam) {
	c.OutputObjects += boundedCountOr(p.Shape, 1)
}

func boundedCountOr(shape MIRParamType, fallback int) int {
	if shape.HasBoundCount {
		return shape.BoundedCount
	}
	return fallback
}

// NewCounter tallies fn's parameters with an unsorted walk (bundling
// doesn't affect the counts, only the wire order) and folds the bundled
// primitive buffer into input/output buffer counts exactly once.
func NewCounter(fn *MIRFunction) *Counter {
	c := &Counter{}
	VisitParams(fn, c)
	if c.hasPrimitiveInput {
		c.InputBuffers++
	}
	if c.hasPrimitiveOutput {
		c.OutputBuffers++
	}
	return c
}

// Total is the sum of every buffer/object count, i.e. how many arg-array
// slots the marshaled call occupies.
func (c *Counter) Total() int {
	return c.InputBuffers + c.OutputBuffers + c.InputObjects + c.OutputObjects
}
