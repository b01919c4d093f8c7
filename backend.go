package idlc

// Backend is the pair of entry points every target-language emitter
// implements, per spec §4.I.
type Backend interface {
	Name() string
	MarkingStyle() MarkingStyle
	// GenerateImplementation emits the caller-side stub: constants,
	// struct definitions, the interface type, and a per-method wrapper
	// that marshals arguments, calls invoke, and unmarshals results.
	GenerateImplementation(mir *MIR, iface *MIRInterface, cfg *CompilerConfig) string
	// GenerateInvoke emits the callee-side skeleton: an invoke function
	// switching over opcode, unpacking arguments, calling a
	// user-supplied implementation, and packing results.
	GenerateInvoke(mir *MIR, iface *MIRInterface, cfg *CompilerConfig) string
}

// argStepKind tags one entry of a function's marshaling plan.
type argStepKind int

const (
	stepInputPrimitive argStepKind = iota
	stepInputPrimitiveBuffer
	stepInputStruct
	stepInputStructBuffer
	stepInputObject
	stepInputObjectArray
	stepInputBundled
	stepOutputPrimitive
	stepOutputPrimitiveBuffer
	stepOutputStruct
	stepOutputStructBuffer
	stepOutputObject
	stepOutputObjectArray
	stepOutputBundled
)

// argStep is one backend-agnostic marshaling instruction: what shape of
// parameter occupies the next arg-array slot, and (if not a bundle) the
// MIRParam it came from.
type argStep struct {
	kind   argStepKind
	param  MIRParam
	packed *PackedPrimitives
}

// planVisitor collects a function's sorted-and-bundled parameter walk
// into a flat, language-agnostic plan every backend renders from,
// instead of four copies of the same traversal logic with only the
// rendered syntax differing.
type planVisitor struct {
	BaseVisitor
	steps []argStep
}

func (p *planVisitor) VisitInputPrimitive(m MIRParam)       { p.steps = append(p.steps, argStep{kind: stepInputPrimitive, param: m}) }
func (p *planVisitor) VisitInputPrimitiveBuffer(m MIRParam) { p.steps = append(p.steps, argStep{kind: stepInputPrimitiveBuffer, param: m}) }
func (p *planVisitor) VisitInputStruct(m MIRParam)          { p.steps = append(p.steps, argStep{kind: stepInputStruct, param: m}) }
func (p *planVisitor) VisitInputStructBuffer(m MIRParam)    { p.steps = append(p.steps, argStep{kind: stepInputStructBuffer, param: m}) }
func (p *planVisitor) VisitInputObject(m MIRParam)          { p.steps = append(p.steps, argStep{kind: stepInputObject, param: m}) }
func (p *planVisitor) VisitInputObjectArray(m MIRParam)     { p.steps = append(p.steps, argStep{kind: stepInputObjectArray, param: m}) }
func (p *planVisitor) VisitInputBundled(packed *PackedPrimitives) {
	p.steps = append(p.steps, argStep{kind: stepInputBundled, packed: packed})
}

func (p *planVisitor) VisitOutputPrimitive(m MIRParam)       { p.steps = append(p.steps, argStep{kind: stepOutputPrimitive, param: m}) }
func (p *planVisitor) VisitOutputPrimitiveBuffer(m MIRParam) { p.steps = append(p.steps, argStep{kind: stepOutputPrimitiveBuffer, param: m}) }
func (p *planVisitor) VisitOutputStruct(m MIRParam)          { p.steps = append(p.steps, argStep{kind: stepOutputStruct, param: m}) }
func (p *planVisitor) VisitOutputStructBuffer(m MIRParam)    { p.steps = append(p.steps, argStep{kind: stepOutputStructBuffer, param: m}) }
func (p *planVisitor) VisitOutputObject(m MIRParam)          { p.steps = append(p.steps, argStep{kind: stepOutputObject, param: m}) }
func (p *planVisitor) VisitOutputObjectArray(m MIRParam)     { p.steps = append(p.steps, argStep{kind: stepOutputObjectArray, param: m}) }
func (p *planVisitor) VisitOutputBundled(packed *PackedPrimitives) {
	p.steps = append(p.steps, argStep{kind: stepOutputBundled, packed: packed})
}

// buildPlan runs the sorted-and-bundled visit once and returns the flat
// step list every backend's per-method emission walks.
func buildPlan(fn *MIRFunction) []argStep {
	v := &planVisitor{}
	VisitParamsSorted(fn, v)
	return v.steps
}

// inheritedChain returns iface's base chain excluding itself, root-most
// last, for the "re-emit inherited members" requirement every backend
// implements identically.
func inheritedChain(iface *MIRInterface) []*MIRInterface {
	full := iface.Iter()
	if len(full) <= 1 {
		return nil
	}
	return full[1:]
}
