package idlc

import "sort"

// ParameterVisitor is the callback set a codegen backend implements to
// receive each of a function's parameters in turn, once per concrete
// shape. Grounded on idlc_codegen/src/functions.rs::ParameterVisitor —
// Go has no default trait methods, so BaseVisitor below supplies the
// same "no-op unless overridden" behavior via embedding.
type ParameterVisitor interface {
	VisitInputPrimitive(p MIRParam)
	VisitInputPrimitiveBuffer(p MIRParam)
	VisitInputStruct(p MIRParam)
	VisitInputStructBuffer(p MIRParam)
	VisitInputObject(p MIRParam)
	VisitInputObjectArray(p MIRParam)
	VisitInputBundled(packed *PackedPrimitives)

	VisitOutputPrimitive(p MIRParam)
	VisitOutputPrimitiveBuffer(p MIRParam)
	VisitOutputStruct(p MIRParam)
	VisitOutputStructBuffer(p MIRParam)
	VisitOutputObject(p MIRParam)
	VisitOutputObjectArray(p MIRParam)
	VisitOutputBundled(packed *PackedPrimitives)
}

// BaseVisitor implements every ParameterVisitor method as a no-op so
// concrete visitors (Counter, and each backend's emitter) only need to
// override the cases they care about.
type BaseVisitor struct{}

func (BaseVisitor) VisitInputPrimitive(MIRParam)         {}
func (BaseVisitor) VisitInputPrimitiveBuffer(MIRParam)   {}
func (BaseVisitor) VisitInputStruct(MIRParam)            {}
func (BaseVisitor) VisitInputStructBuffer(MIRParam)      {}
func (BaseVisitor) VisitInputObject(MIRParam)            {}
func (BaseVisitor) VisitInputObjectArray(MIRParam)       {}
func (BaseVisitor) VisitInputBundled(*PackedPrimitives)  {}
func (BaseVisitor) VisitOutputPrimitive(MIRParam)        {}
func (BaseVisitor) VisitOutputPrimitiveBuffer(MIRParam)  {}
func (BaseVisitor) VisitOutputStruct(MIRParam)           {}
func (BaseVisitor) VisitOutputStructBuffer(MIRParam)     {}
func (BaseVisitor) VisitOutputObject(MIRParam)           {}
func (BaseVisitor) VisitOutputObjectArray(MIRParam)      {}
func (BaseVisitor) VisitOutputBundled(*PackedPrimitives) {}

type paramShape int

const (
	shapeInputPrimitive paramShape = iota
	shapeInputPrimitiveBuffer
	shapeInputStruct
	shapeInputStructBuffer
	shapeInputObject
	shapeInputObjectArray
	shapeOutputPrimitive
	shapeOutputPrimitiveBuffer
	shapeOutputStruct
	shapeOutputStructBuffer
	shapeOutputObject
	shapeOutputObjectArray
)

func classify(p MIRParam) paramShape {
	in := p.Direction == DirIn
	switch p.Shape.Type.Kind {
	case MIRPrimitive:
		if p.Shape.IsArray {
			if in {
				return shapeInputPrimitiveBuffer
			}
			return shapeOutputPrimitiveBuffer
		}
		if in {
			return shapeInputPrimitive
		}
		return shapeOutputPrimitive
	case MIRStructRef:
		if p.Shape.IsArray {
			if in {
				return shapeInputStructBuffer
			}
			return shapeOutputStructBuffer
		}
		if in {
			return shapeInputStruct
		}
		return shapeOutputStruct
	case MIRObject:
		if p.Shape.IsArray {
			if in {
				return shapeInputObjectArray
			}
			return shapeOutputObjectArray
		}
		if in {
			return shapeInputObject
		}
		return shapeOutputObject
	default:
		return shapeInputPrimitive
	}
}

func dispatch(v ParameterVisitor, p MIRParam) {
	switch classify(p) {
	case shapeInputPrimitive:
		v.VisitInputPrimitive(p)
	case shapeInputPrimitiveBuffer:
		v.VisitInputPrimitiveBuffer(p)
	case shapeInputStruct:
		v.VisitInputStruct(p)
	case shapeInputStructBuffer:
		v.VisitInputStructBuffer(p)
	case shapeInputObject:
		v.VisitInputObject(p)
	case shapeInputObjectArray:
		v.VisitInputObjectArray(p)
	case shapeOutputPrimitive:
		v.VisitOutputPrimitive(p)
	case shapeOutputPrimitiveBuffer:
		v.VisitOutputPrimitiveBuffer(p)
	case shapeOutputStruct:
		v.VisitOutputStruct(p)
	case shapeOutputStructBuffer:
		v.VisitOutputStructBuffer(p)
	case shapeOutputObject:
		v.VisitOutputObject(p)
	case shapeOutputObjectArray:
		v.VisitOutputObjectArray(p)
	}
}

// VisitParams walks fn's parameters in plain declaration order, calling
// one callback per parameter. No bundling occurs here.
func VisitParams(fn *MIRFunction, v ParameterVisitor) {
	for _, p := range fn.Params {
		dispatch(v, p)
	}
}

// visitEntry is either a concrete parameter or a bundle marker standing
// in for every bare input/output primitive at the position the first
// one would otherwise have occupied.
type visitEntry struct {
	param     MIRParam
	isBundle  bool
	bundleDir Direction
}

// classRank orders a param's shape from smallest/fixed to largest/variable
// within one direction: bare scalars first, then structs and objects, then
// the buffer/array shapes, so the wire layout groups fixed-size fields
// ahead of variable-length ones. Grounded on
// idlc_codegen/src/functions.rs::Param's derived field order (Value before
// Array within ParamTypeIn/ParamTypeOut).
func classRank(shape paramShape) int {
	switch shape {
	case shapeInputPrimitive, shapeOutputPrimitive:
		return 0
	case shapeInputStruct, shapeOutputStruct:
		return 1
	case shapeInputObject, shapeOutputObject:
		return 2
	case shapeInputPrimitiveBuffer, shapeOutputPrimitiveBuffer:
		return 3
	case shapeInputStructBuffer, shapeOutputStructBuffer:
		return 4
	default:
		return 5
	}
}

func directionRank(d Direction) int {
	if d == DirOut {
		return 1
	}
	return 0
}

// sortedParams returns fn's parameters ordered by (direction, type-size
// class), stable by declaration order within a class, matching
// idlc_codegen/src/functions.rs::visit_params_sorted's params.sort().
func sortedParams(fn *MIRFunction) []MIRParam {
	params := make([]MIRParam, len(fn.Params))
	copy(params, fn.Params)
	sort.SliceStable(params, func(i, j int) bool {
		di, dj := directionRank(params[i].Direction), directionRank(params[j].Direction)
		if di != dj {
			return di < dj
		}
		return classRank(classify(params[i])) < classRank(classify(params[j]))
	})
	return params
}

// VisitParamsSorted walks fn's parameters sorted by (direction,
// type-size class) with primitive bundling applied: when more than one
// bare input primitive exists, VisitInputBundled fires once, at the
// position the first such parameter occupied in the sorted order, and
// the individual primitives are omitted from the rest of the walk; the
// same applies to outputs. Grounded on
// idlc_codegen/src/functions.rs::Param::new/visit_params_sorted.
func VisitParamsSorted(fn *MIRFunction, v ParameterVisitor) {
	packed := NewPackedPrimitives(fn)
	bundleInputs := packed.NInputs() > 1
	bundleOutputs := packed.NOutputs() > 1

	var entries []visitEntry
	inputBundlePlaced := false
	outputBundlePlaced := false

	for _, p := range sortedParams(fn) {
		shape := classify(p)

		if shape == shapeInputPrimitive && bundleInputs {
			if !inputBundlePlaced {
				entries = append(entries, visitEntry{isBundle: true, bundleDir: DirIn})
				inputBundlePlaced = true
			}
			continue
		}
		if shape == shapeOutputPrimitive && bundleOutputs {
			if !outputBundlePlaced {
				entries = append(entries, visitEntry{isBundle: true, bundleDir: DirOut})
				outputBundlePlaced = true
			}
			continue
		}
		entries = append(entries, visitEntry{param: p})
	}

	for _, e := range entries {
		if e.isBundle {
			if e.bundleDir == DirIn {
				v.VisitInputBundled(packed)
			} else {
				v.VisitOutputBundled(packed)
			}
			continue
		}
		dispatch(v, e.param)
	}
}
