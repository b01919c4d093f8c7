package idlc

import "sort"

// PackedPair is one primitive parameter slotted into the shared bundle,
// with its position among the declared parameters of its direction.
type PackedPair struct {
	Ident     Ident
	Prim      Primitive
	NthParam  int
}

// PackedPrimitives gathers every bare (non-array) primitive parameter in
// each direction, sorted descending by primitive size (stable by
// declaration order), the way a single packed struct would lay them out
// to avoid padding. Grounded on idlc_codegen/src/serialization.rs.
type PackedPrimitives struct {
	Inputs  []PackedPair
	Outputs []PackedPair

	InputSize  int
	OutputSize int
}

// NewPackedPrimitives walks fn's parameters in declaration order and
// builds the packed-and-sorted view of its bare primitive parameters.
func NewPackedPrimitives(fn *MIRFunction) *PackedPrimitives {
	p := &PackedPrimitives{}
	inIdx, outIdx := 0, 0

	for _, param := range fn.Params {
		if param.Shape.IsArray || param.Shape.Type.Kind != MIRPrimitive {
			if param.Direction == DirIn {
				inIdx++
			} else {
				outIdx++
			}
			continue
		}
		pair := PackedPair{Ident: param.Ident, Prim: param.Shape.Type.Prim}
		if param.Direction == DirIn {
			pair.NthParam = inIdx
			p.Inputs = append(p.Inputs, pair)
			p.InputSize += pair.Prim.Size()
			inIdx++
		} else {
			pair.NthParam = outIdx
			p.Outputs = append(p.Outputs, pair)
			p.OutputSize += pair.Prim.Size()
			outIdx++
		}
	}

	stableSortDescendingBySize(p.Inputs)
	stableSortDescendingBySize(p.Outputs)
	return p
}

func stableSortDescendingBySize(pairs []PackedPair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Prim.Size() > pairs[j].Prim.Size()
	})
}

func (p *PackedPrimitives) NInputs() int  { return len(p.Inputs) }
func (p *PackedPrimitives) NOutputs() int { return len(p.Outputs) }

// InputsByIndex returns the packed inputs ordered by their original
// declaration index rather than by packed (size-sorted) order.
func (p *PackedPrimitives) InputsByIndex() []PackedPair {
	out := append([]PackedPair{}, p.Inputs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].NthParam < out[j].NthParam })
	return out
}

// OutputsByIndex mirrors InputsByIndex for the output direction.
func (p *PackedPrimitives) OutputsByIndex() []PackedPair {
	out := append([]PackedPair{}, p.Outputs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].NthParam < out[j].NthParam })
	return out
}

// InputTypes returns just the primitives of the packed inputs, in packed
// order, for backends that only need the type list (e.g. to size a
// struct definition).
func (p *PackedPrimitives) InputTypes() []Primitive {
	out := make([]Primitive, len(p.Inputs))
	for i, pair := range p.Inputs {
		out[i] = pair.Prim
	}
	return out
}

func (p *PackedPrimitives) OutputTypes() []Primitive {
	out := make([]Primitive, len(p.Outputs))
	for i, pair := range p.Outputs {
		out[i] = pair.Prim
	}
	return out
}
