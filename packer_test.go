package idlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func primParam(name string, dir Direction, prim Primitive) MIRParam {
	return MIRParam{
		Direction: dir,
		Ident:     NewIdentNoSpan(name),
		Shape:     MIRParamType{Type: MIRType{Kind: MIRPrimitive, Prim: prim}},
	}
}

func TestPackedPrimitivesSortsDescendingBySizeStably(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("b", DirIn, Uint8),
		primParam("a", DirIn, Int32),
		primParam("c", DirIn, Uint16),
	}}
	packed := NewPackedPrimitives(fn)
	require.Len(t, packed.Inputs, 3)

	names := make([]string, len(packed.Inputs))
	for i, p := range packed.Inputs {
		names[i] = p.Ident.Name
	}
	assert.Equal(t, []string{"a", "c", "b"}, names)
	assert.Equal(t, 4+2+1, packed.InputSize)
}

func TestPackedPrimitivesSeparatesDirections(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("in1", DirIn, Uint32),
		primParam("out1", DirOut, Uint8),
		primParam("in2", DirIn, Uint8),
	}}
	packed := NewPackedPrimitives(fn)
	assert.Equal(t, 2, packed.NInputs())
	assert.Equal(t, 1, packed.NOutputs())
}

func TestPackedPrimitivesSkipsArraysAndStructsAndObjects(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("bare", DirIn, Uint32),
		{Direction: DirIn, Ident: NewIdentNoSpan("buf"), Shape: MIRParamType{IsArray: true, Type: MIRType{Kind: MIRPrimitive, Prim: Uint8}}},
		{Direction: DirIn, Ident: NewIdentNoSpan("handle"), Shape: MIRParamType{Type: MIRType{Kind: MIRObject}}},
	}}
	packed := NewPackedPrimitives(fn)
	require.Len(t, packed.Inputs, 1)
	assert.Equal(t, "bare", packed.Inputs[0].Ident.Name)
}

func TestPackedPrimitivesByIndexRestoresDeclarationOrder(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("b", DirIn, Uint8),
		primParam("a", DirIn, Int32),
	}}
	packed := NewPackedPrimitives(fn)
	byIndex := packed.InputsByIndex()
	require.Len(t, byIndex, 2)
	assert.Equal(t, "b", byIndex[0].Ident.Name)
	assert.Equal(t, "a", byIndex[1].Ident.Name)
}
