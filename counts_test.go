package idlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func arrayPrimParam(name string, dir Direction, prim Primitive) MIRParam {
	return MIRParam{
		Direction: dir,
		Ident:     NewIdentNoSpan(name),
		Shape:     MIRParamType{IsArray: true, Type: MIRType{Kind: MIRPrimitive, Prim: prim}},
	}
}

func objectParam(name string, dir Direction, isArray bool, boundedCount int, hasBound bool) MIRParam {
	return MIRParam{
		Direction: dir,
		Ident:     NewIdentNoSpan(name),
		Shape:     MIRParamType{IsArray: isArray, Type: MIRType{Kind: MIRObject}, BoundedCount: boundedCount, HasBoundCount: hasBound},
	}
}

func TestCounterFoldsMultipleBarePrimitivesIntoOneBufferPerDirection(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("a", DirIn, Uint32),
		primParam("b", DirIn, Uint8),
		primParam("c", DirOut, Uint16),
	}}
	c := NewCounter(fn)
	assert.Equal(t, 1, c.InputBuffers)
	assert.Equal(t, 1, c.OutputBuffers)
	assert.Equal(t, 0, c.InputObjects)
	assert.Equal(t, 0, c.OutputObjects)
}

func TestCounterCountsPrimitiveBufferSeparatelyFromBarePrimitives(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("a", DirIn, Uint32),
		arrayPrimParam("buf", DirIn, Uint8),
	}}
	c := NewCounter(fn)
	assert.Equal(t, 2, c.InputBuffers)
}

func TestCounterCountsObjectsAndObjectArraysWithBound(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		objectParam("single", DirIn, false, 0, false),
		objectParam("many", DirIn, true, 4, true),
	}}
	c := NewCounter(fn)
	assert.Equal(t, 1+4, c.InputObjects)
}

func TestCounterUnboundedObjectArrayFallsBackToOne(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		objectParam("unbounded", DirOut, true, 0, false),
	}}
	c := NewCounter(fn)
	assert.Equal(t, 1, c.OutputObjects)
}

func TestCounterTotalSumsAllCategories(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("a", DirIn, Uint32),
		objectParam("obj", DirOut, false, 0, false),
	}}
	c := NewCounter(fn)
	assert.Equal(t, c.InputBuffers+c.OutputBuffers+c.InputObjects+c.OutputObjects, c.Total())
	assert.Equal(t, 2, c.Total())
}
