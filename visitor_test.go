package idlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingVisitor struct {
	BaseVisitor
	calls []string
}

func (r *recordingVisitor) VisitInputPrimitive(p MIRParam)  { r.calls = append(r.calls, "in:"+p.Ident.Name) }
func (r *recordingVisitor) VisitOutputPrimitive(p MIRParam) { r.calls = append(r.calls, "out:"+p.Ident.Name) }
func (r *recordingVisitor) VisitInputObject(p MIRParam)     { r.calls = append(r.calls, "inobj:"+p.Ident.Name) }
func (r *recordingVisitor) VisitOutputObject(p MIRParam)    { r.calls = append(r.calls, "outobj:"+p.Ident.Name) }
func (r *recordingVisitor) VisitInputBundled(*PackedPrimitives) {
	r.calls = append(r.calls, "bundle:in")
}
func (r *recordingVisitor) VisitOutputBundled(*PackedPrimitives) {
	r.calls = append(r.calls, "bundle:out")
}

func TestVisitParamsCallsOneCallbackPerParamNoBundling(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("a", DirIn, Uint32),
		primParam("b", DirIn, Uint8),
	}}
	v := &recordingVisitor{}
	VisitParams(fn, v)
	assert.Equal(t, []string{"in:a", "in:b"}, v.calls)
}

func TestVisitParamsSortedBundlesMultipleBarePrimitivesPerDirection(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("a", DirIn, Uint32),
		primParam("b", DirIn, Uint8),
		{Direction: DirIn, Ident: NewIdentNoSpan("handle"), Shape: MIRParamType{Type: MIRType{Kind: MIRObject}}},
	}}
	v := &recordingVisitor{}
	VisitParamsSorted(fn, v)
	require.Equal(t, []string{"bundle:in", "inobj:handle"}, v.calls)
}

func TestVisitParamsSortedLeavesSingleBarePrimitiveUnbundled(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("only", DirIn, Uint32),
	}}
	v := &recordingVisitor{}
	VisitParamsSorted(fn, v)
	assert.Equal(t, []string{"in:only"}, v.calls)
}

func TestVisitParamsSortedBundlesInputsAndOutputsIndependently(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		primParam("a", DirIn, Uint32),
		primParam("b", DirIn, Uint8),
		primParam("x", DirOut, Uint16),
		primParam("y", DirOut, Uint8),
	}}
	v := &recordingVisitor{}
	VisitParamsSorted(fn, v)
	assert.Equal(t, []string{"bundle:in", "bundle:out"}, v.calls)
}

func TestVisitParamsSortedReordersAcrossDirectionRegardlessOfDeclarationOrder(t *testing.T) {
	fn := &MIRFunction{Params: []MIRParam{
		{Direction: DirOut, Ident: NewIdentNoSpan("handle"), Shape: MIRParamType{Type: MIRType{Kind: MIRObject}}},
		primParam("a", DirIn, Uint32),
	}}
	v := &recordingVisitor{}
	VisitParamsSorted(fn, v)
	assert.Equal(t, []string{"in:a", "outobj:handle"}, v.calls)
}
