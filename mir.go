package idlc

// ErrorCodeStart is the first value assigned to a declared error; codes
// 0-9 are reserved for generic/transport errors (spec §6's "Emitted
// artifacts").
const ErrorCodeStart int32 = 10

// MaxOpCode is the highest opcode a method may be assigned.
const MaxOpCode uint32 = 0x3fff

// StructClass is whether a struct's size falls at or under the
// configured small/big threshold. It is recorded on each MIRStruct and
// shown by --dump mir; the packer and the parameter visitor do not read
// it, so every single struct parameter takes its own buffer slot.
type StructClass int

const (
	StructSmall StructClass = iota
	StructBig
)

// MIRTypeKind distinguishes the three shapes an MIRType can take.
type MIRTypeKind int

const (
	MIRPrimitive MIRTypeKind = iota
	MIRStructRef
	MIRObject
)

// MIRType is a field/parameter type after lowering: Custom references
// are resolved to a concrete *MIRStruct rather than carrying a bare name.
type MIRType struct {
	Kind   MIRTypeKind
	Prim   Primitive
	Struct *MIRStruct
}

func (t MIRType) Size() int {
	switch t.Kind {
	case MIRPrimitive:
		return t.Prim.Size()
	case MIRObject:
		return objectHandleSize
	case MIRStructRef:
		return t.Struct.Size
	default:
		return 0
	}
}

// MIRStructField is a lowered struct member.
type MIRStructField struct {
	Ident Ident
	Type  MIRType
	Count Count
}

// MIRStruct is a struct after lowering: its fields' types are resolved,
// its computed size/alignment from the layout pass are attached, and it
// carries the origin path backends need to namespace-qualify it.
type MIRStruct struct {
	Ident      Ident
	Fields     []MIRStructField
	OriginPath string
	Size       int
	Alignment  int
	Class      StructClass
}

// MIRConst is a lowered constant; its shape doesn't change from the AST.
type MIRConst struct {
	Ident       Ident
	Primitive   Primitive
	LiteralText string
}

// MIRError is a lowered error declaration with its assigned code.
type MIRError struct {
	Ident Ident
	Value int32
}

// MIRParamType mirrors ParamTypeIn/ParamTypeOut but with a resolved
// MIRType instead of a bare Type.
type MIRParamType struct {
	IsArray       bool
	Type          MIRType
	BoundedCount  int
	HasBoundCount bool
}

// MIRParam is a lowered function parameter.
type MIRParam struct {
	Direction Direction
	Ident     Ident
	Shape     MIRParamType
}

// MIRFunction is a lowered method with its assigned opcode.
type MIRFunction struct {
	Doc    *Documentation
	Ident  Ident
	Params []MIRParam
	Opcode uint32
}

// MIRInterface is a lowered interface: OptionalBase is replaced by an
// owned link to the resolved base (most-derived to root), and consts,
// errors, and functions are split into their own slices for easy
// backend iteration.
type MIRInterface struct {
	Ident      Ident
	Base       *MIRInterface
	Consts     []MIRConst
	Errors     []MIRError
	Functions  []MIRFunction
	OriginPath string
}

// Iter walks the base chain from this interface (most-derived) up to
// the root, inclusive, matching idlc_mir/src/mir.rs's InterfaceIterator.
func (i *MIRInterface) Iter() []*MIRInterface {
	var chain []*MIRInterface
	for cur := i; cur != nil; cur = cur.Base {
		chain = append(chain, cur)
	}
	return chain
}

// MIR is the fully lowered program: every struct (deduplicated,
// dependency order), every top-level const, and every interface.
type MIR struct {
	Tag        string
	Structs    []*MIRStruct
	Consts     []MIRConst
	Interfaces []*MIRInterface
}

// mirBuilder carries the shared state threaded through recursive
// interface lowering: the struct cache (by name), the interface cache
// (to lower a base only once even if multiple derived interfaces share
// it), and the store/layouts/config needed to resolve references.
type mirBuilder struct {
	store   *IDLStore
	layouts map[string]StructLayout
	cfg     *CompilerConfig

	structs    map[string]*MIRStruct
	interfaces map[string]*MIRInterface

	// finalOpCode/finalErrCode record the counter values each interface's
	// chain ended at, so that reusing an already-lowered interface as a
	// second derived interface's base still advances the new chain's
	// counters by the right amount instead of restarting from 0/10.
	finalOpCode  map[string]uint32
	finalErrCode map[string]int32
}

// LowerToMIR runs Component F: it lowers every struct the store knows
// about (in the topological order the acyclicity pass computed) and
// every interface, threading a shared opcode counter (starting at 0) and
// error-code counter (starting at ErrorCodeStart) through each
// interface's base chain so a derived interface continues numbering
// where its parent left off.
func LowerToMIR(store *IDLStore, structOrder []string, layouts map[string]StructLayout, cfg *CompilerConfig) (*MIR, *Diagnostic) {
	b := &mirBuilder{
		store:      store,
		layouts:    layouts,
		cfg:        cfg,
		structs:      make(map[string]*MIRStruct),
		interfaces:   make(map[string]*MIRInterface),
		finalOpCode:  make(map[string]uint32),
		finalErrCode: make(map[string]int32),
	}

	mir := &MIR{Tag: "mink"}

	for _, name := range structOrder {
		st, diag := b.lowerStruct(name)
		if diag != nil {
			return nil, diag
		}
		mir.Structs = append(mir.Structs, st)
	}

	for _, unit := range store.Units() {
		for _, node := range unit.Nodes {
			if cn, ok := node.(ConstNode); ok {
				mir.Consts = append(mir.Consts, MIRConst{
					Ident:       cn.Const.Ident,
					Primitive:   cn.Const.Primitive,
					LiteralText: cn.Const.LiteralText,
				})
			}
		}
	}

	for name := range store.Interfaces() {
		opCode := uint32(0)
		errCode := ErrorCodeStart
		mi, diag := b.lowerInterface(name, &opCode, &errCode)
		if diag != nil {
			return nil, diag
		}
		mir.Interfaces = append(mir.Interfaces, mi)
	}

	return mir, nil
}

func (b *mirBuilder) lowerStruct(name string) (*MIRStruct, *Diagnostic) {
	if existing, ok := b.structs[name]; ok {
		return existing, nil
	}
	ast, ok := b.store.StructLookup(name)
	if !ok {
		return nil, fatal(KindUnresolved, "struct %s not found in store", name)
	}
	layout, ok := b.layouts[name]
	if !ok {
		return nil, fatal(KindLayout, "struct %s has no computed layout", name)
	}

	mirStruct := &MIRStruct{
		Ident:      ast.Ident,
		OriginPath: ast.OriginPath,
		Size:       layout.size,
		Alignment:  layout.alignment,
	}
	if layout.size <= b.cfg.SmallStructThreshold {
		mirStruct.Class = StructSmall
	} else {
		mirStruct.Class = StructBig
	}
	// register before resolving fields so a (impossible, but defensive)
	// self-reference doesn't recurse forever.
	b.structs[name] = mirStruct

	for _, f := range ast.Fields {
		mt, diag := b.lowerType(f.Type)
		if diag != nil {
			return nil, diag
		}
		mirStruct.Fields = append(mirStruct.Fields, MIRStructField{Ident: f.Ident, Type: mt, Count: f.Count})
	}
	return mirStruct, nil
}

func (b *mirBuilder) lowerType(t Type) (MIRType, *Diagnostic) {
	switch v := t.(type) {
	case PrimitiveType:
		return MIRType{Kind: MIRPrimitive, Prim: v.Prim}, nil
	case InterfaceType:
		return MIRType{Kind: MIRObject}, nil
	case CustomType:
		st, diag := b.lowerStruct(v.Ident.Name)
		if diag != nil {
			return MIRType{}, diag
		}
		return MIRType{Kind: MIRStructRef, Struct: st}, nil
	default:
		return MIRType{}, fatal(KindUnresolved, "unknown type in lowering")
	}
}

// lowerInterface lowers name's base first (if any), threading opCode and
// errCode through the whole chain, then assigns codes to this
// interface's own functions and errors. Grounded on
// idlc_mir/src/mir.rs::parse_interface.
func (b *mirBuilder) lowerInterface(name string, opCode *uint32, errCode *int32) (*MIRInterface, *Diagnostic) {
	if existing, ok := b.interfaces[name]; ok {
		*opCode = b.finalOpCode[name]
		*errCode = b.finalErrCode[name]
		return existing, nil
	}
	ast, ok := b.store.IfaceLookup(name)
	if !ok {
		return nil, fatal(KindUnresolved, "interface %s not found in store", name)
	}

	mi := &MIRInterface{Ident: ast.Ident, OriginPath: ast.OriginPath}

	if ast.Base != nil {
		base, diag := b.lowerInterface(ast.Base.Name, opCode, errCode)
		if diag != nil {
			return nil, diag
		}
		mi.Base = base
	}

	for _, node := range ast.Nodes {
		switch n := node.(type) {
		case IfaceConst:
			mi.Consts = append(mi.Consts, MIRConst{
				Ident:       n.Const.Ident,
				Primitive:   n.Const.Primitive,
				LiteralText: n.Const.LiteralText,
			})
		case IfaceError:
			mi.Errors = append(mi.Errors, MIRError{Ident: n.Ident, Value: *errCode})
			*errCode++
		case IfaceFunction:
			if *opCode > MaxOpCode {
				return nil, fatalAt(KindCapacity, ast.OriginPath, n.Function.Ident.Span,
					"interface %s has more methods than fit in the opcode range (max %d)", name, MaxOpCode)
			}
			params, diag := b.lowerParams(n.Function.Params)
			if diag != nil {
				return nil, diag
			}
			mi.Functions = append(mi.Functions, MIRFunction{
				Doc:    n.Function.Doc,
				Ident:  n.Function.Ident,
				Params: params,
				Opcode: *opCode,
			})
			*opCode++
		}
	}

	b.interfaces[name] = mi
	b.finalOpCode[name] = *opCode
	b.finalErrCode[name] = *errCode
	return mi, nil
}

func (b *mirBuilder) lowerParams(params []Param) ([]MIRParam, *Diagnostic) {
	out := make([]MIRParam, 0, len(params))
	for _, p := range params {
		mp := MIRParam{Direction: p.Direction, Ident: p.Ident}
		if p.Direction == DirIn {
			mt, diag := b.lowerType(p.In.Type)
			if diag != nil {
				return nil, diag
			}
			mp.Shape = MIRParamType{IsArray: p.In.IsArray, Type: mt, BoundedCount: p.In.BoundedCount, HasBoundCount: p.In.HasBoundCount}
		} else {
			mt, diag := b.lowerType(p.Out.Type)
			if diag != nil {
				return nil, diag
			}
			mp.Shape = MIRParamType{IsArray: p.Out.IsArray, Type: mt, BoundedCount: p.Out.BoundedCount, HasBoundCount: p.Out.HasBoundCount}
		}
		out = append(out, mp)
	}
	return out, nil
}
