package ast

import (
	"kaleido/internal/source"
)

type ItemKind uint8

const (
	// ItemDef is a named function definition.
	ItemDef ItemKind = iota
	// ItemExtern is a bare prototype.
	ItemExtern
	// ItemTopLevel is an expression wrapped into an anonymous function.
	ItemTopLevel
)

func (k ItemKind) String() string {
	switch k {
	case ItemDef:
		return "Def"
	case ItemExtern:
		return "Extern"
	case ItemTopLevel:
		return "TopLevel"
	default:
		return "Unknown"
	}
}

// Item: заголовок элемента верхнего уровня.
// Payload указывает в Protos для ItemExtern и в Funcs для остальных.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// Prototype is a function signature: name plus parameter names.
// The anonymous prototype has Name == source.NoStringID and no params.
type Prototype struct {
	Name   source.StringID
	Params []source.StringID
	Span   source.Span
}

// Function couples a prototype with its body.
type Function struct {
	Proto     ProtoID
	Body      ExprID
	Anonymous bool
	Span      source.Span
}

type Items struct {
	Arena  *Arena[Item]
	Protos *Arena[Prototype]
	Funcs  *Arena[Function]
}

// NewItems creates item arenas; capHint 0 means 1<<7.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena:  NewArena[Item](capHint),
		Protos: NewArena[Prototype](capHint),
		Funcs:  NewArena[Function](capHint),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: span, Payload: payload}))
}

// NewPrototype allocates a prototype; params are copied.
func (i *Items) NewPrototype(span source.Span, name source.StringID, params []source.StringID) ProtoID {
	return ProtoID(i.Protos.Allocate(Prototype{
		Name:   name,
		Params: append([]source.StringID(nil), params...),
		Span:   span,
	}))
}

func (i *Items) Prototype(id ProtoID) *Prototype {
	return i.Protos.Get(uint32(id))
}

func (i *Items) newFunction(span source.Span, proto ProtoID, body ExprID, anonymous bool) FuncID {
	return FuncID(i.Funcs.Allocate(Function{Proto: proto, Body: body, Anonymous: anonymous, Span: span}))
}

func (i *Items) Function(id FuncID) *Function {
	return i.Funcs.Get(uint32(id))
}

// NewDef wraps proto and body into a definition item.
func (i *Items) NewDef(span source.Span, proto ProtoID, body ExprID) ItemID {
	fn := i.newFunction(span, proto, body, false)
	return i.new(ItemDef, span, PayloadID(fn))
}

// NewExtern creates an extern item for proto.
func (i *Items) NewExtern(span source.Span, proto ProtoID) ItemID {
	return i.new(ItemExtern, span, PayloadID(proto))
}

// NewTopLevel wraps body into an anonymous function; proto must be anonymous.
func (i *Items) NewTopLevel(span source.Span, proto ProtoID, body ExprID) ItemID {
	fn := i.newFunction(span, proto, body, true)
	return i.new(ItemTopLevel, span, PayloadID(fn))
}

// Func returns the function of a def or top-level item.
func (i *Items) Func(id ItemID) (*Function, bool) {
	item := i.Get(id)
	if item == nil || (item.Kind != ItemDef && item.Kind != ItemTopLevel) {
		return nil, false
	}
	return i.Function(FuncID(item.Payload)), true
}

// Extern returns the prototype of an extern item.
func (i *Items) Extern(id ItemID) (*Prototype, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemExtern {
		return nil, false
	}
	return i.Prototype(ProtoID(item.Payload)), true
}

// ProtoOf returns the prototype of any item kind.
func (i *Items) ProtoOf(id ItemID) (*Prototype, bool) {
	if p, ok := i.Extern(id); ok {
		return p, true
	}
	if fn, ok := i.Func(id); ok {
		return i.Prototype(fn.Proto), true
	}
	return nil, false
}
