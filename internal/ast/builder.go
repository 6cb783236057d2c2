package ast

import (
	"kaleido/internal/source"
)

type Hints struct{ Files, Items, Exprs uint }

// Builder owns every arena of one parsing session plus the identifier interner.
type Builder struct {
	Files           *Files
	Items           *Items
	Exprs           *Exprs
	StringsInterner *source.Interner
}

// NewBuilder creates a builder; a nil interner gets a fresh one.
func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 4
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewItems(hints.Items),
		Exprs:           NewExprs(hints.Exprs),
		StringsInterner: interner,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Name возвращает строку идентификатора; "" для NoStringID.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.StringsInterner.Lookup(id)
	return s
}
