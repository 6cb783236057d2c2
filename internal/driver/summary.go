package driver

import (
	"kaleido/internal/ast"
	"kaleido/internal/diag"
	"kaleido/internal/source"
)

// Summary is the cacheable outcome of parsing one file: enough to reprint
// items and diagnostics without the arenas.
type Summary struct {
	Schema      uint16
	Path        string
	Hash        [32]byte
	Items       []ItemSummary
	Diagnostics []DiagSummary
	Errors      uint
}

type ItemSummary struct {
	Kind   uint8
	Name   string
	Params []string
	SExpr  string
}

type DiagSummary struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []NoteSummary
}

type NoteSummary struct {
	Start uint32
	End   uint32
	Msg   string
}

// Summarize extracts a Summary from a parsed file.
func Summarize(file *source.File, b *ast.Builder, fileID ast.FileID, bag *diag.Bag, errCount uint) *Summary {
	s := &Summary{
		Schema: diskCacheSchemaVersion,
		Path:   file.Path,
		Hash:   file.Hash,
		Errors: errCount,
	}
	if f := b.Files.Get(fileID); f != nil {
		for _, id := range f.Items {
			item := b.Items.Get(id)
			is := ItemSummary{Kind: uint8(item.Kind), SExpr: b.ItemSExpr(id)}
			if proto, ok := b.Items.ProtoOf(id); ok {
				is.Name = b.Name(proto.Name)
				for _, p := range proto.Params {
					is.Params = append(is.Params, b.Name(p))
				}
			}
			s.Items = append(s.Items, is)
		}
	}
	if bag != nil {
		for _, d := range bag.Items() {
			ds := DiagSummary{
				Severity: uint8(d.Severity),
				Code:     uint16(d.Code),
				Message:  d.Message,
				Start:    d.Primary.Start,
				End:      d.Primary.End,
			}
			for _, n := range d.Notes {
				ds.Notes = append(ds.Notes, NoteSummary{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
			}
			s.Diagnostics = append(s.Diagnostics, ds)
		}
	}
	return s
}

// Bag rebuilds the diagnostics against file in the current FileSet.
func (s *Summary) Bag(file source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range s.Diagnostics {
		out := diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: file, Start: d.Start, End: d.End},
		}
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, diag.Note{Span: source.Span{File: file, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		bag.Add(out)
	}
	return bag
}

// SExprs returns one line per item, as FormatASTSExpr prints them.
func (s *Summary) SExprs() []string {
	out := make([]string, len(s.Items))
	for i, it := range s.Items {
		out[i] = it.SExpr
	}
	return out
}
