package fuzztests

import (
	"testing"

	"kaleido/internal/lexer"
	"kaleido/internal/source"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.kal", input)
		file := fs.Get(fileID)
		limit := uint32(len(file.Content))

		lx := lexer.NewFromFile(file)
		var prevEnd uint32
		for n := 0; ; n++ {
			if n > len(file.Content)+1 {
				t.Fatalf("more tokens than bytes: %d", n)
			}
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start || tok.Span.End > limit {
				t.Fatalf("bad span %v after %d (len %d)", tok.Span, prevEnd, limit)
			}
			prevEnd = tok.Span.End
			if tok.Kind.IsEOF() {
				break
			}
			if tok.Span.Empty() {
				t.Fatalf("empty span for %v", tok)
			}
		}
		// EOF липкий
		for range 3 {
			if tok := lx.Next(); !tok.Kind.IsEOF() {
				t.Fatalf("token after EOF: %v", tok)
			}
		}
	})
}
