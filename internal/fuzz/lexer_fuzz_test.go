package fuzztests

import (
	"testing"

	"zoia/internal/diag"
	"zoia/internal/lexer"
	"zoia/internal/source"
	"zoia/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.zoia", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for n := 0; ; n++ {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start || int(tok.Span.End) > len(input) {
				t.Fatalf("token %d has bad span %v (prev end %d, len %d)", n, tok.Span, prevEnd, len(input))
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
			if n > 2*len(input)+1 {
				t.Fatalf("lexer does not advance on %q", truncateForLog(input, 200))
			}
		}
	})
}
