package driver

import (
	"context"
	"fmt"

	"kaleido/internal/lexer"
	"kaleido/internal/source"
	"kaleido/internal/token"
	"kaleido/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

// Tokenize загружает файл и собирает все токены до EOF включительно.
func Tokenize(ctx context.Context, path string) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	_, span := trace.StartSpan(ctx, trace.ScopePass, "tokenize")
	lx := lexer.NewFromFile(file)
	tokens := CollectTokens(lx)
	span.WithExtra("tokens", fmt.Sprint(len(tokens))).End(file.Path)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
	}, nil
}

// CollectTokens drains lx; the last token is always EOF.
func CollectTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
