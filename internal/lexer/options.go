package lexer

import "kaleido/internal/source"

// Options настраивает лексер. Нулевое значение годится для потока без файла.
type Options struct {
	// File проставляется во все спаны токенов.
	File source.FileID
	// Base: смещение первого байта потока (для нескольких потоков в одном FileSet).
	Base uint32
}
