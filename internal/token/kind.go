package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// EOF marks the end of the input stream.
	EOF Kind = iota
	// KwDef represents the 'def' keyword.
	KwDef
	// KwExtern represents the 'extern' keyword.
	KwExtern
	// Ident represents an identifier token.
	Ident
	// Number represents a numeric literal token.
	Number
	// Char is any other single byte: operators, parentheses, comma, ';'.
	Char
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case KwDef:
		return "KwDef"
	case KwExtern:
		return "KwExtern"
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case Char:
		return "Char"
	default:
		return "Unknown"
	}
}

// IsEOF reports whether k is the end-of-input marker.
func (k Kind) IsEOF() bool { return k == EOF }
