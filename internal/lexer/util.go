package lexer

// Классификаторы повторяют C-локаль: только ASCII.

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAlpha(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }

func isNumberStart(b byte) bool { return isDigit(b) || b == '.' }

func isNumberContinue(b byte) bool { return isDigit(b) || b == '.' }

func isCommentEnd(b byte) bool { return b == '\n' || b == '\r' }
