package lexer

// skipSpace пропускает пробельные байты.
func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// skipComment съедает '#' и всё до '\n', '\r' или EOF. Терминатор остаётся в lookahead.
func (lx *Lexer) skipComment() {
	lx.cursor.Bump() // '#'
	for !lx.cursor.EOF() && !isCommentEnd(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
