package lexer

import (
	"strconv"

	"kaleido/internal/source"
	"kaleido/internal/token"
)

// scanNumber собирает цифры и точки как есть. Запятая входит в число только
// между цифрами ("1,000"); иначе она остаётся отдельным Char-токеном в pending,
// и "foo(1, 2)" разбирается как вызов с двумя аргументами.
// Некорректный текст не отвергается: значение декодируется по возможности.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off()
	lx.buf = lx.buf[:0]
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if isNumberContinue(ch) {
			lx.buf = append(lx.buf, ch)
			lx.cursor.Bump()
			continue
		}
		if ch != ',' || len(lx.buf) == 0 || !isDigit(lx.buf[len(lx.buf)-1]) {
			break
		}
		comma := lx.cursor.Off()
		lx.cursor.Bump()
		if !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.buf = append(lx.buf, ',')
			continue
		}
		lx.pending = token.Token{Kind: token.Char, Ch: ',', Span: source.Span{File: lx.opts.File, Start: comma, End: comma + 1}}
		lx.hasPending = true
		lx.num = DecodeNumber(string(lx.buf))
		return token.Token{Kind: token.Number, Span: source.Span{File: lx.opts.File, Start: start, End: comma}, Text: string(lx.buf), Num: lx.num}
	}
	text := string(lx.buf)
	lx.num = DecodeNumber(text)
	return token.Token{Kind: token.Number, Span: lx.span(start), Text: text, Num: lx.num}
}

// DecodeNumber parses the longest prefix of text shaped like digits[.digits]
// and returns 0 when no digit is present, the way strtod treats garbage.
// "1.2.3" -> 1.2, "1,000" -> 1, "." -> 0.
func DecodeNumber(text string) float64 {
	i := 0
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	digits := i
	if i < len(text) && text[i] == '.' {
		j := i + 1
		for j < len(text) && isDigit(text[j]) {
			j++
		}
		digits += j - i - 1
		if digits > 0 {
			i = j
		}
	}
	if digits == 0 {
		return 0
	}
	// ошибка тут возможна только при переполнении, ParseFloat уже вернул ±Inf как strtod
	v, _ := strconv.ParseFloat(text[:i], 64)
	return v
}
