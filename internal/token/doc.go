// Package token defines lexical token kinds for the kaleido front-end.
// Invariants:
//   - Every byte that does not start an identifier, number, comment or whitespace
//     run is surfaced as a Char token carrying that byte; the lexer never fails.
//   - Keywords are case-sensitive: only "def" and "extern" are reserved.
//   - Number.Text is the raw scanned text (commas included); Number.Num is its
//     best-effort decimal value.
package token
