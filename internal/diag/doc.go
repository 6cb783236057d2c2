// Package diag defines the diagnostic model shared by the lexer, parser and driver.
//
// Diagnostic is the central record: Severity, a stable Code, a short Message,
// the Primary span and optional Notes. Producers emit through a Reporter so that
// storage (Bag, BagReporter) and presentation (WriterReporter, internal/diagfmt)
// stay decoupled from the phase that found the problem.
//
// The parser reports every structural error exactly once, at the point where the
// expectation failed; enclosing frames only propagate the error value.
//
// Package diag does no colouring or terminal handling; see internal/diagfmt.
package diag
