// Package trace records what the front-end is doing: one span per CLI command,
// per file pass and, at detail level, per top-level construct.
//
// Enable tracing via command-line flags:
//
//	kaleido parse --trace=- --trace-level=detail fib.kal
//
// Implementations: Nop (disabled), StreamTracer (immediate write to a file or
// stderr), RingTracer (last N events kept in memory, dumped on failure) and
// MultiTracer (fan-out). Heartbeat emits periodic events so a REPL stuck on a
// blocking read is distinguishable from a stuck parser.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
