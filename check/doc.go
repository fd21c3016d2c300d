// Package check classifies strings, URLs and runtime context.
//
// Every predicate is total: it answers true or false for any input and never
// panics. Predicates that depend on the hosting environment (device sniffing,
// scroll position) read it from an Env value supplied by the caller.
package check
