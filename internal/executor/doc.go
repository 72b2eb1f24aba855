// Package executor runs shell command lines on behalf of the frontend.
//
// Execution sits behind a Policy: it is off unless enabled, and when an
// allow-list is configured the first word of the command line must match one
// of its doublestar patterns. A denied command never spawns a process.
//
// A command that exits zero yields its stdout. A command that exits non-zero
// yields an error whose message is its stderr. Output is decoded lossily, so
// invalid UTF-8 becomes U+FFFD rather than an error.
//
// When the shell itself keeps failing to start, a circuit breaker rejects
// further runs with ErrUnavailable until its cooldown has passed.
package executor
