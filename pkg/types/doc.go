// Package types holds the small shared vocabulary of treekit: typed errors with
// stable categories and the Limits presets used to bound untrusted input.
//
// Design goals:
//   - Typed errors with stable categories (stream/limit/corrupt/borrow/state).
//   - Programmer errors (aliasing violations, use after release) are raised as
//     panics carrying an *Error so callers can still classify them in recover().
//   - Recoverable input problems are returned, never panicked.
//
// This package has no dependencies beyond the standard library.
package types
