// Package internal contains shared infrastructure for sessionflow, currently
// the process-wide structured logger. Types and functions in this package are
// not part of the public API.
package internal
