// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow
// when converting Go's platform-dependent int to fixed-width types, such as
// the uint32 sizes in compressed block headers.
package conv
