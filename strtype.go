// Package strtype is the runtime support package for code generated by the
// strtype compiler.
//
// The compiler (see compiler/gen) turns a declarative manifest into a pair of
// Go types per declaration: a borrowed wrapper type over a character sequence
// and, when requested, an owned companion type whose buffer is guaranteed to
// always hold a valid value. Validation itself is never generated: the target
// package supplies two predicates per type,
//
//	func validate<Name>Bytes(input []byte) bool
//	func validate<Name>Text(input string) bool
//
// which must be pure, total, and consistent with each other (a string
// satisfies the text predicate iff its UTF-8 encoding satisfies the byte
// predicate). Generated constructors call exactly one of the two, matching
// the native representation of their input.
//
// This package carries the small pieces generated code links against: the
// Buffer constraint accepted by the generic constructors, the Hash64 function
// backing the generated Hash capability, and DecodeError, the failure value
// of byte-sequence entry points in infallible mode.
package strtype

import (
	"github.com/cespare/xxhash/v2"
)

// Buffer is the constraint accepted by generated generic constructors.
// It covers both byte-vector and text-buffer representations, including
// defined types over them.
type Buffer interface {
	~string | ~[]byte
}

// Hash64 returns a 64-bit hash of data. Generated Hash methods on owned
// types delegate here through the wrapper type, which guarantees that equal
// values hash identically.
func Hash64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
