// Package codec turns fixed-size ABI structs into bytes and back.
//
// Marshal and Unmarshal move the raw in-memory image, byte for byte, which
// is what the kernel reads and writes. MarshalLE and UnmarshalLE produce a
// host-independent little-endian encoding suitable for files that may be
// read on another machine.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	gbinary "gvisor.dev/gvisor/pkg/binary"
)

var (
	// ErrIncompleteBuffer is returned when a buffer is shorter than the struct
	// being decoded from it.
	ErrIncompleteBuffer = errors.New("incomplete buffer")

	// ErrTrailingBytes is returned when a little-endian buffer is longer than
	// its struct.
	ErrTrailingBytes = errors.New("trailing bytes after struct")
)

// Size returns the in-memory size of T.
func Size[T any]() int {
	var v T

	return int(unsafe.Sizeof(v))
}

// Bytes returns a byte slice aliasing the memory of v.
func Bytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// Marshal returns a copy of the in-memory image of v.
func Marshal[T any](v *T) []byte {
	b := Bytes(v)
	c := make([]byte, len(b))
	copy(c, b)

	return c
}

// Unmarshal fills *dst from the first sizeof(T) bytes of b. It never reads
// past len(b); extra bytes are ignored.
func Unmarshal[T any](b []byte, dst *T) error {
	size := int(unsafe.Sizeof(*dst))
	if len(b) < size {
		return fmt.Errorf("%T: got %d bytes, want %d: %w", *dst, len(b), size, ErrIncompleteBuffer)
	}

	copy(Bytes(dst), b[:size])

	return nil
}

// MarshalLE appends the little-endian encoding of v to buf. v must hold
// only fixed-size integers, arrays and structs of them.
func MarshalLE(buf []byte, v any) []byte {
	return gbinary.Marshal(buf, binary.LittleEndian, v)
}

// UnmarshalLE decodes b, produced by MarshalLE, into the struct pointed to
// by v. Blank fields are skipped and keep their zero value.
func UnmarshalLE(b []byte, v any) error {
	size := int(gbinary.Size(v))

	switch {
	case len(b) < size:
		return fmt.Errorf("%T: got %d bytes, want %d: %w", v, len(b), size, ErrIncompleteBuffer)
	case len(b) > size:
		return fmt.Errorf("%T: got %d bytes, want %d: %w", v, len(b), size, ErrTrailingBytes)
	}

	gbinary.Unmarshal(b, binary.LittleEndian, v)

	return nil
}

// SizeLE is the length of the MarshalLE encoding of v.
func SizeLE(v any) int {
	return int(gbinary.Size(v))
}
