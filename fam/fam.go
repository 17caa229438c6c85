// Package fam handles the flexible array members that end many KVM ioctl
// payloads: a fixed header carrying a count, followed directly in memory by
// that many entries.
package fam

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrCapacity is returned when more entries are requested than a Buffer holds.
var ErrCapacity = errors.New("flexible array capacity exceeded")

// Tail marks where a variable-length array begins. It occupies no storage and
// does not know its own length; the count lives in a sibling header field.
type Tail[T any] struct {
	_ [0]T
}

// Ptr returns the address of the first element.
func (t *Tail[T]) Ptr() *T {
	return (*T)(unsafe.Pointer(t))
}

// Slice views the first n elements. The caller guarantees n elements
// actually follow the marker. Slice(0) never touches the marker address.
func (t *Tail[T]) Slice(n int) []T {
	if n <= 0 {
		return []T{}
	}

	return unsafe.Slice(t.Ptr(), n)
}

// Equal always reports true: two markers carry no comparable content.
func (t Tail[T]) Equal(Tail[T]) bool { return true }

func (t Tail[T]) String() string { return "Tail[]" }

func alignUp(n, a uintptr) uintptr {
	return (n + a - 1) &^ (a - 1)
}

// Offset is the byte offset of the array after a header of type H, the
// same value C reports as offsetof for the flexible member.
func Offset[T, H any]() uintptr {
	var (
		h H
		e T
	)

	return alignUp(unsafe.Sizeof(h), unsafe.Alignof(e))
}

// After returns the Tail that follows h in memory.
func After[T, H any](h *H) *Tail[T] {
	return (*Tail[T])(unsafe.Add(unsafe.Pointer(h), Offset[T, H]()))
}

// Buffer is one zeroed allocation holding a header H followed by room for
// a fixed number of T entries. It is 8-byte aligned so any KVM header fits.
type Buffer[H, T any] struct {
	words []uint64
	n     int
}

// New allocates a Buffer with capacity for n entries.
func New[H, T any](n int) *Buffer[H, T] {
	if n < 0 {
		n = 0
	}

	var e T

	size := Offset[T, H]() + uintptr(n)*unsafe.Sizeof(e)

	return &Buffer[H, T]{
		words: make([]uint64, (size+7)/8+1),
		n:     n,
	}
}

// Cap returns the number of entries the buffer can hold.
func (b *Buffer[H, T]) Cap() int { return b.n }

// Pointer returns the start of the allocation, suitable for an ioctl argument.
func (b *Buffer[H, T]) Pointer() unsafe.Pointer {
	return unsafe.Pointer(&b.words[0])
}

// Header returns the header at the start of the buffer.
func (b *Buffer[H, T]) Header() *H {
	return (*H)(b.Pointer())
}

// Tail returns the array marker following the header.
func (b *Buffer[H, T]) Tail() *Tail[T] {
	return After[T](b.Header())
}

// Entries views the first n entries, refusing to run past the allocation.
func (b *Buffer[H, T]) Entries(n int) ([]T, error) {
	if n < 0 || n > b.n {
		return nil, fmt.Errorf("%d entries requested, %d allocated: %w", n, b.n, ErrCapacity)
	}

	return b.Tail().Slice(n), nil
}

// Size is the number of meaningful bytes: header plus Cap entries.
func (b *Buffer[H, T]) Size() int {
	var e T

	return int(Offset[T, H]() + uintptr(b.n)*unsafe.Sizeof(e))
}

// Bytes aliases the header and all entries as a byte slice.
func (b *Buffer[H, T]) Bytes() []byte {
	return unsafe.Slice((*byte)(b.Pointer()), b.Size())
}
