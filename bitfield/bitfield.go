// Package bitfield reads and writes runs of bits packed into a shared byte
// buffer, the way the kernel packs sub-byte fields of ABI structs.
package bitfield

import (
	"errors"
	"fmt"

	"golang.org/x/sys/cpu"
)

var (
	// ErrOutOfRange is returned when a bit access falls outside the storage.
	ErrOutOfRange = errors.New("bit range out of bounds")

	// ErrWidth is returned for runs wider than 64 bits.
	ErrWidth = errors.New("bit width exceeds 64")
)

// Order selects how a bit index maps onto a bit within its byte.
// Bytes are always addressed low to high; only the intra-byte order flips.
type Order int

const (
	// LSBFirst maps index i to bit i%8 of byte i/8 (little-endian targets).
	LSBFirst Order = iota
	// MSBFirst maps index i to bit 7-i%8 of byte i/8 (big-endian targets).
	MSBFirst
)

func (o Order) String() string {
	switch o {
	case LSBFirst:
		return "LSBFirst"
	case MSBFirst:
		return "MSBFirst"
	}

	return fmt.Sprintf("Order(%d)", int(o))
}

// NativeOrder is the bit order C compilers use on the host.
func NativeOrder() Order {
	if cpu.IsBigEndian {
		return MSBFirst
	}

	return LSBFirst
}

// Unit is a view over caller-owned storage holding packed bitfields.
// The storage is never reallocated; writes go straight to it.
type Unit struct {
	storage []byte
	order   Order
}

// New wraps storage using the host bit order. No validation is performed.
func New(storage []byte) Unit {
	return Unit{storage: storage, order: NativeOrder()}
}

// NewWithOrder wraps storage using an explicit bit order.
func NewWithOrder(storage []byte, order Order) Unit {
	return Unit{storage: storage, order: order}
}

// Bytes returns the underlying storage.
func (u Unit) Bytes() []byte { return u.storage }

// Order returns the bit order of the unit.
func (u Unit) Order() Order { return u.order }

// Bits returns the number of addressable bits.
func (u Unit) Bits() int { return len(u.storage) * 8 }

func (u Unit) check(offset int, width uint8) error {
	if width > 64 {
		return fmt.Errorf("width %d: %w", width, ErrWidth)
	}

	if offset < 0 || offset+int(width) > u.Bits() {
		return fmt.Errorf("bits [%d, %d) of %d: %w", offset, offset+int(width), u.Bits(), ErrOutOfRange)
	}

	return nil
}

func (u Unit) mask(index int) byte {
	if u.order == MSBFirst {
		return 1 << (7 - uint(index%8))
	}

	return 1 << uint(index%8)
}

func (u Unit) bit(index int) bool {
	m := u.mask(index)

	return u.storage[index/8]&m == m
}

func (u Unit) setBit(index int, v bool) {
	if v {
		u.storage[index/8] |= u.mask(index)
	} else {
		u.storage[index/8] &^= u.mask(index)
	}
}

// Bit reports whether bit index is set.
func (u Unit) Bit(index int) (bool, error) {
	if err := u.check(index, 1); err != nil {
		return false, err
	}

	return u.bit(index), nil
}

// SetBit sets or clears bit index, leaving its neighbours alone.
func (u Unit) SetBit(index int, v bool) error {
	if err := u.check(index, 1); err != nil {
		return err
	}

	u.setBit(index, v)

	return nil
}

// Get reads width bits starting at offset. With LSBFirst, bit i of the
// result is storage bit offset+i; with MSBFirst it is bit width-1-i.
func (u Unit) Get(offset int, width uint8) (uint64, error) {
	if err := u.check(offset, width); err != nil {
		return 0, err
	}

	var v uint64

	for i := 0; i < int(width); i++ {
		if !u.bit(offset + i) {
			continue
		}

		idx := i
		if u.order == MSBFirst {
			idx = int(width) - 1 - i
		}

		v |= 1 << uint(idx)
	}

	return v, nil
}

// Set writes the low width bits of v starting at offset. It is the
// inverse of Get.
func (u Unit) Set(offset int, width uint8, v uint64) error {
	if err := u.check(offset, width); err != nil {
		return err
	}

	for i := 0; i < int(width); i++ {
		idx := i
		if u.order == MSBFirst {
			idx = int(width) - 1 - i
		}

		u.setBit(offset+idx, v&(1<<uint(i)) != 0)
	}

	return nil
}

// MustGet is Get for constant, known-good ranges. It panics on error.
func (u Unit) MustGet(offset int, width uint8) uint64 {
	v, err := u.Get(offset, width)
	if err != nil {
		panic(err)
	}

	return v
}

// MustSet is Set for constant, known-good ranges. It panics on error.
func (u Unit) MustSet(offset int, width uint8, v uint64) {
	if err := u.Set(offset, width, v); err != nil {
		panic(err)
	}
}
