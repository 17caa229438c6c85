package bitfield

import (
	"errors"
	"fmt"
)

var (
	// ErrOverlap is returned when two fields of a Layout share a bit.
	ErrOverlap = errors.New("bitfields overlap")

	// ErrFieldCount is returned when Pack gets the wrong number of values.
	ErrFieldCount = errors.New("wrong number of bitfield values")
)

// Field is one named run of bits inside a Unit.
type Field struct {
	Name   string
	Offset int
	Width  uint8
}

// Layout is the ordered list of fields packed into one storage unit, in
// the order the kernel header declares them.
type Layout []Field

// Width returns the number of bits covered by the layout.
func (l Layout) Width() int {
	end := 0

	for _, f := range l {
		if e := f.Offset + int(f.Width); e > end {
			end = e
		}
	}

	return end
}

// Validate checks that every field fits in nbytes of storage and that no
// two fields overlap.
func (l Layout) Validate(nbytes int) error {
	u := NewWithOrder(make([]byte, nbytes), LSBFirst)
	used := NewWithOrder(make([]byte, nbytes), LSBFirst)

	for _, f := range l {
		if err := u.check(f.Offset, f.Width); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}

		for i := f.Offset; i < f.Offset+int(f.Width); i++ {
			if used.bit(i) {
				return fmt.Errorf("field %s bit %d: %w", f.Name, i, ErrOverlap)
			}

			used.setBit(i, true)
		}
	}

	return nil
}

// Pack zeroes dst and writes values into it, one per field, in layout order.
func (l Layout) Pack(dst []byte, values ...uint64) error {
	return l.PackWithOrder(dst, NativeOrder(), values...)
}

// PackWithOrder is Pack with an explicit bit order.
func (l Layout) PackWithOrder(dst []byte, order Order, values ...uint64) error {
	if len(values) != len(l) {
		return fmt.Errorf("got %d values for %d fields: %w", len(values), len(l), ErrFieldCount)
	}

	for i := range dst {
		dst[i] = 0
	}

	u := NewWithOrder(dst, order)

	for i, f := range l {
		if err := u.Set(f.Offset, f.Width, values[i]); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}

	return nil
}

// Unpack reads every field of src, in layout order.
func (l Layout) Unpack(src []byte) ([]uint64, error) {
	return l.UnpackWithOrder(src, NativeOrder())
}

// UnpackWithOrder is Unpack with an explicit bit order.
func (l Layout) UnpackWithOrder(src []byte, order Order) ([]uint64, error) {
	u := NewWithOrder(src, order)
	values := make([]uint64, len(l))

	for i, f := range l {
		v, err := u.Get(f.Offset, f.Width)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}

		values[i] = v
	}

	return values, nil
}

// Lookup returns the field called name.
func (l Layout) Lookup(name string) (Field, bool) {
	for _, f := range l {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}
