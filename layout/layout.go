// Package layout checks that Go mirrors of kernel structs have exactly the
// size, alignment and field offsets the kernel expects.
package layout

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"gvisor.dev/gvisor/pkg/binary"
)

var (
	// ErrMismatch is returned when a struct deviates from the kernel layout.
	ErrMismatch = errors.New("layout mismatch")

	// ErrImplicitPadding is returned when the compiler inserted padding that
	// the struct does not spell out as a blank field.
	ErrImplicitPadding = errors.New("implicit padding")

	// ErrNotStruct is returned for values that are not structs.
	ErrNotStruct = errors.New("not a struct")

	// ErrUnsupported is returned for structs holding non-integer fields.
	ErrUnsupported = errors.New("unsupported field type")
)

// Field describes one named member of a struct.
type Field struct {
	Name   string  `yaml:"name" json:"name"`
	Offset uintptr `yaml:"offset" json:"offset"`
	Size   uintptr `yaml:"size" json:"size"`
}

// Layout is the memory shape of a struct type.
type Layout struct {
	Name   string  `yaml:"name" json:"name"`
	Size   uintptr `yaml:"size" json:"size"`
	Align  uintptr `yaml:"align" json:"align"`
	Fields []Field `yaml:"fields,omitempty" json:"fields,omitempty"`
}

func structType(v any) (reflect.Type, error) {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%v: %w", t, ErrNotStruct)
	}

	return t, nil
}

// Of returns the layout of v, which may be a struct, a pointer to one or a
// reflect.Type. Blank fields are omitted.
func Of(v any) (Layout, error) {
	t, err := structType(v)
	if err != nil {
		return Layout{}, err
	}

	l := Layout{
		Name:  t.Name(),
		Size:  t.Size(),
		Align: uintptr(t.Align()),
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == "_" {
			continue
		}

		l.Fields = append(l.Fields, Field{Name: f.Name, Offset: f.Offset, Size: f.Type.Size()})
	}

	return l, nil
}

// Check compares v against want. Only the fields listed in want are
// compared; a zero Size in a wanted field skips the size comparison.
func Check(v any, want Layout) error {
	got, err := Of(v)
	if err != nil {
		return err
	}

	if got.Size != want.Size {
		return fmt.Errorf("%s: size %d, want %d: %w", got.Name, got.Size, want.Size, ErrMismatch)
	}

	if got.Align != want.Align {
		return fmt.Errorf("%s: align %d, want %d: %w", got.Name, got.Align, want.Align, ErrMismatch)
	}

	for _, w := range want.Fields {
		f, ok := got.Field(w.Name)
		if !ok {
			return fmt.Errorf("%s.%s: no such field: %w", got.Name, w.Name, ErrMismatch)
		}

		if f.Offset != w.Offset {
			return fmt.Errorf("%s.%s: offset %d, want %d: %w", got.Name, w.Name, f.Offset, w.Offset, ErrMismatch)
		}

		if w.Size != 0 && f.Size != w.Size {
			return fmt.Errorf("%s.%s: size %d, want %d: %w", got.Name, w.Name, f.Size, w.Size, ErrMismatch)
		}
	}

	return nil
}

// Field looks up a field by name.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Packed reports an error if the sum of the field sizes of v differs from
// its size, meaning the compiler padded it behind the struct's back.
func Packed(v any) (err error) {
	t, err := structType(v)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v: %w", t.Name(), r, ErrUnsupported)
		}
	}()

	if sum := binary.Size(reflect.New(t).Interface()); sum != t.Size() {
		return fmt.Errorf("%s: fields cover %d of %d bytes: %w", t.Name(), sum, t.Size(), ErrImplicitPadding)
	}

	return nil
}

// Zero reports whether every byte of *v is zero.
func Zero[T any](v *T) bool {
	for _, b := range unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v)) {
		if b != 0 {
			return false
		}
	}

	return true
}
