package codec_test

import (
	"errors"
	"testing"

	"github.com/bobuhiro11/gokvm-bindings/codec"
	"github.com/google/go-cmp/cmp"
)

type entry struct {
	Index    uint32
	Reserved uint32
	Data     uint64
}

type clock struct {
	Clock uint64
	Flags uint32
	Pad   [9]uint32
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	in := clock{Clock: 0x0123456789abcdef, Flags: 2, Pad: [9]uint32{8: 7}}
	b := codec.Marshal(&in)

	if len(b) != 48 || codec.Size[clock]() != 48 {
		t.Fatalf("len = %d, Size = %d, want 48", len(b), codec.Size[clock]())
	}

	var out clock
	if err := codec.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	in.Flags = 3
	if out.Flags != 2 {
		t.Error("Marshal aliased the source struct")
	}
}

func TestBytesAliases(t *testing.T) {
	t.Parallel()

	var e entry

	codec.Bytes(&e)[8] = 0x2a

	if e.Data&0xff != 0x2a && e.Data>>56 != 0x2a {
		t.Errorf("Data = %#x, write through Bytes not visible", e.Data)
	}
}

func TestIncompleteBuffer(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 15} {
		var e entry

		err := codec.Unmarshal(make([]byte, n), &e)
		if !errors.Is(err, codec.ErrIncompleteBuffer) {
			t.Errorf("Unmarshal %d bytes: got %v, want ErrIncompleteBuffer", n, err)
		}
	}

	var e entry
	if err := codec.Unmarshal(make([]byte, 20), &e); err != nil {
		t.Errorf("Unmarshal 20 bytes: %v", err)
	}
}

func TestLittleEndian(t *testing.T) {
	t.Parallel()

	in := entry{Index: 0x11223344, Data: 0x0102030405060708}
	b := codec.MarshalLE(nil, &in)

	want := []byte{
		0x44, 0x33, 0x22, 0x11,
		0, 0, 0, 0,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("MarshalLE mismatch (-want +got):\n%s", diff)
	}

	if codec.SizeLE(&in) != len(want) {
		t.Errorf("SizeLE = %d, want %d", codec.SizeLE(&in), len(want))
	}

	var out entry
	if err := codec.UnmarshalLE(b, &out); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("UnmarshalLE mismatch (-want +got):\n%s", diff)
	}

	if err := codec.UnmarshalLE(b[:10], &out); !errors.Is(err, codec.ErrIncompleteBuffer) {
		t.Errorf("short: got %v, want ErrIncompleteBuffer", err)
	}

	if err := codec.UnmarshalLE(append(b, 0), &out); !errors.Is(err, codec.ErrTrailingBytes) {
		t.Errorf("long: got %v, want ErrTrailingBytes", err)
	}
}
