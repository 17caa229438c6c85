package snapshot

import (
	"fmt"

	"github.com/bobuhiro11/gokvm-bindings/codec"
	"github.com/bobuhiro11/gokvm-bindings/kvm"
)

// Magic starts every snapshot header.
const Magic = "GOKVMSNP"

// FormatVersion is the record layout version written by this package.
const FormatVersion = 1

// Header is the payload of the first record.
type Header struct {
	Magic   [8]byte
	Version uint32
	NVCPUs  uint32
	Kernel  [16]byte
}

// NewHeader returns the header for a snapshot of nvcpus vcpus taken with
// the selected kernel header snapshot.
func NewHeader(nvcpus int) Header {
	h := Header{Version: FormatVersion, NVCPUs: uint32(nvcpus)}
	copy(h.Magic[:], Magic)
	copy(h.Kernel[:], kvm.HeaderVersion)

	return h
}

// KernelVersion returns the kernel header version the snapshot was taken
// with.
func (h *Header) KernelVersion() string {
	n := 0
	for n < len(h.Kernel) && h.Kernel[n] != 0 {
		n++
	}

	return string(h.Kernel[:n])
}

func (h *Header) marshal() []byte {
	return codec.MarshalLE(nil, h)
}

func (h *Header) unmarshal(b []byte) error {
	if err := codec.UnmarshalLE(b, h); err != nil {
		return fmt.Errorf("%v: %w", TagHeader, err)
	}

	if string(h.Magic[:]) != Magic {
		return fmt.Errorf("magic %q: %w", h.Magic[:], ErrBadMagic)
	}

	if h.Version != FormatVersion {
		return fmt.Errorf("format version %d, want %d: %w", h.Version, FormatVersion, ErrBadMagic)
	}

	if v := h.KernelVersion(); v != kvm.HeaderVersion {
		return fmt.Errorf("headers %q, want %q: %w", v, kvm.HeaderVersion, ErrHeaderMismatch)
	}

	return nil
}
