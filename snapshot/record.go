// Package snapshot saves and restores the KVM state of a vm and its vcpus.
//
// A snapshot is a stream of framed records:
//
//	[4-byte big-endian tag][8-byte big-endian payload length][payload bytes]
//
// Struct payloads hold the raw in-memory image of the kvm structs, so a
// snapshot is only portable between hosts with the same kernel headers.
// The header record is little-endian and names the header snapshot used.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Tag identifies a snapshot record.
type Tag uint32

const (
	TagHeader    Tag = 1  // Header, little-endian
	TagVCPU      Tag = 2  // vcpu id, starts the records of one vcpu
	TagRegs      Tag = 3  // kvm.Regs
	TagSregs     Tag = 4  // kvm.Sregs
	TagFPU       Tag = 5  // kvm.FPU
	TagLAPIC     Tag = 6  // kvm.LAPICState
	TagEvents    Tag = 7  // kvm.VCPUEvents
	TagMPState   Tag = 8  // kvm.MPState
	TagDebugRegs Tag = 9  // kvm.DebugRegs
	TagXCRS      Tag = 10 // kvm.XCRS
	TagXSave     Tag = 11 // kvm.XSave
	TagMSRs      Tag = 12 // kvm.MSRs header followed by kvm.MSREntry values
	TagClock     Tag = 13 // kvm.ClockData
	TagIRQChip   Tag = 14 // kvm.IRQChip, once per chip
	TagPIT2      Tag = 15 // kvm.PITState2
	TagEnd       Tag = 16 // no payload
)

var tagNames = map[Tag]string{
	TagHeader:    "header",
	TagVCPU:      "vcpu",
	TagRegs:      "regs",
	TagSregs:     "sregs",
	TagFPU:       "fpu",
	TagLAPIC:     "lapic",
	TagEvents:    "events",
	TagMPState:   "mp_state",
	TagDebugRegs: "debugregs",
	TagXCRS:      "xcrs",
	TagXSave:     "xsave",
	TagMSRs:      "msrs",
	TagClock:     "clock",
	TagIRQChip:   "irqchip",
	TagPIT2:      "pit2",
	TagEnd:       "end",
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}

	return fmt.Sprintf("Tag(%d)", uint32(t))
}

// MaxRecordSize bounds the payload of a single record.
const MaxRecordSize = 1 << 20

const frameSize = 12

var (
	// ErrUnknownRecord is returned for a record tag the reader does not know.
	ErrUnknownRecord = errors.New("unknown snapshot record")

	// ErrUnexpectedRecord is returned for a known record out of place.
	ErrUnexpectedRecord = errors.New("unexpected snapshot record")

	// ErrRecordTooLarge is returned for a payload over MaxRecordSize.
	ErrRecordTooLarge = errors.New("snapshot record too large")

	// ErrBadMagic is returned when the stream does not start with a
	// snapshot header for these bindings.
	ErrBadMagic = errors.New("bad snapshot magic")

	// ErrHeaderMismatch is returned for a snapshot taken with other kernel
	// headers than the ones these bindings were built with.
	ErrHeaderMismatch = errors.New("snapshot kernel headers differ")
)

// Writer writes framed records to an underlying writer.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w as a snapshot Writer.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// WriteRecord writes a single framed record.
func (w *Writer) WriteRecord(t Tag, payload []byte) error {
	if len(payload) > MaxRecordSize {
		return fmt.Errorf("%v: %d bytes: %w", t, len(payload), ErrRecordTooLarge)
	}

	hdr := make([]byte, frameSize)
	binary.BigEndian.PutUint32(hdr[0:4], uint32(t))
	binary.BigEndian.PutUint64(hdr[4:12], uint64(len(payload)))

	if _, err := w.w.Write(hdr); err != nil {
		return fmt.Errorf("write %v header: %w", t, err)
	}

	if len(payload) > 0 {
		if _, err := w.w.Write(payload); err != nil {
			return fmt.Errorf("write %v payload: %w", t, err)
		}
	}

	return nil
}

// Reader reads framed records from an underlying reader.
type Reader struct {
	r io.Reader
}

// NewReader wraps r as a snapshot Reader.
func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

// Next reads the next record. It returns io.EOF only when the stream ends
// cleanly between records.
func (r *Reader) Next() (Tag, []byte, error) {
	hdr := make([]byte, frameSize)
	if _, err := io.ReadFull(r.r, hdr); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil, io.EOF
		}

		return 0, nil, fmt.Errorf("read record header: %w", err)
	}

	t := Tag(binary.BigEndian.Uint32(hdr[0:4]))
	length := binary.BigEndian.Uint64(hdr[4:12])

	if length > MaxRecordSize {
		return 0, nil, fmt.Errorf("%v: %d bytes: %w", t, length, ErrRecordTooLarge)
	}

	if length == 0 {
		return t, nil, nil
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return 0, nil, fmt.Errorf("read payload (tag=%v len=%d): %w", t, length, err)
	}

	return t, payload, nil
}
