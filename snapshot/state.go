//go:build linux && amd64

package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bobuhiro11/gokvm-bindings/codec"
	"github.com/bobuhiro11/gokvm-bindings/fam"
	"github.com/bobuhiro11/gokvm-bindings/kvm"
)

// VCPUState holds the complete architectural state of a single vCPU.
type VCPUState struct {
	ID        uint32
	Regs      kvm.Regs
	Sregs     kvm.Sregs
	FPU       kvm.FPU
	LAPIC     kvm.LAPICState
	Events    kvm.VCPUEvents
	MPState   kvm.MPState
	DebugRegs kvm.DebugRegs
	XCRS      kvm.XCRS
	XSave     kvm.XSave
	MSRs      []kvm.MSREntry
}

// NumIRQChips is the number of in-kernel irqchips: master PIC, slave PIC
// and IOAPIC.
const NumIRQChips = 3

// VMState holds VM-level (not per-vCPU) hardware state. IRQChips is
// indexed by ChipID.
type VMState struct {
	Clock    kvm.ClockData
	IRQChips [NumIRQChips]kvm.IRQChip
	PIT2     kvm.PITState2
}

// Snapshot is the complete vm state. Guest memory is not included.
type Snapshot struct {
	Header Header
	VCPUs  []VCPUState
	VM     VMState
}

func encodeMSRs(entries []kvm.MSREntry) []byte {
	b := fam.New[kvm.MSRs, kvm.MSREntry](len(entries))
	b.Header().NMSRs = uint32(len(entries))

	es, _ := b.Entries(len(entries))
	copy(es, entries)

	return append([]byte(nil), b.Bytes()...)
}

func decodeMSRs(payload []byte) ([]kvm.MSREntry, error) {
	var h kvm.MSRs
	if err := codec.Unmarshal(payload, &h); err != nil {
		return nil, fmt.Errorf("%v: %w", TagMSRs, err)
	}

	want := uint64(fam.Offset[kvm.MSREntry, kvm.MSRs]()) + uint64(h.NMSRs)*uint64(codec.Size[kvm.MSREntry]())

	switch {
	case uint64(len(payload)) < want:
		return nil, fmt.Errorf("%v: %d entries in %d bytes: %w", TagMSRs, h.NMSRs, len(payload), codec.ErrIncompleteBuffer)
	case uint64(len(payload)) > want:
		return nil, fmt.Errorf("%v: %d entries in %d bytes: %w", TagMSRs, h.NMSRs, len(payload), codec.ErrTrailingBytes)
	}

	b := fam.New[kvm.MSRs, kvm.MSREntry](int(h.NMSRs))
	copy(b.Bytes(), payload)

	es, err := b.Entries(int(h.NMSRs))
	if err != nil {
		return nil, err
	}

	return append([]kvm.MSREntry(nil), es...), nil
}

// decode fills dst from a record payload of exactly sizeof(T) bytes.
func decode[T any](t Tag, payload []byte, dst *T) error {
	if err := codec.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%v: %w", t, err)
	}

	if len(payload) > codec.Size[T]() {
		return fmt.Errorf("%v: got %d bytes, want %d: %w", t, len(payload), codec.Size[T](), codec.ErrTrailingBytes)
	}

	return nil
}

func (w *Writer) writeVCPU(s *VCPUState) error {
	id := make([]byte, 4)
	binary.BigEndian.PutUint32(id, s.ID)

	for _, r := range []struct {
		tag     Tag
		payload []byte
	}{
		{TagVCPU, id},
		{TagRegs, codec.Bytes(&s.Regs)},
		{TagSregs, codec.Bytes(&s.Sregs)},
		{TagFPU, codec.Bytes(&s.FPU)},
		{TagLAPIC, codec.Bytes(&s.LAPIC)},
		{TagEvents, codec.Bytes(&s.Events)},
		{TagMPState, codec.Bytes(&s.MPState)},
		{TagDebugRegs, codec.Bytes(&s.DebugRegs)},
		{TagXCRS, codec.Bytes(&s.XCRS)},
		{TagXSave, codec.Bytes(&s.XSave)},
		{TagMSRs, encodeMSRs(s.MSRs)},
	} {
		if err := w.WriteRecord(r.tag, r.payload); err != nil {
			return fmt.Errorf("vcpu %d: %w", s.ID, err)
		}
	}

	return nil
}

// WriteSnapshot writes s as a complete record stream.
func (w *Writer) WriteSnapshot(s *Snapshot) error {
	h := s.Header
	if h.Magic == [8]byte{} {
		h = NewHeader(len(s.VCPUs))
	}

	if int(h.NVCPUs) != len(s.VCPUs) {
		return fmt.Errorf("header says %d vcpus, snapshot has %d: %w", h.NVCPUs, len(s.VCPUs), ErrUnexpectedRecord)
	}

	if err := w.WriteRecord(TagHeader, h.marshal()); err != nil {
		return err
	}

	for i := range s.VCPUs {
		if err := w.writeVCPU(&s.VCPUs[i]); err != nil {
			return err
		}
	}

	if err := w.WriteRecord(TagClock, codec.Bytes(&s.VM.Clock)); err != nil {
		return err
	}

	for i := range s.VM.IRQChips {
		if err := w.WriteRecord(TagIRQChip, codec.Bytes(&s.VM.IRQChips[i])); err != nil {
			return err
		}
	}

	if err := w.WriteRecord(TagPIT2, codec.Bytes(&s.VM.PIT2)); err != nil {
		return err
	}

	return w.WriteRecord(TagEnd, nil)
}

// ReadSnapshot reads a complete record stream written by WriteSnapshot.
func (r *Reader) ReadSnapshot() (*Snapshot, error) {
	t, payload, err := r.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty stream: %w", ErrBadMagic)
		}

		return nil, err
	}

	if t != TagHeader {
		return nil, fmt.Errorf("first record is %v: %w", t, ErrBadMagic)
	}

	s := &Snapshot{}
	if err := s.Header.unmarshal(payload); err != nil {
		return nil, err
	}

	for {
		t, payload, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("missing %v record: %w", TagEnd, io.ErrUnexpectedEOF)
			}

			return nil, err
		}

		if t == TagEnd {
			if int(s.Header.NVCPUs) != len(s.VCPUs) {
				return nil, fmt.Errorf("header says %d vcpus, stream has %d: %w",
					s.Header.NVCPUs, len(s.VCPUs), ErrUnexpectedRecord)
			}

			return s, nil
		}

		if err := s.apply(t, payload); err != nil {
			return nil, err
		}
	}
}

func (s *Snapshot) apply(t Tag, payload []byte) error {
	switch t {
	case TagVCPU:
		if len(payload) != 4 {
			return fmt.Errorf("%v: got %d bytes, want 4: %w", t, len(payload), codec.ErrIncompleteBuffer)
		}

		s.VCPUs = append(s.VCPUs, VCPUState{ID: binary.BigEndian.Uint32(payload)})

		return nil
	case TagClock:
		return decode(t, payload, &s.VM.Clock)
	case TagPIT2:
		return decode(t, payload, &s.VM.PIT2)
	case TagIRQChip:
		var chip kvm.IRQChip
		if err := decode(t, payload, &chip); err != nil {
			return err
		}

		if chip.ChipID >= NumIRQChips {
			return fmt.Errorf("%v: chip id %d: %w", t, chip.ChipID, ErrUnexpectedRecord)
		}

		s.VM.IRQChips[chip.ChipID] = chip

		return nil
	case TagHeader:
		return fmt.Errorf("second %v: %w", t, ErrUnexpectedRecord)
	}

	if _, ok := tagNames[t]; !ok {
		return fmt.Errorf("%v: %w", t, ErrUnknownRecord)
	}

	if len(s.VCPUs) == 0 {
		return fmt.Errorf("%v before any %v record: %w", t, TagVCPU, ErrUnexpectedRecord)
	}

	v := &s.VCPUs[len(s.VCPUs)-1]

	switch t {
	case TagRegs:
		return decode(t, payload, &v.Regs)
	case TagSregs:
		return decode(t, payload, &v.Sregs)
	case TagFPU:
		return decode(t, payload, &v.FPU)
	case TagLAPIC:
		return decode(t, payload, &v.LAPIC)
	case TagEvents:
		return decode(t, payload, &v.Events)
	case TagMPState:
		return decode(t, payload, &v.MPState)
	case TagDebugRegs:
		return decode(t, payload, &v.DebugRegs)
	case TagXCRS:
		return decode(t, payload, &v.XCRS)
	case TagXSave:
		return decode(t, payload, &v.XSave)
	case TagMSRs:
		msrs, err := decodeMSRs(payload)
		if err != nil {
			return err
		}

		v.MSRs = msrs

		return nil
	}

	return fmt.Errorf("%v: %w", t, ErrUnknownRecord)
}
