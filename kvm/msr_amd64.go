//go:build linux && amd64

package kvm

import (
	"errors"
	"fmt"

	"github.com/bobuhiro11/gokvm-bindings/fam"
)

// ErrMSRRejected is returned when the kernel refuses part of a SetMSRs batch.
var ErrMSRRejected = errors.New("msr rejected")

// MaxMSRIndices is the capacity used for MSR index lists.
const MaxMSRIndices = 512

// MSREntry is one model specific register and its value.
type MSREntry struct {
	Index uint32
	_     uint32
	Data  uint64
}

// MSRs is the header of a KVM_{GET,SET}_MSRS request. NMSRs MSREntry
// values follow it in memory.
type MSRs struct {
	NMSRs uint32
	_     uint32
}

// MSRList is the header of an MSR index list. NMSRs uint32 indices follow
// it in memory.
type MSRList struct {
	NMSRs uint32
}

func getMSRList(kvmFd, op uintptr) ([]uint32, error) {
	b := fam.New[MSRList, uint32](MaxMSRIndices)
	b.Header().NMSRs = uint32(b.Cap())

	if _, err := Ioctl(kvmFd, op, uintptr(b.Pointer())); err != nil {
		return nil, err
	}

	idx, err := b.Entries(int(b.Header().NMSRs))
	if err != nil {
		return nil, fmt.Errorf("msr list: %w", err)
	}

	return append([]uint32(nil), idx...), nil
}

// GetMSRIndexList returns the guest msrs that are supported.
// The list varies by kvm version and host processor, but does not change otherwise.
func GetMSRIndexList(kvmFd uintptr) ([]uint32, error) {
	return getMSRList(kvmFd, IoctlGetMSRIndexList)
}

// GetMSRs reads the MSRs named by indices from a vcpu.
func GetMSRs(vcpuFd uintptr, indices []uint32) ([]MSREntry, error) {
	b := fam.New[MSRs, MSREntry](len(indices))
	b.Header().NMSRs = uint32(len(indices))

	es, err := b.Entries(len(indices))
	if err != nil {
		return nil, err
	}

	for i, idx := range indices {
		es[i].Index = idx
	}

	n, err := Ioctl(vcpuFd, IoctlGetMSRs, uintptr(b.Pointer()))
	if err != nil {
		return nil, err
	}

	// The kernel stops at the first MSR it cannot read and returns how
	// many it processed.
	return append([]MSREntry(nil), es[:min(int(n), len(es))]...), nil
}

// SetMSRs writes entries to a vcpu.
func SetMSRs(vcpuFd uintptr, entries []MSREntry) error {
	b := fam.New[MSRs, MSREntry](len(entries))
	b.Header().NMSRs = uint32(len(entries))

	es, err := b.Entries(len(entries))
	if err != nil {
		return err
	}

	copy(es, entries)

	n, err := Ioctl(vcpuFd, IoctlSetMSRs, uintptr(b.Pointer()))
	if err != nil {
		return err
	}

	if int(n) < len(entries) {
		return fmt.Errorf("set %d of %d msrs, first failure at %#x: %w",
			n, len(entries), entries[n].Index, ErrMSRRejected)
	}

	return nil
}
