//go:build linux && amd64

package kvm

import (
	"fmt"

	"github.com/bobuhiro11/gokvm-bindings/fam"
)

// MaxCPUIDEntries is the capacity used when asking the kernel for CPUID
// tables; KVM returns E2BIG if it needs more.
const MaxCPUIDEntries = 100

// CPUIDEntry is one entry of the legacy KVM_SET_CPUID table.
type CPUIDEntry struct {
	Function uint32
	Eax      uint32
	Ebx      uint32
	Ecx      uint32
	Edx      uint32
	_        uint32
}

// CPUID is the header of a KVM_SET_CPUID table. Nent CPUIDEntry values
// follow it in memory.
type CPUID struct {
	Nent uint32
	_    uint32
}

// CPUIDEntry2 is one entry for CPUID. It took 2 tries to get it right :-)
// Thanks x86 :-).
type CPUIDEntry2 struct {
	Function uint32
	Index    uint32
	Flags    uint32
	Eax      uint32
	Ebx      uint32
	Ecx      uint32
	Edx      uint32
	_        [3]uint32
}

// CPUID2 is the header of a CPUID table. Nent CPUIDEntry2 values follow it
// in memory.
type CPUID2 struct {
	Nent uint32
	_    uint32
}

// CPUID2Buffer holds a CPUID2 header and its entries in one allocation.
type CPUID2Buffer = fam.Buffer[CPUID2, CPUIDEntry2]

// NewCPUID2 allocates a CPUID table with room for n entries and Nent set to n.
func NewCPUID2(n int) *CPUID2Buffer {
	b := fam.New[CPUID2, CPUIDEntry2](n)
	b.Header().Nent = uint32(b.Cap())

	return b
}

// CPUID2Entries returns the entries the header of b says are valid.
func CPUID2Entries(b *CPUID2Buffer) ([]CPUIDEntry2, error) {
	es, err := b.Entries(int(b.Header().Nent))
	if err != nil {
		return nil, fmt.Errorf("cpuid nent: %w", err)
	}

	return es, nil
}

func getCPUID(fd, op uintptr, n int) ([]CPUIDEntry2, error) {
	b := NewCPUID2(n)
	if _, err := Ioctl(fd, op, uintptr(b.Pointer())); err != nil {
		return nil, err
	}

	es, err := CPUID2Entries(b)
	if err != nil {
		return nil, err
	}

	return append([]CPUIDEntry2(nil), es...), nil
}

// GetSupportedCPUID gets all supported CPUID entries for a vm.
func GetSupportedCPUID(kvmFd uintptr) ([]CPUIDEntry2, error) {
	return getCPUID(kvmFd, IoctlGetSupportedCPUID, MaxCPUIDEntries)
}

// GetEmulatedCPUID gets the CPUID entries KVM can emulate.
func GetEmulatedCPUID(kvmFd uintptr) ([]CPUIDEntry2, error) {
	return getCPUID(kvmFd, IoctlGetEmulatedCPUID, MaxCPUIDEntries)
}

// GetCPUID2 reads back the CPUID table of a vCPU.
func GetCPUID2(vcpuFd uintptr) ([]CPUIDEntry2, error) {
	return getCPUID(vcpuFd, IoctlGetCPUID2, MaxCPUIDEntries)
}

// SetCPUID2 sets entries for a vCPU.
// The progression is, hence, get the CPUID entries for a vm, then set them into
// individual vCPUs. This seems odd, but in fact lets code tailor CPUID entries
// as needed.
func SetCPUID2(vcpuFd uintptr, entries []CPUIDEntry2) error {
	b := NewCPUID2(len(entries))

	es, err := CPUID2Entries(b)
	if err != nil {
		return err
	}

	copy(es, entries)

	_, err = Ioctl(vcpuFd, IoctlSetCPUID2, uintptr(b.Pointer()))

	return err
}
