//go:build linux && amd64 && !kvm_v4_14_0

package kvm

// CoalescedMMIOZone registers an MMIO or, with PIO set, a port IO range
// whose writes are batched into the coalesced ring. PIO shares storage
// with the padding of older headers.
type CoalescedMMIOZone struct {
	Addr uint64
	Size uint32
	PIO  uint32
}

// CoalescedMMIO is one batched write.
type CoalescedMMIO struct {
	PhysAddr uint64
	Len      uint32
	PIO      uint32
	Data     [8]uint8
}
