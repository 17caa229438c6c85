//go:build linux && amd64 && kvm_v4_14_0

package kvm

// CoalescedMMIOZone registers an MMIO range whose writes are batched into
// the coalesced ring.
type CoalescedMMIOZone struct {
	Addr uint64
	Size uint32
	Pad  uint32
}

// CoalescedMMIO is one batched write.
type CoalescedMMIO struct {
	PhysAddr uint64
	Len      uint32
	Pad      uint32
	Data     [8]uint8
}
