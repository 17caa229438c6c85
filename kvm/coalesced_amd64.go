//go:build linux && amd64

package kvm

import (
	"unsafe"

	"github.com/bobuhiro11/gokvm-bindings/fam"
)

// CoalescedMMIORing is the header of the ring mapped at
// CoalescedMMIOPageOffset of the vCPU mmap. CoalescedMMIO records follow it.
type CoalescedMMIORing struct {
	First uint32
	Last  uint32
}

// CoalescedMMIOMax is the number of records that fit in a ring page.
func CoalescedMMIOMax(pageSize int) int {
	return (pageSize - int(fam.Offset[CoalescedMMIO, CoalescedMMIORing]())) / int(unsafe.Sizeof(CoalescedMMIO{}))
}

// Records views the first n records of the ring.
func (r *CoalescedMMIORing) Records(n int) []CoalescedMMIO {
	return fam.After[CoalescedMMIO](r).Slice(n)
}

// RegisterCoalescedMMIO adds a coalesced zone.
func RegisterCoalescedMMIO(vmFd uintptr, zone *CoalescedMMIOZone) error {
	_, err := Ioctl(vmFd, IoctlRegisterCoalescedMMIO, uintptr(unsafe.Pointer(zone)))

	return err
}

// UnregisterCoalescedMMIO removes a coalesced zone.
func UnregisterCoalescedMMIO(vmFd uintptr, zone *CoalescedMMIOZone) error {
	_, err := Ioctl(vmFd, IoctlUnregisterCoalescedMMIO, uintptr(unsafe.Pointer(zone)))

	return err
}
