//go:build linux && amd64

package kvm

import "unsafe"

// UserspaceMemoryRegion defines Memory Regions.
type UserspaceMemoryRegion struct {
	Slot          uint32
	Flags         uint32
	GuestPhysAddr uint64
	MemorySize    uint64
	UserspaceAddr uint64
}

// SetMemLogDirtyPages sets region flags to log dirty pages.
// This is useful in many situations, including migration.
func (r *UserspaceMemoryRegion) SetMemLogDirtyPages() {
	r.Flags |= MemLogDirtyPages
}

// SetMemReadonly marks a region as read only.
func (r *UserspaceMemoryRegion) SetMemReadonly() {
	r.Flags |= MemReadonly
}

// SetUserMemoryRegion adds a memory region to a vm -- not a vcpu, a vm.
func SetUserMemoryRegion(vmFd uintptr, region *UserspaceMemoryRegion) error {
	_, err := Ioctl(vmFd, IoctlSetUserMemoryRegion, uintptr(unsafe.Pointer(region)))

	return err
}

// MemoryRegion is the pre-userspace-memory slot description, kept for
// KVM_SET_MEMORY_REGION.
type MemoryRegion struct {
	Slot          uint32
	Flags         uint32
	GuestPhysAddr uint64
	MemorySize    uint64
}

// DirtyLog asks for the dirty page bitmap of one slot. BitMap is the
// userspace address of the bitmap buffer.
type DirtyLog struct {
	Slot   uint32
	_      uint32
	BitMap uint64
}

// GetDirtyLog fills the bitmap named by dl and clears it in the kernel.
func GetDirtyLog(vmFd uintptr, dl *DirtyLog) error {
	_, err := Ioctl(vmFd, IoctlGetDirtyLog, uintptr(unsafe.Pointer(dl)))

	return err
}

// Translation asks the vCPU MMU to translate a guest linear address.
type Translation struct {
	LinearAddress   uint64
	PhysicalAddress uint64
	Valid           uint8
	Writeable       uint8
	Usermode        uint8
	_               [5]uint8
}

// Translate fills tr.PhysicalAddress for tr.LinearAddress.
func Translate(vcpuFd uintptr, tr *Translation) error {
	_, err := Ioctl(vcpuFd, IoctlTranslate, uintptr(unsafe.Pointer(tr)))

	return err
}

// SetTSSAddr sets the address of the 3-page region KVM uses for the real
// mode TSS.
func SetTSSAddr(vmFd uintptr, addr uint32) error {
	_, err := Ioctl(vmFd, IoctlSetTSSAddr, uintptr(addr))

	return err
}

// SetIdentityMapAddr sets the address of the one-page identity map.
func SetIdentityMapAddr(vmFd uintptr, addr uint64) error {
	_, err := Ioctl(vmFd, IoctlSetIdentityMapAddr, uintptr(unsafe.Pointer(&addr)))

	return err
}
