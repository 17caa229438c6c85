//go:build linux && amd64

package kvm

import "unsafe"

// VCPUEvents is the pending exception, interrupt, NMI and SMI state of a vCPU.
type VCPUEvents struct {
	Exception  VCPUEventsException
	Interrupt  VCPUEventsInterrupt
	NMI        VCPUEventsNMI
	SIPIVector uint32
	Flags      uint32
	SMI        VCPUEventsSMI
	_          [9]uint32
}

// VCPUEventsException is a pending or injected exception.
type VCPUEventsException struct {
	Injected     uint8
	Nr           uint8
	HasErrorCode uint8
	Pad          uint8
	ErrorCode    uint32
}

// VCPUEventsInterrupt is a pending external interrupt.
type VCPUEventsInterrupt struct {
	Injected uint8
	Nr       uint8
	Soft     uint8
	Shadow   uint8
}

// VCPUEventsNMI is the NMI state.
type VCPUEventsNMI struct {
	Injected uint8
	Pending  uint8
	Masked   uint8
	Pad      uint8
}

// VCPUEventsSMI is the system management mode state.
type VCPUEventsSMI struct {
	SMM          uint8
	Pending      uint8
	SMMInsideNMI uint8
	LatchedInit  uint8
}

// GetVCPUEvents reads pending events of a vcpu.
func GetVCPUEvents(vcpuFd uintptr, events *VCPUEvents) error {
	_, err := Ioctl(vcpuFd, IoctlGetVCPUEvents, uintptr(unsafe.Pointer(events)))

	return err
}

// SetVCPUEvents writes pending events of a vcpu.
func SetVCPUEvents(vcpuFd uintptr, events *VCPUEvents) error {
	_, err := Ioctl(vcpuFd, IoctlSetVCPUEvents, uintptr(unsafe.Pointer(events)))

	return err
}

// MPState is the multiprocessing state of a vCPU.
type MPState struct {
	State uint32
}

// GetMPState reads the multiprocessing state of a vcpu.
func GetMPState(vcpuFd uintptr, mps *MPState) error {
	_, err := Ioctl(vcpuFd, IoctlGetMPState, uintptr(unsafe.Pointer(mps)))

	return err
}

// SetMPState writes the multiprocessing state of a vcpu.
func SetMPState(vcpuFd uintptr, mps *MPState) error {
	_, err := Ioctl(vcpuFd, IoctlSetMPState, uintptr(unsafe.Pointer(mps)))

	return err
}

// GuestDebugArch holds the x86 debug registers used for guest debugging.
type GuestDebugArch struct {
	DebugReg [8]uint64
}

// GuestDebug controls single stepping and breakpoints.
type GuestDebug struct {
	Control uint32
	_       uint32
	Arch    GuestDebugArch
}

// SetGuestDebug enables or disables guest debugging.
func SetGuestDebug(vcpuFd uintptr, dbg *GuestDebug) error {
	_, err := Ioctl(vcpuFd, IoctlSetGuestDebug, uintptr(unsafe.Pointer(dbg)))

	return err
}

// DebugExitArch is the payload of a debug exit.
type DebugExitArch struct {
	Exception uint32
	_         uint32
	PC        uint64
	DR6       uint64
	DR7       uint64
}

// X86MCE injects a machine check.
type X86MCE struct {
	Status    uint64
	Addr      uint64
	Misc      uint64
	MCGStatus uint64
	Bank      uint8
	_         [7]uint8
	_         [3]uint64
}

// TPRAccessCtl enables TPR access reporting.
type TPRAccessCtl struct {
	Enabled uint32
	Flags   uint32
	_       [8]uint32
}

// VAPICAddr is the guest physical address of the virtual APIC page.
type VAPICAddr struct {
	VAPICAddr uint64
}

// SignalMask is the header of a KVM_SET_SIGNAL_MASK request. Len bytes of
// sigset follow it.
type SignalMask struct {
	Len uint32
}

// ClockData is the kvmclock value of a vm.
type ClockData struct {
	Clock uint64
	Flags uint32
	_     [9]uint32
}

// GetClock reads the vm clock.
func GetClock(vmFd uintptr, cd *ClockData) error {
	_, err := Ioctl(vmFd, IoctlGetClock, uintptr(unsafe.Pointer(cd)))

	return err
}

// SetClock writes the vm clock.
func SetClock(vmFd uintptr, cd *ClockData) error {
	_, err := Ioctl(vmFd, IoctlSetClock, uintptr(unsafe.Pointer(cd)))

	return err
}

// XenHVMConfig configures the Xen HVM hypercall page MSR.
type XenHVMConfig struct {
	Flags      uint32
	MSR        uint32
	BlobAddr32 uint64
	BlobAddr64 uint64
	BlobSize32 uint8
	BlobSize64 uint8
	_          [30]uint8
}

// IOEventFD signals an eventfd on a guest IO or MMIO write.
type IOEventFD struct {
	Datamatch uint64
	Addr      uint64
	Len       uint32
	FD        int32
	Flags     uint32
	_         [36]uint8
}

// EnableCap turns on a capability that needs explicit enabling.
type EnableCap struct {
	Cap   uint32
	Flags uint32
	Args  [4]uint64
	_     [64]uint8
}

// EnableVMCap enables a vm-wide capability.
func EnableVMCap(vmFd uintptr, ec *EnableCap) error {
	_, err := Ioctl(vmFd, IoctlEnableCap, uintptr(unsafe.Pointer(ec)))

	return err
}

// OneReg moves one register identified by ID to or from the userspace
// address Addr.
type OneReg struct {
	ID   uint64
	Addr uint64
}

// RegList is the header of a register id list. N uint64 ids follow it.
type RegList struct {
	N uint64
}

// CreateDevice creates an in-kernel device; FD is filled in on return.
type CreateDevice struct {
	Type  uint32
	FD    uint32
	Flags uint32
}

// DeviceAttr addresses one device attribute.
type DeviceAttr struct {
	Flags uint32
	Group uint32
	Attr  uint64
	Addr  uint64
}

// CreateDev creates an in-kernel device.
func CreateDev(vmFd uintptr, dev *CreateDevice) error {
	_, err := Ioctl(vmFd, IoctlCreateDevice, uintptr(unsafe.Pointer(dev)))

	return err
}

// HasDeviceAttr reports whether the device behind devFd supports attr.
func HasDeviceAttr(devFd uintptr, attr *DeviceAttr) error {
	_, err := Ioctl(devFd, IoctlHasDeviceAttr, uintptr(unsafe.Pointer(attr)))

	return err
}
