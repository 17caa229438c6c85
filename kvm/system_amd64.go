//go:build linux && amd64

package kvm

import (
	"fmt"
	"unsafe"
)

// GetAPIVersion returns the KVM API version. Only APIVersion is supported.
func GetAPIVersion(kvmFd uintptr) (uintptr, error) {
	return Ioctl(kvmFd, IoctlGetAPIVersion, 0)
}

// CreateVM creates a vm and returns its fd.
func CreateVM(kvmFd uintptr) (uintptr, error) {
	return Ioctl(kvmFd, IoctlCreateVM, 0)
}

// CreateVCPU creates vcpu id in the vm and returns its fd.
func CreateVCPU(vmFd uintptr, id int) (uintptr, error) {
	return Ioctl(vmFd, IoctlCreateVCPU, uintptr(id))
}

// CheckExtension returns 0 when c is unsupported, and a positive value
// otherwise. Some capabilities report a count or limit.
func CheckExtension(kvmFd uintptr, c Capability) (uintptr, error) {
	return Ioctl(kvmFd, IoctlCheckExtension, uintptr(c))
}

// GetVCPUMMapSize returns the size of the region to mmap from a vcpu fd.
// It covers RunData and the pages that follow it.
func GetVCPUMMapSize(kvmFd uintptr) (uintptr, error) {
	return Ioctl(kvmFd, IoctlGetVCPUMMapSize, 0)
}

// SetNrMMUPages sets the number of shadow MMU pages of a vm.
func SetNrMMUPages(vmFd uintptr, n uint64) error {
	_, err := Ioctl(vmFd, IoctlSetNrMMUPages, uintptr(n))

	return err
}

// GetNrMMUPages returns the number of shadow MMU pages of a vm.
func GetNrMMUPages(vmFd uintptr) (uintptr, error) {
	return Ioctl(vmFd, IoctlGetNrMMUPages, 0)
}

// SetBootCPUID selects the vcpu that boots first. It must be called before
// any vcpu is created.
func SetBootCPUID(vmFd uintptr, id int) error {
	_, err := Ioctl(vmFd, IoctlSetBootCPUID, uintptr(id))

	return err
}

// InjectInterrupt queues an external interrupt when no in-kernel irqchip
// is present.
func InjectInterrupt(vcpuFd uintptr, irq uint32) error {
	intr := Interrupt{IRQ: irq}
	_, err := Ioctl(vcpuFd, IoctlInterrupt, uintptr(unsafe.Pointer(&intr)))

	return err
}

// NMI queues an NMI on the vcpu.
func NMI(vcpuFd uintptr) error {
	_, err := Ioctl(vcpuFd, IoctlNMI, 0)

	return err
}

// SMI queues an SMI on the vcpu.
func SMI(vcpuFd uintptr) error {
	_, err := Ioctl(vcpuFd, IoctlSMI, 0)

	return err
}

// SetTSCKHz sets the guest TSC frequency.
func SetTSCKHz(vcpuFd uintptr, khz uint32) error {
	_, err := Ioctl(vcpuFd, IoctlSetTSCKHz, uintptr(khz))

	return err
}

// GetTSCKHz returns the guest TSC frequency.
func GetTSCKHz(vcpuFd uintptr) (uintptr, error) {
	return Ioctl(vcpuFd, IoctlGetTSCKHz, 0)
}

// KVMClockCtrl tells the guest it was paused.
func KVMClockCtrl(vcpuFd uintptr) error {
	_, err := Ioctl(vcpuFd, IoctlKVMClockCtrl, 0)

	return err
}

// GetOneReg reads the register named by id into *val.
func GetOneReg(vcpuFd uintptr, id uint64, val *uint64) error {
	if RegSize(id) != 8 {
		return fmt.Errorf("one reg %#x: %w", id, ErrBadRegister)
	}

	reg := OneReg{ID: id, Addr: uint64(uintptr(unsafe.Pointer(val)))}
	_, err := Ioctl(vcpuFd, IoctlGetOneReg, uintptr(unsafe.Pointer(&reg)))

	return err
}

// SetOneReg writes val to the register named by id.
func SetOneReg(vcpuFd uintptr, id uint64, val uint64) error {
	if RegSize(id) != 8 {
		return fmt.Errorf("one reg %#x: %w", id, ErrBadRegister)
	}

	reg := OneReg{ID: id, Addr: uint64(uintptr(unsafe.Pointer(&val)))}
	_, err := Ioctl(vcpuFd, IoctlSetOneReg, uintptr(unsafe.Pointer(&reg)))

	return err
}

// SetIRQFD binds or unbinds an eventfd and a GSI.
func SetIRQFD(vmFd uintptr, irqfd *IRQFD) error {
	_, err := Ioctl(vmFd, IoctlIRQFD, uintptr(unsafe.Pointer(irqfd)))

	return err
}

// SetIOEventFD registers or removes an ioeventfd.
func SetIOEventFD(vmFd uintptr, ioeventfd *IOEventFD) error {
	_, err := Ioctl(vmFd, IoctlIOEventFD, uintptr(unsafe.Pointer(ioeventfd)))

	return err
}

// X86GetMCECapSupported returns the MCG_CAP bits KVM can emulate.
func X86GetMCECapSupported(kvmFd uintptr) (uint64, error) {
	var mcgCap uint64

	_, err := Ioctl(kvmFd, IoctlX86GetMCECapSupported, uintptr(unsafe.Pointer(&mcgCap)))

	return mcgCap, err
}

// X86SetupMCE enables machine check emulation with mcgCap.
func X86SetupMCE(vcpuFd uintptr, mcgCap uint64) error {
	_, err := Ioctl(vcpuFd, IoctlX86SetupMCE, uintptr(unsafe.Pointer(&mcgCap)))

	return err
}

// X86SetMCE injects a machine check.
func X86SetMCE(vcpuFd uintptr, mce *X86MCE) error {
	_, err := Ioctl(vcpuFd, IoctlX86SetMCE, uintptr(unsafe.Pointer(mce)))

	return err
}
