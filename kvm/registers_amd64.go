//go:build linux && amd64

package kvm

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/arch/x86/x86asm"
)

// ErrBadRegister indicates a register Regs does not hold.
var ErrBadRegister = errors.New("bad register")

// Regs are registers for both 386 and amd64.
// In 386 mode, only some of them are used.
type Regs struct {
	RAX    uint64
	RBX    uint64
	RCX    uint64
	RDX    uint64
	RSI    uint64
	RDI    uint64
	RSP    uint64
	RBP    uint64
	R8     uint64
	R9     uint64
	R10    uint64
	R11    uint64
	R12    uint64
	R13    uint64
	R14    uint64
	R15    uint64
	RIP    uint64
	RFLAGS uint64
}

// Reg returns a pointer to the 64-bit register r, as named by the
// disassembler.
func (r *Regs) Reg(reg x86asm.Reg) (*uint64, error) {
	switch reg {
	case x86asm.RAX:
		return &r.RAX, nil
	case x86asm.RBX:
		return &r.RBX, nil
	case x86asm.RCX:
		return &r.RCX, nil
	case x86asm.RDX:
		return &r.RDX, nil
	case x86asm.RSI:
		return &r.RSI, nil
	case x86asm.RDI:
		return &r.RDI, nil
	case x86asm.RSP:
		return &r.RSP, nil
	case x86asm.RBP:
		return &r.RBP, nil
	case x86asm.R8:
		return &r.R8, nil
	case x86asm.R9:
		return &r.R9, nil
	case x86asm.R10:
		return &r.R10, nil
	case x86asm.R11:
		return &r.R11, nil
	case x86asm.R12:
		return &r.R12, nil
	case x86asm.R13:
		return &r.R13, nil
	case x86asm.R14:
		return &r.R14, nil
	case x86asm.R15:
		return &r.R15, nil
	case x86asm.RIP:
		return &r.RIP, nil
	}

	return nil, fmt.Errorf("%v: %w", reg, ErrBadRegister)
}

// GetRegs gets the general purpose registers for a vcpu.
func GetRegs(vcpuFd uintptr) (*Regs, error) {
	regs := &Regs{}
	_, err := Ioctl(vcpuFd, IoctlGetRegs, uintptr(unsafe.Pointer(regs)))

	return regs, err
}

// SetRegs sets the general purpose registers for a vcpu.
func SetRegs(vcpuFd uintptr, regs *Regs) error {
	_, err := Ioctl(vcpuFd, IoctlSetRegs, uintptr(unsafe.Pointer(regs)))

	return err
}

// Segment is an x86 segment descriptor.
type Segment struct {
	Base     uint64
	Limit    uint32
	Selector uint16
	Typ      uint8
	Present  uint8
	DPL      uint8
	DB       uint8
	S        uint8
	L        uint8
	G        uint8
	AVL      uint8
	Unusable uint8
	_        uint8
}

// Descriptor defines a GDT, LDT, or other pointer type (struct kvm_dtable).
type Descriptor struct {
	Base  uint64
	Limit uint16
	_     [3]uint16
}

// Sregs are control registers, for memory mapping for the most part.
type Sregs struct {
	CS              Segment
	DS              Segment
	ES              Segment
	FS              Segment
	GS              Segment
	SS              Segment
	TR              Segment
	LDT             Segment
	GDT             Descriptor
	IDT             Descriptor
	CR0             uint64
	CR2             uint64
	CR3             uint64
	CR4             uint64
	CR8             uint64
	EFER            uint64
	ApicBase        uint64
	InterruptBitmap [(NumInterrupts + 63) / 64]uint64
}

// GetSregs gets the special registers for a vcpu.
func GetSregs(vcpuFd uintptr) (*Sregs, error) {
	sregs := &Sregs{}
	_, err := Ioctl(vcpuFd, IoctlGetSregs, uintptr(unsafe.Pointer(sregs)))

	return sregs, err
}

// SetSregs sets the special registers for a vcpu.
func SetSregs(vcpuFd uintptr, sregs *Sregs) error {
	_, err := Ioctl(vcpuFd, IoctlSetSregs, uintptr(unsafe.Pointer(sregs)))

	return err
}

// FPU is the legacy x87/SSE state.
type FPU struct {
	FPR        [8][16]uint8
	FCW        uint16
	FSW        uint16
	FTWX       uint8
	_          uint8
	LastOpcode uint16
	LastIP     uint64
	LastDP     uint64
	XMM        [16][16]uint8
	MXCSR      uint32
	_          uint32
}

// GetFPU reads the FPU state of a vcpu.
func GetFPU(vcpuFd uintptr, fpu *FPU) error {
	_, err := Ioctl(vcpuFd, IoctlGetFPU, uintptr(unsafe.Pointer(fpu)))

	return err
}

// SetFPU writes the FPU state of a vcpu.
func SetFPU(vcpuFd uintptr, fpu *FPU) error {
	_, err := Ioctl(vcpuFd, IoctlSetFPU, uintptr(unsafe.Pointer(fpu)))

	return err
}

// DebugRegs are the x86 debug registers.
type DebugRegs struct {
	DB    [4]uint64
	DR6   uint64
	DR7   uint64
	Flags uint64
	_     [9]uint64
}

// GetDebugRegs reads debug registers from a vcpu.
func GetDebugRegs(vcpuFd uintptr, dregs *DebugRegs) error {
	_, err := Ioctl(vcpuFd, IoctlGetDebugRegs, uintptr(unsafe.Pointer(dregs)))

	return err
}

// SetDebugRegs sets debug registers on a vcpu.
func SetDebugRegs(vcpuFd uintptr, dregs *DebugRegs) error {
	_, err := Ioctl(vcpuFd, IoctlSetDebugRegs, uintptr(unsafe.Pointer(dregs)))

	return err
}

// LAPICState is the raw local APIC register page.
type LAPICState struct {
	Regs [APICRegSize]byte
}

// GetLocalAPIC reads the local APIC of a vcpu.
func GetLocalAPIC(vcpuFd uintptr, lapic *LAPICState) error {
	_, err := Ioctl(vcpuFd, IoctlGetLAPIC, uintptr(unsafe.Pointer(lapic)))

	return err
}

// SetLocalAPIC writes the local APIC of a vcpu.
func SetLocalAPIC(vcpuFd uintptr, lapic *LAPICState) error {
	_, err := Ioctl(vcpuFd, IoctlSetLAPIC, uintptr(unsafe.Pointer(lapic)))

	return err
}

// XSave is the XSAVE area as the kernel hands it out.
type XSave struct {
	Region [1024]uint32
}

// GetXSave reads the extended processor state of a vcpu.
func GetXSave(vcpuFd uintptr, xsave *XSave) error {
	_, err := Ioctl(vcpuFd, IoctlGetXSave, uintptr(unsafe.Pointer(xsave)))

	return err
}

// SetXSave writes the extended processor state of a vcpu.
func SetXSave(vcpuFd uintptr, xsave *XSave) error {
	_, err := Ioctl(vcpuFd, IoctlSetXSave, uintptr(unsafe.Pointer(xsave)))

	return err
}

// XCR is one extended control register.
type XCR struct {
	XCR   uint32
	_     uint32
	Value uint64
}

// XCRS holds up to MaxXCRS extended control registers.
type XCRS struct {
	NrXCRS uint32
	Flags  uint32
	XCRS   [MaxXCRS]XCR
	_      [16]uint64
}

// GetXCRS reads the extended control registers of a vcpu.
func GetXCRS(vcpuFd uintptr, xcrs *XCRS) error {
	_, err := Ioctl(vcpuFd, IoctlGetXCRS, uintptr(unsafe.Pointer(xcrs)))

	return err
}

// SetXCRS writes the extended control registers of a vcpu.
func SetXCRS(vcpuFd uintptr, xcrs *XCRS) error {
	_, err := Ioctl(vcpuFd, IoctlSetXCRS, uintptr(unsafe.Pointer(xcrs)))

	return err
}
