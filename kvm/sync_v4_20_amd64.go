//go:build linux && amd64 && !kvm_v4_14_0

package kvm

// Bits of RunData.KVMValidRegs and KVMDirtyRegs.
const (
	SyncX86Regs   = 1 << 0
	SyncX86Sregs  = 1 << 1
	SyncX86Events = 1 << 2

	SyncX86ValidFields = SyncX86Regs | SyncX86Sregs | SyncX86Events
)

// SyncRegs is the register state KVM copies in and out of the run page
// when selected by KVMValidRegs and KVMDirtyRegs.
type SyncRegs struct {
	Regs   Regs
	Sregs  Sregs
	Events VCPUEvents
}
