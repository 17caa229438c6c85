//go:build linux && amd64 && !kvm_v4_14_0

package kvm

import (
	"unsafe"

	"github.com/bobuhiro11/gokvm-bindings/fam"
)

// NestedState flags.
const (
	NestedStateGuestMode  = 0x00000001
	NestedStateRunPending = 0x00000002

	NestedStateSMMGuestMode = 0x00000001
	NestedStateSMMVMXON     = 0x00000002
)

// VMXNestedState is the VMX part of NestedState.
type VMXNestedState struct {
	VMXONPA uint64
	VMCSPA  uint64
	SMM     VMXNestedSMM
	_       [6]uint8
}

// VMXNestedSMM records whether the L1 guest was in SMM.
type VMXNestedSMM struct {
	Flags uint16
}

// NestedState is the header of the nested virtualization state. Size
// counts the header and the vendor data that follows it.
type NestedState struct {
	Flags  uint16
	Format uint16
	Size   uint32
	U      NestedStateUnion
}

// NestedStateUnion holds the vendor specific part.
type NestedStateUnion struct {
	_    [0]uint64
	Data [120]byte
}

// VMX views the vendor part as VMX state.
func (n *NestedState) VMX() *VMXNestedState {
	return (*VMXNestedState)(unsafe.Pointer(&n.U.Data))
}

// Data views the vendor blob following the header.
func (n *NestedState) Data() []byte {
	if n.Size <= uint32(unsafe.Sizeof(*n)) {
		return []byte{}
	}

	return fam.After[byte](n).Slice(int(n.Size) - int(unsafe.Sizeof(*n)))
}

// NestedStateBuffer holds a NestedState header and its data.
type NestedStateBuffer = fam.Buffer[NestedState, byte]

// GetNestedState reads the nested state of a vcpu into a buffer with
// room for size bytes in total.
func GetNestedState(vcpuFd uintptr, size int) (*NestedStateBuffer, error) {
	b := fam.New[NestedState, byte](size - int(unsafe.Sizeof(NestedState{})))
	b.Header().Size = uint32(b.Size())

	if _, err := Ioctl(vcpuFd, IoctlGetNestedState, uintptr(b.Pointer())); err != nil {
		return nil, err
	}

	return b, nil
}

// SetNestedState restores the nested state held in b.
func SetNestedState(vcpuFd uintptr, b *NestedStateBuffer) error {
	_, err := Ioctl(vcpuFd, IoctlSetNestedState, uintptr(b.Pointer()))

	return err
}

// GetMSRFeatureIndexList returns the list of MSRs that can be passed to the KVM_GET_MSRS system ioctl.
// This lets userspace probe host capabilities and processor features that are exposed via MSRs
// (e.g., VMX capabilities). This list also varies by kvm version and host processor, but does not change otherwise.
func GetMSRFeatureIndexList(kvmFd uintptr) ([]uint32, error) {
	return getMSRList(kvmFd, IoctlGetMSRFeatureIndexList)
}
