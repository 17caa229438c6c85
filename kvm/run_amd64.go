//go:build linux && amd64

package kvm

import (
	"fmt"
	"unsafe"
)

// RunData is the shared page KVM_RUN fills in, mapped from the vCPU fd.
// Exit is a union whose live member depends on ExitReason; S is the
// synchronized register area.
type RunData struct {
	RequestInterruptWindow     uint8
	ImmediateExit              uint8
	_                          [6]uint8
	ExitReason                 uint32
	ReadyForInterruptInjection uint8
	IfFlag                     uint8
	Flags                      uint16
	CR8                        uint64
	ApicBase                   uint64
	Exit                       RunExit
	KVMValidRegs               uint64
	KVMDirtyRegs               uint64
	S                          RunSync
}

// RunExit is the union of exit payloads.
type RunExit struct {
	_    [0]uint64
	Data [256]byte
}

// RunSync is the union holding SyncRegs.
type RunSync struct {
	_    [0]uint64
	Data [2048]byte
}

// Reason returns ExitReason as an ExitType.
func (r *RunData) Reason() ExitType {
	return ExitType(r.ExitReason)
}

// ExitHW is the payload of EXITUNKNOWN.
type ExitHW struct {
	HardwareExitReason uint64
}

// ExitFailEntry is the payload of EXITFAILENTRY.
type ExitFailEntry struct {
	HardwareEntryFailureReason uint64
}

// ExitException is the payload of EXITEXCEPTION.
type ExitException struct {
	Exception uint32
	ErrorCode uint32
}

// ExitIO is the payload of EXITIO. The data lives in the run page at
// DataOffset.
type ExitIO struct {
	Direction  uint8
	Size       uint8
	Port       uint16
	Count      uint32
	DataOffset uint64
}

// ExitDebug is the payload of EXITDEBUG.
type ExitDebug struct {
	Arch DebugExitArch
}

// ExitMMIO is the payload of EXITMMIO.
type ExitMMIO struct {
	PhysAddr uint64
	Data     [8]uint8
	Len      uint32
	IsWrite  uint8
	_        [3]uint8
}

// ExitHypercall is the payload of EXITHYPERCALL.
type ExitHypercall struct {
	Nr       uint64
	Args     [6]uint64
	Ret      uint64
	LongMode uint32
	_        uint32
}

// ExitTPRAccess is the payload of EXITTPRACCESS.
type ExitTPRAccess struct {
	RIP     uint64
	IsWrite uint32
	_       uint32
}

// ExitDCR is the payload of EXITDCR.
type ExitDCR struct {
	DCRN    uint32
	Data    uint32
	IsWrite uint8
	_       [3]uint8
}

// ExitInternal is the payload of EXITINTERNALERROR.
type ExitInternal struct {
	Suberror uint32
	NData    uint32
	Data     [16]uint64
}

// ExitSystemEvent is the payload of EXITSYSTEMEVENT.
type ExitSystemEvent struct {
	Type  uint32
	_     uint32
	Flags uint64
}

// ExitEOI is the payload of EXITIOAPICEOI.
type ExitEOI struct {
	Vector uint8
}

// HypervExit is the payload of EXITHYPERV. U is a union selected by Type.
type HypervExit struct {
	Type uint32
	_    uint32
	U    HypervExitUnion
}

// HypervExitUnion holds a SynIC or hypercall exit.
type HypervExitUnion struct {
	_    [0]uint64
	Data [32]byte
}

// HypervSynIC is a SynIC MSR write.
type HypervSynIC struct {
	MSR     uint32
	_       uint32
	Control uint64
	EvtPage uint64
	MsgPage uint64
}

// HypervHCall is a Hyper-V hypercall.
type HypervHCall struct {
	Input  uint64
	Result uint64
	Params [2]uint64
}

// SynIC views the exit as a SynIC MSR write.
func (h *HypervExit) SynIC() *HypervSynIC {
	return (*HypervSynIC)(unsafe.Pointer(&h.U.Data))
}

// HCall views the exit as a hypercall.
func (h *HypervExit) HCall() *HypervHCall {
	return (*HypervHCall)(unsafe.Pointer(&h.U.Data))
}

func exitAs[T any](r *RunData) *T {
	return (*T)(unsafe.Pointer(&r.Exit.Data))
}

func (r *RunData) HW() *ExitHW                   { return exitAs[ExitHW](r) }
func (r *RunData) FailEntry() *ExitFailEntry     { return exitAs[ExitFailEntry](r) }
func (r *RunData) Exception() *ExitException     { return exitAs[ExitException](r) }
func (r *RunData) IO() *ExitIO                   { return exitAs[ExitIO](r) }
func (r *RunData) Debug() *ExitDebug             { return exitAs[ExitDebug](r) }
func (r *RunData) MMIO() *ExitMMIO               { return exitAs[ExitMMIO](r) }
func (r *RunData) Hypercall() *ExitHypercall     { return exitAs[ExitHypercall](r) }
func (r *RunData) TPRAccess() *ExitTPRAccess     { return exitAs[ExitTPRAccess](r) }
func (r *RunData) DCR() *ExitDCR                 { return exitAs[ExitDCR](r) }
func (r *RunData) Internal() *ExitInternal       { return exitAs[ExitInternal](r) }
func (r *RunData) SystemEvent() *ExitSystemEvent { return exitAs[ExitSystemEvent](r) }
func (r *RunData) EOI() *ExitEOI                 { return exitAs[ExitEOI](r) }
func (r *RunData) Hyperv() *HypervExit           { return exitAs[HypervExit](r) }

// SyncRegs views the synchronized register area.
func (r *RunData) SyncRegs() *SyncRegs {
	return (*SyncRegs)(unsafe.Pointer(&r.S.Data))
}

// IOData returns the bytes an IO exit transfers, taken from page, the
// full vCPU mapping the RunData was read from.
func (e *ExitIO) IOData(page []byte) ([]byte, error) {
	n := uint64(e.Size) * uint64(e.Count)
	if e.DataOffset > uint64(len(page)) || n > uint64(len(page))-e.DataOffset {
		return nil, fmt.Errorf("offset %#x len %d in %d-byte page: %w",
			e.DataOffset, n, len(page), ErrIODataRange)
	}

	return page[e.DataOffset : e.DataOffset+n], nil
}

// Run runs a vcpu until the next exit.
func Run(vcpuFd uintptr) error {
	_, err := Ioctl(vcpuFd, IoctlRun, 0)

	return err
}
