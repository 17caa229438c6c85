//go:build linux && amd64

package kvm_test

import (
	"testing"
	"unsafe"

	"github.com/bobuhiro11/gokvm-bindings/kvm"
	"github.com/bobuhiro11/gokvm-bindings/layout"
)

func lay(size, align uintptr, fields ...layout.Field) layout.Layout {
	return layout.Layout{Size: size, Align: align, Fields: fields}
}

func sizeOf[T any](*T) uintptr {
	var v T

	return unsafe.Sizeof(v)
}

func f(name string, offset, size uintptr) layout.Field {
	return layout.Field{Name: name, Offset: offset, Size: size}
}

type layoutTest struct {
	name  string
	value any
	want  layout.Layout
}

// The sizes and offsets below are what offsetof and sizeof report for the
// kernel structs on x86_64.
var layoutTests = []layoutTest{
	{"Regs", kvm.Regs{}, lay(144, 8, f("RAX", 0, 8), f("R8", 64, 8), f("RIP", 128, 8), f("RFLAGS", 136, 8))},
	{"Segment", kvm.Segment{}, lay(24, 8,
		f("Base", 0, 8), f("Limit", 8, 4), f("Selector", 12, 2), f("Typ", 14, 1), f("Present", 15, 1),
		f("DPL", 16, 1), f("DB", 17, 1), f("S", 18, 1), f("L", 19, 1), f("G", 20, 1), f("AVL", 21, 1),
		f("Unusable", 22, 1))},
	{"Descriptor", kvm.Descriptor{}, lay(16, 8, f("Base", 0, 8), f("Limit", 8, 2))},
	{"Sregs", kvm.Sregs{}, lay(312, 8,
		f("CS", 0, 24), f("LDT", 168, 24), f("GDT", 192, 16), f("IDT", 208, 16), f("CR0", 224, 8),
		f("CR8", 256, 8), f("EFER", 264, 8), f("ApicBase", 272, 8), f("InterruptBitmap", 280, 32))},
	{"FPU", kvm.FPU{}, lay(416, 8,
		f("FPR", 0, 128), f("FCW", 128, 2), f("FSW", 130, 2), f("FTWX", 132, 1), f("LastOpcode", 134, 2),
		f("LastIP", 136, 8), f("LastDP", 144, 8), f("XMM", 152, 256), f("MXCSR", 408, 4))},
	{"DebugRegs", kvm.DebugRegs{}, lay(128, 8, f("DB", 0, 32), f("DR6", 32, 8), f("DR7", 40, 8), f("Flags", 48, 8))},
	{"LAPICState", kvm.LAPICState{}, lay(1024, 1, f("Regs", 0, 1024))},
	{"XSave", kvm.XSave{}, lay(4096, 4, f("Region", 0, 4096))},
	{"XCR", kvm.XCR{}, lay(16, 8, f("XCR", 0, 4), f("Value", 8, 8))},
	{"XCRS", kvm.XCRS{}, lay(392, 8, f("NrXCRS", 0, 4), f("Flags", 4, 4), f("XCRS", 8, 256))},
	{"VCPUEvents", kvm.VCPUEvents{}, lay(64, 4,
		f("Exception", 0, 8), f("Interrupt", 8, 4), f("NMI", 12, 4), f("SIPIVector", 16, 4),
		f("Flags", 20, 4), f("SMI", 24, 4))},
	{"VCPUEventsException", kvm.VCPUEventsException{}, lay(8, 4, f("Nr", 1, 1), f("ErrorCode", 4, 4))},
	{"VCPUEventsInterrupt", kvm.VCPUEventsInterrupt{}, lay(4, 1, f("Shadow", 3, 1))},
	{"VCPUEventsNMI", kvm.VCPUEventsNMI{}, lay(4, 1, f("Masked", 2, 1))},
	{"VCPUEventsSMI", kvm.VCPUEventsSMI{}, lay(4, 1, f("LatchedInit", 3, 1))},
	{"MPState", kvm.MPState{}, lay(4, 4, f("State", 0, 4))},
	{"ClockData", kvm.ClockData{}, lay(48, 8, f("Clock", 0, 8), f("Flags", 8, 4))},
	{"MSREntry", kvm.MSREntry{}, lay(16, 8, f("Index", 0, 4), f("Data", 8, 8))},
	{"MSRs", kvm.MSRs{}, lay(8, 4, f("NMSRs", 0, 4))},
	{"MSRList", kvm.MSRList{}, lay(4, 4, f("NMSRs", 0, 4))},
	{"CPUIDEntry", kvm.CPUIDEntry{}, lay(24, 4, f("Function", 0, 4), f("Edx", 16, 4))},
	{"CPUID", kvm.CPUID{}, lay(8, 4, f("Nent", 0, 4))},
	{"CPUIDEntry2", kvm.CPUIDEntry2{}, lay(40, 4,
		f("Function", 0, 4), f("Index", 4, 4), f("Flags", 8, 4), f("Eax", 12, 4), f("Edx", 24, 4))},
	{"CPUID2", kvm.CPUID2{}, lay(8, 4, f("Nent", 0, 4))},
	{"PICState", kvm.PICState{}, lay(16, 1, f("LastIRR", 0, 1), f("ELCRMask", 15, 1))},
	{"IOAPICRedirFields", kvm.IOAPICRedirFields{}, lay(8, 1,
		f("Vector", 0, 1), f("Bitfield", 1, 2), f("Reserved", 3, 4), f("DestID", 7, 1))},
	{"IOAPICRedirEntry", kvm.IOAPICRedirEntry{}, lay(8, 8, f("Data", 0, 8))},
	{"IOAPICState", kvm.IOAPICState{}, lay(216, 8,
		f("BaseAddress", 0, 8), f("IORegSel", 8, 4), f("ID", 12, 4), f("IRR", 16, 4), f("RedirTbl", 24, 192))},
	{"IRQChip", kvm.IRQChip{}, lay(520, 8, f("ChipID", 0, 4), f("Chip", 8, 512))},
	{"IRQLevel", kvm.IRQLevel{}, lay(8, 4, f("Data", 0, 4), f("Level", 4, 4))},
	{"PITConfig", kvm.PITConfig{}, lay(64, 4, f("Flags", 0, 4))},
	{"PITChannelState", kvm.PITChannelState{}, lay(24, 8,
		f("Count", 0, 4), f("LatchedCount", 4, 2), f("CountLatched", 6, 1), f("Status", 8, 1),
		f("RWMode", 12, 1), f("Gate", 15, 1), f("CountLoadTime", 16, 8))},
	{"PITState", kvm.PITState{}, lay(72, 8, f("Channels", 0, 72))},
	{"PITState2", kvm.PITState2{}, lay(112, 8, f("Channels", 0, 72), f("Flags", 72, 4))},
	{"ReinjectControl", kvm.ReinjectControl{}, lay(32, 1, f("PITReinject", 0, 1))},
	{"Interrupt", kvm.Interrupt{}, lay(4, 4, f("IRQ", 0, 4))},
	{"MSI", kvm.MSI{}, lay(32, 4, f("Data", 8, 4), f("Flags", 12, 4), f("DevID", 16, 4))},
	{"IRQFD", kvm.IRQFD{}, lay(32, 4, f("GSI", 4, 4), f("ResampleFD", 12, 4))},
	{"IRQRoutingIRQChip", kvm.IRQRoutingIRQChip{}, lay(8, 4, f("Pin", 4, 4))},
	{"IRQRoutingMSI", kvm.IRQRoutingMSI{}, lay(16, 4, f("Data", 8, 4), f("DevID", 12, 4))},
	{"IRQRoutingHvSint", kvm.IRQRoutingHvSint{}, lay(8, 4, f("Sint", 4, 4))},
	{"IRQRoutingEntry", kvm.IRQRoutingEntry{}, lay(48, 8, f("GSI", 0, 4), f("Flags", 8, 4), f("U", 16, 32))},
	{"IRQRouting", kvm.IRQRouting{}, lay(8, 4, f("Nr", 0, 4), f("Flags", 4, 4))},
	{"UserspaceMemoryRegion", kvm.UserspaceMemoryRegion{}, lay(32, 8,
		f("Slot", 0, 4), f("Flags", 4, 4), f("GuestPhysAddr", 8, 8), f("MemorySize", 16, 8), f("UserspaceAddr", 24, 8))},
	{"MemoryRegion", kvm.MemoryRegion{}, lay(24, 8, f("GuestPhysAddr", 8, 8), f("MemorySize", 16, 8))},
	{"DirtyLog", kvm.DirtyLog{}, lay(16, 8, f("Slot", 0, 4), f("BitMap", 8, 8))},
	{"CoalescedMMIOZone", kvm.CoalescedMMIOZone{}, lay(16, 8, f("Addr", 0, 8), f("Size", 8, 4))},
	{"CoalescedMMIO", kvm.CoalescedMMIO{}, lay(24, 8, f("Len", 8, 4), f("Data", 16, 8))},
	{"CoalescedMMIORing", kvm.CoalescedMMIORing{}, lay(8, 4, f("First", 0, 4), f("Last", 4, 4))},
	{"Translation", kvm.Translation{}, lay(24, 8,
		f("PhysicalAddress", 8, 8), f("Valid", 16, 1), f("Writeable", 17, 1), f("Usermode", 18, 1))},
	{"SignalMask", kvm.SignalMask{}, lay(4, 4, f("Len", 0, 4))},
	{"TPRAccessCtl", kvm.TPRAccessCtl{}, lay(40, 4, f("Flags", 4, 4))},
	{"VAPICAddr", kvm.VAPICAddr{}, lay(8, 8, f("VAPICAddr", 0, 8))},
	{"GuestDebugArch", kvm.GuestDebugArch{}, lay(64, 8, f("DebugReg", 0, 64))},
	{"GuestDebug", kvm.GuestDebug{}, lay(72, 8, f("Control", 0, 4), f("Arch", 8, 64))},
	{"DebugExitArch", kvm.DebugExitArch{}, lay(32, 8, f("PC", 8, 8), f("DR6", 16, 8), f("DR7", 24, 8))},
	{"X86MCE", kvm.X86MCE{}, lay(64, 8, f("MCGStatus", 24, 8), f("Bank", 32, 1))},
	{"XenHVMConfig", kvm.XenHVMConfig{}, lay(56, 8,
		f("MSR", 4, 4), f("BlobAddr32", 8, 8), f("BlobAddr64", 16, 8), f("BlobSize32", 24, 1), f("BlobSize64", 25, 1))},
	{"IOEventFD", kvm.IOEventFD{}, lay(64, 8, f("Addr", 8, 8), f("Len", 16, 4), f("FD", 20, 4), f("Flags", 24, 4))},
	{"EnableCap", kvm.EnableCap{}, lay(104, 8, f("Flags", 4, 4), f("Args", 8, 32))},
	{"OneReg", kvm.OneReg{}, lay(16, 8, f("ID", 0, 8), f("Addr", 8, 8))},
	{"RegList", kvm.RegList{}, lay(8, 8, f("N", 0, 8))},
	{"CreateDevice", kvm.CreateDevice{}, lay(12, 4, f("FD", 4, 4), f("Flags", 8, 4))},
	{"DeviceAttr", kvm.DeviceAttr{}, lay(24, 8, f("Group", 4, 4), f("Attr", 8, 8), f("Addr", 16, 8))},
	{"HypervExit", kvm.HypervExit{}, lay(40, 8, f("Type", 0, 4), f("U", 8, 32))},
	{"HypervSynIC", kvm.HypervSynIC{}, lay(32, 8, f("Control", 8, 8), f("EvtPage", 16, 8), f("MsgPage", 24, 8))},
	{"HypervHCall", kvm.HypervHCall{}, lay(32, 8, f("Result", 8, 8), f("Params", 16, 16))},
	{"RunData", kvm.RunData{}, lay(2352, 8,
		f("ImmediateExit", 1, 1), f("ExitReason", 8, 4), f("ReadyForInterruptInjection", 12, 1),
		f("IfFlag", 13, 1), f("Flags", 14, 2), f("CR8", 16, 8), f("ApicBase", 24, 8), f("Exit", 32, 256),
		f("KVMValidRegs", 288, 8), f("KVMDirtyRegs", 296, 8), f("S", 304, 2048))},
	{"ExitHW", kvm.ExitHW{}, lay(8, 8)},
	{"ExitFailEntry", kvm.ExitFailEntry{}, lay(8, 8)},
	{"ExitException", kvm.ExitException{}, lay(8, 4, f("ErrorCode", 4, 4))},
	{"ExitIO", kvm.ExitIO{}, lay(16, 8,
		f("Direction", 0, 1), f("Size", 1, 1), f("Port", 2, 2), f("Count", 4, 4), f("DataOffset", 8, 8))},
	{"ExitDebug", kvm.ExitDebug{}, lay(32, 8)},
	{"ExitMMIO", kvm.ExitMMIO{}, lay(24, 8, f("Data", 8, 8), f("Len", 16, 4), f("IsWrite", 20, 1))},
	{"ExitHypercall", kvm.ExitHypercall{}, lay(72, 8, f("Args", 8, 48), f("Ret", 56, 8), f("LongMode", 64, 4))},
	{"ExitTPRAccess", kvm.ExitTPRAccess{}, lay(16, 8, f("IsWrite", 8, 4))},
	{"ExitDCR", kvm.ExitDCR{}, lay(12, 4, f("Data", 4, 4), f("IsWrite", 8, 1))},
	{"ExitInternal", kvm.ExitInternal{}, lay(136, 8, f("NData", 4, 4), f("Data", 8, 128))},
	{"ExitSystemEvent", kvm.ExitSystemEvent{}, lay(16, 8, f("Flags", 8, 8))},
	{"ExitEOI", kvm.ExitEOI{}, lay(1, 1)},
}

func runLayoutTests(t *testing.T, tests []layoutTest) {
	t.Helper()

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if err := layout.Check(test.value, test.want); err != nil {
				t.Error(err)
			}

			if err := layout.Packed(test.value); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestLayout(t *testing.T) {
	t.Parallel()

	runLayoutTests(t, layoutTests)
}

func TestExitViewsFitUnion(t *testing.T) {
	t.Parallel()

	var r kvm.RunData

	for _, size := range []uintptr{
		sizeOf(r.HW()), sizeOf(r.IO()), sizeOf(r.MMIO()), sizeOf(r.Hypercall()),
		sizeOf(r.Internal()), sizeOf(r.Hyperv()), sizeOf(r.SystemEvent()), sizeOf(r.Debug()),
	} {
		if size > uintptr(len(r.Exit.Data)) {
			t.Errorf("exit view of %d bytes overflows the %d-byte union", size, len(r.Exit.Data))
		}
	}

	if sizeOf(r.SyncRegs()) > uintptr(len(r.S.Data)) {
		t.Errorf("SyncRegs overflows the %d-byte union", len(r.S.Data))
	}
}
