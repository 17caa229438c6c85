//go:build linux && amd64

package kvm_test

import (
	"testing"

	"github.com/bobuhiro11/gokvm-bindings/kvm"
)

type ioctlTest struct {
	name string
	got  uintptr
	want uintptr
}

func runIoctlTests(t *testing.T, tests []ioctlTest) {
	t.Helper()

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if test.got != test.want {
				t.Errorf("have: %#x, want: %#x", test.got, test.want)
			}
		})
	}
}

// The wanted numbers are the values of the KVM_* request macros in the
// kernel headers.
func TestIoctlNumbers(t *testing.T) {
	t.Parallel()

	runIoctlTests(t, []ioctlTest{
		{"GetAPIVersion", kvm.IoctlGetAPIVersion, 0x0000ae00},
		{"CreateVM", kvm.IoctlCreateVM, 0x0000ae01},
		{"GetMSRIndexList", kvm.IoctlGetMSRIndexList, 0xc004ae02},
		{"CheckExtension", kvm.IoctlCheckExtension, 0x0000ae03},
		{"GetVCPUMMapSize", kvm.IoctlGetVCPUMMapSize, 0x0000ae04},
		{"GetSupportedCPUID", kvm.IoctlGetSupportedCPUID, 0xc008ae05},
		{"GetEmulatedCPUID", kvm.IoctlGetEmulatedCPUID, 0xc008ae09},
		{"SetMemoryRegion", kvm.IoctlSetMemoryRegion, 0x4018ae40},
		{"CreateVCPU", kvm.IoctlCreateVCPU, 0x0000ae41},
		{"GetDirtyLog", kvm.IoctlGetDirtyLog, 0x4010ae42},
		{"SetNrMMUPages", kvm.IoctlSetNrMMUPages, 0x0000ae44},
		{"GetNrMMUPages", kvm.IoctlGetNrMMUPages, 0x0000ae45},
		{"SetUserMemoryRegion", kvm.IoctlSetUserMemoryRegion, 0x4020ae46},
		{"SetTSSAddr", kvm.IoctlSetTSSAddr, 0x0000ae47},
		{"SetIdentityMapAddr", kvm.IoctlSetIdentityMapAddr, 0x4008ae48},
		{"CreateIRQChip", kvm.IoctlCreateIRQChip, 0x0000ae60},
		{"IRQLine", kvm.IoctlIRQLine, 0x4008ae61},
		{"GetIRQChip", kvm.IoctlGetIRQChip, 0xc208ae62},
		{"SetIRQChip", kvm.IoctlSetIRQChip, 0x8208ae63},
		{"CreatePIT", kvm.IoctlCreatePIT, 0x0000ae64},
		{"GetPIT", kvm.IoctlGetPIT, 0xc048ae65},
		{"SetPIT", kvm.IoctlSetPIT, 0x8048ae66},
		{"IRQLineStatus", kvm.IoctlIRQLineStatus, 0xc008ae67},
		{"RegisterCoalescedMMIO", kvm.IoctlRegisterCoalescedMMIO, 0x4010ae67},
		{"UnregisterCoalescedMMIO", kvm.IoctlUnregisterCoalescedMMIO, 0x4010ae68},
		{"SetGSIRouting", kvm.IoctlSetGSIRouting, 0x4008ae6a},
		{"ReinjectControl", kvm.IoctlReinjectControl, 0x0000ae71},
		{"IRQFD", kvm.IoctlIRQFD, 0x4020ae76},
		{"CreatePIT2", kvm.IoctlCreatePIT2, 0x4040ae77},
		{"SetBootCPUID", kvm.IoctlSetBootCPUID, 0x0000ae78},
		{"IOEventFD", kvm.IoctlIOEventFD, 0x4040ae79},
		{"XenHVMConfig", kvm.IoctlXenHVMConfig, 0x4038ae7a},
		{"SetClock", kvm.IoctlSetClock, 0x4030ae7b},
		{"GetClock", kvm.IoctlGetClock, 0x8030ae7c},
		{"GetPIT2", kvm.IoctlGetPIT2, 0x8070ae9f},
		{"SetPIT2", kvm.IoctlSetPIT2, 0x4070aea0},
		{"EnableCap", kvm.IoctlEnableCap, 0x4068aea3},
		{"SignalMSI", kvm.IoctlSignalMSI, 0x4020aea5},
		{"CreateDevice", kvm.IoctlCreateDevice, 0xc00caee0},
		{"SetDeviceAttr", kvm.IoctlSetDeviceAttr, 0x4018aee1},
		{"GetDeviceAttr", kvm.IoctlGetDeviceAttr, 0x4018aee2},
		{"HasDeviceAttr", kvm.IoctlHasDeviceAttr, 0x4018aee3},
		{"Run", kvm.IoctlRun, 0x0000ae80},
		{"GetRegs", kvm.IoctlGetRegs, 0x8090ae81},
		{"SetRegs", kvm.IoctlSetRegs, 0x4090ae82},
		{"GetSregs", kvm.IoctlGetSregs, 0x8138ae83},
		{"SetSregs", kvm.IoctlSetSregs, 0x4138ae84},
		{"Translate", kvm.IoctlTranslate, 0xc018ae85},
		{"Interrupt", kvm.IoctlInterrupt, 0x4004ae86},
		{"GetMSRs", kvm.IoctlGetMSRs, 0xc008ae88},
		{"SetMSRs", kvm.IoctlSetMSRs, 0x4008ae89},
		{"SetCPUID", kvm.IoctlSetCPUID, 0x4008ae8a},
		{"SetSignalMask", kvm.IoctlSetSignalMask, 0x4004ae8b},
		{"GetFPU", kvm.IoctlGetFPU, 0x81a0ae8c},
		{"SetFPU", kvm.IoctlSetFPU, 0x41a0ae8d},
		{"GetLAPIC", kvm.IoctlGetLAPIC, 0x8400ae8e},
		{"SetLAPIC", kvm.IoctlSetLAPIC, 0x4400ae8f},
		{"SetCPUID2", kvm.IoctlSetCPUID2, 0x4008ae90},
		{"GetCPUID2", kvm.IoctlGetCPUID2, 0xc008ae91},
		{"TPRAccessReporting", kvm.IoctlTPRAccessReporting, 0xc028ae92},
		{"SetVAPICAddr", kvm.IoctlSetVAPICAddr, 0x4008ae93},
		{"GetMPState", kvm.IoctlGetMPState, 0x8004ae98},
		{"SetMPState", kvm.IoctlSetMPState, 0x4004ae99},
		{"NMI", kvm.IoctlNMI, 0x0000ae9a},
		{"SetGuestDebug", kvm.IoctlSetGuestDebug, 0x4048ae9b},
		{"X86SetupMCE", kvm.IoctlX86SetupMCE, 0x4008ae9c},
		{"X86GetMCECapSupported", kvm.IoctlX86GetMCECapSupported, 0x8008ae9d},
		{"X86SetMCE", kvm.IoctlX86SetMCE, 0x4040ae9e},
		{"GetVCPUEvents", kvm.IoctlGetVCPUEvents, 0x8040ae9f},
		{"SetVCPUEvents", kvm.IoctlSetVCPUEvents, 0x4040aea0},
		{"GetDebugRegs", kvm.IoctlGetDebugRegs, 0x8080aea1},
		{"SetDebugRegs", kvm.IoctlSetDebugRegs, 0x4080aea2},
		{"SetTSCKHz", kvm.IoctlSetTSCKHz, 0x0000aea2},
		{"GetTSCKHz", kvm.IoctlGetTSCKHz, 0x0000aea3},
		{"GetXSave", kvm.IoctlGetXSave, 0x9000aea4},
		{"SetXSave", kvm.IoctlSetXSave, 0x5000aea5},
		{"GetXCRS", kvm.IoctlGetXCRS, 0x8188aea6},
		{"SetXCRS", kvm.IoctlSetXCRS, 0x4188aea7},
		{"GetOneReg", kvm.IoctlGetOneReg, 0x4010aeab},
		{"SetOneReg", kvm.IoctlSetOneReg, 0x4010aeac},
		{"KVMClockCtrl", kvm.IoctlKVMClockCtrl, 0x0000aead},
		{"GetRegList", kvm.IoctlGetRegList, 0xc008aeb0},
		{"SMI", kvm.IoctlSMI, 0x0000aeb7},
	})
}

func TestIoctlBuilders(t *testing.T) {
	t.Parallel()

	runIoctlTests(t, []ioctlTest{
		{"IIO", kvm.IIO(0x80), kvm.IoctlRun},
		{"IIOR", kvm.IIOR(0x81, 144), kvm.IoctlGetRegs},
		{"IIOW", kvm.IIOW(0x82, 144), kvm.IoctlSetRegs},
		{"IIOWR", kvm.IIOWR(0x91, 8), kvm.IoctlGetCPUID2},
	})
}
