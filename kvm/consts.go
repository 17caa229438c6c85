package kvm

// APIVersion is the only KVM_GET_API_VERSION value these bindings accept.
const APIVersion = 12

// Page offsets, in pages, of the rings that share the vCPU mmap.
const (
	PIOPageOffset           = 1
	CoalescedMMIOPageOffset = 2
)

// x86 exception vectors.
const (
	DEVector = 0
	DBVector = 1
	BPVector = 3
	OFVector = 4
	BRVector = 5
	UDVector = 6
	NMVector = 7
	DFVector = 8
	TSVector = 10
	NPVector = 11
	SSVector = 12
	GPVector = 13
	PFVector = 14
	MFVector = 16
	ACVector = 17
	MCVector = 18
	XMVector = 19
	VEVector = 20
)

const (
	// NumInterrupts is the number of interrupt vectors, KVM_NR_INTERRUPTS.
	NumInterrupts = 0x100

	// IOAPICNumPins is the number of IOAPIC redirection entries.
	IOAPICNumPins = 24

	// APICRegSize is the size of the local APIC register page.
	APICRegSize = 0x400

	// MaxXCRS is the capacity of XCRS.
	MaxXCRS = 16

	// MaxMSIXPerDev bounds MSI-X vectors per assigned device.
	MaxMSIXPerDev = 256
)

// Interrupt controller ids for IRQChip.ChipID.
const (
	IRQChipPICMaster = 0
	IRQChipPICSlave  = 1
	IRQChipIOAPIC    = 2
	NumIRQChips      = 3
)

// RunX86SMM is set in RunData.Flags while the vCPU is in system management mode.
const RunX86SMM = 1 << 0

// CPUIDEntry2 flags.
const (
	CPUIDFlagSignificantIndex = 1 << 0
	CPUIDFlagStatefulFunc     = 1 << 1
	CPUIDFlagStateReadNext    = 1 << 2
)

// GuestDebug.Control flags. The low bits are generic; the rest are x86.
const (
	GuestDbgEnable     = 0x00000001
	GuestDbgSingleStep = 0x00000002
	GuestDbgUseSWBP    = 0x00010000
	GuestDbgUseHWBP    = 0x00020000
	GuestDbgInjectDB   = 0x00040000
	GuestDbgInjectBP   = 0x00080000
)

// PITState2.Flags and PIT speaker bits.
const (
	PITFlagsHPETLegacy = 1 << 0
	PITSpeakerDummy    = 1 << 0
)

// VCPUEvents.Flags bits telling the kernel which optional fields are valid.
const (
	VCPUEventValidNMIPending = 1 << 0
	VCPUEventValidSIPIVector = 1 << 1
	VCPUEventValidShadow     = 1 << 2
	VCPUEventValidSMM        = 1 << 3
)

// Interrupt shadow kinds in VCPUEvents.Interrupt.Shadow.
const (
	X86ShadowIntMovSS = 1 << 0
	X86ShadowIntSTI   = 1 << 1
)

// Quirks that KVM_CAP_DISABLE_QUIRKS can turn off.
const (
	X86QuirkLINT0Reenabled = 1 << 0
	X86QuirkCDNWCleared    = 1 << 1
)

// UserspaceMemoryRegion.Flags.
const (
	MemLogDirtyPages = 1 << 0
	MemReadonly      = 1 << 1
)

// Internal error sub-reasons in ExitInternal.Suberror.
const (
	InternalErrorEmulation  = 1
	InternalErrorSimulEx    = 2
	InternalErrorDeliveryEv = 3
)

// System event types in ExitSystemEvent.Type.
const (
	SystemEventShutdown = 1
	SystemEventReset    = 2
	SystemEventCrash    = 3
)

// Hyper-V exit types in HypervExit.Type.
const (
	ExitHypervSynIC = 1
	ExitHypervHCall = 2
)

// Multiprocessor states for MPState.State.
const (
	MPStateRunnable      = 0
	MPStateUninitialized = 1
	MPStateInitReceived  = 2
	MPStateHalted        = 3
	MPStateSIPIReceived  = 4
	MPStateStopped       = 5
	MPStateCheckStop     = 6
	MPStateOperating     = 7
	MPStateLoad          = 8
)

// IRQRoutingEntry.Type values.
const (
	IRQRoutingIRQChipType     = 1
	IRQRoutingMSIType         = 2
	IRQRoutingS390AdapterType = 3
	IRQRoutingHvSintType      = 4
)

// IRQFD.Flags.
const (
	IRQFDFlagDeassign = 1 << 0
	IRQFDFlagResample = 1 << 1
)

// IOEventFD.Flags bits.
const (
	IOEventFDFlagNRDatamatch       = 0
	IOEventFDFlagNRPIO             = 1
	IOEventFDFlagNRDeassign        = 2
	IOEventFDFlagNRVirtioCCWNotify = 3
	IOEventFDFlagNRFastMMIO        = 4
	IOEventFDFlagNRMax             = 5

	IOEventFDFlagDatamatch       = 1 << IOEventFDFlagNRDatamatch
	IOEventFDFlagPIO             = 1 << IOEventFDFlagNRPIO
	IOEventFDFlagDeassign        = 1 << IOEventFDFlagNRDeassign
	IOEventFDFlagVirtioCCWNotify = 1 << IOEventFDFlagNRVirtioCCWNotify

	IOEventFDValidFlagMask = 1<<IOEventFDFlagNRMax - 1
)

// ClockData.Flags.
const ClockTSCStable = 2

// MSI.Flags.
const MSIValidDevID = 1 << 0

// X2APIC API flags for KVM_CAP_X2APIC_API.
const (
	X2APICAPIUse32BitIDs           = 1 << 0
	X2APICAPIDisableBroadcastQuirk = 1 << 1
)

// CreateDevice.Flags.
const CreateDeviceTest = 1

// Device types for CreateDevice.Type.
const (
	DevTypeFSLMPIC20  = 1
	DevTypeFSLMPIC42  = 2
	DevTypeXICS       = 3
	DevTypeVFIO       = 4
	DevTypeARMVGICV2  = 5
	DevTypeFLIC       = 6
	DevTypeARMVGICV3  = 7
	DevTypeARMVGICITS = 8
	DevTypeMax        = 9
)

// VFIO device attribute group and attributes.
const (
	DevVFIOGroup            = 1
	DevVFIOGroupAdd         = 1
	DevVFIOGroupDel         = 2
	DevVFIOGroupSetSPAPRTCE = 3
)

// ONE_REG register id encoding.
const (
	RegArchMask  = 0xff00000000000000
	RegGeneric   = 0x0000000000000000
	RegPPC       = 0x1000000000000000
	RegX86       = 0x2000000000000000
	RegIA64      = 0x3000000000000000
	RegARM       = 0x4000000000000000
	RegS390      = 0x5000000000000000
	RegARM64     = 0x6000000000000000
	RegMIPS      = 0x7000000000000000
	RegSizeShift = 52
	RegSizeMask  = 0x00f0000000000000
	RegSizeU8    = 0x0000000000000000
	RegSizeU16   = 0x0010000000000000
	RegSizeU32   = 0x0020000000000000
	RegSizeU64   = 0x0030000000000000
	RegSizeU128  = 0x0040000000000000
	RegSizeU256  = 0x0050000000000000
	RegSizeU512  = 0x0060000000000000
	RegSizeU1024 = 0x0070000000000000
)

// RegSize returns the size in bytes of the register a ONE_REG id names.
func RegSize(id uint64) uint64 {
	return 1 << ((id & RegSizeMask) >> RegSizeShift)
}
