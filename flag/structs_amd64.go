//go:build linux && amd64

package flag

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bobuhiro11/gokvm-bindings/kvm"
	"github.com/bobuhiro11/gokvm-bindings/layout"
)

// ErrUnknownStruct is returned when a layout is requested for a name the
// bindings do not define.
var ErrUnknownStruct = errors.New("unknown struct")

//nolint:gochecknoglobals
var structs = map[string]any{
	"ClockData":             kvm.ClockData{},
	"CoalescedMMIO":         kvm.CoalescedMMIO{},
	"CoalescedMMIORing":     kvm.CoalescedMMIORing{},
	"CoalescedMMIOZone":     kvm.CoalescedMMIOZone{},
	"CPUID":                 kvm.CPUID{},
	"CPUID2":                kvm.CPUID2{},
	"CPUIDEntry":            kvm.CPUIDEntry{},
	"CPUIDEntry2":           kvm.CPUIDEntry2{},
	"CreateDevice":          kvm.CreateDevice{},
	"DebugExitArch":         kvm.DebugExitArch{},
	"DebugRegs":             kvm.DebugRegs{},
	"Descriptor":            kvm.Descriptor{},
	"DeviceAttr":            kvm.DeviceAttr{},
	"DirtyLog":              kvm.DirtyLog{},
	"EnableCap":             kvm.EnableCap{},
	"ExitDCR":               kvm.ExitDCR{},
	"ExitDebug":             kvm.ExitDebug{},
	"ExitEOI":               kvm.ExitEOI{},
	"ExitException":         kvm.ExitException{},
	"ExitFailEntry":         kvm.ExitFailEntry{},
	"ExitHW":                kvm.ExitHW{},
	"ExitHypercall":         kvm.ExitHypercall{},
	"ExitIO":                kvm.ExitIO{},
	"ExitInternal":          kvm.ExitInternal{},
	"ExitMMIO":              kvm.ExitMMIO{},
	"ExitSystemEvent":       kvm.ExitSystemEvent{},
	"ExitTPRAccess":         kvm.ExitTPRAccess{},
	"FPU":                   kvm.FPU{},
	"GuestDebug":            kvm.GuestDebug{},
	"GuestDebugArch":        kvm.GuestDebugArch{},
	"HypervExit":            kvm.HypervExit{},
	"HypervHCall":           kvm.HypervHCall{},
	"HypervSynIC":           kvm.HypervSynIC{},
	"Interrupt":             kvm.Interrupt{},
	"IOAPICRedirEntry":      kvm.IOAPICRedirEntry{},
	"IOAPICState":           kvm.IOAPICState{},
	"IOEventFD":             kvm.IOEventFD{},
	"IRQChip":               kvm.IRQChip{},
	"IRQFD":                 kvm.IRQFD{},
	"IRQLevel":              kvm.IRQLevel{},
	"IRQRouting":            kvm.IRQRouting{},
	"IRQRoutingEntry":       kvm.IRQRoutingEntry{},
	"IRQRoutingHvSint":      kvm.IRQRoutingHvSint{},
	"IRQRoutingIRQChip":     kvm.IRQRoutingIRQChip{},
	"IRQRoutingMSI":         kvm.IRQRoutingMSI{},
	"LAPICState":            kvm.LAPICState{},
	"MemoryRegion":          kvm.MemoryRegion{},
	"MPState":               kvm.MPState{},
	"MSI":                   kvm.MSI{},
	"MSREntry":              kvm.MSREntry{},
	"MSRList":               kvm.MSRList{},
	"MSRs":                  kvm.MSRs{},
	"OneReg":                kvm.OneReg{},
	"PICState":              kvm.PICState{},
	"PITChannelState":       kvm.PITChannelState{},
	"PITConfig":             kvm.PITConfig{},
	"PITState":              kvm.PITState{},
	"PITState2":             kvm.PITState2{},
	"RegList":               kvm.RegList{},
	"Regs":                  kvm.Regs{},
	"ReinjectControl":       kvm.ReinjectControl{},
	"RunData":               kvm.RunData{},
	"Segment":               kvm.Segment{},
	"SignalMask":            kvm.SignalMask{},
	"Sregs":                 kvm.Sregs{},
	"SyncRegs":              kvm.SyncRegs{},
	"TPRAccessCtl":          kvm.TPRAccessCtl{},
	"Translation":           kvm.Translation{},
	"UserspaceMemoryRegion": kvm.UserspaceMemoryRegion{},
	"VAPICAddr":             kvm.VAPICAddr{},
	"VCPUEvents":            kvm.VCPUEvents{},
	"X86MCE":                kvm.X86MCE{},
	"XCR":                   kvm.XCR{},
	"XCRS":                  kvm.XCRS{},
	"XSave":                 kvm.XSave{},
	"XenHVMConfig":          kvm.XenHVMConfig{},
}

// StructNames returns the names Layouts accepts, sorted.
func StructNames() []string {
	names := make([]string, 0, len(structs))
	for n := range structs {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Layouts returns the layouts of the named structs, or of every struct
// when names is empty.
func Layouts(names []string) ([]layout.Layout, error) {
	if len(names) == 0 {
		names = StructNames()
	}

	ls := make([]layout.Layout, 0, len(names))

	for _, n := range names {
		v, ok := structs[n]
		if !ok {
			return nil, fmt.Errorf("%q: %w", n, ErrUnknownStruct)
		}

		l, err := layout.Of(v)
		if err != nil {
			return nil, err
		}

		ls = append(ls, l)
	}

	return ls, nil
}
