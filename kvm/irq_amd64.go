//go:build linux && amd64

package kvm

import (
	"unsafe"

	"github.com/bobuhiro11/gokvm-bindings/bitfield"
	"github.com/bobuhiro11/gokvm-bindings/fam"
)

// PICState is the state of one 8259 interrupt controller.
type PICState struct {
	LastIRR                uint8
	IRR                    uint8
	IMR                    uint8
	ISR                    uint8
	PriorityAdd            uint8
	IRQBase                uint8
	ReadRegSelect          uint8
	Poll                   uint8
	SpecialMask            uint8
	InitState              uint8
	AutoEOI                uint8
	RotateOnAutoEOI        uint8
	SpecialFullyNestedMode uint8
	Init4                  uint8
	ELCR                   uint8
	ELCRMask               uint8
}

// IOAPICRedirLayout places the packed fields of an IOAPIC redirection
// entry inside IOAPICRedirFields.Bitfield.
var IOAPICRedirLayout = bitfield.Layout{
	{Name: "delivery_mode", Offset: 0, Width: 3},
	{Name: "dest_mode", Offset: 3, Width: 1},
	{Name: "delivery_status", Offset: 4, Width: 1},
	{Name: "polarity", Offset: 5, Width: 1},
	{Name: "remote_irr", Offset: 6, Width: 1},
	{Name: "trig_mode", Offset: 7, Width: 1},
	{Name: "mask", Offset: 8, Width: 1},
	{Name: "reserve", Offset: 9, Width: 7},
}

// IOAPICRedirFields is the structured view of a redirection entry.
type IOAPICRedirFields struct {
	Vector   uint8
	Bitfield [2]uint8
	Reserved [4]uint8
	DestID   uint8
}

// NewIOAPICRedirBitfield packs the eight redirection sub-fields into the
// two bitfield bytes. Values wider than their field are truncated.
func NewIOAPICRedirBitfield(deliveryMode, destMode, deliveryStatus, polarity,
	remoteIRR, trigMode, mask, reserve uint8,
) [2]uint8 {
	var unit [2]uint8

	if err := IOAPICRedirLayout.Pack(unit[:],
		uint64(deliveryMode), uint64(destMode), uint64(deliveryStatus), uint64(polarity),
		uint64(remoteIRR), uint64(trigMode), uint64(mask), uint64(reserve)); err != nil {
		panic(err)
	}

	return unit
}

func (f *IOAPICRedirFields) unit() bitfield.Unit {
	return bitfield.New(f.Bitfield[:])
}

func (f *IOAPICRedirFields) DeliveryMode() uint8       { return uint8(f.unit().MustGet(0, 3)) }
func (f *IOAPICRedirFields) SetDeliveryMode(v uint8)   { f.unit().MustSet(0, 3, uint64(v)) }
func (f *IOAPICRedirFields) DestMode() uint8           { return uint8(f.unit().MustGet(3, 1)) }
func (f *IOAPICRedirFields) SetDestMode(v uint8)       { f.unit().MustSet(3, 1, uint64(v)) }
func (f *IOAPICRedirFields) DeliveryStatus() uint8     { return uint8(f.unit().MustGet(4, 1)) }
func (f *IOAPICRedirFields) SetDeliveryStatus(v uint8) { f.unit().MustSet(4, 1, uint64(v)) }
func (f *IOAPICRedirFields) Polarity() uint8           { return uint8(f.unit().MustGet(5, 1)) }
func (f *IOAPICRedirFields) SetPolarity(v uint8)       { f.unit().MustSet(5, 1, uint64(v)) }
func (f *IOAPICRedirFields) RemoteIRR() uint8          { return uint8(f.unit().MustGet(6, 1)) }
func (f *IOAPICRedirFields) SetRemoteIRR(v uint8)      { f.unit().MustSet(6, 1, uint64(v)) }
func (f *IOAPICRedirFields) TrigMode() uint8           { return uint8(f.unit().MustGet(7, 1)) }
func (f *IOAPICRedirFields) SetTrigMode(v uint8)       { f.unit().MustSet(7, 1, uint64(v)) }
func (f *IOAPICRedirFields) Mask() uint8               { return uint8(f.unit().MustGet(8, 1)) }
func (f *IOAPICRedirFields) SetMask(v uint8)           { f.unit().MustSet(8, 1, uint64(v)) }
func (f *IOAPICRedirFields) Reserve() uint8            { return uint8(f.unit().MustGet(9, 7)) }
func (f *IOAPICRedirFields) SetReserve(v uint8)        { f.unit().MustSet(9, 7, uint64(v)) }

// IOAPICRedirEntry is the union of a raw 64-bit redirection entry and its
// structured fields.
type IOAPICRedirEntry struct {
	_    [0]uint64
	Data [8]byte
}

// Bits reads the entry as one 64-bit word.
func (e *IOAPICRedirEntry) Bits() uint64 {
	return *(*uint64)(unsafe.Pointer(&e.Data))
}

// SetBits overwrites the entry with a 64-bit word.
func (e *IOAPICRedirEntry) SetBits(v uint64) {
	*(*uint64)(unsafe.Pointer(&e.Data)) = v
}

// Fields views the entry through its structured member.
func (e *IOAPICRedirEntry) Fields() *IOAPICRedirFields {
	return (*IOAPICRedirFields)(unsafe.Pointer(&e.Data))
}

// IOAPICState is the state of the in-kernel IOAPIC.
type IOAPICState struct {
	BaseAddress uint64
	IORegSel    uint32
	ID          uint32
	IRR         uint32
	_           uint32
	RedirTbl    [IOAPICNumPins]IOAPICRedirEntry
}

// IRQChip holds the state of one in-kernel interrupt controller, selected
// by ChipID. Chip is a union of the PIC and IOAPIC states.
type IRQChip struct {
	ChipID uint32
	_      uint32
	Chip   IRQChipState
}

// IRQChipState is the union of PICState, IOAPICState and 512 raw bytes.
type IRQChipState struct {
	_    [0]uint64
	Data [512]byte
}

// PIC views the chip as a PIC.
func (c *IRQChip) PIC() *PICState {
	return (*PICState)(unsafe.Pointer(&c.Chip.Data))
}

// IOAPIC views the chip as an IOAPIC.
func (c *IRQChip) IOAPIC() *IOAPICState {
	return (*IOAPICState)(unsafe.Pointer(&c.Chip.Data))
}

// GetIRQChip reads the chip named by chip.ChipID.
func GetIRQChip(vmFd uintptr, chip *IRQChip) error {
	_, err := Ioctl(vmFd, IoctlGetIRQChip, uintptr(unsafe.Pointer(chip)))

	return err
}

// SetIRQChip writes the chip named by chip.ChipID.
func SetIRQChip(vmFd uintptr, chip *IRQChip) error {
	_, err := Ioctl(vmFd, IoctlSetIRQChip, uintptr(unsafe.Pointer(chip)))

	return err
}

// IRQLevel drives an interrupt line. The first word is the irq number on
// input and the injection status on output.
type IRQLevel struct {
	_     [0]uint32
	Data  [4]byte
	Level uint32
}

// IRQ reads the first word as an irq number.
func (l *IRQLevel) IRQ() uint32 {
	return *(*uint32)(unsafe.Pointer(&l.Data))
}

// SetIRQ writes the irq number.
func (l *IRQLevel) SetIRQ(irq uint32) {
	*(*uint32)(unsafe.Pointer(&l.Data)) = irq
}

// Status reads the first word as the status KVM_IRQ_LINE_STATUS reports.
func (l *IRQLevel) Status() int32 {
	return *(*int32)(unsafe.Pointer(&l.Data))
}

// IRQLine sets the interrupt line for an IRQ.
func IRQLine(vmFd uintptr, irq, level uint32) error {
	irqLev := IRQLevel{Level: level}
	irqLev.SetIRQ(irq)

	_, err := Ioctl(vmFd, IoctlIRQLine, uintptr(unsafe.Pointer(&irqLev)))

	return err
}

// IRQLineStatus sets the interrupt line for an IRQ and returns the
// delivery status.
func IRQLineStatus(vmFd uintptr, irq, level uint32) (int32, error) {
	irqLev := IRQLevel{Level: level}
	irqLev.SetIRQ(irq)

	_, err := Ioctl(vmFd, IoctlIRQLineStatus, uintptr(unsafe.Pointer(&irqLev)))

	return irqLev.Status(), err
}

// CreateIRQChip creates the in-kernel PIC and IOAPIC pair.
func CreateIRQChip(vmFd uintptr) error {
	_, err := Ioctl(vmFd, IoctlCreateIRQChip, 0)

	return err
}

// PITConfig defines properties of a programmable interrupt timer.
type PITConfig struct {
	Flags uint32
	_     [15]uint32
}

// CreatePIT2 creates a PIT type 2. Just having one was not enough.
func CreatePIT2(vmFd uintptr) error {
	pit := PITConfig{
		Flags: 0,
	}
	_, err := Ioctl(vmFd, IoctlCreatePIT2, uintptr(unsafe.Pointer(&pit)))

	return err
}

// PITChannelState is one 8254 counter.
type PITChannelState struct {
	Count         uint32
	LatchedCount  uint16
	CountLatched  uint8
	StatusLatched uint8
	Status        uint8
	ReadState     uint8
	WriteState    uint8
	WriteLatch    uint8
	RWMode        uint8
	Mode          uint8
	BCD           uint8
	Gate          uint8
	CountLoadTime int64
}

// PITState is the legacy PIT state.
type PITState struct {
	Channels [3]PITChannelState
}

// PITState2 is the PIT state including flags.
type PITState2 struct {
	Channels [3]PITChannelState
	Flags    uint32
	_        [9]uint32
}

// GetPIT2 reads the PIT state.
func GetPIT2(vmFd uintptr, pit *PITState2) error {
	_, err := Ioctl(vmFd, IoctlGetPIT2, uintptr(unsafe.Pointer(pit)))

	return err
}

// SetPIT2 writes the PIT state.
func SetPIT2(vmFd uintptr, pit *PITState2) error {
	_, err := Ioctl(vmFd, IoctlSetPIT2, uintptr(unsafe.Pointer(pit)))

	return err
}

// ReinjectControl turns PIT interrupt reinjection on or off.
type ReinjectControl struct {
	PITReinject uint8
	_           [31]uint8
}

// Interrupt injects an interrupt into a vCPU without an in-kernel irqchip.
type Interrupt struct {
	IRQ uint32
}

// MSI describes a message signalled interrupt.
type MSI struct {
	AddressLo uint32
	AddressHi uint32
	Data      uint32
	Flags     uint32
	DevID     uint32
	_         [12]uint8
}

// SignalMSI injects an MSI directly.
func SignalMSI(vmFd uintptr, msi *MSI) (uintptr, error) {
	return Ioctl(vmFd, IoctlSignalMSI, uintptr(unsafe.Pointer(msi)))
}

// IRQFD binds an eventfd to a GSI.
type IRQFD struct {
	FD         uint32
	GSI        uint32
	Flags      uint32
	ResampleFD uint32
	_          [16]uint8
}

// IRQRoutingIRQChip routes a GSI to an irqchip pin.
type IRQRoutingIRQChip struct {
	IRQChip uint32
	Pin     uint32
}

// IRQRoutingMSI routes a GSI to an MSI. DevID shares storage with padding
// and is only meaningful with MSIValidDevID.
type IRQRoutingMSI struct {
	AddressLo uint32
	AddressHi uint32
	Data      uint32
	DevID     uint32
}

// IRQRoutingHvSint routes a GSI to a Hyper-V synthetic interrupt.
type IRQRoutingHvSint struct {
	VCPU uint32
	Sint uint32
}

// IRQRoutingEntry is one GSI routing rule. U is a union selected by Type.
type IRQRoutingEntry struct {
	GSI   uint32
	Type  uint32
	Flags uint32
	_     uint32
	U     IRQRoutingUnion
}

// IRQRoutingUnion holds one routing target.
type IRQRoutingUnion struct {
	_    [0]uint64
	Data [32]byte
}

// IRQChip views the target as an irqchip pin.
func (e *IRQRoutingEntry) IRQChip() *IRQRoutingIRQChip {
	return (*IRQRoutingIRQChip)(unsafe.Pointer(&e.U.Data))
}

// MSI views the target as an MSI.
func (e *IRQRoutingEntry) MSI() *IRQRoutingMSI {
	return (*IRQRoutingMSI)(unsafe.Pointer(&e.U.Data))
}

// HvSint views the target as a Hyper-V synthetic interrupt.
func (e *IRQRoutingEntry) HvSint() *IRQRoutingHvSint {
	return (*IRQRoutingHvSint)(unsafe.Pointer(&e.U.Data))
}

// IRQRouting is the header of a GSI routing table. Nr IRQRoutingEntry
// values follow it in memory.
type IRQRouting struct {
	Nr    uint32
	Flags uint32
}

// SetGSIRouting replaces the GSI routing table of a vm.
func SetGSIRouting(vmFd uintptr, entries []IRQRoutingEntry) error {
	b := fam.New[IRQRouting, IRQRoutingEntry](len(entries))
	b.Header().Nr = uint32(len(entries))

	es, err := b.Entries(len(entries))
	if err != nil {
		return err
	}

	copy(es, entries)

	_, err = Ioctl(vmFd, IoctlSetGSIRouting, uintptr(b.Pointer()))

	return err
}
