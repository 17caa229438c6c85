//go:build linux && amd64

package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobuhiro11/gokvm-bindings/kvm"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrVCPUCount is returned when the vcpu fds do not match the snapshot.
var ErrVCPUCount = errors.New("vcpu count mismatch")

// CaptureVCPU reads the state of one vCPU. msrIndices names the MSRs to
// save; the kernel may return fewer.
func CaptureVCPU(id uint32, fd uintptr, msrIndices []uint32) (*VCPUState, error) {
	s := &VCPUState{ID: id}

	regs, err := kvm.GetRegs(fd)
	if err != nil {
		return nil, fmt.Errorf("GetRegs cpu%d: %w", id, err)
	}

	s.Regs = *regs

	sregs, err := kvm.GetSregs(fd)
	if err != nil {
		return nil, fmt.Errorf("GetSregs cpu%d: %w", id, err)
	}

	s.Sregs = *sregs

	for _, get := range []struct {
		name string
		fn   func() error
	}{
		{"GetFPU", func() error { return kvm.GetFPU(fd, &s.FPU) }},
		{"GetLocalAPIC", func() error { return kvm.GetLocalAPIC(fd, &s.LAPIC) }},
		{"GetVCPUEvents", func() error { return kvm.GetVCPUEvents(fd, &s.Events) }},
		{"GetMPState", func() error { return kvm.GetMPState(fd, &s.MPState) }},
		{"GetDebugRegs", func() error { return kvm.GetDebugRegs(fd, &s.DebugRegs) }},
		{"GetXCRS", func() error { return kvm.GetXCRS(fd, &s.XCRS) }},
		{"GetXSave", func() error { return kvm.GetXSave(fd, &s.XSave) }},
	} {
		if err := get.fn(); err != nil {
			return nil, fmt.Errorf("%s cpu%d: %w", get.name, id, err)
		}
	}

	if s.MSRs, err = kvm.GetMSRs(fd, msrIndices); err != nil {
		return nil, fmt.Errorf("GetMSRs cpu%d: %w", id, err)
	}

	return s, nil
}

// CaptureVM reads the vm-wide state. The vm must have an in-kernel irqchip
// and PIT.
func CaptureVM(vmFd uintptr) (*VMState, error) {
	s := &VMState{}

	// kvmclock must be saved for monotonicity.
	if err := kvm.GetClock(vmFd, &s.Clock); err != nil {
		return nil, fmt.Errorf("GetClock: %w", err)
	}

	for id := range s.IRQChips {
		s.IRQChips[id].ChipID = uint32(id)
		if err := kvm.GetIRQChip(vmFd, &s.IRQChips[id]); err != nil {
			return nil, fmt.Errorf("GetIRQChip(%d): %w", id, err)
		}
	}

	if err := kvm.GetPIT2(vmFd, &s.PIT2); err != nil {
		return nil, fmt.Errorf("GetPIT2: %w", err)
	}

	return s, nil
}

// Capture takes a snapshot of a vm and its vcpus. The vcpus must not be
// running; they are read concurrently.
func Capture(ctx context.Context, kvmFd, vmFd uintptr, vcpuFds []uintptr) (*Snapshot, error) {
	indices, err := kvm.GetMSRIndexList(kvmFd)
	if err != nil {
		return nil, fmt.Errorf("GetMSRIndexList: %w", err)
	}

	snap := &Snapshot{
		Header: NewHeader(len(vcpuFds)),
		VCPUs:  make([]VCPUState, len(vcpuFds)),
	}

	g, ctx := errgroup.WithContext(ctx)

	for i, fd := range vcpuFds {
		i, fd := i, fd

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s, err := CaptureVCPU(uint32(i), fd, indices)
			if err != nil {
				return err
			}

			logrus.WithField("vcpu", i).WithField("msrs", len(s.MSRs)).Debug("captured vcpu state")

			snap.VCPUs[i] = *s

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	vm, err := CaptureVM(vmFd)
	if err != nil {
		return nil, err
	}

	snap.VM = *vm

	return snap, nil
}

// RestoreVCPU applies a previously captured vCPU state.
func RestoreVCPU(fd uintptr, s *VCPUState) error {
	for _, set := range []struct {
		name string
		fn   func() error
	}{
		{"SetSregs", func() error { return kvm.SetSregs(fd, &s.Sregs) }},
		{"SetRegs", func() error { return kvm.SetRegs(fd, &s.Regs) }},
		{"SetFPU", func() error { return kvm.SetFPU(fd, &s.FPU) }},
		{"SetXSave", func() error { return kvm.SetXSave(fd, &s.XSave) }},
		{"SetXCRS", func() error { return kvm.SetXCRS(fd, &s.XCRS) }},
		{"SetMSRs", func() error { return kvm.SetMSRs(fd, s.MSRs) }},
		{"SetLocalAPIC", func() error { return kvm.SetLocalAPIC(fd, &s.LAPIC) }},
		{"SetMPState", func() error { return kvm.SetMPState(fd, &s.MPState) }},
		{"SetVCPUEvents", func() error { return kvm.SetVCPUEvents(fd, &s.Events) }},
		{"SetDebugRegs", func() error { return kvm.SetDebugRegs(fd, &s.DebugRegs) }},
	} {
		if err := set.fn(); err != nil {
			return fmt.Errorf("%s cpu%d: %w", set.name, s.ID, err)
		}
	}

	return nil
}

// RestoreVM applies previously captured vm-wide state.
func RestoreVM(vmFd uintptr, s *VMState) error {
	if err := kvm.SetClock(vmFd, &s.Clock); err != nil {
		return fmt.Errorf("SetClock: %w", err)
	}

	for i := range s.IRQChips {
		if err := kvm.SetIRQChip(vmFd, &s.IRQChips[i]); err != nil {
			return fmt.Errorf("SetIRQChip(%d): %w", s.IRQChips[i].ChipID, err)
		}
	}

	if err := kvm.SetPIT2(vmFd, &s.PIT2); err != nil {
		return fmt.Errorf("SetPIT2: %w", err)
	}

	return nil
}

// Restore applies snap to a vm whose vcpus were created in the same order
// as the captured ones.
func Restore(ctx context.Context, vmFd uintptr, vcpuFds []uintptr, snap *Snapshot) error {
	if len(vcpuFds) != len(snap.VCPUs) {
		return fmt.Errorf("%d vcpu fds for %d vcpus: %w", len(vcpuFds), len(snap.VCPUs), ErrVCPUCount)
	}

	g, ctx := errgroup.WithContext(ctx)

	for i, fd := range vcpuFds {
		i, fd := i, fd

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return RestoreVCPU(fd, &snap.VCPUs[i])
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logrus.WithField("vcpus", len(vcpuFds)).Debug("restored vcpu state")

	return RestoreVM(vmFd, &snap.VM)
}
