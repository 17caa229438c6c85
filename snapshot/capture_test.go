//go:build linux && amd64

package snapshot_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/bobuhiro11/gokvm-bindings/kvm"
	"github.com/bobuhiro11/gokvm-bindings/snapshot"
	"golang.org/x/sys/unix"
)

// newVM creates a vm with an irqchip, a PIT and n vcpus, or skips the test
// when /dev/kvm is not available.
func newVM(t *testing.T, n int) (uintptr, uintptr, []uintptr) {
	t.Helper()

	devKVM, err := os.OpenFile("/dev/kvm", os.O_RDWR, 0o644)
	if err != nil {
		t.Skipf("Skipping test since /dev/kvm is not available: %v", err)
	}

	t.Cleanup(func() { devKVM.Close() })

	vmFd, err := kvm.CreateVM(devKVM.Fd())
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { unix.Close(int(vmFd)) })

	if err := kvm.SetTSSAddr(vmFd, 0xffffd000); err != nil {
		t.Fatal(err)
	}

	if err := kvm.CreateIRQChip(vmFd); err != nil {
		t.Fatal(err)
	}

	if err := kvm.CreatePIT2(vmFd); err != nil {
		t.Fatal(err)
	}

	fds := make([]uintptr, n)

	for i := range fds {
		if fds[i], err = kvm.CreateVCPU(vmFd, i); err != nil {
			t.Fatal(err)
		}

		fd := fds[i]
		t.Cleanup(func() { unix.Close(int(fd)) })
	}

	return devKVM.Fd(), vmFd, fds
}

// portable keeps the MSRs any x86 host accepts back: TSC, SYSENTER and
// the syscall MSRs.
func portable(msrs []kvm.MSREntry) []kvm.MSREntry {
	var out []kvm.MSREntry

	for _, m := range msrs {
		switch m.Index {
		case 0x10, 0x174, 0x175, 0x176, 0xc0000081, 0xc0000082, 0xc0000083, 0xc0000084, 0xc0000102:
			out = append(out, m)
		}
	}

	return out
}

func TestCaptureRestore(t *testing.T) {
	t.Parallel()

	kvmFd, vmFd, vcpuFds := newVM(t, 2)

	regs, err := kvm.GetRegs(vcpuFds[1])
	if err != nil {
		t.Fatal(err)
	}

	regs.RIP = 0x1234
	regs.RAX = 42

	if err := kvm.SetRegs(vcpuFds[1], regs); err != nil {
		t.Fatal(err)
	}

	snap, err := snapshot.Capture(context.Background(), kvmFd, vmFd, vcpuFds)
	if err != nil {
		t.Fatal(err)
	}

	if len(snap.VCPUs) != 2 || snap.VCPUs[1].Regs.RIP != 0x1234 {
		t.Fatalf("captured %d vcpus, vcpu 1 rip %#x", len(snap.VCPUs), snap.VCPUs[1].Regs.RIP)
	}

	var buf bytes.Buffer
	if err := snapshot.NewWriter(&buf).WriteSnapshot(snap); err != nil {
		t.Fatal(err)
	}

	decoded, err := snapshot.NewReader(&buf).ReadSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	for i := range decoded.VCPUs {
		decoded.VCPUs[i].MSRs = portable(decoded.VCPUs[i].MSRs)
	}

	_, vmFd2, vcpuFds2 := newVM(t, 2)

	if err := snapshot.Restore(context.Background(), vmFd2, vcpuFds2, decoded); err != nil {
		t.Fatal(err)
	}

	got, err := kvm.GetRegs(vcpuFds2[1])
	if err != nil {
		t.Fatal(err)
	}

	if got.RIP != 0x1234 || got.RAX != 42 {
		t.Errorf("restored rip/rax = %#x/%d, want 0x1234/42", got.RIP, got.RAX)
	}
}

func TestRestoreVCPUCount(t *testing.T) {
	t.Parallel()

	snap := &snapshot.Snapshot{VCPUs: make([]snapshot.VCPUState, 2)}

	err := snapshot.Restore(context.Background(), 0, []uintptr{0}, snap)
	if !errors.Is(err, snapshot.ErrVCPUCount) {
		t.Errorf("got %v, want ErrVCPUCount", err)
	}
}

func TestCaptureCanceled(t *testing.T) {
	t.Parallel()

	kvmFd, vmFd, vcpuFds := newVM(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := snapshot.Capture(ctx, kvmFd, vmFd, vcpuFds); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
