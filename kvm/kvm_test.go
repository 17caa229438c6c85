//go:build linux && amd64

package kvm_test

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/bobuhiro11/gokvm-bindings/kvm"
	"golang.org/x/sys/unix"
)

func TestCreateVM(t *testing.T) {
	t.Parallel()

	devKVM := openKVM(t)

	vmFd, err := kvm.CreateVM(devKVM.Fd())
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(int(vmFd))

	if err = kvm.SetTSSAddr(vmFd, 0xffffd000); err != nil {
		t.Fatal(err)
	}

	if err = kvm.SetIdentityMapAddr(vmFd, 0xffffc000); err != nil {
		t.Fatal(err)
	}

	vcpuFd, err := kvm.CreateVCPU(vmFd, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(int(vcpuFd))

	entries, err := kvm.GetSupportedCPUID(devKVM.Fd())
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) == 0 {
		t.Fatal("no supported CPUID entries")
	}

	if err = kvm.SetCPUID2(vcpuFd, entries); err != nil {
		t.Fatal(err)
	}

	got, err := kvm.GetCPUID2(vcpuFd)
	if err != nil {
		t.Fatal(err)
	}

	// The kernel may drop leaves the process has no permission for, such
	// as the AMX ones without XFD permission.
	if len(got) == 0 || len(got) > len(entries) {
		t.Errorf("GetCPUID2 returned %d entries, want 1..%d", len(got), len(entries))
	}

	type leaf struct{ function, index uint32 }

	supported := map[leaf]bool{}
	for _, e := range entries {
		supported[leaf{e.Function, e.Index}] = true
	}

	for _, e := range got {
		if !supported[leaf{e.Function, e.Index}] {
			t.Errorf("GetCPUID2 returned unsupported leaf %#x/%d", e.Function, e.Index)
		}
	}
}

func TestCreateVCPU(t *testing.T) {
	t.Parallel()

	devKVM := openKVM(t)

	vmFd, err := kvm.CreateVM(devKVM.Fd())
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(int(vmFd))

	if err = kvm.CreateIRQChip(vmFd); err != nil {
		t.Fatal(err)
	}

	if err = kvm.CreatePIT2(vmFd); err != nil {
		t.Fatal(err)
	}

	vcpuFd, err := kvm.CreateVCPU(vmFd, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(int(vcpuFd))

	sregs, err := kvm.GetSregs(vcpuFd)
	if err != nil {
		t.Fatal(err)
	}

	if err = kvm.SetSregs(vcpuFd, sregs); err != nil {
		t.Fatal(err)
	}

	regs, err := kvm.GetRegs(vcpuFd)
	if err != nil {
		t.Fatal(err)
	}

	if err = kvm.SetRegs(vcpuFd, regs); err != nil {
		t.Fatal(err)
	}

	var mps kvm.MPState
	if err = kvm.GetMPState(vcpuFd, &mps); err != nil {
		t.Fatal(err)
	}

	if mps.State != kvm.MPStateRunnable {
		t.Errorf("boot vcpu mp state = %d, want runnable", mps.State)
	}

	var lapic kvm.LAPICState
	if err = kvm.GetLocalAPIC(vcpuFd, &lapic); err != nil {
		t.Fatal(err)
	}

	chip := kvm.IRQChip{ChipID: kvm.IRQChipIOAPIC}
	if err = kvm.GetIRQChip(vmFd, &chip); err != nil {
		t.Fatal(err)
	}

	if got := chip.IOAPIC().RedirTbl[0].Fields().Mask(); got != 1 {
		t.Errorf("IOAPIC pin 0 mask = %d, want 1 after reset", got)
	}
}

func TestGetVCPUMMapSize(t *testing.T) {
	t.Parallel()

	devKVM := openKVM(t)

	size, err := kvm.GetVCPUMMapSize(devKVM.Fd())
	if err != nil {
		t.Fatal(err)
	}

	if size < unsafe.Sizeof(kvm.RunData{}) {
		t.Errorf("mmap size %d smaller than RunData (%d)", size, unsafe.Sizeof(kvm.RunData{}))
	}
}

func TestCheckExtension(t *testing.T) {
	t.Parallel()

	devKVM := openKVM(t)

	for _, c := range []kvm.Capability{kvm.CapIRQChip, kvm.CapUserMemory, kvm.CapSetTSSAddr, kvm.CapEXTCPUID} {
		n, err := kvm.CheckExtension(devKVM.Fd(), c)
		if err != nil {
			t.Fatalf("%v: %v", c, err)
		}

		if n == 0 {
			t.Errorf("%v not supported", c)
		}
	}
}

func TestCreateVCPUWithNoVmFd(t *testing.T) {
	t.Parallel()

	devKVM := openKVM(t)

	if _, err := kvm.CreateVCPU(devKVM.Fd(), 0); err == nil {
		t.Fatal("CreateVCPU on /dev/kvm succeeded")
	}
}

// mirror from https://lwn.net/Articles/658512/
func TestAddNum(t *testing.T) {
	t.Parallel()

	devKVM := openKVM(t)

	vmFd, err := kvm.CreateVM(devKVM.Fd())
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(int(vmFd))

	mem, err := unix.Mmap(-1, 0, 0x1000, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANONYMOUS)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Munmap(mem)

	code := []byte{0xba, 0xf8, 0x03, 0x00, 0xd8, 0x04, '0', 0xee, 0xb0, '\n', 0xee, 0xf4}
	copy(mem, code)

	if err = kvm.SetUserMemoryRegion(vmFd, &kvm.UserspaceMemoryRegion{
		Slot:          0,
		Flags:         0,
		GuestPhysAddr: 0x1000,
		MemorySize:    0x1000,
		UserspaceAddr: uint64(uintptr(unsafe.Pointer(&mem[0]))),
	}); err != nil {
		t.Fatal(err)
	}

	vcpuFd, err := kvm.CreateVCPU(vmFd, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(int(vcpuFd))

	mmapSize, err := kvm.GetVCPUMMapSize(devKVM.Fd())
	if err != nil {
		t.Fatal(err)
	}

	page, err := unix.Mmap(int(vcpuFd), 0, int(mmapSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Munmap(page)

	run := (*kvm.RunData)(unsafe.Pointer(&page[0]))

	sregs, err := kvm.GetSregs(vcpuFd)
	if err != nil {
		t.Fatal(err)
	}

	sregs.CS.Base, sregs.CS.Selector = 0, 0
	if err = kvm.SetSregs(vcpuFd, sregs); err != nil {
		t.Fatal(err)
	}

	if err = kvm.SetRegs(vcpuFd, &kvm.Regs{RIP: 0x1000, RAX: 2, RBX: 2, RFLAGS: 0x2}); err != nil {
		t.Fatal(err)
	}

	var out []byte

	for {
		if err = kvm.Run(vcpuFd); err != nil {
			t.Fatal(err)
		}

		switch run.Reason() {
		case kvm.EXITHLT:
			if string(out) != "4\n" {
				t.Errorf("guest wrote %q, want %q", out, "4\n")
			}

			return
		case kvm.EXITIO:
			io := run.IO()
			if io.Direction != kvm.EXITIOOUT || io.Size != 1 || io.Port != 0x3f8 || io.Count != 1 {
				t.Fatalf("unexpected KVM_EXIT_IO %+v", *io)
			}

			b, err := io.IOData(page)
			if err != nil {
				t.Fatal(err)
			}

			out = append(out, b...)
		default:
			t.Fatalf("unexpected exit reason %v", run.Reason())
		}
	}
}

func TestSetMemLogDirtyPages(t *testing.T) {
	t.Parallel()

	u := kvm.UserspaceMemoryRegion{}
	u.SetMemLogDirtyPages()
	u.SetMemReadonly()

	if u.Flags != 0x3 {
		t.Fatal("unexpected flags")
	}
}

func TestIRQLine(t *testing.T) {
	t.Parallel()

	devKVM := openKVM(t)

	vmFd, err := kvm.CreateVM(devKVM.Fd())
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(int(vmFd))

	if err := kvm.CreateIRQChip(vmFd); err != nil {
		t.Fatal(err)
	}

	if err := kvm.IRQLine(vmFd, 4, 0); err != nil {
		t.Fatal(err)
	}

	if _, err := kvm.IRQLineStatus(vmFd, 4, 1); err != nil {
		t.Fatal(err)
	}
}

func TestGetOneRegRejectsWideRegister(t *testing.T) {
	t.Parallel()

	var v uint64

	err := kvm.GetOneReg(0, kvm.RegX86|kvm.RegSizeU128, &v)
	if !errors.Is(err, kvm.ErrBadRegister) {
		t.Errorf("got %v, want ErrBadRegister", err)
	}
}
