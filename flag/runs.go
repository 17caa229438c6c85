//go:build linux && amd64

package flag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/alecthomas/kong"
	"github.com/bobuhiro11/gokvm-bindings/kvm"
	"github.com/bobuhiro11/gokvm-bindings/probe"
	"github.com/bobuhiro11/gokvm-bindings/snapshot"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// CLI is the command line of gokvm-bindings.
type CLI struct {
	Debug   bool   `help:"Enable debug logging."`
	Profile string `help:"Write a profile of the run to the current directory." enum:"none,cpu,mem" default:"none"`

	Layout   LayoutCMD   `cmd:"" help:"Print the size, alignment and field offsets of the KVM structs."`
	Probe    ProbeCMD    `cmd:"" help:"Check the host KVM against the compiled-in header."`
	Snapshot SnapshotCMD `cmd:"" help:"Create a vm and write its register state to a file."`
	Decode   DecodeCMD   `cmd:"" help:"Read a snapshot file back."`
}

// LayoutCMD is the layout subcommand.
type LayoutCMD struct {
	Format string   `help:"Output format." enum:"text,yaml,json" default:"text"`
	Names  []string `arg:"" optional:"" help:"Struct names; all structs when empty."`
}

// ProbeCMD is the probe subcommand.
type ProbeCMD struct {
	Dev    string `help:"Path of the kvm device." default:"/dev/kvm" type:"path"`
	Format string `help:"Output format." enum:"text,yaml,json" default:"text"`
}

// SnapshotCMD is the snapshot subcommand.
type SnapshotCMD struct {
	Dev     string `help:"Path of the kvm device." default:"/dev/kvm" type:"path"`
	Out     string `help:"Snapshot file to write." required:"" short:"o" type:"path"`
	NCPUs   int    `name:"cpus" help:"Number of vcpus." default:"1" short:"c"`
	MemSize string `name:"mem" help:"Guest memory size as number[gGmMkK], defaults to M." default:"2M" short:"m"`
}

// DecodeCMD is the decode subcommand.
type DecodeCMD struct {
	File   string `arg:"" help:"Snapshot file." type:"existingfile"`
	Format string `help:"Output format." enum:"text,yaml,json" default:"text"`
}

// Parse parses os.Args and runs the selected command, writing to stdout.
func Parse() error {
	return Run(os.Args[1:], os.Stdout)
}

// Run parses args and runs the selected command, writing its output to w.
func Run(args []string, w io.Writer) error {
	c := CLI{}

	programName := "gokvm-bindings"
	programDesc := "gokvm-bindings inspects the KVM x86 ABI and the host that serves it"

	parser, err := kong.New(&c,
		kong.Name(programName),
		kong.Description(programDesc),
		kong.UsageOnError(),
		kong.BindTo(w, (*io.Writer)(nil)),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if c.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	switch c.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	return ctx.Run()
}

func (l *LayoutCMD) Run(w io.Writer) error {
	ls, err := Layouts(l.Names)
	if err != nil {
		return err
	}

	if l.Format != "text" {
		return Encode(w, l.Format, ls)
	}

	for _, s := range ls {
		if _, err := fmt.Fprintf(w, "%s size=%d align=%d\n", s.Name, s.Size, s.Align); err != nil {
			return err
		}

		for _, f := range s.Fields {
			if _, err := fmt.Fprintf(w, "\t%-24s offset=%-5d size=%d\n", f.Name, f.Offset, f.Size); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *ProbeCMD) Run(w io.Writer) error {
	r, err := probe.Run(p.Dev)
	if err != nil {
		return err
	}

	if p.Format != "text" {
		return Encode(w, p.Format, r)
	}

	return r.WriteText(w)
}

func (s *SnapshotCMD) Run() error {
	memSize, err := ParseSize(s.MemSize, "m")
	if err != nil {
		return err
	}

	devKVM, err := os.OpenFile(s.Dev, os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer devKVM.Close()

	v, err := newVM(devKVM.Fd(), s.NCPUs, memSize)
	if err != nil {
		return err
	}
	defer v.Close()

	snap, err := snapshot.Capture(context.Background(), devKVM.Fd(), v.fd, v.vcpuFds)
	if err != nil {
		return err
	}

	f, err := os.Create(s.Out)
	if err != nil {
		return err
	}

	if err := snapshot.NewWriter(f).WriteSnapshot(snap); err != nil {
		f.Close()

		return err
	}

	logrus.WithField("file", s.Out).WithField("vcpus", len(v.vcpuFds)).Info("wrote snapshot")

	return f.Close()
}

func (d *DecodeCMD) Run(w io.Writer) error {
	f, err := os.Open(d.File)
	if err != nil {
		return err
	}
	defer f.Close()

	snap, err := snapshot.NewReader(f).ReadSnapshot()
	if err != nil {
		return fmt.Errorf("%s: %w", d.File, err)
	}

	if d.Format != "text" {
		return Encode(w, d.Format, snap)
	}

	return WriteSnapshot(w, snap)
}

// WriteSnapshot prints the header and the registers of every vcpu in snap.
func WriteSnapshot(w io.Writer, snap *snapshot.Snapshot) error {
	if _, err := fmt.Fprintf(w, "header %s, format %d, %d vcpus\n",
		snap.Header.KernelVersion(), snap.Header.Version, snap.Header.NVCPUs); err != nil {
		return err
	}

	for i := range snap.VCPUs {
		v := &snap.VCPUs[i]
		if _, err := fmt.Fprintf(w, "vcpu %d: cr0=%#x cr3=%#x cr4=%#x efer=%#x msrs=%d\n",
			v.ID, v.Sregs.CR0, v.Sregs.CR3, v.Sregs.CR4, v.Sregs.EFER, len(v.MSRs)); err != nil {
			return err
		}

		if err := WriteRegs(w, &v.Regs); err != nil {
			return err
		}
	}

	return nil
}

// vm owns the fds and guest memory of a scratch vm.
type vm struct {
	fd      uintptr
	vcpuFds []uintptr
	mem     []byte
}

// Close releases the vcpus, the vm and its memory. It may be called more
// than once.
func (v *vm) Close() error {
	var errs []error

	for _, fd := range v.vcpuFds {
		errs = append(errs, unix.Close(int(fd)))
	}

	v.vcpuFds = nil

	if v.fd != 0 {
		errs = append(errs, unix.Close(int(v.fd)))
		v.fd = 0
	}

	if v.mem != nil {
		errs = append(errs, unix.Munmap(v.mem))
		v.mem = nil
	}

	return errors.Join(errs...)
}

// newVM creates a vm with an in-kernel irqchip, a PIT, memSize bytes of
// guest memory at address zero and n vcpus. Nothing stays open on error.
func newVM(kvmFd uintptr, n, memSize int) (*vm, error) {
	fd, err := kvm.CreateVM(kvmFd)
	if err != nil {
		return nil, fmt.Errorf("CreateVM: %w", err)
	}

	v := &vm{fd: fd}

	if err := v.setup(kvmFd, n, memSize); err != nil {
		v.Close()

		return nil, err
	}

	return v, nil
}

func (v *vm) setup(kvmFd uintptr, n, memSize int) error {
	if err := kvm.SetTSSAddr(v.fd, 0xffffd000); err != nil {
		return err
	}

	if err := kvm.SetIdentityMapAddr(v.fd, 0xffffc000); err != nil {
		return err
	}

	if err := kvm.CreateIRQChip(v.fd); err != nil {
		return err
	}

	if err := kvm.CreatePIT2(v.fd); err != nil {
		return err
	}

	if memSize > 0 {
		mem, err := unix.Mmap(-1, 0, memSize,
			unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANONYMOUS)
		if err != nil {
			return err
		}

		v.mem = mem

		if err := kvm.SetUserMemoryRegion(v.fd, &kvm.UserspaceMemoryRegion{
			Slot:          0,
			Flags:         0,
			GuestPhysAddr: 0,
			MemorySize:    uint64(memSize),
			UserspaceAddr: uint64(uintptr(unsafe.Pointer(&mem[0]))),
		}); err != nil {
			return err
		}
	}

	cpuid, err := kvm.GetSupportedCPUID(kvmFd)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		fd, err := kvm.CreateVCPU(v.fd, i)
		if err != nil {
			return fmt.Errorf("CreateVCPU %d: %w", i, err)
		}

		v.vcpuFds = append(v.vcpuFds, fd)

		if err := kvm.SetCPUID2(fd, cpuid); err != nil {
			return err
		}
	}

	return nil
}
