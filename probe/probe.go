//go:build linux && amd64

// Package probe checks the host KVM against the compiled-in bindings.
package probe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/bobuhiro11/gokvm-bindings/kvm"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

var (
	// ErrAPIVersion is returned when the kernel reports an API version
	// other than kvm.APIVersion.
	ErrAPIVersion = errors.New("unsupported KVM API version")

	// ErrMMapSize is returned when the vcpu mapping cannot hold RunData.
	ErrMMapSize = errors.New("vcpu mmap size smaller than run data")
)

// Capability is the CheckExtension result for one capability.
type Capability struct {
	Name  string  `yaml:"name" json:"name"`
	Value uintptr `yaml:"value" json:"value"`
}

// Supported reports whether the capability is present.
func (c Capability) Supported() bool { return c.Value != 0 }

// Report is what Probe found out about the host.
type Report struct {
	Device        string       `yaml:"device" json:"device"`
	HeaderVersion string       `yaml:"header_version" json:"header_version"`
	APIVersion    uintptr      `yaml:"api_version" json:"api_version"`
	VCPUMMapSize  uintptr      `yaml:"vcpu_mmap_size" json:"vcpu_mmap_size"`
	RunDataSize   uintptr      `yaml:"run_data_size" json:"run_data_size"`
	Capabilities  []Capability `yaml:"capabilities" json:"capabilities"`
	CPUIDEntries  int          `yaml:"cpuid_entries" json:"cpuid_entries"`
	Features      []FeatureSet `yaml:"features" json:"features"`
	MSRIndices    int          `yaml:"msr_indices" json:"msr_indices"`
}

// Run opens dev and probes it.
func Run(dev string) (*Report, error) {
	f, err := os.OpenFile(dev, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := Probe(f.Fd())
	if err != nil {
		return nil, err
	}

	r.Device = dev

	return r, nil
}

// Probe checks the API version and run page size of the KVM behind kvmFd,
// then collects every capability of the selected header, the supported
// CPUID table and the MSR index list.
func Probe(kvmFd uintptr) (*Report, error) {
	r := &Report{
		HeaderVersion: kvm.HeaderVersion,
		RunDataSize:   unsafe.Sizeof(kvm.RunData{}),
	}

	v, err := kvm.GetAPIVersion(kvmFd)
	if err != nil {
		return nil, fmt.Errorf("GetAPIVersion: %w", err)
	}

	r.APIVersion = v

	if v != kvm.APIVersion {
		return nil, fmt.Errorf("got %d, want %d: %w", v, kvm.APIVersion, ErrAPIVersion)
	}

	if r.VCPUMMapSize, err = kvm.GetVCPUMMapSize(kvmFd); err != nil {
		return nil, fmt.Errorf("GetVCPUMMapSize: %w", err)
	}

	if r.VCPUMMapSize < r.RunDataSize {
		return nil, fmt.Errorf("%d < %d: %w", r.VCPUMMapSize, r.RunDataSize, ErrMMapSize)
	}

	if err := checkRunPage(kvmFd, int(r.VCPUMMapSize)); err != nil {
		return nil, err
	}

	for _, c := range kvm.Capabilities() {
		n, err := kvm.CheckExtension(kvmFd, c)
		if err != nil {
			return nil, fmt.Errorf("CheckExtension(%v): %w", c, err)
		}

		r.Capabilities = append(r.Capabilities, Capability{Name: c.String(), Value: n})
	}

	entries, err := kvm.GetSupportedCPUID(kvmFd)
	if err != nil {
		return nil, fmt.Errorf("GetSupportedCPUID: %w", err)
	}

	r.CPUIDEntries = len(entries)
	r.Features = Features(entries)

	msrs, err := kvm.GetMSRIndexList(kvmFd)
	if err != nil {
		return nil, fmt.Errorf("GetMSRIndexList: %w", err)
	}

	r.MSRIndices = len(msrs)

	logrus.WithField("api", r.APIVersion).
		WithField("caps", len(r.Capabilities)).
		WithField("cpuid", r.CPUIDEntries).
		Debug("probed kvm")

	return r, nil
}

// checkRunPage maps the run page of a scratch vcpu and reads it through
// RunData.
func checkRunPage(kvmFd uintptr, size int) error {
	vmFd, err := kvm.CreateVM(kvmFd)
	if err != nil {
		return fmt.Errorf("CreateVM: %w", err)
	}
	defer unix.Close(int(vmFd))

	vcpuFd, err := kvm.CreateVCPU(vmFd, 0)
	if err != nil {
		return fmt.Errorf("CreateVCPU: %w", err)
	}
	defer unix.Close(int(vcpuFd))

	page, err := unix.Mmap(int(vcpuFd), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap run page: %w", err)
	}
	defer unix.Munmap(page)

	run := (*kvm.RunData)(unsafe.Pointer(&page[0]))
	logrus.WithField("exit_reason", run.Reason()).Debug("mapped run page")

	return nil
}

// WriteText prints r the way a human reads it.
func (r *Report) WriteText(w io.Writer) error {
	var err error

	printf := func(format string, a ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, a...)
		}
	}

	printf("%-30s: %s\n", "device", r.Device)
	printf("%-30s: %s\n", "header", r.HeaderVersion)
	printf("%-30s: %d\n", "api version", r.APIVersion)
	printf("%-30s: %d (run data %d)\n", "vcpu mmap size", r.VCPUMMapSize, r.RunDataSize)
	printf("%-30s: %d\n", "cpuid entries", r.CPUIDEntries)
	printf("%-30s: %d\n", "msr indices", r.MSRIndices)

	for _, c := range r.Capabilities {
		printf("%-30s: %t\n", c.Name, c.Supported())
	}

	for _, f := range r.Features {
		printf("%s.\n* Enabled: %v\n* Disabled: %v\n", f.Leaf, f.Enabled, f.Disabled)
	}

	return err
}
