//go:build linux && amd64

package probe

import (
	"github.com/bobuhiro11/gokvm-bindings/kvm"
)

// The list of CPU features can be found in arch/x86/kvm/cpuid.c in Linux.
// The offset in the register is defined in
// arch/x86/include/asm/cpufeatures.h.

// Register names a CPUID output register.
type Register uint8

const (
	EAX Register = iota
	EBX
	ECX
	EDX
)

// Leaf is one CPUID function/index/register triple whose bits are named.
type Leaf struct {
	Name     string
	Function uint32
	Index    uint32
	Reg      Register
	Bits     map[uint]string
}

//nolint:gochecknoglobals
var Leaves = []Leaf{
	{
		Name:     "F_1_Edx",
		Function: 1,
		Reg:      EDX,
		Bits: map[uint]string{
			0: "FPU", 1: "VME", 2: "DE", 3: "PSE", 4: "TSC", 5: "MSR", 6: "PAE", 7: "MCE",
			8: "CX8", 9: "APIC", 11: "SEP", 12: "MTRR", 13: "PGE", 14: "MCA", 15: "CMOV",
			16: "PAT", 17: "PSE36", 18: "PN", 19: "CLFLUSH", 21: "DS", 22: "ACPI", 23: "MMX",
			24: "FXSR", 25: "XMM", 26: "XMM2", 27: "SELFSNOOP", 28: "HT", 29: "ACC", 30: "IA64",
			31: "PBE",
		},
	},
	{
		Name:     "F_7_0_Edx",
		Function: 7,
		Index:    0,
		Reg:      EDX,
		Bits: map[uint]string{
			2: "AVX512_4VNNIW", 3: "AVX512_4FMAPS", 4: "FSRM", 8: "AVX512_VP2INTERSECT",
			9: "SRBDS_CTRL", 10: "MD_CLEAR", 11: "RTM_ALWAYS_ABORT", 13: "TSX_FORCE_ABORT",
			14: "SERIALIZE", 15: "HYBRID_CPU", 16: "TSXLDTRK", 18: "PCONFIG", 19: "ARCH_LBR",
			20: "IBT", 22: "AMX_BF16", 23: "AVX512_FP16", 24: "AMX_TILE", 25: "AMX_INT8",
			26: "SPEC_CTRL", 27: "INTEL_STIBP", 28: "FLUSH_L1D", 29: "ARCH_CAPABILITIES",
			30: "CORE_CAPABILITIES", 31: "SPEC_CTRL_SSBD",
		},
	},
}

// FeatureSet is the decoded state of one Leaf.
type FeatureSet struct {
	Leaf     string   `yaml:"leaf" json:"leaf"`
	Enabled  []string `yaml:"enabled" json:"enabled"`
	Disabled []string `yaml:"disabled" json:"disabled"`
}

func (r Register) of(e *kvm.CPUIDEntry2) uint32 {
	switch r {
	case EAX:
		return e.Eax
	case EBX:
		return e.Ebx
	case ECX:
		return e.Ecx
	}

	return e.Edx
}

// Features decodes the named bits of every Leaf present in entries.
// Leaves the table lacks are skipped.
func Features(entries []kvm.CPUIDEntry2) []FeatureSet {
	sets := []FeatureSet{}

	for _, l := range Leaves {
		for i := range entries {
			e := &entries[i]
			if e.Function != l.Function || e.Index != l.Index {
				continue
			}

			set := FeatureSet{Leaf: l.Name, Enabled: []string{}, Disabled: []string{}}
			reg := l.Reg.of(e)

			for bit := uint(0); bit < 32; bit++ {
				name, ok := l.Bits[bit]
				if !ok {
					continue
				}

				if reg&(1<<bit) != 0 {
					set.Enabled = append(set.Enabled, name)
				} else {
					set.Disabled = append(set.Disabled, name)
				}
			}

			sets = append(sets, set)

			break
		}
	}

	return sets
}
