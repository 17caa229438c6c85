//go:build linux && amd64

package flag

import (
	"fmt"
	"io"

	"github.com/bobuhiro11/gokvm-bindings/kvm"
	"golang.org/x/arch/x86/x86asm"
)

//nolint:gochecknoglobals
var gprs = []x86asm.Reg{
	x86asm.RAX, x86asm.RBX, x86asm.RCX, x86asm.RDX,
	x86asm.RSI, x86asm.RDI, x86asm.RSP, x86asm.RBP,
	x86asm.R8, x86asm.R9, x86asm.R10, x86asm.R11,
	x86asm.R12, x86asm.R13, x86asm.R14, x86asm.R15,
	x86asm.RIP,
}

// WriteRegs prints the general purpose registers and RFLAGS, one per line.
func WriteRegs(w io.Writer, regs *kvm.Regs) error {
	for _, r := range gprs {
		v, err := regs.Reg(r)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%-6s %#016x\n", r, *v); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%-6s %#016x\n", "RFLAGS", regs.RFLAGS)

	return err
}
