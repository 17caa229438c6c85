package kvm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedExitReason is any error that we do not understand.
	ErrUnexpectedExitReason = errors.New("unexpected kvm exit reason")

	// ErrDebug is a debug exit, caused by single step or breakpoint.
	ErrDebug = errors.New("debug exit")

	// ErrIODataRange is returned when an IO exit points outside the run page.
	ErrIODataRange = errors.New("io exit data outside run page")
)

// ExitType is a virtual machine exit type, RunData.ExitReason.
type ExitType uint

const (
	EXITUNKNOWN       ExitType = 0
	EXITEXCEPTION     ExitType = 1
	EXITIO            ExitType = 2
	EXITHYPERCALL     ExitType = 3
	EXITDEBUG         ExitType = 4
	EXITHLT           ExitType = 5
	EXITMMIO          ExitType = 6
	EXITIRQWINDOWOPEN ExitType = 7
	EXITSHUTDOWN      ExitType = 8
	EXITFAILENTRY     ExitType = 9
	EXITINTR          ExitType = 10
	EXITSETTPR        ExitType = 11
	EXITTPRACCESS     ExitType = 12
	EXITS390SIEIC     ExitType = 13
	EXITS390RESET     ExitType = 14
	EXITDCR           ExitType = 15
	EXITNMI           ExitType = 16
	EXITINTERNALERROR ExitType = 17
	EXITOSI           ExitType = 18
	EXITPAPRHCALL     ExitType = 19
	EXITS390UCONTROL  ExitType = 20
	EXITWATCHDOG      ExitType = 21
	EXITS390TSCH      ExitType = 22
	EXITEPR           ExitType = 23
	EXITSYSTEMEVENT   ExitType = 24
	EXITS390STSI      ExitType = 25
	EXITIOAPICEOI     ExitType = 26
	EXITHYPERV        ExitType = 27

	EXITIOIN  = 0
	EXITIOOUT = 1
)

var exitNames = [...]string{
	EXITUNKNOWN:       "EXITUNKNOWN",
	EXITEXCEPTION:     "EXITEXCEPTION",
	EXITIO:            "EXITIO",
	EXITHYPERCALL:     "EXITHYPERCALL",
	EXITDEBUG:         "EXITDEBUG",
	EXITHLT:           "EXITHLT",
	EXITMMIO:          "EXITMMIO",
	EXITIRQWINDOWOPEN: "EXITIRQWINDOWOPEN",
	EXITSHUTDOWN:      "EXITSHUTDOWN",
	EXITFAILENTRY:     "EXITFAILENTRY",
	EXITINTR:          "EXITINTR",
	EXITSETTPR:        "EXITSETTPR",
	EXITTPRACCESS:     "EXITTPRACCESS",
	EXITS390SIEIC:     "EXITS390SIEIC",
	EXITS390RESET:     "EXITS390RESET",
	EXITDCR:           "EXITDCR",
	EXITNMI:           "EXITNMI",
	EXITINTERNALERROR: "EXITINTERNALERROR",
	EXITOSI:           "EXITOSI",
	EXITPAPRHCALL:     "EXITPAPRHCALL",
	EXITS390UCONTROL:  "EXITS390UCONTROL",
	EXITWATCHDOG:      "EXITWATCHDOG",
	EXITS390TSCH:      "EXITS390TSCH",
	EXITEPR:           "EXITEPR",
	EXITSYSTEMEVENT:   "EXITSYSTEMEVENT",
	EXITS390STSI:      "EXITS390STSI",
	EXITIOAPICEOI:     "EXITIOAPICEOI",
	EXITHYPERV:        "EXITHYPERV",
}

func (e ExitType) String() string {
	if int(e) < len(exitNames) {
		return exitNames[e]
	}

	return fmt.Sprintf("ExitType(%d)", uint(e))
}
