package types

import (
	"fmt"
	"strings"
)

// BCFLAG selects how the ghost cells on one face of a block are filled
type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Outflow
	BC_Periodic
	BC_Reflect
)

var BCNameMap = map[string]BCFLAG{
	"outflow":  BC_Outflow,
	"out":      BC_Outflow,
	"periodic": BC_Periodic,
	"reflect":  BC_Reflect,
	"wall":     BC_Reflect,
	"slip":     BC_Reflect,
}

func (bf BCFLAG) String() string {
	switch bf {
	case BC_Outflow:
		return "Outflow"
	case BC_Periodic:
		return "Periodic"
	case BC_Reflect:
		return "Reflect"
	}
	return "None"
}

func NewBCFlag(label string) (bf BCFLAG, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if bf, ok = BCNameMap[label]; !ok {
		err = fmt.Errorf("unable to use boundary condition named [%s]", label)
	}
	return
}
