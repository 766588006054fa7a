package recon

import (
	"fmt"
	"strings"
)

// Kernel produces ql(i+1) and qr(i) from the five samples centred on cell i
type Kernel[T Float] func(qim2, qim1, qi, qip1, qip2 T) (qlip1, qri T)

type Method uint8

const (
	DC Method = iota
	PLM_VL
	PPM_CS
)

var (
	MethodNames = map[string]Method{
		"dc":        DC,
		"donorcell": DC,
		"plm":       PLM_VL,
		"ppm":       PPM_CS,
	}
	MethodPrintNames = []string{
		"Donor Cell",
		"Piecewise Linear, van Leer limiter",
		"Piecewise Parabolic, Colella-Sekora limiter",
	}
)

func (m Method) Print() (txt string) {
	if int(m) >= len(MethodPrintNames) {
		return "Unknown"
	}
	return MethodPrintNames[m]
}

func NewMethod(label string) (m Method, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if m, ok = MethodNames[label]; !ok {
		err = fmt.Errorf("unable to use reconstruction named [%s]", label)
	}
	return
}

func KernelFor[T Float](m Method) Kernel[T] {
	switch m {
	case DC:
		return DonorCell[T]
	case PLM_VL:
		return PLM[T]
	default:
		return PPM[T]
	}
}

// DonorCell is first order: both faces take the cell average
func DonorCell[T Float](_, _, qi, _, _ T) (qlip1, qri T) {
	return qi, qi
}

// PLM uses the van Leer harmonic mean of the one sided differences, which is
// zero at extrema and never exceeds twice the smaller difference.
func PLM[T Float](_, qim1, qi, qip1, _ T) (qlip1, qri T) {
	var (
		dql = qi - qim1
		dqr = qip1 - qi
		dqm T
	)
	if dql*dqr > 0. {
		dqm = 2. * dql * dqr / (dql + dqr)
	}
	qlip1 = qi + 0.5*dqm
	qri = qi - 0.5*dqm
	return
}
