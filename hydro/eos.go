package hydro

import (
	"math"

	"github.com/notargets/goppm/recon"
)

// Conserved variable indices
const (
	IDN = iota // Density
	IM1        // Momentum along x1
	IM2
	IM3
	IEN // Total energy
	NHYDRO
)

// Primitive variable indices, density shares IDN
const (
	IV1 = iota + 1
	IV2
	IV3
	IPR
)

type State [NHYDRO]float64

// EOS is an ideal gas with floors applied when recovering primitives
type EOS struct {
	Gamma                       float64
	DensityFloor, PressureFloor float64
}

func NewEOS(Gamma float64) EOS {
	return EOS{Gamma: Gamma, DensityFloor: 1.e-10, PressureFloor: 1.e-10}
}

func (e EOS) ConsToPrim(u State) (w State) {
	var (
		rho = math.Max(u[IDN], e.DensityFloor)
		oor = 1. / rho
	)
	w[IDN] = rho
	w[IV1] = u[IM1] * oor
	w[IV2] = u[IM2] * oor
	w[IV3] = u[IM3] * oor
	ke := 0.5 * rho * (w[IV1]*w[IV1] + w[IV2]*w[IV2] + w[IV3]*w[IV3])
	w[IPR] = math.Max((e.Gamma-1.)*(u[IEN]-ke), e.PressureFloor)
	return
}

func (e EOS) PrimToCons(w State) (u State) {
	rho := w[IDN]
	u[IDN] = rho
	u[IM1] = rho * w[IV1]
	u[IM2] = rho * w[IV2]
	u[IM3] = rho * w[IV3]
	u[IEN] = w[IPR]/(e.Gamma-1.) + 0.5*rho*(w[IV1]*w[IV1]+w[IV2]*w[IV2]+w[IV3]*w[IV3])
	return
}

func (e EOS) SoundSpeed(w State) float64 {
	return math.Sqrt(e.Gamma * w[IPR] / w[IDN])
}

// Flux is the physical flux along axis a evaluated from primitives
func (e EOS) Flux(w State, a recon.Axis) (f State) {
	var (
		vn = w[IV1+int(a)]
		u  = e.PrimToCons(w)
	)
	f[IDN] = u[IDN] * vn
	f[IM1] = u[IM1] * vn
	f[IM2] = u[IM2] * vn
	f[IM3] = u[IM3] * vn
	f[IM1+int(a)] += w[IPR]
	f[IEN] = (u[IEN] + w[IPR]) * vn
	return
}
