package hydro

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/goppm/recon"
)

type FluxType uint

const (
	FLUX_LaxFriedrichs FluxType = iota
	FLUX_HLLE
)

var (
	FluxNames = map[string]FluxType{
		"lax":  FLUX_LaxFriedrichs,
		"llf":  FLUX_LaxFriedrichs,
		"hlle": FLUX_HLLE,
		"hll":  FLUX_HLLE,
	}
	FluxPrintNames = []string{"Local Lax Friedrichs", "HLLE"}
)

func (ft FluxType) Print() (txt string) {
	if int(ft) >= len(FluxPrintNames) {
		return "Unknown"
	}
	txt = FluxPrintNames[ft]
	return
}

func NewFluxType(label string) (ft FluxType, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if len(label) == 0 {
		return FLUX_HLLE, nil
	}
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("unable to use flux named %s", label)
	}
	return
}

// RiemannFlux returns the interface flux along axis a from the left and right primitive states
func (e EOS) RiemannFlux(ft FluxType, wl, wr State, a recon.Axis) (f State) {
	var (
		vl, vr = wl[IV1+int(a)], wr[IV1+int(a)]
		cl, cr = e.SoundSpeed(wl), e.SoundSpeed(wr)
		fl, fr = e.Flux(wl, a), e.Flux(wr, a)
		ul, ur = e.PrimToCons(wl), e.PrimToCons(wr)
	)
	switch ft {
	case FLUX_HLLE:
		var (
			bp = math.Max(math.Max(vl+cl, vr+cr), 0)
			bm = math.Min(math.Min(vl-cl, vr-cr), 0)
		)
		if bp-bm == 0 {
			for n := range f {
				f[n] = 0.5 * (fl[n] + fr[n])
			}
			return
		}
		oodb := 1. / (bp - bm)
		for n := range f {
			f[n] = (bp*fl[n] - bm*fr[n] + bp*bm*(ur[n]-ul[n])) * oodb
		}
	default:
		smax := math.Max(math.Abs(vl)+cl, math.Abs(vr)+cr)
		for n := range f {
			f[n] = 0.5*(fl[n]+fr[n]) - 0.5*smax*(ur[n]-ul[n])
		}
	}
	return
}
