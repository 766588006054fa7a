package hydro

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/goppm/recon"
	"github.com/notargets/goppm/sod_shock_tube"
)

type InitType uint

const (
	SHOCKTUBE InitType = iota
	FREESTREAM
	DENSITYWAVE
)

var (
	InitNames = map[string]InitType{
		"shocktube":   SHOCKTUBE,
		"sod":         SHOCKTUBE,
		"freestream":  FREESTREAM,
		"densitywave": DENSITYWAVE,
	}
	InitPrintNames = []string{"Sod Shock Tube", "Freestream", "Advected Density Wave"}
)

func (it InitType) Print() (txt string) {
	if int(it) >= len(InitPrintNames) {
		return "Unknown"
	}
	txt = InitPrintNames[it]
	return
}

func NewInitType(label string) (it InitType, err error) {
	var (
		ok bool
	)
	if len(label) == 0 {
		err = fmt.Errorf("empty init type, must be one of %v", InitNames)
		return
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use init type named %s", label)
	}
	return
}

const (
	waveAmplitude = 0.2
	waveVelocity  = 1.
)

// Freestream primitive state, the velocity is deliberately oblique to all axes
var freestream = State{1, 0.5, 0.25, -0.125, 1}

// initialState returns the primitive state at x, the coordinate along the tube axis
func (c *Euler) initialState(x float64) (w State) {
	switch c.Case {
	case FREESTREAM:
		return freestream
	case DENSITYWAVE:
		w[IDN] = c.densityWave(x, 0)
		w[IV1+int(c.TubeAxis)] = waveVelocity
		w[IPR] = 1
		return
	}
	p := c.sodParams()
	if x < p.X0 {
		w[IDN], w[IV1+int(c.TubeAxis)], w[IPR] = p.RhoL, p.UL, p.PL
	} else {
		w[IDN], w[IV1+int(c.TubeAxis)], w[IPR] = p.RhoR, p.UR, p.PR
	}
	return
}

func (c *Euler) sodParams() (p sod_shock_tube.Params) {
	a := c.TubeAxis
	p = sod_shock_tube.DefaultParams()
	p.Gamma = c.EOS.Gamma
	p.X0 = 0.5 * (c.Grid.Min[a] + c.Grid.Max[a])
	return
}

// densityWave is the cell average at x at time t of the advected sine wave
func (c *Euler) densityWave(x, t float64) float64 {
	var (
		a  = c.TubeAxis
		L  = c.Grid.Max[a] - c.Grid.Min[a]
		dx = c.Grid.Dx(a)
		k  = 2 * math.Pi / L
		xs = x - waveVelocity*t - c.Grid.Min[a]
	)
	// Average of sin over [xs-dx/2, xs+dx/2]
	avg := math.Sin(k*xs) * math.Sin(k*dx/2) / (k * dx / 2)
	return 1. + waveAmplitude*avg
}

func (c *Euler) Initialize() {
	var (
		g = c.Grid
		r = g.Ranges
	)
	for k := r[recon.X3].S; k <= r[recon.X3].E; k++ {
		for j := r[recon.X2].S; j <= r[recon.X2].E; j++ {
			for i := r[recon.X1].S; i <= r[recon.X1].E; i++ {
				idx := [3]int{i, j, k}
				u := c.EOS.PrimToCons(c.initialState(g.X(c.TubeAxis, idx[c.TubeAxis])))
				for n := 0; n < NHYDRO; n++ {
					c.U.Set(n, k, j, i, u[n])
				}
			}
		}
	}
	c.Time, c.Steps = 0, 0
}
