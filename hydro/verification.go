package hydro

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/goppm/sod_shock_tube"
)

// Profile returns primitive component n along the tube axis, through the middle of the other axes
func (c *Euler) Profile(n int) (X, F []float64) {
	var (
		g   = c.Grid
		a   = c.TubeAxis
		r   = g.Ranges
		mid = [3]int{}
	)
	for b := 0; b < 3; b++ {
		mid[b] = (r[b].S + r[b].E) / 2
	}
	X = make([]float64, 0, r[a].Len())
	F = make([]float64, 0, r[a].Len())
	for l := r[a].S; l <= r[a].E; l++ {
		idx := mid
		idx[a] = l
		var u State
		for m := 0; m < NHYDRO; m++ {
			u[m] = c.U.At(m, idx[2], idx[1], idx[0])
		}
		X = append(X, g.X(a, l))
		F = append(F, c.EOS.ConsToPrim(u)[n])
	}
	return
}

// Exact returns the analytic density at the cell centres of the tube axis
func (c *Euler) Exact() (X, Rho []float64, err error) {
	X, _ = c.Profile(IDN)
	Rho = make([]float64, len(X))
	switch c.Case {
	case SHOCKTUBE:
		var s *sod_shock_tube.SOD
		if s, err = sod_shock_tube.NewSODWith(c.sodParams(), c.Time); err != nil {
			return
		}
		for i, x := range X {
			Rho[i], _, _ = s.Sample(x)
		}
	case DENSITYWAVE:
		for i, x := range X {
			Rho[i] = c.densityWave(x, c.Time)
		}
	case FREESTREAM:
		for i := range X {
			Rho[i] = freestream[IDN]
		}
	default:
		err = fmt.Errorf("no exact solution for case %s", c.Case.Print())
	}
	return
}

// L1Error is the mean absolute density error along the tube axis
func (c *Euler) L1Error() (l1 float64, err error) {
	var (
		rho, exact []float64
	)
	if _, exact, err = c.Exact(); err != nil {
		return
	}
	_, rho = c.Profile(IDN)
	l1 = floats.Distance(rho, exact, 1) / float64(len(rho))
	return
}

func (c *Euler) SodL1Error() (float64, error) {
	if c.Case != SHOCKTUBE {
		return 0, fmt.Errorf("case is %s, not the shock tube", c.Case.Print())
	}
	return c.L1Error()
}

func (c *Euler) DensityWaveL1Error() (float64, error) {
	if c.Case != DENSITYWAVE {
		return 0, fmt.Errorf("case is %s, not the density wave", c.Case.Print())
	}
	return c.L1Error()
}
