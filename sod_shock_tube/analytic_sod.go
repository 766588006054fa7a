package sod_shock_tube

import (
	"fmt"
	"math"
)

// Params are the two constant states separated by a diaphragm at X0
type Params struct {
	RhoL, UL, PL float64
	RhoR, UR, PR float64
	Gamma        float64
	X0           float64
}

// DefaultParams is the standard Sod problem on [0, 1]
func DefaultParams() Params {
	return Params{
		RhoL: 1, UL: 0, PL: 1,
		RhoR: 0.125, UR: 0, PR: 0.1,
		Gamma: 1.4,
		X0:    0.5,
	}
}

/*
SOD is the exact solution of the Riemann problem for an ideal gas. The star
pressure is found by bisection on the pressure function, which is monotone
in p, so it converges for any pair of states that does not create a vacuum.
*/
type SOD struct {
	Params
	T            float64
	PStar, UStar float64
	cl, cr       float64
}

func NewSOD(t float64) (s *SOD) {
	var err error
	if s, err = NewSODWith(DefaultParams(), t); err != nil {
		panic(err)
	}
	return
}

func NewSODWith(p Params, t float64) (s *SOD, err error) {
	if p.RhoL <= 0 || p.RhoR <= 0 || p.PL <= 0 || p.PR <= 0 {
		return nil, fmt.Errorf("states must have positive density and pressure: %+v", p)
	}
	if p.Gamma <= 1 {
		return nil, fmt.Errorf("gamma must exceed 1, have %v", p.Gamma)
	}
	if t < 0 {
		return nil, fmt.Errorf("negative time %v", t)
	}
	s = &SOD{
		Params: p,
		T:      t,
		cl:     math.Sqrt(p.Gamma * p.PL / p.RhoL),
		cr:     math.Sqrt(p.Gamma * p.PR / p.RhoR),
	}
	gm1 := p.Gamma - 1.
	if 2.*(s.cl+s.cr)/gm1 <= p.UR-p.UL {
		return nil, fmt.Errorf("initial states generate a vacuum")
	}
	s.PStar = s.solvePressure()
	fl, fr := s.waveFunc(s.PStar, p.RhoL, p.PL, s.cl), s.waveFunc(s.PStar, p.RhoR, p.PR, s.cr)
	s.UStar = 0.5*(p.UL+p.UR) + 0.5*(fr-fl)
	return
}

// waveFunc is the velocity change across a left or right wave reaching pressure P
func (s *SOD) waveFunc(P, rhoK, pK, cK float64) (f float64) {
	var (
		g = s.Gamma
	)
	if P > pK { // Shock
		A := 2. / ((g + 1.) * rhoK)
		B := (g - 1.) / (g + 1.) * pK
		return (P - pK) * math.Sqrt(A/(P+B))
	}
	// Rarefaction
	return 2. * cK / (g - 1.) * (math.Pow(P/pK, (g-1.)/(2.*g)) - 1.)
}

func (s *SOD) pressureFunc(P float64) float64 {
	return s.waveFunc(P, s.RhoL, s.PL, s.cl) + s.waveFunc(P, s.RhoR, s.PR, s.cr) + s.UR - s.UL
}

func (s *SOD) solvePressure() (P float64) {
	var (
		lo, hi = 0., math.Max(s.PL, s.PR)
		tol    = 1.e-14
	)
	for s.pressureFunc(hi) < 0 {
		hi *= 2
	}
	for i := 0; i < 200 && hi-lo > tol*hi; i++ {
		P = 0.5 * (lo + hi)
		if s.pressureFunc(P) < 0 {
			lo = P
		} else {
			hi = P
		}
	}
	P = 0.5 * (lo + hi)
	return
}

// Sample returns density, velocity and pressure at x
func (s *SOD) Sample(x float64) (rho, u, p float64) {
	var (
		g  = s.Gamma
		gp = (g + 1.) / (2. * g)
		gm = (g - 1.) / (2. * g)
		g6 = (g - 1.) / (g + 1.)
	)
	if s.T == 0 {
		if x < s.X0 {
			return s.RhoL, s.UL, s.PL
		}
		return s.RhoR, s.UR, s.PR
	}
	S := (x - s.X0) / s.T
	if S <= s.UStar { // Left of the contact
		if s.PStar > s.PL {
			sl := s.UL - s.cl*math.Sqrt(gp*s.PStar/s.PL+gm)
			if S <= sl {
				return s.RhoL, s.UL, s.PL
			}
			r := s.PStar / s.PL
			return s.RhoL * (r + g6) / (g6*r + 1.), s.UStar, s.PStar
		}
		shl := s.UL - s.cl
		if S <= shl {
			return s.RhoL, s.UL, s.PL
		}
		cml := s.cl * math.Pow(s.PStar/s.PL, gm)
		if S > s.UStar-cml {
			return s.RhoL * math.Pow(s.PStar/s.PL, 1./g), s.UStar, s.PStar
		}
		// Inside the left fan
		u = 2. / (g + 1.) * (s.cl + (g-1.)/2.*s.UL + S)
		c := 2. / (g + 1.) * (s.cl + (g-1.)/2.*(s.UL-S))
		rho = s.RhoL * math.Pow(c/s.cl, 2./(g-1.))
		p = s.PL * math.Pow(c/s.cl, 2.*g/(g-1.))
		return
	}
	if s.PStar > s.PR {
		sr := s.UR + s.cr*math.Sqrt(gp*s.PStar/s.PR+gm)
		if S >= sr {
			return s.RhoR, s.UR, s.PR
		}
		r := s.PStar / s.PR
		return s.RhoR * (r + g6) / (g6*r + 1.), s.UStar, s.PStar
	}
	shr := s.UR + s.cr
	if S >= shr {
		return s.RhoR, s.UR, s.PR
	}
	cmr := s.cr * math.Pow(s.PStar/s.PR, gm)
	if S < s.UStar+cmr {
		return s.RhoR * math.Pow(s.PStar/s.PR, 1./g), s.UStar, s.PStar
	}
	// Inside the right fan
	u = 2. / (g + 1.) * (-s.cr + (g-1.)/2.*s.UR + S)
	c := 2. / (g + 1.) * (s.cr - (g-1.)/2.*(s.UR-S))
	rho = s.RhoR * math.Pow(c/s.cr, 2./(g-1.))
	p = s.PR * math.Pow(c/s.cr, 2.*g/(g-1.))
	return
}

/*
Positions returns, in order, the head and tail of the left wave, the contact
and the right wave. A shock has coincident head and tail, for a right
rarefaction x4 is its head.
*/
func (s *SOD) Positions() (x1, x2, x3, x4 float64) {
	var (
		g  = s.Gamma
		gp = (g + 1.) / (2. * g)
		gm = (g - 1.) / (2. * g)
		t  = s.T
	)
	if s.PStar > s.PL {
		x1 = s.X0 + t*(s.UL-s.cl*math.Sqrt(gp*s.PStar/s.PL+gm))
		x2 = x1
	} else {
		x1 = s.X0 + t*(s.UL-s.cl)
		x2 = s.X0 + t*(s.UStar-s.cl*math.Pow(s.PStar/s.PL, gm))
	}
	x3 = s.X0 + t*s.UStar
	if s.PStar > s.PR {
		x4 = s.X0 + t*(s.UR+s.cr*math.Sqrt(gp*s.PStar/s.PR+gm))
	} else {
		x4 = s.X0 + t*(s.UR+s.cr)
	}
	return
}

// Get samples the solution at np points across [xmin, xmax], E is the specific internal energy
func (s *SOD) Get(xmin, xmax float64, np int) (X, Rho, P, U, E []float64) {
	X = make([]float64, np)
	Rho = make([]float64, np)
	P = make([]float64, np)
	U = make([]float64, np)
	E = make([]float64, np)
	for i := range X {
		if np > 1 {
			X[i] = xmin + (xmax-xmin)*float64(i)/float64(np-1)
		} else {
			X[i] = xmin
		}
		Rho[i], U[i], P[i] = s.Sample(X[i])
		E[i] = P[i] / ((s.Gamma - 1.) * Rho[i])
	}
	return
}
