package sod_shock_tube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSOD(t *testing.T) {
	s := NewSOD(0.1)
	assert.InDelta(t, 0.30313, s.PStar, 1.e-5)
	assert.InDelta(t, 0.92745, s.UStar, 1.e-5)
	x1, x2, x3, x4 := s.Positions()
	assert.InDelta(t, 0.38168, x1, 1.e-4)
	assert.InDelta(t, 0.49297, x2, 1.e-4)
	assert.InDelta(t, 0.59274, x3, 1.e-4)
	assert.InDelta(t, 0.6752, x4, 1.e-4)
	_, _, _, x4 = NewSOD(0.2).Positions()
	assert.InDelta(t, 0.8504, x4, 1.e-4)

	// Constant states either side of the contact
	rho, u, p := s.Sample(0.55)
	assert.InDelta(t, 0.42632, rho, 1.e-4)
	assert.InDelta(t, s.UStar, u, 1.e-12)
	assert.InDelta(t, s.PStar, p, 1.e-12)
	rho, _, _ = s.Sample(0.65)
	assert.InDelta(t, 0.26557, rho, 1.e-4)
	rho, u, p = s.Sample(0.1)
	assert.Equal(t, [3]float64{1, 0, 1}, [3]float64{rho, u, p})
	rho, u, p = s.Sample(0.9)
	assert.Equal(t, [3]float64{0.125, 0, 0.1}, [3]float64{rho, u, p})

	// The fan is continuous at its edges
	rho, _, _ = s.Sample(x1 + 1.e-9)
	assert.InDelta(t, 1., rho, 1.e-6)
	rho, _, _ = s.Sample(x2 - 1.e-9)
	assert.InDelta(t, 0.42632, rho, 1.e-4)
}

func TestSODGet(t *testing.T) {
	s := NewSOD(0.2)
	X, Rho, P, U, E := s.Get(0, 1, 101)
	require.Len(t, X, 101)
	assert.Equal(t, 0., X[0])
	assert.Equal(t, 1., X[100])
	for i := range X {
		assert.Greater(t, Rho[i], 0.)
		assert.Greater(t, P[i], 0.)
		assert.GreaterOrEqual(t, U[i], 0.)
		assert.InDelta(t, P[i]/(0.4*Rho[i]), E[i], 1.e-12)
		if i > 0 { // Density never rises left to right in the Sod solution
			assert.LessOrEqual(t, Rho[i], Rho[i-1]+1.e-12)
		}
	}
	// Mass is conserved while the waves stay inside the domain
	mass := 0.
	for i := 0; i < len(X)-1; i++ {
		mass += 0.5 * (Rho[i] + Rho[i+1]) * (X[i+1] - X[i])
	}
	assert.InDelta(t, 0.5625, mass, 5.e-3)
}

func TestSODGeneral(t *testing.T) {
	{ // Symmetric collision produces two shocks
		s, err := NewSODWith(Params{RhoL: 1, UL: 1, PL: 1, RhoR: 1, UR: -1, PR: 1, Gamma: 1.4, X0: 0}, 0.1)
		require.NoError(t, err)
		assert.InDelta(t, 0., s.UStar, 1.e-12)
		assert.Greater(t, s.PStar, 1.)
		x1, x2, _, x4 := s.Positions()
		assert.Equal(t, x1, x2)
		assert.InDelta(t, -x1, x4, 1.e-12)
		rl, _, _ := s.Sample(-0.01)
		rr, _, _ := s.Sample(0.01)
		assert.InDelta(t, rl, rr, 1.e-12)
	}
	{ // Equal states leave the solution unchanged
		s, err := NewSODWith(Params{RhoL: 1, PL: 1, RhoR: 1, PR: 1, Gamma: 1.4}, 1)
		require.NoError(t, err)
		assert.InDelta(t, 1., s.PStar, 1.e-12)
		rho, u, p := s.Sample(0.3)
		assert.InDelta(t, 1., rho, 1.e-12)
		assert.InDelta(t, 0., u, 1.e-12)
		assert.InDelta(t, 1., p, 1.e-12)
	}
	{
		_, err := NewSODWith(Params{RhoL: 1, PL: 1, RhoR: 1, PR: 1, Gamma: 1}, 1)
		assert.Error(t, err)
		_, err = NewSODWith(Params{RhoL: 1, PL: 1, UL: -20, RhoR: 1, PR: 1, UR: 20, Gamma: 1.4}, 1)
		assert.Error(t, err)
		_, err = NewSODWith(DefaultParams(), -1)
		assert.Error(t, err)
	}
	{
		s := NewSOD(0)
		rho, _, _ := s.Sample(0.49)
		assert.Equal(t, 1., rho)
		assert.False(t, math.IsNaN(s.PStar))
	}
}
