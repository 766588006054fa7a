package recon

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPPMScenarios(t *testing.T) {
	{ // Linear ramp
		ql, qr := PPM(1., 2., 3., 4., 5.)
		assert.Equal(t, 3.5, ql)
		assert.Equal(t, 2.5, qr)
	}
	{ // Uniform
		ql, qr := PPM(1., 1., 1., 1., 1.)
		assert.Equal(t, 1., ql)
		assert.Equal(t, 1., qr)
	}
	{ // Sharp peak: not smooth, so the parabola flattens to the cell average
		ql, qr := PPM(1., 2., 5., 2., 1.)
		for _, q := range []float64{ql, qr} {
			assert.True(t, q <= 5.)
			assert.True(t, q > 2.)
		}
		assert.Equal(t, 5., ql)
		assert.Equal(t, 5., qr)
	}
	{ // Float32 instantiation
		ql, qr := PPM[float32](1, 2, 3, 4, 5)
		assert.Equal(t, float32(3.5), ql)
		assert.Equal(t, float32(2.5), qr)
	}
}

func TestPPMExactness(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 0; n < 1000; n++ {
		var (
			a     = 200*r.Float64() - 100
			b     = 20*r.Float64() - 10
			q     [5]float64
			scale = math.Abs(a) + 3*math.Abs(b)
		)
		for k := range q {
			q[k] = a + b*float64(k-2)
		}
		ql, qr := PPM(q[0], q[1], q[2], q[3], q[4])
		assert.InDelta(t, a+0.5*b, ql, 1.e-12*scale)
		assert.InDelta(t, a-0.5*b, qr, 1.e-12*scale)

		c := 200*r.Float64() - 100
		ql, qr = PPM(c, c, c, c, c)
		assert.Equal(t, c, ql)
		assert.Equal(t, c, qr)
	}
}

func TestPPMReflectiveSymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	check := func(q [5]float64) {
		ql, qr := PPM(q[0], q[1], q[2], q[3], q[4])
		qlRev, qrRev := PPM(q[4], q[3], q[2], q[1], q[0])
		assert.Equal(t, ql, qrRev)
		assert.Equal(t, qr, qlRev)
	}
	for n := 0; n < 10000; n++ {
		var q [5]float64
		for k := range q {
			q[k] = 2*r.Float64() - 1
		}
		check(q)
	}
	// Smooth, monotone and discontinuous shapes
	check([5]float64{0.1, 0.3, 1. / 3., 0.7, 1.9})
	check([5]float64{1, 1, 1, 0.125, 0.125})
	check([5]float64{-4 - 1./12, -1 - 1./12, -1. / 12, -1 - 1./12, -4 - 1./12})
}

func TestPPMMonotonicity(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for n := 0; n < 10000; n++ {
		var q [5]float64
		for k := range q {
			q[k] = 10 * r.Float64()
		}
		if n%7 == 0 { // Plateaus
			q[1] = q[2]
		}
		sort.Float64s(q[:])
		if n%2 == 1 {
			q[0], q[1], q[3], q[4] = q[4], q[3], q[1], q[0]
		}
		ql, qr := PPM(q[0], q[1], q[2], q[3], q[4])
		tol := 1.e-12 * 10
		assert.True(t, qr >= math.Min(q[1], q[2])-tol && qr <= math.Max(q[1], q[2])+tol,
			"qr %v outside [%v, %v]", qr, q[1], q[2])
		assert.True(t, ql >= math.Min(q[2], q[3])-tol && ql <= math.Max(q[2], q[3])+tol,
			"ql %v outside [%v, %v]", ql, q[2], q[3])
	}
}

func TestPPMSmoothExtremum(t *testing.T) {
	// Cell averages of -x^2 on unit cells centred at -2..2
	avg := func(k float64) float64 { return -k*k - 1./12. }
	{ // Maximum
		ql, qr := PPM(avg(-2), avg(-1), avg(0), avg(1), avg(2))
		assert.InDelta(t, -0.25, ql, 1.e-14)
		assert.InDelta(t, -0.25, qr, 1.e-14)
		// The curvature survives, a monotonized limiter would return avg(0) on both faces
		curvature := 6. * (ql + qr - 2.*avg(0))
		assert.InDelta(t, -2., curvature, 1.e-12)
		assert.NotEqual(t, avg(0), ql)
	}
	{ // Minimum
		ql, qr := PPM(-avg(-2), -avg(-1), -avg(0), -avg(1), -avg(2))
		assert.InDelta(t, 0.25, ql, 1.e-14)
		assert.InDelta(t, 0.25, qr, 1.e-14)
	}
	{ // Compare with the non-smooth extremum of the same height
		ql, qr := PPM(avg(-2), avg(-2), avg(0), avg(-2), avg(-2))
		assert.Equal(t, avg(0), ql)
		assert.Equal(t, avg(0), qr)
	}
}

func TestPPMRoundOffGuard(t *testing.T) {
	const delta = 1.e-13
	{ // Curvature at round-off relative to the sample magnitude: rho is zero
		q := func(k float64) float64 { return 1. - delta*k*k }
		ql, qr := PPM(q(-2), q(-1), q(0), q(1), q(2))
		assert.False(t, math.IsNaN(ql) || math.IsNaN(qr))
		assert.Equal(t, 1., ql)
		assert.Equal(t, 1., qr)
	}
	{ // The same shape without the offset is resolved as a smooth extremum
		q := func(k float64) float64 { return -delta * k * k }
		ql, qr := PPM(q(-2), q(-1), q(0), q(1), q(2))
		assert.InDelta(t, -delta/6., ql, 1.e-26)
		assert.InDelta(t, -delta/6., qr, 1.e-26)
	}
	{
		assert.Equal(t, 0., curvatureRatio(-2.e-13, -2.e-13, 1., 1.e-12))
		assert.Equal(t, 1., curvatureRatio(-2.e-13, -2.e-13, 1.e-3, 1.e-12))
		assert.Equal(t, 0., curvatureRatio(0., 0., 0., 1.e-12))
	}
	{
		lim := DefaultLimits[float32]()
		assert.Equal(t, float32(1.25), lim.C2)
		assert.Equal(t, float32(1.e-5), lim.RoundOff)
		assert.Equal(t, 1.e-12, DefaultLimits[float64]().RoundOff)
	}
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1., Sign(3.))
	assert.Equal(t, -1., Sign(-1.e-300))
	assert.Equal(t, 0., Sign(0.))
	assert.Equal(t, 0., Sign(math.Copysign(0, -1)))
	assert.Equal(t, float32(-1), Sign[float32](-2))
}
