package recon

/*
	Piecewise parabolic reconstruction with the Colella-Sekora extremum preserving
	limiter, for a Cartesian-like coordinate with uniform spacing.

	(CW) P. Colella & P. Woodward, JCP 54, 174 (1984)
	(CS) P. Colella & M. Sekora, JCP 227, 7069 (2008)
	(MC) P. McCorquodale & P. Colella, CAMCoS 6, 1 (2011)
*/

type Float interface {
	~float32 | ~float64
}

// Limits holds the two literals of the CS limiter that depend on precision
type Limits[T Float] struct {
	C2       T // Second derivative limiter constant, > 1, independent of h
	RoundOff T // Relative size below which curvature is treated as round-off
}

func DefaultLimits[T Float]() (lim Limits[T]) {
	lim.C2 = 1.25
	var zero T
	switch any(zero).(type) {
	case float32:
		lim.RoundOff = T(1.e-5)
	default:
		lim.RoundOff = T(1.e-12)
	}
	return
}

// Sign returns -1, 0 or +1. Zero is its own class so that three zero
// curvatures compare as equal signs.
func Sign[T Float](x T) T {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// PPM reconstructs the parabola in cell i and returns ql(i+1), the left state
// of the i+1/2 face, and qr(i), the right state of the i-1/2 face.
func PPM[T Float](qim2, qim1, qi, qip1, qip2 T) (qlip1, qri T) {
	return DefaultLimits[T]().PPM(qim2, qim1, qi, qip1, qip2)
}

func (lim Limits[T]) PPM(qim2, qim1, qi, qip1, qip2 T) (qlip1, qri T) {
	const (
		c1i = 0.5
		c2i = 0.5
		c3i = 0.5
		c4i = 0.5
		c5i = 1. / 6.
		c6i = -1. / 6.
	)
	var (
		C2 = lim.C2
	)
	// Step 1: interface averages <a>_{i-1/2} and <a>_{i+1/2} (CW eq 1.6)
	// Every product is rounded with an explicit conversion, which forbids FMA
	// fusion; the grouping of the biased stencil terms then mirrors exactly.
	qa := qi - qim1
	qb := qip1 - qi
	ddim1 := T(c1i*qa) + T(c2i*(qim1-qim2))
	dd := T(c1i*qb) + T(c2i*qa)
	ddip1 := T(c1i*(qip2-qip1)) + T(c2i*qb)

	dph := (T(c3i*qim1) + T(c4i*qi)) + (T(c5i*ddim1) + T(c6i*dd))
	dphip1 := (T(c3i*qi) + T(c4i*qip1)) + (T(c5i*dd) + T(c6i*ddip1))

	// Step 2: second derivatives centred on i-1, i, i+1 (CD eq 85a, no 1/2)
	// off-centred terms are added first
	d2qcim1 := qim2 + qi - 2.*qim1
	d2qc := qim1 + qip1 - 2.*qi
	d2qcip1 := qi + qip2 - 2.*qip1

	// Step 3: limit each interface where a local extremum sits between the
	// estimate and the neighbouring averages
	dph = lim.limitFace(qim1, qi, dph, d2qcim1, d2qc)
	dphip1 = lim.limitFace(qi, qip1, dphip1, d2qc, d2qcip1)

	d2qf := 6. * (dph + dphip1 - 2.*qi) // a6 coefficient * -2

	qminus := dph
	qplus := dphip1

	// Cell-centred differences (CS eq 25)
	dqfMinus := qi - qminus
	dqfPlus := qplus - qi

	// Step 4: smooth extremum detection (CS eq 22)
	qaTmp := dqfMinus * dqfPlus
	qbTmp := (qip1 - qi) * (qi - qim1)

	var qe T
	s := Sign(d2qcim1)
	if s == Sign(d2qc) && s == Sign(d2qcip1) && s == Sign(d2qf) {
		qe = Sign(d2qf) * min(min(C2*abs(d2qcim1), C2*abs(d2qc)),
			min(C2*abs(d2qcip1), abs(d2qf)))
	}

	// Limited curvature ratio (MC eq 27), zero when d2qf is round-off
	rho := curvatureRatio(qe, d2qf,
		max(max(abs(qim1), abs(qim2)), max(max(abs(qi), abs(qip1)), abs(qip2))),
		lim.RoundOff)

	// Step 5: select the interface states
	if qaTmp <= 0. || qbTmp <= 0. {
		if rho <= (1. - lim.RoundOff) {
			qminus = qi - rho*dqfMinus // (CS eq 23)
			qplus = qi + rho*dqfPlus
		}
	} else {
		if abs(dqfMinus) >= 2.*abs(dqfPlus) {
			qminus = qi - 2.*dqfPlus
		}
		if abs(dqfPlus) >= 2.*abs(dqfMinus) {
			qplus = qi + 2.*dqfMinus
		}
	}

	qlip1 = qplus
	qri = qminus
	return
}

// limitFace applies the CD 4.3.1 interface limiter to the estimate dph lying
// between cell averages qL and qR, with d2qL, d2qR the centred second
// differences of those two cells.
func (lim Limits[T]) limitFace(qL, qR, dph, d2qL, d2qR T) T {
	var (
		qaTmp = dph - qL // (CD eq 84a)
		qbTmp = qR - dph // (CD eq 84b)
		qa    = 3. * (qL + qR - 2.*dph) // (CD eq 85b)
		qd    T
	)
	s := Sign(qa)
	if s == Sign(d2qL) && s == Sign(d2qR) {
		qd = s * min(lim.C2*abs(d2qL), min(lim.C2*abs(d2qR), abs(qa)))
	}
	if qaTmp*qbTmp < 0. {
		return 0.5*(qL+qR) - qd/6.
	}
	return dph
}

func curvatureRatio[T Float](qe, d2qf, qmax, roundOff T) (rho T) {
	if abs(d2qf) > roundOff*qmax {
		rho = qe / d2qf
	}
	return
}
