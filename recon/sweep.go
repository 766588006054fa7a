package recon

// Field is a read-only view of cell averages indexed as (component, k, j, i)
type Field[T Float] interface {
	NumComponents() int
	At(n, k, j, i int) T
}

// Buffer receives interface states indexed as (component, i)
type Buffer[T Float] interface {
	Set(n, i int, val T)
}

// Dispatcher runs body once for every index in the inclusive range [lo, hi],
// in any order and with any degree of parallelism.
type Dispatcher interface {
	For(lo, hi int, body func(i int))
}

type Axis uint8

const (
	X1 Axis = iota
	X2
	X3
)

func (a Axis) String() string {
	return [...]string{"X1", "X2", "X3"}[a]
}

// Sample reads component n at offset d along the axis from (k, j, i)
func Sample[T Float](a Axis, q Field[T], n, k, j, i, d int) T {
	switch a {
	case X2:
		return q.At(n, k, j+d, i)
	case X3:
		return q.At(n, k+d, j, i)
	}
	return q.At(n, k, j, i+d)
}

/*
LeftSlot returns where the left state of the upper face is stored.
The X1 pencil runs along the reconstruction axis so the upper face of cell i
is face i+1. The X2 and X3 pencils run along x1 with j (k) fixed at the cell
being reconstructed, so both states of a cell share the x1 index i and the
caller rolls the buffers from one j (k) to the next.
*/
func (a Axis) LeftSlot(i int) int {
	if a == X1 {
		return i + 1
	}
	return i
}

// Sequential is implemented by dispatchers that visit the range in order on
// the calling goroutine. Sweeps run such ranges inline without a closure.
type Sequential interface {
	Dispatcher
	Sequential()
}

func isSequential(d Dispatcher) bool {
	_, ok := d.(Sequential)
	return ok || d == nil
}

func sweepCell[T Float](a Axis, kern Kernel[T], nvar, k, j, i int, q Field[T], ql, qr Buffer[T]) {
	for n := 0; n < nvar; n++ {
		qlip1, qri := kern(
			Sample(a, q, n, k, j, i, -2),
			Sample(a, q, n, k, j, i, -1),
			Sample(a, q, n, k, j, i, 0),
			Sample(a, q, n, k, j, i, 1),
			Sample(a, q, n, k, j, i, 2))
		ql.Set(n, a.LeftSlot(i), qlip1)
		qr.Set(n, i, qri)
	}
}

func sweepSerial[T Float](a Axis, kern Kernel[T], k, j, il, iu int, q Field[T], ql, qr Buffer[T]) {
	nvar := q.NumComponents()
	for i := il; i <= iu; i++ {
		sweepCell(a, kern, nvar, k, j, i, q, ql, qr)
	}
}

/*
Sweep evaluates kern for every component over [il, iu] at fixed (k, j).
A Sequential or nil dispatcher runs inline; any other dispatcher receives a
single range covering all components.
*/
func Sweep[T Float](d Dispatcher, a Axis, kern Kernel[T], k, j, il, iu int,
	q Field[T], ql, qr Buffer[T]) {
	if isSequential(d) {
		sweepSerial(a, kern, k, j, il, iu, q, ql, qr)
		return
	}
	nvar := q.NumComponents()
	d.For(il, iu, func(i int) {
		sweepCell(a, kern, nvar, k, j, i, q, ql, qr)
	})
}

func sweepPPM[T Float](d Dispatcher, a Axis, k, j, il, iu int, q Field[T], ql, qr Buffer[T]) {
	if isSequential(d) {
		sweepSerial(a, PPM[T], k, j, il, iu, q, ql, qr)
		return
	}
	Sweep(d, a, PPM[T], k, j, il, iu, q, ql, qr)
}

// PiecewiseParabolicX1 must be called over [is-1, ie+1] to get both L/R states over [is, ie+1]
func PiecewiseParabolicX1[T Float](d Dispatcher, k, j, il, iu int, q Field[T], ql, qr Buffer[T]) {
	sweepPPM(d, X1, k, j, il, iu, q, ql, qr)
}

// PiecewiseParabolicX2 writes ql of face j+1/2 and qr of face j-1/2 over x1 indices [il, iu]
func PiecewiseParabolicX2[T Float](d Dispatcher, k, j, il, iu int, q Field[T], qljp1, qrj Buffer[T]) {
	sweepPPM(d, X2, k, j, il, iu, q, qljp1, qrj)
}

// PiecewiseParabolicX3 writes ql of face k+1/2 and qr of face k-1/2 over x1 indices [il, iu]
func PiecewiseParabolicX3[T Float](d Dispatcher, k, j, il, iu int, q Field[T], qlkp1, qrk Buffer[T]) {
	sweepPPM(d, X3, k, j, il, iu, q, qlkp1, qrk)
}
