package mesh

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goppm/recon"
)

// Array4D stores cell data for NVar components as (n, k, j, i), i fastest
type Array4D[T recon.Float] struct {
	NVar, NK, NJ, NI int
	Data             []T
}

func NewArray4D[T recon.Float](nvar, nk, nj, ni int) (a *Array4D[T]) {
	a = &Array4D[T]{
		NVar: nvar, NK: nk, NJ: nj, NI: ni,
		Data: make([]T, nvar*nk*nj*ni),
	}
	return
}

func (a *Array4D[T]) Index(n, k, j, i int) int {
	return i + a.NI*(j+a.NJ*(k+a.NK*n))
}

func (a *Array4D[T]) NumComponents() int { return a.NVar }

func (a *Array4D[T]) At(n, k, j, i int) T { return a.Data[a.Index(n, k, j, i)] }

func (a *Array4D[T]) Set(n, k, j, i int, val T) { a.Data[a.Index(n, k, j, i)] = val }

func (a *Array4D[T]) Shape() (nvar, nk, nj, ni int) { return a.NVar, a.NK, a.NJ, a.NI }

// Component returns the slice of Data holding component n
func (a *Array4D[T]) Component(n int) []T {
	var (
		size = a.NK * a.NJ * a.NI
	)
	return a.Data[n*size : (n+1)*size]
}

func (a *Array4D[T]) Fill(val T) {
	for i := range a.Data {
		a.Data[i] = val
	}
}

func (a *Array4D[T]) Copy() (b *Array4D[T]) {
	b = NewArray4D[T](a.NVar, a.NK, a.NJ, a.NI)
	copy(b.Data, a.Data)
	return
}

func (a *Array4D[T]) CopyFrom(b *Array4D[T]) {
	copy(a.Data, b.Data)
}

/*
Scratch is a (component, i) buffer covering i in [Lo, Hi], backed by a gonum
dense matrix with one row per component. Set and At index the raw storage
directly; range checks belong to recon.CheckSweep.
*/
type Scratch struct {
	M      *mat.Dense
	Lo, Hi int
	raw    blas64.General
}

func NewScratch(ncomp, lo, hi int) (s *Scratch) {
	s = &Scratch{
		M:  mat.NewDense(ncomp, hi-lo+1, nil),
		Lo: lo,
		Hi: hi,
	}
	s.raw = s.M.RawMatrix()
	return
}

func (s *Scratch) Set(n, i int, val float64) {
	s.raw.Data[n*s.raw.Stride+i-s.Lo] = val
}

func (s *Scratch) At(n, i int) float64 {
	return s.raw.Data[n*s.raw.Stride+i-s.Lo]
}

func (s *Scratch) Extent() (ncomp, lo, hi int) {
	return s.raw.Rows, s.Lo, s.Hi
}
