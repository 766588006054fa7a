package recon

import (
	"errors"
	"fmt"
)

var ErrPrecondition = errors.New("reconstruction precondition violated")

// Shaped is implemented by fields able to report their dimensions
type Shaped interface {
	Shape() (nvar, nk, nj, ni int)
}

// Extent is implemented by buffers able to report what they can hold: the
// number of components and the inclusive index range [lo, hi].
type Extent interface {
	Extent() (ncomp, lo, hi int)
}

/*
CheckSweep validates, once and outside the per-cell loop, everything Sweep
assumes without checking: a two cell halo around every stencil, valid fixed
indices and output buffers wide enough for every slot written. Arguments that
do not implement Shaped or Extent are not checked.
*/
func CheckSweep[T Float](a Axis, k, j, il, iu int, q Field[T], ql, qr Buffer[T]) (err error) {
	if il > iu {
		return fmt.Errorf("%w: empty %s range [%d, %d]", ErrPrecondition, a, il, iu)
	}
	nvar := q.NumComponents()
	if sq, ok := q.(Shaped); ok {
		var (
			nv, nk, nj, ni = sq.Shape()
			kr, jr, ir     = [2]int{k, k}, [2]int{j, j}, [2]int{il, iu}
		)
		if nv != nvar {
			return fmt.Errorf("%w: field reports %d components, shape has %d", ErrPrecondition, nvar, nv)
		}
		switch a {
		case X1:
			ir = [2]int{il - 2, iu + 2}
		case X2:
			jr = [2]int{j - 2, j + 2}
		case X3:
			kr = [2]int{k - 2, k + 2}
		}
		if err = inRange("k", kr, nk); err != nil {
			return
		}
		if err = inRange("j", jr, nj); err != nil {
			return
		}
		if err = inRange("i", ir, ni); err != nil {
			return
		}
	}
	check := func(name string, b Buffer[T], lo, hi int) error {
		eb, ok := b.(Extent)
		if !ok {
			return nil
		}
		nc, blo, bhi := eb.Extent()
		if nc < nvar {
			return fmt.Errorf("%w: %s holds %d components, need %d", ErrPrecondition, name, nc, nvar)
		}
		if lo < blo || hi > bhi {
			return fmt.Errorf("%w: %s covers [%d, %d], sweep writes [%d, %d]",
				ErrPrecondition, name, blo, bhi, lo, hi)
		}
		return nil
	}
	if err = check("ql", ql, a.LeftSlot(il), a.LeftSlot(iu)); err != nil {
		return
	}
	return check("qr", qr, il, iu)
}

func inRange(name string, r [2]int, n int) error {
	if r[0] < 0 || r[1] > n-1 {
		return fmt.Errorf("%w: stencil needs %s in [%d, %d], field has [0, %d]",
			ErrPrecondition, name, r[0], r[1], n-1)
	}
	return nil
}
