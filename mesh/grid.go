package mesh

import (
	"fmt"

	"github.com/notargets/goppm/recon"
	"github.com/notargets/goppm/types"
)

// NGhost is the halo depth. The five point stencil reaches two cells, the
// outer state of each boundary face needs one more.
const NGhost = 3

type IndexRange struct {
	S, E int // Inclusive range of active cells
}

func (r IndexRange) Len() int { return r.E - r.S + 1 }

/*
Grid is a uniform Cartesian block. Inactive axes (NX == 1 beyond the first)
carry no halo, so a 1D problem is stored as NK = NJ = 1 and NI = NX1 + 6.
*/
type Grid struct {
	NX       [3]int
	Min, Max [3]float64
	Active   [3]bool
	Ranges   [3]IndexRange
	N        [3]int // Storage extent per axis including ghosts
}

func NewGrid(NX [3]int, Min, Max [3]float64) (g *Grid, err error) {
	g = &Grid{NX: NX, Min: Min, Max: Max}
	for a := 0; a < 3; a++ {
		if NX[a] < 1 {
			return nil, fmt.Errorf("axis %s has %d cells, need at least 1", recon.Axis(a), NX[a])
		}
		if !(Max[a] > Min[a]) {
			return nil, fmt.Errorf("axis %s has an empty extent [%v, %v]", recon.Axis(a), Min[a], Max[a])
		}
		g.Active[a] = a == 0 || NX[a] > 1
		if g.Active[a] {
			if NX[a] < NGhost {
				return nil, fmt.Errorf("axis %s has %d cells, need at least %d", recon.Axis(a), NX[a], NGhost)
			}
			g.Ranges[a] = IndexRange{NGhost, NGhost + NX[a] - 1}
			g.N[a] = NX[a] + 2*NGhost
		} else {
			g.Ranges[a] = IndexRange{0, 0}
			g.N[a] = 1
		}
	}
	if g.Active[2] && !g.Active[1] {
		return nil, fmt.Errorf("x3 is active while x2 is not, NX = %v", NX)
	}
	return
}

func (g *Grid) Dims() (ndim int) {
	for _, a := range g.Active {
		if a {
			ndim++
		}
	}
	return
}

func (g *Grid) Dx(a recon.Axis) float64 {
	return (g.Max[a] - g.Min[a]) / float64(g.NX[a])
}

// X returns the cell centre coordinate of storage index idx along axis a
func (g *Grid) X(a recon.Axis, idx int) float64 {
	return g.Min[a] + (float64(idx-g.Ranges[a].S)+0.5)*g.Dx(a)
}

// NewField allocates storage for nvar components including the halo
func (g *Grid) NewField(nvar int) *Array4D[float64] {
	return NewArray4D[float64](nvar, g.N[2], g.N[1], g.N[0])
}

// ActiveCells returns the number of cells excluding ghosts
func (g *Grid) ActiveCells() int {
	return g.NX[0] * g.NX[1] * g.NX[2]
}

// FaceBCs holds the condition on the inner [0] and outer [1] face of each axis
type FaceBCs [3][2]types.BCFLAG

/*
FillGhosts fills the halo of every active axis. normal[a] names the
component negated by a reflecting face normal to axis a, -1 for none.
Axes are filled in order so edge and corner ghosts take values from the
already filled faces.
*/
func (g *Grid) FillGhosts(q *Array4D[float64], bcs FaceBCs, normal [3]int) (err error) {
	for a := 0; a < 3; a++ {
		if !g.Active[a] {
			continue
		}
		for side := 0; side < 2; side++ {
			if bcs[a][side] == types.BC_None {
				return fmt.Errorf("axis %s side %d has no boundary condition", recon.Axis(a), side)
			}
		}
		if (bcs[a][0] == types.BC_Periodic) != (bcs[a][1] == types.BC_Periodic) {
			return fmt.Errorf("axis %s mixes periodic and %s/%s boundaries",
				recon.Axis(a), bcs[a][0], bcs[a][1])
		}
		g.fillAxis(q, recon.Axis(a), bcs[a], normal[a])
	}
	return
}

func (g *Grid) fillAxis(q *Array4D[float64], a recon.Axis, bc [2]types.BCFLAG, normal int) {
	var (
		r   = g.Ranges[a]
		idx [3]int // i, j, k
	)
	source := func(side, gh int) (src int, flip bool) {
		switch bc[side] {
		case types.BC_Periodic:
			if side == 0 {
				return r.E - gh + 1, false
			}
			return r.S + gh - 1, false
		case types.BC_Reflect:
			if side == 0 {
				return r.S + gh - 1, true
			}
			return r.E - gh + 1, true
		}
		if side == 0 { // Outflow
			return r.S, false
		}
		return r.E, false
	}
	// Ghost layers along a, for every index of the two other axes
	other := [2]int{(int(a) + 1) % 3, (int(a) + 2) % 3}
	for n := 0; n < q.NVar; n++ {
		for m1 := 0; m1 < g.N[other[0]]; m1++ {
			for m2 := 0; m2 < g.N[other[1]]; m2++ {
				idx[other[0]], idx[other[1]] = m1, m2
				for gh := 1; gh <= NGhost; gh++ {
					for side := 0; side < 2; side++ {
						var (
							dst       = r.S - gh
							src, flip = source(side, gh)
						)
						if side == 1 {
							dst = r.E + gh
						}
						idx[a] = src
						val := q.At(n, idx[2], idx[1], idx[0])
						if flip && n == normal {
							val = -val
						}
						idx[a] = dst
						q.Set(n, idx[2], idx[1], idx[0], val)
					}
				}
			}
		}
	}
}
