package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goppm/recon"
	"github.com/notargets/goppm/types"
	"github.com/notargets/goppm/utils"
)

func TestArray4D(t *testing.T) {
	a := NewArray4D[float64](2, 3, 4, 5)
	assert.Equal(t, 2*3*4*5, len(a.Data))
	a.Set(1, 2, 3, 4, 7.)
	assert.Equal(t, 7., a.At(1, 2, 3, 4))
	assert.Equal(t, len(a.Data)-1, a.Index(1, 2, 3, 4))
	assert.Equal(t, 1, a.Index(0, 0, 0, 1))
	assert.Equal(t, 5, a.Index(0, 0, 1, 0))
	nv, nk, nj, ni := a.Shape()
	assert.Equal(t, [4]int{2, 3, 4, 5}, [4]int{nv, nk, nj, ni})
	assert.Equal(t, 60, len(a.Component(1)))
	assert.Equal(t, 7., a.Component(1)[59])

	b := a.Copy()
	b.Fill(1)
	assert.Equal(t, 7., a.At(1, 2, 3, 4))
	a.CopyFrom(b)
	assert.Equal(t, 1., a.At(1, 2, 3, 4))
}

func TestScratch(t *testing.T) {
	s := NewScratch(3, 4, 9)
	nc, lo, hi := s.Extent()
	assert.Equal(t, [3]int{3, 4, 9}, [3]int{nc, lo, hi})
	s.Set(2, 4, 1.5)
	s.Set(1, 9, -2.)
	assert.Equal(t, 1.5, s.At(2, 4))
	assert.Equal(t, 1.5, s.M.At(2, 0))
	assert.Equal(t, -2., s.M.At(1, 5))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, -2}, s.M.RawRowView(1))
}

func TestSweepIntoScratch(t *testing.T) {
	var (
		q = NewArray4D[float64](1, 1, 1, 12)
	)
	for i := 0; i < 12; i++ {
		q.Set(0, 0, 0, i, float64(i))
	}
	ql, qr := NewScratch(1, 2, 11), NewScratch(1, 1, 10)
	require.NoError(t, recon.CheckSweep[float64](recon.X1, 0, 0, 2, 9, q, ql, qr))
	recon.PiecewiseParabolicX1[float64](utils.Serial{}, 0, 0, 2, 9, q, ql, qr)
	for i := 2; i <= 9; i++ {
		assert.InDelta(t, float64(i)+0.5, ql.At(0, i+1), 1.e-13)
		assert.InDelta(t, float64(i)-0.5, qr.At(0, i), 1.e-13)
	}
	// The scratch is too narrow for a wider sweep
	assert.Error(t, recon.CheckSweep[float64](recon.X1, 0, 0, 2, 10, q, ql, qr))
}

func TestGrid(t *testing.T) {
	{
		g, err := NewGrid([3]int{10, 1, 1}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
		require.NoError(t, err)
		assert.Equal(t, 1, g.Dims())
		assert.Equal(t, [3]int{16, 1, 1}, g.N)
		assert.Equal(t, IndexRange{3, 12}, g.Ranges[recon.X1])
		assert.Equal(t, IndexRange{0, 0}, g.Ranges[recon.X2])
		assert.Equal(t, 10, g.Ranges[recon.X1].Len())
		assert.InDelta(t, 0.1, g.Dx(recon.X1), 1.e-15)
		assert.InDelta(t, 0.05, g.X(recon.X1, 3), 1.e-15)
		assert.InDelta(t, 0.95, g.X(recon.X1, 12), 1.e-15)
		assert.Equal(t, 10, g.ActiveCells())
		q := g.NewField(5)
		nv, nk, nj, ni := q.Shape()
		assert.Equal(t, [4]int{5, 1, 1, 16}, [4]int{nv, nk, nj, ni})
	}
	{
		g, err := NewGrid([3]int{8, 4, 6}, [3]float64{-1, 0, 0}, [3]float64{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, 3, g.Dims())
		assert.Equal(t, [3]int{14, 10, 12}, g.N)
		assert.Equal(t, IndexRange{3, 8}, g.Ranges[recon.X3])
	}
	{
		_, err := NewGrid([3]int{0, 1, 1}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
		assert.Error(t, err)
		_, err = NewGrid([3]int{8, 1, 1}, [3]float64{1, 0, 0}, [3]float64{1, 1, 1})
		assert.Error(t, err)
		_, err = NewGrid([3]int{8, 1, 4}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
		assert.Error(t, err)
		_, err = NewGrid([3]int{8, 2, 1}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
		assert.Error(t, err)
	}
}

func TestFillGhosts1D(t *testing.T) {
	var (
		g, _ = NewGrid([3]int{6, 1, 1}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
		q    = g.NewField(2)
		load = func() {
			q.Fill(-99)
			for i := g.Ranges[0].S; i <= g.Ranges[0].E; i++ {
				q.Set(0, 0, 0, i, float64(i))
				q.Set(1, 0, 0, i, 10*float64(i))
			}
		}
		row = func(n int) (r []float64) {
			for i := 0; i < g.N[0]; i++ {
				r = append(r, q.At(n, 0, 0, i))
			}
			return
		}
	)
	{
		load()
		bcs := FaceBCs{{types.BC_Periodic, types.BC_Periodic}}
		require.NoError(t, g.FillGhosts(q, bcs, [3]int{-1, -1, -1}))
		assert.Equal(t, []float64{6, 7, 8, 3, 4, 5, 6, 7, 8, 3, 4, 5}, row(0))
	}
	{
		load()
		bcs := FaceBCs{{types.BC_Outflow, types.BC_Reflect}}
		require.NoError(t, g.FillGhosts(q, bcs, [3]int{1, -1, -1}))
		assert.Equal(t, []float64{3, 3, 3, 3, 4, 5, 6, 7, 8, 8, 7, 6}, row(0))
		assert.Equal(t, []float64{30, 30, 30, 30, 40, 50, 60, 70, 80, -80, -70, -60}, row(1))
	}
	{
		bcs := FaceBCs{{types.BC_Periodic, types.BC_Outflow}}
		assert.Error(t, g.FillGhosts(q, bcs, [3]int{}))
		bcs = FaceBCs{{types.BC_None, types.BC_Outflow}}
		assert.Error(t, g.FillGhosts(q, bcs, [3]int{}))
	}
}

func TestFillGhosts3D(t *testing.T) {
	var (
		g, _ = NewGrid([3]int{4, 3, 3}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
		q    = g.NewField(1)
		bcs  = FaceBCs{
			{types.BC_Periodic, types.BC_Periodic},
			{types.BC_Periodic, types.BC_Periodic},
			{types.BC_Periodic, types.BC_Periodic},
		}
		r      = g.Ranges
		value  = func(k, j, i int) float64 { return float64(100*k + 10*j + i) }
		wrap   = func(idx int, rg IndexRange) int { return rg.S + ((idx-rg.S)%rg.Len()+rg.Len())%rg.Len() }
		nk, nj = g.N[2], g.N[1]
	)
	for k := r[2].S; k <= r[2].E; k++ {
		for j := r[1].S; j <= r[1].E; j++ {
			for i := r[0].S; i <= r[0].E; i++ {
				q.Set(0, k, j, i, value(k, j, i))
			}
		}
	}
	require.NoError(t, g.FillGhosts(q, bcs, [3]int{-1, -1, -1}))
	// Every ghost, corners included, holds the periodic image
	for k := 0; k < nk; k++ {
		for j := 0; j < nj; j++ {
			for i := 0; i < g.N[0]; i++ {
				assert.Equal(t, value(wrap(k, r[2]), wrap(j, r[1]), wrap(i, r[0])), q.At(0, k, j, i),
					"k=%d j=%d i=%d", k, j, i)
			}
		}
	}
}
