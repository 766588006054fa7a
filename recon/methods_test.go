package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethods(t *testing.T) {
	{
		m, err := NewMethod(" PPM ")
		require.NoError(t, err)
		assert.Equal(t, PPM_CS, m)
		m, err = NewMethod("plm")
		require.NoError(t, err)
		assert.Equal(t, PLM_VL, m)
		m, err = NewMethod("DonorCell")
		require.NoError(t, err)
		assert.Equal(t, DC, m)
		_, err = NewMethod("weno5")
		assert.Error(t, err)
		assert.Equal(t, "Unknown", Method(9).Print())
	}
	{ // Every method is exact for a constant profile
		for _, m := range []Method{DC, PLM_VL, PPM_CS} {
			ql, qr := KernelFor[float64](m)(1, 1, 1, 1, 1)
			assert.Equal(t, 1., ql, m.Print())
			assert.Equal(t, 1., qr, m.Print())
		}
	}
	{ // PLM and PPM are exact for a linear profile
		for _, m := range []Method{PLM_VL, PPM_CS} {
			ql, qr := KernelFor[float64](m)(1, 2, 3, 4, 5)
			assert.Equal(t, 3.5, ql, m.Print())
			assert.Equal(t, 2.5, qr, m.Print())
		}
	}
	{
		ql, qr := DonorCell(1., 2., 3., 4., 5.)
		assert.Equal(t, 3., ql)
		assert.Equal(t, 3., qr)
	}
	{ // PLM is flat at extrema and bounded by twice the smaller slope
		ql, qr := PLM(0., 1., 5., 2., 0.)
		assert.Equal(t, 5., ql)
		assert.Equal(t, 5., qr)
		ql, qr = PLM(0., 0., 1., 10., 20.)
		// dq = 2*1*9/10 = 1.8
		assert.InDelta(t, 1.9, ql, 1.e-15)
		assert.InDelta(t, 0.1, qr, 1.e-15)
	}
}
