package hydro

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/notargets/goppm/mesh"
	"github.com/notargets/goppm/recon"
	"github.com/notargets/goppm/types"
)

// ConvergenceStudy holds the density error of the advected wave over a sequence of resolutions
type ConvergenceStudy struct {
	Title  string
	Method recon.Method
	CFL    float64
	NumPTS []int
	RhoL1  []float64
}

func (cs *ConvergenceStudy) Add(numPTS int, rhoL1 float64) {
	cs.NumPTS = append(cs.NumPTS, numPTS)
	cs.RhoL1 = append(cs.RhoL1, rhoL1)
}

// Order is the observed order between resolution i-1 and i, NaN for i == 0
func (cs *ConvergenceStudy) Order(i int) float64 {
	if i < 1 || i >= len(cs.NumPTS) {
		return math.NaN()
	}
	return math.Log(cs.RhoL1[i-1]/cs.RhoL1[i]) / math.Log(float64(cs.NumPTS[i])/float64(cs.NumPTS[i-1]))
}

func (cs *ConvergenceStudy) Print() {
	fmt.Printf("Title = %s, Reconstruction = %s, CFL = %5.2f\n", cs.Title, cs.Method.Print(), cs.CFL)
	for i := range cs.NumPTS {
		fmt.Printf("%6d, %12.5e, %6.3f\n", cs.NumPTS[i], cs.RhoL1[i], cs.Order(i))
	}
}

// RunConvergence advects the density wave once around a periodic 1D domain at each resolution
func RunConvergence(ctx context.Context, cfg Config, resolutions []int, logger *zap.Logger) (cs *ConvergenceStudy, err error) {
	cs = &ConvergenceStudy{
		Title:  "Advected Density Wave",
		Method: cfg.Method,
		CFL:    cfg.CFL,
	}
	cfg.Case = DENSITYWAVE
	cfg.TubeAxis = recon.X1
	cfg.BCs = mesh.FaceBCs{{types.BC_Periodic, types.BC_Periodic}}
	if cfg.FinalTime == 0 {
		cfg.FinalTime = 1
	}
	for _, nx := range resolutions {
		var (
			g  *mesh.Grid
			c  *Euler
			l1 float64
		)
		if g, err = mesh.NewGrid([3]int{nx, 1, 1}, [3]float64{}, [3]float64{1, 1, 1}); err != nil {
			return
		}
		if c, err = NewEuler(g, cfg, logger); err != nil {
			return
		}
		if err = c.Solve(ctx); err != nil {
			return
		}
		if l1, err = c.DensityWaveL1Error(); err != nil {
			return
		}
		cs.Add(nx, l1)
	}
	return
}
