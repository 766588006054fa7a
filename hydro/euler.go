package hydro

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/goppm/mesh"
	"github.com/notargets/goppm/recon"
	"github.com/notargets/goppm/types"
	"github.com/notargets/goppm/utils"
)

var ErrNonFinite = errors.New("non-finite solution")

type Config struct {
	CFL, FinalTime float64
	MaxIterations  int
	Gamma          float64
	Method         recon.Method
	Flux           FluxType
	Case           InitType
	TubeAxis       recon.Axis
	BCs            mesh.FaceBCs
	ProcLimit      int // Zero uses every CPU
	LogFrequency   int
}

func (cfg Config) validate(g *mesh.Grid) error {
	if !(cfg.CFL > 0 && cfg.CFL <= 1) {
		return fmt.Errorf("CFL must be in (0, 1], have %v", cfg.CFL)
	}
	if cfg.FinalTime <= 0 && cfg.MaxIterations <= 0 {
		return fmt.Errorf("need a positive FinalTime or MaxIterations to terminate")
	}
	if !(cfg.Gamma > 1) {
		return fmt.Errorf("gamma must exceed 1, have %v", cfg.Gamma)
	}
	if int(cfg.TubeAxis) > 2 || !g.Active[cfg.TubeAxis] {
		return fmt.Errorf("tube axis %s is not active on a %dD grid", cfg.TubeAxis, g.Dims())
	}
	for a := 0; a < 3; a++ {
		if g.Active[a] && (cfg.BCs[a][0] == types.BC_None || cfg.BCs[a][1] == types.BC_None) {
			return fmt.Errorf("axis %s needs boundary conditions on both faces", recon.Axis(a))
		}
	}
	return nil
}

// workspace is the scratch owned by one partition of pencils
type workspace struct {
	ql, qlb, qr *mesh.Scratch
}

/*
Euler advances the compressible Euler equations on a uniform grid with a
method of lines scheme: primitive variables are reconstructed to the cell
faces, a Riemann solver produces the face fluxes and SSP-RK3 integrates in
time. Each axis is processed as a set of independent pencils sharded over
ParallelDegree go routines.
*/
type Euler struct {
	Config
	Grid           *mesh.Grid
	EOS            EOS
	ParallelDegree int
	Time           float64
	Steps          int
	U, U0, W, dU   *mesh.Array4D[float64] // Conserved, RK start, primitive, RHS
	Logger         *zap.Logger
	RunID          string
	kernel         recon.Kernel[float64]
	dispatch       utils.Parallel
	pencils        [3]*utils.PartitionMap
	work           []workspace
}

func NewEuler(g *mesh.Grid, cfg Config, logger *zap.Logger) (c *Euler, err error) {
	if err = cfg.validate(g); err != nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LogFrequency <= 0 {
		cfg.LogFrequency = 100
	}
	c = &Euler{
		Config:         cfg,
		Grid:           g,
		EOS:            NewEOS(cfg.Gamma),
		ParallelDegree: utils.GetParallelDegree(cfg.ProcLimit),
		U:              g.NewField(NHYDRO),
		W:              g.NewField(NHYDRO),
		dU:             g.NewField(NHYDRO),
		RunID:          uuid.NewString(),
		kernel:         recon.KernelFor[float64](cfg.Method),
	}
	c.Logger = logger.With(zap.String("run", c.RunID))
	c.dispatch = utils.Parallel{ParallelDegree: c.ParallelDegree}
	var (
		r = g.Ranges
	)
	// X1 pencils are (k, j) rows, X2 pencils are k planes and X3 pencils are j slabs
	c.pencils[recon.X1] = utils.NewPartitionMap(c.ParallelDegree, r[recon.X3].Len()*r[recon.X2].Len())
	c.pencils[recon.X2] = utils.NewPartitionMap(c.ParallelDegree, r[recon.X3].Len())
	c.pencils[recon.X3] = utils.NewPartitionMap(c.ParallelDegree, r[recon.X2].Len())
	c.work = make([]workspace, c.pencils[recon.X1].ParallelDegree)
	for np := range c.work {
		c.work[np] = workspace{
			ql:  mesh.NewScratch(NHYDRO, 0, g.N[recon.X1]-1),
			qlb: mesh.NewScratch(NHYDRO, 0, g.N[recon.X1]-1),
			qr:  mesh.NewScratch(NHYDRO, 0, g.N[recon.X1]-1),
		}
	}
	c.Initialize()
	if err = c.fillGhosts(c.U); err != nil {
		return nil, err
	}
	c.U0 = c.U.Copy()
	return
}

func (c *Euler) fillGhosts(u *mesh.Array4D[float64]) error {
	return c.Grid.FillGhosts(u, c.BCs, [3]int{IM1, IM2, IM3})
}

// updatePrimitives fills the halo of U then converts every cell to primitives
func (c *Euler) updatePrimitives() (err error) {
	if err = c.fillGhosts(c.U); err != nil {
		return
	}
	var (
		size = len(c.U.Data) / NHYDRO
	)
	c.dispatch.For(0, size-1, func(m int) {
		var u State
		for n := 0; n < NHYDRO; n++ {
			u[n] = c.U.Data[m+n*size]
		}
		w := c.EOS.ConsToPrim(u)
		for n := 0; n < NHYDRO; n++ {
			c.W.Data[m+n*size] = w[n]
		}
	})
	return
}

// CalculateDT returns the CFL limited step from the current primitives. The
// fastest signal over all axes is used, scaled by the number of active axes.
func (c *Euler) CalculateDT(ctx context.Context) (dt float64, err error) {
	var (
		g        = c.Grid
		r        = g.Ranges
		pm       = c.pencils[recon.X1]
		nj       = r[recon.X2].Len()
		maxRate  = make([]float64, pm.ParallelDegree)
		eg, ectx = errgroup.WithContext(ctx)
		oodx     [3]float64
	)
	for a := 0; a < 3; a++ {
		if g.Active[a] {
			oodx[a] = 1. / g.Dx(recon.Axis(a))
		}
	}
	for np := 0; np < pm.ParallelDegree; np++ {
		pMin, pMax := pm.GetBucketRange(np)
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			for p := pMin; p < pMax; p++ {
				k, j := r[recon.X3].S+p/nj, r[recon.X2].S+p%nj
				for i := r[recon.X1].S; i <= r[recon.X1].E; i++ {
					var w State
					for n := 0; n < NHYDRO; n++ {
						w[n] = c.W.At(n, k, j, i)
					}
					cs := c.EOS.SoundSpeed(w)
					for a := 0; a < 3; a++ {
						if rate := (math.Abs(w[IV1+a]) + cs) * oodx[a]; rate > maxRate[np] {
							maxRate[np] = rate
						}
					}
				}
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return
	}
	rateMax := floats.Max(maxRate)
	if rateMax == 0 {
		return 0, fmt.Errorf("%w: no finite signal speed in the domain", ErrNonFinite)
	}
	dt = c.CFL / (float64(g.Dims()) * rateMax)
	if c.FinalTime > 0 && c.Time+dt > c.FinalTime {
		dt = c.FinalTime - c.Time
	}
	return
}

func (c *Euler) reconstruct(a recon.Axis, k, j, il, iu int, ql, qr *mesh.Scratch) {
	d := utils.Serial{}
	if c.Method != recon.PPM_CS {
		recon.Sweep[float64](d, a, c.kernel, k, j, il, iu, c.W, ql, qr)
		return
	}
	switch a {
	case recon.X1:
		recon.PiecewiseParabolicX1[float64](d, k, j, il, iu, c.W, ql, qr)
	case recon.X2:
		recon.PiecewiseParabolicX2[float64](d, k, j, il, iu, c.W, ql, qr)
	case recon.X3:
		recon.PiecewiseParabolicX3[float64](d, k, j, il, iu, c.W, ql, qr)
	}
}

// checkAxis validates the first and last pencil of an axis before any sweep runs
func (c *Euler) checkAxis(a recon.Axis) (err error) {
	var (
		r      = c.Grid.Ranges
		w      = c.work[0]
		il, iu = r[recon.X1].S, r[recon.X1].E
		ends   = [2][2]int{{r[recon.X3].S, r[recon.X2].S}, {r[recon.X3].E, r[recon.X2].E}}
	)
	switch a {
	case recon.X1:
		il, iu = il-1, iu+1
	case recon.X2:
		ends[0][1]--
		ends[1][1]++
	case recon.X3:
		ends[0][0]--
		ends[1][0]++
	}
	for _, kj := range ends {
		if err = recon.CheckSweep[float64](a, kj[0], kj[1], il, iu, c.W, w.ql, w.qr); err != nil {
			return fmt.Errorf("%s flux: %w", a, err)
		}
	}
	return
}

func stateAt(s *mesh.Scratch, i int) (w State) {
	for n := 0; n < NHYDRO; n++ {
		w[n] = s.At(n, i)
	}
	return
}

// addFlux applies the flux through the lower face of cell (k, j, i) along a
// to that cell and to its lower neighbor, skipping ghosts.
func (c *Euler) addFlux(a recon.Axis, k, j, i int, f State, oodx float64) {
	var (
		idx = [3]int{i, j, k}
		r   = c.Grid.Ranges[a]
	)
	if idx[a] <= r.E {
		for n := 0; n < NHYDRO; n++ {
			ind := c.dU.Index(n, k, j, i)
			c.dU.Data[ind] += f[n] * oodx
		}
	}
	if idx[a]-1 >= r.S {
		idx[a]--
		for n := 0; n < NHYDRO; n++ {
			ind := c.dU.Index(n, idx[2], idx[1], idx[0])
			c.dU.Data[ind] -= f[n] * oodx
		}
	}
}

func (c *Euler) pencilX1(k, j int, w workspace, oodx float64) {
	var (
		r = c.Grid.Ranges[recon.X1]
	)
	c.reconstruct(recon.X1, k, j, r.S-1, r.E+1, w.ql, w.qr)
	for i := r.S; i <= r.E+1; i++ {
		f := c.EOS.RiemannFlux(c.Flux, stateAt(w.ql, i), stateAt(w.qr, i), recon.X1)
		c.addFlux(recon.X1, k, j, i, f, oodx)
	}
}

// pencilTransverse sweeps along a (X2 or X3) with the other transverse index fixed at m
func (c *Euler) pencilTransverse(a recon.Axis, m int, w workspace, oodx float64) {
	var (
		r        = c.Grid.Ranges
		ra       = r[a]
		qlm, qlp = w.ql, w.qlb // Left states of the lower and upper faces
	)
	for l := ra.S - 1; l <= ra.E+1; l++ {
		k, j := m, l
		if a == recon.X3 {
			k, j = l, m
		}
		c.reconstruct(a, k, j, r[recon.X1].S, r[recon.X1].E, qlp, w.qr)
		if l >= ra.S {
			for i := r[recon.X1].S; i <= r[recon.X1].E; i++ {
				f := c.EOS.RiemannFlux(c.Flux, stateAt(qlm, i), stateAt(w.qr, i), a)
				c.addFlux(a, k, j, i, f, oodx)
			}
		}
		qlm, qlp = qlp, qlm
	}
}

func (c *Euler) fluxDivergence(ctx context.Context, a recon.Axis) (err error) {
	var (
		g        = c.Grid
		r        = g.Ranges
		pm       = c.pencils[a]
		nj       = r[recon.X2].Len()
		oodx     = 1. / g.Dx(a)
		eg, ectx = errgroup.WithContext(ctx)
	)
	if err = c.checkAxis(a); err != nil {
		return
	}
	for np := 0; np < pm.ParallelDegree; np++ {
		var (
			pMin, pMax = pm.GetBucketRange(np)
			w          = c.work[np]
		)
		eg.Go(func() error {
			for p := pMin; p < pMax; p++ {
				if err := ectx.Err(); err != nil {
					return err
				}
				switch a {
				case recon.X1:
					c.pencilX1(r[recon.X3].S+p/nj, r[recon.X2].S+p%nj, w, oodx)
				case recon.X2:
					c.pencilTransverse(a, r[recon.X3].S+p, w, oodx)
				case recon.X3:
					c.pencilTransverse(a, r[recon.X2].S+p, w, oodx)
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

// RHS computes dU = -div(F) for the current state U
func (c *Euler) RHS(ctx context.Context) (err error) {
	if err = c.updatePrimitives(); err != nil {
		return
	}
	c.dU.Fill(0)
	for a := 0; a < 3; a++ {
		if !c.Grid.Active[a] {
			continue
		}
		if err = c.fluxDivergence(ctx, recon.Axis(a)); err != nil {
			return
		}
	}
	return
}

// Step advances one SSP-RK3 step
func (c *Euler) Step(ctx context.Context) (dt float64, err error) {
	if err = c.updatePrimitives(); err != nil {
		return
	}
	if dt, err = c.CalculateDT(ctx); err != nil {
		return
	}
	c.U0.CopyFrom(c.U)
	for _, a0 := range [3]float64{0, 3. / 4., 1. / 3.} {
		if err = c.RHS(ctx); err != nil {
			return
		}
		floats.AddScaled(c.U.Data, dt, c.dU.Data)
		if a0 != 0 {
			floats.Scale(1-a0, c.U.Data)
			floats.AddScaled(c.U.Data, a0, c.U0.Data)
		}
	}
	c.Time += dt
	c.Steps++
	if ind := utils.FindNonFinite(c.U.Data); ind >= 0 {
		n, k, j, i := c.unflatten(ind)
		return dt, fmt.Errorf("%w: component %d at (k, j, i) = (%d, %d, %d) after step %d, time %v",
			ErrNonFinite, n, k, j, i, c.Steps, c.Time)
	}
	return
}

func (c *Euler) unflatten(ind int) (n, k, j, i int) {
	var (
		u = c.U
	)
	i = ind % u.NI
	ind /= u.NI
	j = ind % u.NJ
	ind /= u.NJ
	k = ind % u.NK
	n = ind / u.NK
	return
}

func (c *Euler) CheckIfFinished() bool {
	if c.FinalTime > 0 && c.Time >= c.FinalTime*(1-1.e-12) {
		return true
	}
	return c.MaxIterations > 0 && c.Steps >= c.MaxIterations
}

func (c *Euler) Solve(ctx context.Context) (err error) {
	var (
		g       = c.Grid
		dt      float64
		start   = time.Now()
		elapsed time.Duration
	)
	c.Logger.Info("starting solution",
		zap.String("case", c.Case.Print()),
		zap.String("reconstruction", c.Method.Print()),
		zap.String("flux", c.Flux.Print()),
		zap.Ints("cells", g.NX[:]),
		zap.Int("parallelDegree", c.ParallelDegree),
		zap.Float64("CFL", c.CFL),
		zap.Float64("finalTime", c.FinalTime),
		zap.Int("maxIterations", c.MaxIterations))
	for !c.CheckIfFinished() {
		if err = ctx.Err(); err != nil {
			c.Logger.Warn("solution interrupted", zap.Int("step", c.Steps), zap.Float64("time", c.Time))
			return
		}
		if dt, err = c.Step(ctx); err != nil {
			c.Logger.Error("step failed", zap.Int("step", c.Steps), zap.Error(err))
			return
		}
		if c.Steps%c.LogFrequency == 0 || c.Steps == 1 {
			c.Logger.Info("step",
				zap.Int("step", c.Steps),
				zap.Float64("time", c.Time),
				zap.Float64("dt", dt),
				zap.Float64("rhoMin", floats.Min(c.activeComponent(IDN))),
				zap.Float64("rhoMax", floats.Max(c.activeComponent(IDN))))
		}
	}
	elapsed = time.Since(start)
	c.Logger.Info("finished",
		zap.Int("steps", c.Steps),
		zap.Float64("time", c.Time),
		zap.Duration("elapsed", elapsed),
		zap.Float64("cellUpdatesPerSecond",
			float64(c.Steps*g.ActiveCells())/math.Max(elapsed.Seconds(), 1.e-9)),
		zap.String("memory", utils.GetMemUsage()))
	return
}

// activeComponent copies conserved component n over the active cells
func (c *Euler) activeComponent(n int) (vals []float64) {
	var (
		r    = c.Grid.Ranges
		comp = c.U.Component(n)
	)
	vals = make([]float64, 0, c.Grid.ActiveCells())
	for k := r[recon.X3].S; k <= r[recon.X3].E; k++ {
		for j := r[recon.X2].S; j <= r[recon.X2].E; j++ {
			for i := r[recon.X1].S; i <= r[recon.X1].E; i++ {
				vals = append(vals, comp[c.U.Index(0, k, j, i)])
			}
		}
	}
	return
}

// Totals integrates every conserved variable over the active cells
func (c *Euler) Totals() (tot State) {
	var (
		g   = c.Grid
		vol = 1.
	)
	for a := 0; a < 3; a++ {
		if g.Active[a] {
			vol *= g.Dx(recon.Axis(a))
		}
	}
	for n := 0; n < NHYDRO; n++ {
		tot[n] = floats.Sum(c.activeComponent(n)) * vol
	}
	return
}
