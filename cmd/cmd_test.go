package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goppm/recon"
)

func TestReconstruct(t *testing.T) {
	q := [5]float64{0, 1, 2, 3, 4}
	for _, single := range []bool{false, true} {
		ql, qr := Reconstruct(recon.PPM_CS, q, single)
		assert.InDelta(t, 2.5, ql, 1.e-6)
		assert.InDelta(t, 1.5, qr, 1.e-6)
	}
	ql, qr := Reconstruct(recon.DC, q, false)
	assert.Equal(t, [2]float64{2, 2}, [2]float64{ql, qr})
}

func TestReconCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"recon", "1", "2", "5", "2", "1", "--method", "ppm"})
	assert.NoError(t, rootCmd.Execute())
	rootCmd.SetArgs([]string{"recon", "1", "2", "x", "2", "1"})
	assert.Error(t, rootCmd.Execute())
	rootCmd.SetArgs([]string{"recon", "1", "2", "5", "2", "1", "--method", "weno"})
	assert.Error(t, rootCmd.Execute())
	_ = ReconCmd.Flags().Set("method", "ppm")
	rootCmd.SetArgs([]string{"recon", "1", "2"})
	assert.Error(t, rootCmd.Execute())
}

func TestRunBench(t *testing.T) {
	for _, pl := range []int{1, 3} {
		br, err := RunBench(&BenchModel{Passes: 3, Cells: 32, Method: recon.PPM_CS, ProcLimit: pl})
		require.NoError(t, err)
		assert.Equal(t, 3*32*5, br.KernelCalls)
		assert.Equal(t, uint64(0), br.Instructions)
		assert.Greater(t, br.NsPerCall(), 0.)
	}
	_, err := RunBench(&BenchModel{Passes: 0, Cells: 32})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	var (
		dir   = t.TempDir()
		input = filepath.Join(dir, "wave.yaml")
	)
	require.NoError(t, os.WriteFile(input, []byte(`
Title: "Density wave"
FinalTime: 0.05
Reconstruction: ppm
InitType: DensityWave
NX: [32, 1, 1]
ParallelDegree: 2
BCs:
  x1inner: periodic
  x1outer: periodic
`), 0o644))
	rm := &RunModel{ICFile: input}
	ip, err := processInput(rm)
	require.NoError(t, err)
	assert.NoError(t, Run(context.Background(), rm, ip))

	rm.Profile = "disk"
	assert.Error(t, Run(context.Background(), rm, ip))

	_, err = processInput(&RunModel{})
	assert.Error(t, err)
	_, err = processInput(&RunModel{ICFile: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestConvergeCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"converge", "-m", "plm", "-k", "16,32"})
	assert.NoError(t, rootCmd.ExecuteContext(context.Background()))
	rootCmd.SetArgs([]string{"converge", "-m", "weno"})
	assert.Error(t, rootCmd.ExecuteContext(context.Background()))
}
