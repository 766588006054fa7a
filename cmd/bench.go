/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"time"

	perf "github.com/hodgesds/perf-utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/goppm/mesh"
	"github.com/notargets/goppm/recon"
	"github.com/notargets/goppm/utils"
)

type BenchModel struct {
	Passes, Cells int
	Method        recon.Method
	Counters      bool
	ProcLimit     int
}

type BenchResult struct {
	KernelCalls  int
	Elapsed      time.Duration
	Instructions uint64 // Zero when hardware counters are unavailable
}

func (br BenchResult) NsPerCall() float64 {
	return float64(br.Elapsed.Nanoseconds()) / float64(br.KernelCalls)
}

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure reconstruction throughput over an X1 pencil",
	Long: `
Repeatedly sweeps a five component pencil with the selected reconstruction
and reports the cost per kernel evaluation. With --counters the retired
instruction count is read from the hardware performance counters, which
requires perf_event access on Linux.

goppm bench -n 1000 -c 512`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		bm := &BenchModel{}
		bm.Passes, _ = cmd.Flags().GetInt("passes")
		bm.Cells, _ = cmd.Flags().GetInt("cells")
		bm.Counters, _ = cmd.Flags().GetBool("counters")
		bm.ProcLimit = viper.GetInt("parallelDegree")
		label, _ := cmd.Flags().GetString("method")
		if bm.Method, err = recon.NewMethod(label); err != nil {
			return
		}
		var br BenchResult
		if br, err = RunBench(bm); err != nil {
			return
		}
		fmt.Printf("%s: %d kernel calls in %v, %8.3f ns/call\n",
			bm.Method.Print(), br.KernelCalls, br.Elapsed, br.NsPerCall())
		if br.Instructions != 0 {
			fmt.Printf("%8.1f instructions/call\n", float64(br.Instructions)/float64(br.KernelCalls))
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().IntP("passes", "n", 1000, "number of sweeps over the pencil")
	BenchCmd.Flags().IntP("cells", "c", 512, "active cells in the pencil")
	BenchCmd.Flags().StringP("method", "m", "ppm", "reconstruction: dc, plm or ppm")
	BenchCmd.Flags().Bool("counters", false, "read hardware instruction counters")
}

func RunBench(bm *BenchModel) (br BenchResult, err error) {
	if bm.Passes < 1 || bm.Cells < 1 {
		return br, fmt.Errorf("need at least one pass and one cell, have %d and %d", bm.Passes, bm.Cells)
	}
	var (
		ni     = bm.Cells + 2*mesh.NGhost
		q      = mesh.NewArray4D[float64](5, 1, 1, ni)
		il, iu = mesh.NGhost, mesh.NGhost + bm.Cells - 1
		ql, qr = mesh.NewScratch(5, il+1, iu+1), mesh.NewScratch(5, il, iu)
		d      recon.Dispatcher
		kern   = recon.KernelFor[float64](bm.Method)
	)
	for n := 0; n < 5; n++ {
		for i := 0; i < ni; i++ {
			// Smooth regions, extrema and a jump
			x := float64(i) / float64(ni)
			v := math.Sin(2*math.Pi*float64(n+1)*x) + 0.3*math.Cos(17*x)
			if x > 0.5 {
				v += 1
			}
			q.Set(n, 0, 0, i, v)
		}
	}
	if err = recon.CheckSweep[float64](recon.X1, 0, 0, il, iu, q, ql, qr); err != nil {
		return
	}
	d = utils.Serial{}
	if bm.ProcLimit != 1 {
		d = utils.NewParallel(bm.ProcLimit)
	}
	sweeps := func() error {
		for p := 0; p < bm.Passes; p++ {
			recon.Sweep[float64](d, recon.X1, kern, 0, 0, il, iu, q, ql, qr)
		}
		return nil
	}
	br.KernelCalls = bm.Passes * bm.Cells * 5
	start := time.Now()
	if bm.Counters {
		var pv *perf.ProfileValue
		if pv, err = perf.CPUInstructions(sweeps); err != nil {
			return br, fmt.Errorf("hardware counters unavailable: %w", err)
		}
		br.Instructions = pv.Value
	} else {
		_ = sweeps()
	}
	br.Elapsed = time.Since(start)
	return
}
