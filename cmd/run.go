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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/goppm/InputParameters"
	"github.com/notargets/goppm/hydro"
)

type RunModel struct {
	ICFile      string
	Graph       bool
	Profile     string
	ProfilePath string
}

const exampleFile = `
########################################
Title: "Sod Shock Tube"
CFL: 0.4
FinalTime: 0.2
Reconstruction: PPM # Can be DC or PLM
FluxType: HLLE # Can be Lax
InitType: ShockTube # Can be Freestream or DensityWave
NX: [200, 1, 1]
BCs:
  x1inner: outflow
  x1outer: outflow
########################################
`

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve the Euler equations for a problem described in a YAML input file",
	Long: `
Solves the Euler equations on a uniform grid using piecewise parabolic
reconstruction, then reports the density error against the exact solution.

goppm run -I input.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		rm := &RunModel{}
		if rm.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		rm.Graph, _ = cmd.Flags().GetBool("graph")
		rm.Profile, _ = cmd.Flags().GetString("profile")
		rm.ProfilePath, _ = cmd.Flags().GetString("profilePath")
		var ip *InputParameters.InputParameters
		if ip, err = processInput(rm); err != nil {
			return
		}
		return Run(cmd.Context(), rm, ip)
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- CFL\n\t- NX (cells per axis)")
	RunCmd.Flags().BoolP("graph", "g", false, "display the density profile against the exact solution when done")
	RunCmd.Flags().String("profile", "", "write a cpu or mem profile of the solution")
	RunCmd.Flags().String("profilePath", ".", "directory for profile output")
}

func processInput(rm *RunModel) (ip *InputParameters.InputParameters, err error) {
	var (
		data []byte
	)
	if len(rm.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
	}
	if data, err = os.ReadFile(rm.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", rm.ICFile, err)
	}
	if ip.ParallelDegree == 0 {
		ip.ParallelDegree = viper.GetInt("parallelDegree")
	}
	return
}

func Run(ctx context.Context, rm *RunModel, ip *InputParameters.InputParameters) (err error) {
	var (
		c  *hydro.Euler
		l1 float64
	)
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	switch rm.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(rm.ProfilePath), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(rm.ProfilePath), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q, must be cpu or mem", rm.Profile)
	}
	ip.Print()
	logger, err := newLogger()
	if err != nil {
		return
	}
	defer func() { _ = logger.Sync() }()
	if c, err = ip.NewEuler(logger); err != nil {
		return
	}
	if err = c.Solve(ctx); err != nil {
		return
	}
	if l1, err = c.L1Error(); err != nil {
		return
	}
	fmt.Printf("Time = %8.5f, Steps = %d, Density L1 Error = %10.3e\n", c.Time, c.Steps, l1)
	if rm.Graph {
		if err = PlotDensity(c); err != nil {
			return
		}
		<-ctx.Done()
	}
	return
}

func PlotDensity(c *hydro.Euler) (err error) {
	var (
		x, rho     = c.Profile(hydro.IDN)
		fmin, fmax = float32(-0.1), float32(1.1)
		chart      *chart2d.Chart2D
		colorMap   = utils2.NewColorMap(-1, 1, 1)
		xe, rhoe   []float64
	)
	if xe, rhoe, err = c.Exact(); err != nil {
		return
	}
	for _, r := range rho {
		fmax = max(fmax, float32(1.1*r))
	}
	chart = chart2d.NewChart2D(1920, 1280, float32(x[0]), float32(x[len(x)-1]), fmin, fmax)
	go chart.Plot()
	if err = chart.AddSeries("Rho", x, rho, chart2d.CrossGlyph, chart2d.NoLine, colorMap.GetRGB(-0.7)); err != nil {
		return fmt.Errorf("unable to add graph series: %w", err)
	}
	if err = chart.AddSeries("ExactRho", xe, rhoe, chart2d.NoGlyph, chart2d.Solid, colorMap.GetRGB(0.7)); err != nil {
		return fmt.Errorf("unable to add exact solution: %w", err)
	}
	return
}
