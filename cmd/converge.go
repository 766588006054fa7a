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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/goppm/hydro"
	"github.com/notargets/goppm/recon"
)

// ConvergeCmd represents the converge command
var ConvergeCmd = &cobra.Command{
	Use:   "converge",
	Short: "Measure the order of accuracy on an advected density wave",
	Long: `
Advects a sinusoidal density wave once around a periodic domain at each of
the requested resolutions and prints the density L1 error and the observed
order of accuracy between successive resolutions.

goppm converge -m ppm -k 16,32,64,128`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			cfg = hydro.Config{Gamma: 1.4, ProcLimit: viper.GetInt("parallelDegree")}
			cs  *hydro.ConvergenceStudy
		)
		label, _ := cmd.Flags().GetString("method")
		if cfg.Method, err = recon.NewMethod(label); err != nil {
			return
		}
		flux, _ := cmd.Flags().GetString("flux")
		if cfg.Flux, err = hydro.NewFluxType(flux); err != nil {
			return
		}
		cfg.CFL, _ = cmd.Flags().GetFloat64("CFL")
		resolutions, _ := cmd.Flags().GetIntSlice("cells")
		logger, err := newLogger()
		if err != nil {
			return
		}
		if cs, err = hydro.RunConvergence(cmd.Context(), cfg, resolutions, logger); err != nil {
			return
		}
		cs.Print()
		return
	},
}

func init() {
	rootCmd.AddCommand(ConvergeCmd)
	ConvergeCmd.Flags().StringP("method", "m", "ppm", "reconstruction: dc, plm or ppm")
	ConvergeCmd.Flags().String("flux", "hlle", "Riemann flux: lax or hlle")
	ConvergeCmd.Flags().Float64("CFL", 0.4, "CFL - increase for speedup, decrease for stability")
	ConvergeCmd.Flags().IntSliceP("cells", "k", []int{16, 32, 64, 128}, "resolutions of the study")
}
