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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/notargets/goppm/recon"
)

// ReconCmd represents the recon command
var ReconCmd = &cobra.Command{
	Use:   "recon q(i-2) q(i-1) q(i) q(i+1) q(i+2)",
	Short: "Reconstruct the interface states of one cell from five cell averages",
	Long: `
Evaluates a reconstruction kernel on a five point stencil and prints the left
state of the upper face, ql(i+1), and the right state of the lower face, qr(i).

goppm recon 1 2 5 2 1 --method ppm
goppm recon --method plm -- -1 0 1 2 3`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			q      [5]float64
			m      recon.Method
			single bool
		)
		label, _ := cmd.Flags().GetString("method")
		if m, err = recon.NewMethod(label); err != nil {
			return
		}
		single, _ = cmd.Flags().GetBool("float32")
		for i, arg := range args {
			if q[i], err = strconv.ParseFloat(arg, 64); err != nil {
				return fmt.Errorf("stencil value %d: %w", i, err)
			}
		}
		qlip1, qri := Reconstruct(m, q, single)
		fmt.Printf("%s\nql(i+1) = %v\nqr(i)   = %v\n", m.Print(), qlip1, qri)
		return
	},
}

func init() {
	rootCmd.AddCommand(ReconCmd)
	ReconCmd.Flags().StringP("method", "m", "ppm", "reconstruction: dc, plm or ppm")
	ReconCmd.Flags().Bool("float32", false, "evaluate in single precision")
}

func Reconstruct(m recon.Method, q [5]float64, single bool) (qlip1, qri float64) {
	if single {
		l, r := recon.KernelFor[float32](m)(float32(q[0]), float32(q[1]), float32(q[2]), float32(q[3]), float32(q[4]))
		return float64(l), float64(r)
	}
	return recon.KernelFor[float64](m)(q[0], q[1], q[2], q[3], q[4])
}
