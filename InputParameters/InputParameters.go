package InputParameters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"go.uber.org/zap"

	"github.com/notargets/goppm/hydro"
	"github.com/notargets/goppm/mesh"
	"github.com/notargets/goppm/recon"
	"github.com/notargets/goppm/types"
)

// Parameters obtained from the YAML input file. The YAML is converted to JSON
// before decoding, so the keys are matched through the json tags.
type InputParameters struct {
	Title          string            `json:"Title"`
	CFL            float64           `json:"CFL"`
	FinalTime      float64           `json:"FinalTime"`
	MaxIterations  int               `json:"MaxIterations"`
	Reconstruction string            `json:"Reconstruction"`
	FluxType       string            `json:"FluxType"`
	InitType       string            `json:"InitType"`
	Gamma          float64           `json:"Gamma"`
	NX             [3]int            `json:"NX"`
	XMin           [3]float64        `json:"XMin"`
	XMax           [3]float64        `json:"XMax"`
	BCs            map[string]string `json:"BCs"` // Face name, x1inner through x3outer, to boundary condition
	TubeAxis       int               `json:"TubeAxis"`
	ParallelDegree int               `json:"ParallelDegree"`
	LogFrequency   int               `json:"LogFrequency"`
}

func (ip *InputParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	return ip.Validate()
}

var faceNames = [3][2]string{{"x1inner", "x1outer"}, {"x2inner", "x2outer"}, {"x3inner", "x3outer"}}

// Validate fills defaults for omitted values and rejects inconsistent ones
func (ip *InputParameters) Validate() (err error) {
	if ip.CFL == 0 {
		ip.CFL = 0.4
	}
	if ip.Gamma == 0 {
		ip.Gamma = 1.4
	}
	if len(ip.Reconstruction) == 0 {
		ip.Reconstruction = "ppm"
	}
	if len(ip.InitType) == 0 {
		ip.InitType = "shocktube"
	}
	for a := 0; a < 3; a++ {
		if ip.NX[a] == 0 {
			ip.NX[a] = 1
		}
		if ip.XMin[a] == 0 && ip.XMax[a] == 0 {
			ip.XMax[a] = 1
		}
	}
	if ip.NX[0] < mesh.NGhost {
		return fmt.Errorf("NX must be given with at least %d cells along x1, have %v", mesh.NGhost, ip.NX)
	}
	if ip.TubeAxis < 0 || ip.TubeAxis > 2 {
		return fmt.Errorf("TubeAxis must be 0, 1 or 2, have %d", ip.TubeAxis)
	}
	lbcs := make(map[string]string, len(ip.BCs))
	for face, bc := range ip.BCs {
		face = strings.ToLower(strings.TrimSpace(face))
		if !isFace(face) {
			return fmt.Errorf("unknown boundary face %q, must be one of %v", face, faceNames)
		}
		if _, err = types.NewBCFlag(bc); err != nil {
			return fmt.Errorf("face %s: %w", face, err)
		}
		lbcs[face] = bc
	}
	ip.BCs = lbcs
	if _, err = recon.NewMethod(ip.Reconstruction); err != nil {
		return
	}
	if _, err = hydro.NewFluxType(ip.FluxType); err != nil {
		return
	}
	_, err = hydro.NewInitType(ip.InitType)
	return
}

func isFace(face string) bool {
	for _, pair := range faceNames {
		if face == pair[0] || face == pair[1] {
			return true
		}
	}
	return false
}

// FaceBCs returns the boundary conditions, faces left unspecified are outflow
func (ip *InputParameters) FaceBCs() (bcs mesh.FaceBCs) {
	for a := 0; a < 3; a++ {
		for side := 0; side < 2; side++ {
			bcs[a][side] = types.BC_Outflow
			if label, ok := ip.BCs[faceNames[a][side]]; ok {
				bcs[a][side], _ = types.NewBCFlag(label)
			}
		}
	}
	return
}

// NewEuler builds the grid and solver described by a validated input
func (ip *InputParameters) NewEuler(logger *zap.Logger) (c *hydro.Euler, err error) {
	var (
		g   *mesh.Grid
		cfg = hydro.Config{
			CFL:           ip.CFL,
			FinalTime:     ip.FinalTime,
			MaxIterations: ip.MaxIterations,
			Gamma:         ip.Gamma,
			TubeAxis:      recon.Axis(ip.TubeAxis),
			BCs:           ip.FaceBCs(),
			ProcLimit:     ip.ParallelDegree,
			LogFrequency:  ip.LogFrequency,
		}
	)
	if cfg.Method, err = recon.NewMethod(ip.Reconstruction); err != nil {
		return
	}
	if cfg.Flux, err = hydro.NewFluxType(ip.FluxType); err != nil {
		return
	}
	if cfg.Case, err = hydro.NewInitType(ip.InitType); err != nil {
		return
	}
	if g, err = mesh.NewGrid(ip.NX, ip.XMin, ip.XMax); err != nil {
		return
	}
	return hydro.NewEuler(g, cfg, logger)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%d\t\t\t= MaxIterations\n", ip.MaxIterations)
	fmt.Printf("[%s]\t\t\t= Reconstruction\n", ip.Reconstruction)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	fmt.Printf("[%s]\t\t= InitType\n", ip.InitType)
	fmt.Printf("%8.5f\t\t= Gamma\n", ip.Gamma)
	fmt.Printf("%v\t\t= NX\n", ip.NX)
	fmt.Printf("%v -> %v\t= Domain\n", ip.XMin, ip.XMax)
	fmt.Printf("X%d\t\t\t= Tube Axis\n", ip.TubeAxis+1)
	keys := make([]string, 0, len(ip.BCs))
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
