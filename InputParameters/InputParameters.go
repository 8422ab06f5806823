package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/spmuppar/twodthermocode/Godunov2D"
	"github.com/spmuppar/twodthermocode/eos"
	"github.com/spmuppar/twodthermocode/grid2D"
)

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title          string            `yaml:"Title"`
	Problem        string            `yaml:"Problem"` // sod-x, sod-y or shu-osher
	CFL            float64           `yaml:"CFL"`
	FinalTime      float64           `yaml:"FinalTime"`
	MaxIterations  int               `yaml:"MaxIterations"`
	Nx             int               `yaml:"Nx"`
	Ny             int               `yaml:"Ny"`
	Ng             int               `yaml:"Ng"`
	Xmin           float64           `yaml:"Xmin"`
	Xmax           float64           `yaml:"Xmax"`
	Ymin           float64           `yaml:"Ymin"`
	Ymax           float64           `yaml:"Ymax"`
	Limiter        string            `yaml:"Limiter"`
	Riemann        string            `yaml:"Riemann"`
	UseFlattening  *bool             `yaml:"UseFlattening"` // On when absent
	Delta          float64           `yaml:"Delta"`
	Z0             float64           `yaml:"Z0"`
	Z1             float64           `yaml:"Z1"`
	Grav           float64           `yaml:"Grav"`
	CVisc          *float64          `yaml:"CVisc"` // 0.1 when absent
	SmallP         float64           `yaml:"SmallP"`
	ParallelDegree int               `yaml:"ParallelDegree"`
	BCs            map[string]string `yaml:"BCs"` // Side (xlb, xrb, ylb, yrb) to BC name
	EOS            eos.Config        `yaml:"EOS"`
	History        string            `yaml:"History"` // SQLite file recording step diagnostics, off when empty
	// Initial condition, left and right of X0 along the problem direction.
	// A zero RhoL keeps the defaults of the problem.
	RhoL       float64  `yaml:"RhoL"`
	UL         float64  `yaml:"UL"`
	PL         float64  `yaml:"PL"`
	RhoR       float64  `yaml:"RhoR"`
	UR         float64  `yaml:"UR"`
	PR         float64  `yaml:"PR"`
	X0         *float64 `yaml:"X0"`
	Amplitude  float64  `yaml:"Amplitude"`  // Shu-Osher density perturbation
	WaveNumber float64  `yaml:"WaveNumber"` // Shu-Osher density perturbation
}

func (ip *InputParameters2D) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return fmt.Errorf("parsing input deck: %w", err)
	}
	ip.SetDefaults()
	return
}

// SetDefaults fills every unset parameter
func (ip *InputParameters2D) SetDefaults() {
	def := Godunov2D.DefaultOptions()
	if len(ip.Problem) == 0 {
		ip.Problem = "sod-x"
	}
	if ip.CFL == 0 {
		ip.CFL = 0.8
	}
	if ip.FinalTime == 0 {
		ip.FinalTime = 0.2
	}
	if ip.MaxIterations == 0 {
		ip.MaxIterations = 100000
	}
	if ip.Nx == 0 {
		ip.Nx = 128
	}
	if ip.Ny == 0 {
		ip.Ny = 8
	}
	if ip.Ng == 0 {
		ip.Ng = Godunov2D.MinGhostCells
	}
	if ip.Xmax == ip.Xmin {
		ip.Xmin, ip.Xmax = 0, 1
	}
	if ip.Ymax == ip.Ymin {
		// Square cells
		ip.Ymin, ip.Ymax = 0, (ip.Xmax-ip.Xmin)*float64(ip.Ny)/float64(ip.Nx)
	}
	if ip.UseFlattening == nil {
		on := true
		ip.UseFlattening = &on
	}
	if ip.Delta == 0 {
		ip.Delta = def.Delta
	}
	if ip.Z0 == 0 && ip.Z1 == 0 {
		ip.Z0, ip.Z1 = def.Z0, def.Z1
	}
	if ip.CVisc == nil {
		cv := def.CVisc
		ip.CVisc = &cv
	}
	if ip.SmallP == 0 {
		ip.SmallP = def.SmallP
	}
}

// Options converts the deck into flux engine options, validated
func (ip *InputParameters2D) Options() (o Godunov2D.Options, err error) {
	ip.SetDefaults()
	o = Godunov2D.DefaultOptions()
	if o.Limiter, err = Godunov2D.NewLimiterType(ip.Limiter); err != nil {
		return
	}
	if o.Riemann, err = Godunov2D.NewRiemannType(ip.Riemann); err != nil {
		return
	}
	o.UseFlattening = *ip.UseFlattening
	o.Delta, o.Z0, o.Z1 = ip.Delta, ip.Z0, ip.Z1
	o.Gravity = ip.Grav
	o.CVisc = *ip.CVisc
	o.SmallP = ip.SmallP
	o.ParallelDegree = ip.ParallelDegree
	err = o.Validate()
	return
}

func (ip *InputParameters2D) EOSConfig() eos.Config {
	return ip.EOS
}

func (ip *InputParameters2D) Grid() (*grid2D.Grid2D, error) {
	ip.SetDefaults()
	return grid2D.NewGrid2D(ip.Nx, ip.Ny, ip.Ng, ip.Xmin, ip.Xmax, ip.Ymin, ip.Ymax)
}

func (ip *InputParameters2D) BCSet() (*grid2D.BCSet, error) {
	return grid2D.NewBCSetFromNames(ip.BCs)
}

func (ip *InputParameters2D) Print() {
	ip.SetDefaults()
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Problem\n", ip.Problem)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%d]\t\t\t= MaxIterations\n", ip.MaxIterations)
	fmt.Printf("[%d x %d], %d ghosts\t= Grid\n", ip.Nx, ip.Ny, ip.Ng)
	fmt.Printf("[%g,%g] x [%g,%g]\t= Extents\n", ip.Xmin, ip.Xmax, ip.Ymin, ip.Ymax)
	fmt.Printf("[%s]\t\t\t= Limiter\n", ip.Limiter)
	fmt.Printf("[%s]\t\t\t= Riemann\n", ip.Riemann)
	fmt.Printf("[%v] (%g, %g, %g)\t= Flattening (delta, z0, z1)\n", *ip.UseFlattening, ip.Delta, ip.Z0, ip.Z1)
	fmt.Printf("%8.5f\t\t= Gravity\n", ip.Grav)
	fmt.Printf("%8.5f\t\t= Artificial Viscosity\n", *ip.CVisc)
	fmt.Printf("%8.3g\t\t= Pressure Floor\n", ip.SmallP)
	fmt.Printf("[%s]\t\t\t= EOS\n", ip.EOS.Type)
	if ip.RhoL != 0 {
		fmt.Printf("(%g, %g, %g) | (%g, %g, %g)\t= Left | Right (rho, u, p)\n",
			ip.RhoL, ip.UL, ip.PL, ip.RhoR, ip.UR, ip.PR)
	}
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
