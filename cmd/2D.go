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
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spmuppar/twodthermocode/InputParameters"
	"github.com/spmuppar/twodthermocode/model_problems/Shock2D"
)

type Model2D struct {
	ICFile    string
	Graph     bool
	PlotSteps int
	Delay     time.Duration
	Profile   string
}

const exampleFile = `
########################################
Title: "Test Case"
Problem: sod-x # Can be sod-y, shu-osher, shu-osher-y
CFL: 0.8
FinalTime: 0.2
Nx: 128
Ny: 8
Limiter: mc4 # Can be none, mc2
Riemann: cgf # Can be hllc
EOS:
  Type: ideal # Can be peng-robinson, table
  Gamma: 1.4
BCs:
  xlb: outflow
  xrb: outflow
########################################
`

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional shock tube solver",
	Long:  `Two dimensional shock tube solver, reads an input deck and advances it to the final time`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		m2d := &Model2D{}
		if m2d.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		m2d.Graph, _ = cmd.Flags().GetBool("graph")
		m2d.PlotSteps, _ = cmd.Flags().GetInt("plotSteps")
		dr, _ := cmd.Flags().GetInt("delay")
		m2d.Delay = time.Duration(dr) * time.Millisecond
		m2d.Profile = viper.GetString("profile")
		var (
			ip     *InputParameters.InputParameters2D
			logger *log.Logger
		)
		if logger, err = NewLogger(); err != nil {
			return
		}
		if ip, err = processInput(m2d); err != nil {
			return
		}
		return Run2D(m2d, ip, logger)
	},
}

func processInput(m2d *Model2D) (ip *InputParameters.InputParameters2D, err error) {
	if len(m2d.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
	}
	var data []byte
	if data, err = os.ReadFile(m2d.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParameters2D{}
	if err = ip.Parse(data); err != nil {
		return nil, err
	}
	return
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- CFL\n\t- Problem (sod-x, sod-y, shu-osher)\n\t- EOS")
	TwoDCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	TwoDCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	TwoDCmd.Flags().IntP("plotSteps", "s", 1, "number of steps before plotting each frame")
}

func Run2D(m2d *Model2D, ip *InputParameters.InputParameters2D, logger *log.Logger) (err error) {
	switch m2d.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q, use cpu or mem", m2d.Profile)
	}
	ip.Print()
	var c *Shock2D.Shock2D
	if c, err = Shock2D.NewShock2D(ip, logger); err != nil {
		return
	}
	defer c.Close()
	c.Out = os.Stdout
	pm := &Shock2D.PlotMeta{
		Plot:            m2d.Graph,
		StepsBeforePlot: m2d.PlotSteps,
		FrameTime:       m2d.Delay,
	}
	if err = c.Solve(pm); err != nil {
		return
	}
	if l1, err := c.SodError(); err == nil {
		logger.Info("exact solution", "density L1", fmt.Sprintf("%11.4e", l1))
	}
	return
}
