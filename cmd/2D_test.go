package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun2D(t *testing.T) {
	dir := t.TempDir()
	fileInput := []byte(`
Title: Test Case
Problem: sod-x
CFL: 0.8
FinalTime: 0.02
Nx: 32
Ny: 4
Riemann: hllc
BCs:
  xlb: reflect
  xrb: outflow
History: ` + filepath.Join(dir, "run.db") + `
`)
	deck := filepath.Join(dir, "input.yaml")
	require.NoError(t, os.WriteFile(deck, fileInput, 0o644))
	{ // Input processing
		ip, err := processInput(&Model2D{ICFile: deck})
		require.NoError(t, err)
		assert.Equal(t, "Test Case", ip.Title)
		assert.Equal(t, 32, ip.Nx)
		assert.Equal(t, "reflect", ip.BCs["xlb"])
		ip.Print()

		_, err = processInput(&Model2D{})
		assert.Error(t, err)
		_, err = processInput(&Model2D{ICFile: filepath.Join(dir, "missing.yaml")})
		assert.Error(t, err)
	}
	logger := log.New(io.Discard)
	{ // A short run
		ip, err := processInput(&Model2D{ICFile: deck})
		require.NoError(t, err)
		assert.NoError(t, Run2D(&Model2D{PlotSteps: 2}, ip, logger))
		_, err = os.Stat(filepath.Join(dir, "run.db"))
		assert.NoError(t, err)
	}
	{ // Bad profile mode
		ip, err := processInput(&Model2D{ICFile: deck})
		require.NoError(t, err)
		err = Run2D(&Model2D{Profile: "block"}, ip, logger)
		assert.Error(t, err)
	}
}
