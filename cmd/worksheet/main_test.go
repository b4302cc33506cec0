package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"Thruster/internal/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvert(t *testing.T) {
	out, err := execute(t, "convert", "1 ksi", "psi", "--prec", "0")
	require.NoError(t, err)
	assert.Equal(t, "1000 psi\n", out)

	_, err = execute(t, "convert", "900 psi", "m")
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)
}

func TestStress(t *testing.T) {
	out, err := execute(t, "stress",
		"--pressure", "900 psi", "--radius", "2.25 in",
		"--thickness", "0.25 in", "--strength", "35000 psi")
	require.NoError(t, err)
	assert.Contains(t, out, "4050 psi")
	assert.Contains(t, out, "8100 psi")
	assert.Contains(t, out, "8.64")
	assert.Contains(t, out, "4.32")
	assert.Contains(t, out, "warning: t/r 0.111 exceeds thin-wall limit 0.10")

	out, err = execute(t, "stress",
		"--pressure", "900 psi", "--radius", "2.25 in",
		"--thickness", "0.125 in", "--strength", "35000 psi")
	require.NoError(t, err)
	assert.NotContains(t, out, "warning")

	_, err = execute(t, "stress",
		"--pressure", "900 psi", "--radius", "2.25 in",
		"--thickness", "0 in", "--strength", "35000 psi")
	assert.ErrorIs(t, err, units.ErrDivisionByZero)

	_, err = execute(t, "stress", "--pressure", "900 psi")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "sheet.pdf")
	xlsx := filepath.Join(dir, "sheet.xlsx")

	out, err := execute(t, "run", "--config", "../../conf/worksheet.ini", "--pdf", pdf, "--xlsx", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "350 lbf Thruster Sizing")
	assert.Contains(t, out, "Hoop stress")

	for _, p := range []string{pdf, xlsx} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestRunMissingConfig(t *testing.T) {
	_, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}
