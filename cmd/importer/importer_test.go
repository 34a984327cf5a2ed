package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTemplateCmd_EscribeLibro(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plantilla.xlsx")
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"template", "--out", out})

	require.NoError(t, cmd.Execute())

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), len(masterdata.Templates))
	assert.Contains(t, stdout.String(), out)
}

func TestRunCmd_RequiereArchivo(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("x")))
	assert.Equal(t, exitValidation, exitCode(withCode(exitValidation, errors.New("x"))))
	assert.Equal(t, exitBusy, exitCode(fmt.Errorf("wrap: %w", withCode(exitBusy, errors.New("x")))))
	assert.Nil(t, withCode(exitInfra, nil))
}
