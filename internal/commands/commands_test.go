package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTemplateCommandWritesWorkbook(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ledgers.xlsx")

	cmd := NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"template", "ledgers", "--out", out})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), out)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Ledger")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ledger Code", rows[0][0])
}

func TestTemplateCommandRejectsUnknownEntity(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"template", "accounts"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity type")
}

func TestCopyToDirLeavesSourceInPlace(t *testing.T) {
	src := filepath.Join(t.TempDir(), "groups.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0o644))

	dst, err := copyToDir(src, filepath.Join(t.TempDir(), "temp"))
	require.NoError(t, err)

	assert.NotEqual(t, src, dst)
	assert.Equal(t, ".xlsx", filepath.Ext(dst))
	assert.FileExists(t, src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}
