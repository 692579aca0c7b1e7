package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "My_PC", sanitizeLabel("My PC"))
	assert.Equal(t, "unnamed_pc", sanitizeLabel(""))
	assert.Equal(t, "unnamed_pc", sanitizeLabel("   "))
	assert.Equal(t, "a_b_c_d", sanitizeLabel(`a/b\c:d`))
}

func TestWrite(t *testing.T) {
	rep := &Report{
		MachineLabel: "My PC",
		GeneratedAt:  time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local),
		Body:         "# Hardware Report\n",
	}

	dir := filepath.Join(t.TempDir(), "nested", "result")
	path, err := Write(rep, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hardware_report_My_PC_20250314_092653.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, rep.Body, string(data))
}

func TestWriteUnwritableDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := Write(&Report{GeneratedAt: time.Now()}, filepath.Join(dir, "result"))
	assert.Error(t, err)
}
