package sensors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeThermalZone(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "temp")
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestSysfsReaderGetCurrentTemperature(t *testing.T) {
	// thermal_zone хранит значение в миллиградусах
	path := writeThermalZone(t, "45678\n")

	reader := NewSysfsReader(path)
	temp, err := reader.GetCurrentTemperature()
	require.NoError(t, err)
	assert.InDelta(t, 45.678, temp, 0.001)
}

func TestSysfsReaderGetCoreTemperatures(t *testing.T) {
	path := writeThermalZone(t, "52000")

	reader := NewSysfsReader(path)
	cores, err := reader.GetCoreTemperatures()
	require.NoError(t, err)
	require.Len(t, cores, 1)
	assert.Equal(t, 0, cores[0].Core)
	assert.InDelta(t, 52.0, cores[0].Celsius, 0.001)
}

func TestSysfsReaderMissingFile(t *testing.T) {
	reader := NewSysfsReader(filepath.Join(t.TempDir(), "nonexistent"))
	_, err := reader.GetCurrentTemperature()
	assert.Error(t, err)
}

func TestSysfsReaderBadContent(t *testing.T) {
	path := writeThermalZone(t, "not-a-number")

	reader := NewSysfsReader(path)
	_, err := reader.GetCurrentTemperature()
	assert.Error(t, err)
}

func TestNewSysfsReaderDefaultPath(t *testing.T) {
	reader := NewSysfsReader("")
	assert.Equal(t, DefaultThermalZonePath, reader.Path)
}
