package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVReport_WritesBothFiles(t *testing.T) {
	agg := sampleAggregator()
	agg.RecordJourney(1, 1)
	rep := agg.Finalize("Testville", time.Now())

	base := filepath.Join(t.TempDir(), "report")
	routesPath, stopsPath, err := WriteCSVReport(base, rep)
	require.NoError(t, err)

	routesData, err := os.ReadFile(routesPath)
	require.NoError(t, err)
	assert.Contains(t, string(routesData), "R1")

	stopsData, err := os.ReadFile(stopsPath)
	require.NoError(t, err)
	assert.Contains(t, string(stopsData), "Total")
}

func TestWriteCSVReport_InvalidPathErrors(t *testing.T) {
	agg := sampleAggregator()
	rep := agg.Finalize("Testville", time.Now())
	_, _, err := WriteCSVReport("/nonexistent-dir-xyz/report", rep)
	assert.Error(t, err)
}
