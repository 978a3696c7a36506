package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetScanFlags() {
	scanSort = ""
	scanDesc = false
	scanLimit = 0
}

func TestScanCommandMetadata(t *testing.T) {
	assert.Equal(t, "scan [folder]", scanCmd.Use)
	assert.NotNil(t, scanCmd.Flags().Lookup("sort"))
	assert.NotNil(t, scanCmd.Flags().Lookup("desc"))
	assert.NotNil(t, scanCmd.Flags().Lookup("limit"))
	assert.NotNil(t, scanCmd.Flags().Lookup("from"))
	assert.NotNil(t, scanCmd.Flags().Lookup("to"))
	assert.NotNil(t, scanCmd.Flags().Lookup("filter"))
}

func TestScanCommandRequiresFolder(t *testing.T) {
	cleanup := setupTestServices(&stubPipeline{}, nil)
	defer cleanup()

	_, err := executeCommand(t, "scan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestScanCommandPrintsView(t *testing.T) {
	pipeline := &stubPipeline{collection: testCollection()}
	cleanup := setupTestServices(pipeline, nil)
	defer cleanup()
	defer resetScanFlags()

	output, err := executeCommand(t, "scan", "/tmp/reports")
	require.NoError(t, err)

	assert.Equal(t, []string{"/tmp/reports"}, pipeline.loadCalls)
	assert.Contains(t, output, "Loaded 2 records from /tmp/reports")
	assert.Contains(t, output, "P001")
	assert.Contains(t, output, "P002")
	assert.Contains(t, output, "2 of 2 records shown")
}

func TestScanCommandAppliesFilterFlags(t *testing.T) {
	pipeline := &stubPipeline{collection: testCollection()}
	cleanup := setupTestServices(pipeline, nil)
	defer cleanup()
	defer resetScanFlags()

	_, err := executeCommand(t, "scan", "/tmp/reports",
		"--from", "20240101", "--to", "20240131", "--filter", "PatientID=p00")
	require.NoError(t, err)

	assert.Equal(t, "20240101", pipeline.filters.StartDate)
	assert.Equal(t, "20240131", pipeline.filters.EndDate)
	require.Len(t, pipeline.filters.Specs, 1)
	assert.Equal(t, "PatientID", pipeline.filters.Specs[0].Column)
	assert.Equal(t, "p00", pipeline.filters.Specs[0].Substring)
}

func TestScanCommandRejectsMalformedFilter(t *testing.T) {
	cleanup := setupTestServices(&stubPipeline{collection: testCollection()}, nil)
	defer cleanup()
	defer resetScanFlags()

	_, err := executeCommand(t, "scan", "/tmp/reports", "--filter", "no-equals")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter")
}

func TestScanCommandLimit(t *testing.T) {
	cleanup := setupTestServices(&stubPipeline{collection: testCollection()}, nil)
	defer cleanup()
	defer resetScanFlags()

	output, err := executeCommand(t, "scan", "/tmp/reports", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "1 of 2 records shown")
}

func TestScanCommandLoadError(t *testing.T) {
	cleanup := setupTestServices(&stubPipeline{loadErr: errStub}, nil)
	defer cleanup()
	defer resetScanFlags()

	_, err := executeCommand(t, "scan", "/tmp/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading /tmp/missing")
}
