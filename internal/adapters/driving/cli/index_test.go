package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-labs/finsight-cli/internal/core/domain"
)

func TestIndexCmd_Use(t *testing.T) {
	assert.Equal(t, "index [corpus-dir]", indexCmd.Use)
}

func TestIndexCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIndexCmd_PrintsSummary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = &mockIngestService{report: &domain.IngestReport{
		RunID:            "run-1",
		DocumentsIndexed: 2,
		DocumentsSkipped: 1,
		PassagesStored:   14,
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "/tmp/corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "indexed 2 document(s) (1 skipped, 0 failed), stored 14 new passage(s)")
}

func TestIndexCmd_ListsFailures(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = &mockIngestService{report: &domain.IngestReport{
		DocumentsFailed: 1,
		Failures: []domain.DocumentFailure{
			{Path: "Apple/2023/broken.pdf", Reason: "parse failed: corrupt"},
		},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "/tmp/corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Failed documents:")
	assert.Contains(t, buf.String(), "Apple/2023/broken.pdf: parse failed: corrupt")
}

func TestIndexCmd_PropagatesError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = &mockIngestService{err: errors.New("index store failure")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index", "/tmp/corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "index store failure")
}

func TestIndexCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = nil

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"index", "/tmp/corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
