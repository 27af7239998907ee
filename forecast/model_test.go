package forecast

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifact(ticker string) Artifact {
	return Artifact{
		Ticker:    ticker,
		Intercept: 100,
		Slope:     0.5,
		LastIndex: 999,
		Samples:   1000,
		TrainedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()

	for _, ticker := range []string{"AAPL", "TCS"} {
		a := testArtifact(ticker)
		_, err := a.Write(dir)
		require.NoError(t, err)
	}
	// Non-artifact files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("n/a"), 0o644))

	reg, err := LoadRegistry(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"AAPL", "TCS"}, reg.Tickers())
}

func TestLoadRegistryMalformedArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BAD.json"), []byte("{not json"), 0o644))

	_, err := LoadRegistry(dir)
	assert.Error(t, err)
}

func TestRegistryLookup(t *testing.T) {
	dir := t.TempDir()
	a := testArtifact("AAPL")
	_, err := a.Write(dir)
	require.NoError(t, err)

	reg, err := LoadRegistry(dir)
	require.NoError(t, err)

	// Lookup is case-insensitive.
	model, err := reg.Lookup("aapl")
	require.NoError(t, err)

	// intercept + slope * (lastIndex + horizon)
	got, err := model.Predict(252)
	require.NoError(t, err)
	assert.InDelta(t, 100+0.5*(999+252), got, 1e-9)

	_, err = reg.Lookup("MSFT")
	assert.ErrorIs(t, err, ErrModelNotFound)
}
