package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrInit_MissingFileReturnsSkeleton(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AAPL_o_2025-01-15.json")
	out, err := LoadOrInit(path, "AAPL", "2025-01-15")
	require.NoError(t, err)
	assert.Empty(t, out.Updates)
	assert.Equal(t, "null", string(out.FullAnalysis))
}

func TestAppendUpdate_GrowsByExactlyOne(t *testing.T) {
	out := &OutputFile{Symbol: "AAPL", Date: "2025-01-15"}
	rec := UpdateRecord{Timestamp: "2025-01-15T14:00:00Z", RegimeState: "negative_gamma"}
	AppendUpdate(out, rec)
	require.Len(t, out.Updates, 1)
	assert.Equal(t, rec, out.Updates[len(out.Updates)-1])

	AppendUpdate(out, UpdateRecord{Timestamp: "2025-01-15T15:00:00Z"})
	assert.Len(t, out.Updates, 2)
}

func TestPersist_AtomicRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "AAPL_o_2025-01-15.json")
	out, err := LoadOrInit(path, "AAPL", "2025-01-15")
	require.NoError(t, err)
	AppendUpdate(out, UpdateRecord{Timestamp: "t1", RegimeState: "neutral"})

	require.NoError(t, Persist(path, out))

	reloaded, err := LoadOrInit(path, "AAPL", "2025-01-15")
	require.NoError(t, err)
	assert.Len(t, reloaded.Updates, 1)
	assert.Equal(t, "neutral", reloaded.Updates[0].RegimeState)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not survive a successful rename")
}

func TestSetFullAnalysis_OverwritesOnRerun(t *testing.T) {
	out := &OutputFile{Symbol: "AAPL", Date: "2025-01-15"}
	AppendUpdate(out, UpdateRecord{Timestamp: "t1"})

	require.NoError(t, SetFullAnalysis(out, map[string]string{"decision": "LONG_VOL"}))
	first := string(out.FullAnalysis)

	require.NoError(t, SetFullAnalysis(out, map[string]string{"decision": "SHORT_VOL"}))
	assert.NotEqual(t, first, string(out.FullAnalysis))
	assert.Len(t, out.Updates, 1, "re-running task must not touch updates[]")
}
