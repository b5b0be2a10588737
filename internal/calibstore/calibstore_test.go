package calibstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foreverwb/volquant/internal/config"
)

func TestOpen_DisabledIsNoOp(t *testing.T) {
	cfg := config.Default().CalibrationStore
	cfg.Enabled = false
	store, err := Open(cfg)
	require.NoError(t, err)
	assert.False(t, store.Enabled())
}

func TestDisabledStore_RecordAndSamplesAreNoOps(t *testing.T) {
	cfg := config.Default().CalibrationStore
	cfg.Enabled = false
	store, err := Open(cfg)
	require.NoError(t, err)

	err = store.Record(context.Background(), Record{Symbol: "AAPL", Direction: DirectionLong, Score: 1.2, Timestamp: time.Now()})
	assert.NoError(t, err)

	samples, err := store.Samples(context.Background(), "AAPL", DirectionLong)
	assert.NoError(t, err)
	assert.Empty(t, samples)
}

func TestOpen_EnabledWithoutDSNErrors(t *testing.T) {
	cfg := config.Default().CalibrationStore
	cfg.Enabled = true
	cfg.DSN = ""
	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestClose_NilDBIsSafe(t *testing.T) {
	store := &Store{enabled: false}
	assert.NoError(t, store.Close())
}
