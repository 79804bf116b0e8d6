package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/gasbox/internal/config"
	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig(seed int64) *config.Config {
	cfg := config.GetPreset("scenario27")
	cfg.Run.Steps = 40
	cfg.Run.Seed = seed
	return cfg
}

func TestExperimentRunAndSave(t *testing.T) {
	exp := New("scenario27", smallConfig(42))
	require.NoError(t, exp.Setup())

	result, err := exp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, result.StepsTaken)
	assert.Len(t, result.FinalPositions, 27)
	assert.Contains(t, result.Metrics, "temperature")

	st := storage.New(t.TempDir())
	runID, err := exp.Save(st, result)
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "scenario27", meta.Name)
	assert.Equal(t, int64(42), meta.Seed)
	assert.Equal(t, 27, meta.Params.ParticleCount)
}

func TestExperimentDeterministic(t *testing.T) {
	run := func() *dynamo.Result {
		exp := New("a", smallConfig(7))
		require.NoError(t, exp.Setup())
		res, err := exp.Run(context.Background())
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	assert.Equal(t, a.FinalPositions, b.FinalPositions)
	assert.Equal(t, a.FinalSpeeds, b.FinalSpeeds)
}

func TestExperimentNotSetup(t *testing.T) {
	_, err := New("x", smallConfig(1)).Run(context.Background())
	assert.Error(t, err)
}

func TestExperimentInvalidConfig(t *testing.T) {
	cfg := smallConfig(1)
	cfg.Gas.Temperature = 0
	err := New("bad", cfg).Setup()
	assert.True(t, errors.Is(err, dynamo.ErrInvalidConfig), "got %v", err)
}
