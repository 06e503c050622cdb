package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	calls atomic.Int32
	err   error
}

func (j *countingJob) Run(_ context.Context) (int, error) {
	j.calls.Add(1)
	return 3, j.err
}

func TestScheduler_ExpresionVacia_Desactivado(t *testing.T) {
	job := &countingJob{}
	s := New("  ", job, nil)

	assert.False(t, s.Enabled())
	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
	s.Stop()
	assert.Zero(t, job.calls.Load())
}

func TestScheduler_ExpresionInvalida_RetornaError(t *testing.T) {
	s := New("cada lunes", &countingJob{}, nil)

	assert.True(t, s.Enabled())
	assert.Error(t, s.Start())
}

func TestScheduler_ExpresionValida_RegistraJob(t *testing.T) {
	s := New("0 6 * * *", &countingJob{}, nil)

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Len(t, s.cron.Entries(), 1)
}

func TestScheduler_RunOnce_EjecutaJob(t *testing.T) {
	job := &countingJob{}
	s := New("@daily", job, nil)

	s.runOnce()

	assert.Equal(t, int32(1), job.calls.Load())
}

func TestScheduler_RunOnce_ErrorNoEntraEnPanico(t *testing.T) {
	job := &countingJob{err: errors.New("webhook caído")}
	s := New("@daily", job, nil)

	assert.NotPanics(t, s.runOnce)
	assert.Equal(t, int32(1), job.calls.Load())
}

func TestValidate(t *testing.T) {
	for _, expr := range []string{"", "   ", "*/5 * * * *", "0 8 * * 1-5", "@every 10m", "@daily"} {
		assert.NoError(t, Validate(expr), expr)
	}
	for _, expr := range []string{"cada hora", "* * *", "61 * * * *", "@semanal"} {
		assert.Error(t, Validate(expr), expr)
	}
}
