package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRunsTargetDays(t *testing.T) {
	e := NewEngine(3)
	var days []int
	e.OnDay = func(day int) error {
		days = append(days, day)
		return nil
	}

	require.NoError(t, e.Run())
	assert.Equal(t, []int{1, 2, 3}, days)
	assert.Equal(t, 3, e.Day)
	assert.False(t, e.Running())
}

func TestEngineStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	e := NewEngine(10)
	e.OnDay = func(day int) error {
		if day == 2 {
			return boom
		}
		return nil
	}

	err := e.Run()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, e.Day)
}

func TestEngineStop(t *testing.T) {
	e := NewEngine(0)
	e.OnDay = func(day int) error {
		if day == 4 {
			e.Stop()
		}
		return nil
	}

	require.NoError(t, e.Run())
	assert.Equal(t, 4, e.Day)
}

func TestEngineStopBeforeRun(t *testing.T) {
	e := NewEngine(0)
	calls := 0
	e.OnDay = func(day int) error {
		calls++
		if calls == 50 {
			e.Stop()
		}
		return nil
	}

	e.Stop()
	require.NoError(t, e.Run())
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, e.Day)
	assert.False(t, e.Running())
}

func TestEngineDrivesModel(t *testing.T) {
	m := newTestModel(t)
	e := NewEngine(4)
	e.OnDay = func(day int) error {
		snap := m.Step()
		assert.Equal(t, day, snap.Day)
		return nil
	}

	require.NoError(t, e.Run())
	assert.Equal(t, 4, m.Day())
	assert.Len(t, m.Snapshots(), 4)
}
