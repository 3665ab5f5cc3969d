// Package engine provides the market model and the day loop that drives it.
package engine

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Engine drives the simulation forward one day at a time.
type Engine struct {
	Day      int           // Days completed (monotonic)
	Days     int           // Stop after this many days; 0 = run until Stop
	Interval time.Duration // Pause between days; 0 = as fast as possible

	// OnDay runs each simulated day. An error stops the run.
	OnDay func(day int) error

	running atomic.Bool
	stopped atomic.Bool // Set by Stop; never cleared
}

// NewEngine creates an engine that runs for the given number of days.
func NewEngine(days int) *Engine {
	return &Engine{Days: days}
}

// Run steps through days until the target is reached, Stop is called, or
// OnDay fails. Blocks until then. A Stop issued before Run returns
// immediately without stepping.
func (e *Engine) Run() error {
	e.running.Store(true)
	defer e.running.Store(false)
	slog.Info("simulation engine started", "day", e.Day, "days", e.Days, "interval", e.Interval)

	for !e.stopped.Load() {
		if e.Days > 0 && e.Day >= e.Days {
			break
		}

		start := time.Now()

		if err := e.step(); err != nil {
			slog.Error("simulation engine halted", "day", e.Day, "error", err)
			return err
		}

		// Sleep for the remainder of the interval.
		if e.Interval > 0 {
			if elapsed := time.Since(start); elapsed < e.Interval {
				time.Sleep(e.Interval - elapsed)
			}
		}
	}

	slog.Info("simulation engine stopped", "day", e.Day)
	return nil
}

// Stop halts the loop after the current day, or prevents it from starting.
// Safe to call from another goroutine.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

// Running reports whether Run is in progress.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// step advances the simulation by one day.
func (e *Engine) step() error {
	e.Day++
	if e.OnDay == nil {
		return nil
	}
	if err := e.OnDay(e.Day); err != nil {
		return fmt.Errorf("day %d: %w", e.Day, err)
	}
	return nil
}
