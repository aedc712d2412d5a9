package nbody

import (
	"context"
	"reflect"
	"time"
)

// System is one phase of a frame. Systems run in registration order.
type System interface {
	Execute(frame *Frame)
}

// Frame is passed to every system during Stage.Once.
type Frame struct {
	Tick  uint64
	Space *Space
	View  *SpaceView
}

// StepSystem advances the space by one step.
type StepSystem struct{}

func (StepSystem) Execute(frame *Frame) {
	frame.Space.Step()
}

// ViewSystem refreshes the view from the space. Register it after StepSystem.
type ViewSystem struct{}

func (ViewSystem) Execute(frame *Frame) {
	frame.View.Update(frame.Space)
}

// FiniteGuard watches for non-finite positions or velocities. It does not
// alter the state; the host decides what to do once Halted reports true.
type FiniteGuard struct {
	halted   bool
	haltTick uint64
}

func (g *FiniteGuard) Execute(frame *Frame) {
	if g.halted {
		return
	}
	if !frame.Space.Finite() {
		g.halted = true
		g.haltTick = frame.Tick
	}
}

// Halted reports whether a non-finite state was observed, and on which tick.
func (g *FiniteGuard) Halted() (uint64, bool) {
	return g.haltTick, g.halted
}

// StageStats provides statistics about stage execution.
type StageStats struct {
	SystemCount     int
	Ticks           uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Stage drives a Space and its SpaceView through registered systems, one
// frame at a time. It is not safe for concurrent use: Once and Run must not
// overlap.
type Stage struct {
	space       *Space
	view        *SpaceView
	tick        uint64
	systems     []System
	systemStats []*systemStatsInternal
}

// NewStage creates a stage with no systems registered.
func NewStage(space *Space, view *SpaceView) *Stage {
	return &Stage{
		space:   space,
		view:    view,
		systems: make([]System, 0),
	}
}

// NewDefaultStage creates a stage that steps the space and then updates the view.
func NewDefaultStage(space *Space, view *SpaceView) *Stage {
	s := NewStage(space, view)
	s.Register(StepSystem{})
	s.Register(ViewSystem{})
	return s
}

// Register appends a system to the frame.
func (s *Stage) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Space returns the simulated space.
func (s *Stage) Space() *Space {
	return s.space
}

// View returns the derived view.
func (s *Stage) View() *SpaceView {
	return s.view
}

// Once executes every registered system once, in order.
func (s *Stage) Once() {
	frame := &Frame{
		Tick:  s.tick,
		Space: s.space,
		View:  s.view,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.tick++
}

// Run executes a frame every interval until the context is cancelled.
func (s *Stage) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once()
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Stage) GetStats() *StageStats {
	stats := &StageStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
