package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/physics"
)

// Simulator drives one gas through fixed-size steps, feeding each frame to
// its metrics and observers.
type Simulator struct {
	gas       *physics.Gas
	metrics   []dynamo.Metric
	observers []dynamo.Observer

	// clock for Advance
	step    int
	elapsed float64
}

func New(gas *physics.Gas) *Simulator {
	return &Simulator{
		gas:       gas,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Gas() *physics.Gas             { return s.gas }

func (s *Simulator) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	samples := 1
	if cfg.SampleEvery > 0 {
		samples += steps / cfg.SampleEvery
	}
	result := &dynamo.Result{
		Times:   make([]float64, 0, samples),
		Speeds:  make([][]float64, 0, samples),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	if cfg.SampleEvery > 0 {
		result.Times = append(result.Times, t)
		result.Speeds = append(result.Speeds, s.gas.Speeds())
	}

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		if err := s.gas.Step(cfg.Dt); err != nil {
			return result, &dynamo.SimulationError{Step: i, Time: t, Wrapped: err}
		}
		t += cfg.Dt
		result.StepsTaken++

		frame := s.frame(i, t, cfg.Dt)
		result.Totals.Add(frame.Stats)

		if cfg.ValidateState && !frame.IsValid() {
			result.Errors = append(result.Errors, &dynamo.SimulationError{Step: i, Time: t, Wrapped: dynamo.ErrInvalidState})
			break
		}

		for _, m := range s.metrics {
			m.Observe(frame)
		}
		for _, obs := range s.observers {
			obs.OnStep(frame)
		}

		if cfg.SampleEvery > 0 && i%cfg.SampleEvery == 0 {
			result.Times = append(result.Times, t)
			result.Speeds = append(result.Speeds, frame.Speeds())
		}
	}

	result.FinalPositions = s.gas.Positions()
	result.FinalSpeeds = s.gas.Speeds()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps until the duration is reached, the context ends, or
// callback returns false. Live drivers use it to poll frames.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg dynamo.Config, callback func(*dynamo.Frame) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for i := 1; i <= cfg.Steps(); i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		if err := s.gas.Step(cfg.Dt); err != nil {
			return &dynamo.SimulationError{Step: i, Time: t, Wrapped: err}
		}
		t += cfg.Dt

		frame := s.frame(i, t, cfg.Dt)
		if cfg.ValidateState && !frame.IsValid() {
			return &dynamo.SimulationError{Step: i, Time: t, Wrapped: dynamo.ErrInvalidState}
		}
		for _, m := range s.metrics {
			m.Observe(frame)
		}

		if !callback(frame) {
			return nil
		}
	}

	return nil
}

// Advance takes n steps of dt outside of Run, feeding metrics and observers,
// and returns the last frame. Interactive drivers call it once per tick.
func (s *Simulator) Advance(n int, dt float64) (*dynamo.Frame, error) {
	if !(dt > 0) {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidTimestep, dt)
	}

	var frame *dynamo.Frame
	for i := 0; i < n; i++ {
		if err := s.gas.Step(dt); err != nil {
			return frame, &dynamo.SimulationError{Step: s.step + 1, Time: s.elapsed, Wrapped: err}
		}
		s.step++
		s.elapsed += dt

		frame = s.frame(s.step, s.elapsed, dt)
		if !frame.IsValid() {
			return frame, &dynamo.SimulationError{Step: s.step, Time: s.elapsed, Wrapped: dynamo.ErrInvalidState}
		}
		for _, m := range s.metrics {
			m.Observe(frame)
		}
		for _, obs := range s.observers {
			obs.OnStep(frame)
		}
	}
	return frame, nil
}

// Values reports every metric's current value.
func (s *Simulator) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Simulator) Elapsed() float64 { return s.elapsed }

func (s *Simulator) frame(step int, t, dt float64) *dynamo.Frame {
	pos, vel := s.gas.View()
	return &dynamo.Frame{
		Step:       step,
		Time:       t,
		Dt:         dt,
		Positions:  pos,
		Velocities: vel,
		Stats:      s.gas.LastStats(),
	}
}

func validateConfig(cfg dynamo.Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidTimestep, cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", dynamo.ErrInvalidConfig, cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", dynamo.ErrInvalidConfig, cfg.SampleEvery)
	}
	return nil
}
