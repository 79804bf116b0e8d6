package automation

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/gasbox/internal/config"
	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/experiment"
	"github.com/san-kum/gasbox/internal/storage"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and applies the
// config block on top of it.
type ScenarioStep struct {
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
	SaveAs string    `yaml:"save_as"`
}

// StepResult pairs a step's result with its stored run id, if saved.
type StepResult struct {
	Name   string
	RunID  string
	Result *dynamo.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no steps", dynamo.ErrInvalidConfig, scenario.Name)
	}
	return &scenario, nil
}

// Resolve builds the run configuration for a step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", dynamo.ErrInvalidConfig, s.Preset)
		}
	}
	if !s.Config.IsZero() {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s ScenarioStep) name(i int) string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	default:
		return fmt.Sprintf("step%d", i+1)
	}
}

// RunScenario executes the steps in order. Steps with save_as are written to
// st when st is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(step.name(i), cfg)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: exp.Name(), Result: result}
		if st != nil && step.SaveAs != "" {
			if sr.RunID, err = exp.Save(st, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ReplicaStats summarises one metric over independent replicas.
type ReplicaStats struct {
	Metric string
	Mean   float64
	StdDev float64
	N      int
}

// RunReplicas runs n copies of cfg with seeds seed, seed+1, ... concurrently
// and returns their results in seed order.
func RunReplicas(ctx context.Context, cfg *config.Config, n int, seed int64, workers int) ([]*dynamo.Result, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: replica count must be positive, got %d", dynamo.ErrInvalidConfig, n)
	}

	results := make([]*dynamo.Result, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(dynamo.Workers(workers))

	for k := 0; k < n; k++ {
		k := k
		c := *cfg
		c.Run.Seed = seed + int64(k)
		g.Go(func() error {
			exp := experiment.New(fmt.Sprintf("replica%d", k), &c)
			if err := exp.Setup(); err != nil {
				return err
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return fmt.Errorf("replica %d: %w", k, err)
			}
			results[k] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize computes mean and sample standard deviation of every metric
// reported by the replicas, sorted by metric name.
func Summarize(results []*dynamo.Result) []ReplicaStats {
	values := make(map[string][]float64)
	for _, r := range results {
		for name, v := range r.Metrics {
			values[name] = append(values[name], v)
		}
	}

	out := make([]ReplicaStats, 0, len(values))
	for name, vs := range values {
		mean, std := stat.MeanStdDev(vs, nil)
		out = append(out, ReplicaStats{Metric: name, Mean: mean, StdDev: std, N: len(vs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Metric < out[j].Metric })
	return out
}
