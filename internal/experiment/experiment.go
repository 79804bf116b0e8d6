package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/gasbox/internal/config"
	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/metrics"
	"github.com/san-kum/gasbox/internal/physics"
	"github.com/san-kum/gasbox/internal/sim"
	"github.com/san-kum/gasbox/internal/storage"
)

// Experiment is one seeded run of a configured gas.
type Experiment struct {
	name      string
	cfg       config.Config
	simulator *sim.Simulator
}

func New(name string, cfg *config.Config) *Experiment {
	return &Experiment{name: name, cfg: *cfg}
}

// Setup builds the gas from the config seed and attaches the default metrics.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	params := e.cfg.Params()
	gas, err := physics.New(params, rand.New(rand.NewSource(e.cfg.Run.Seed)))
	if err != nil {
		return err
	}

	e.simulator = sim.New(gas)
	for _, m := range metrics.Defaults(params) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.RunConfig())
}

// Save stores result under the experiment's name.
func (e *Experiment) Save(st *storage.Store, result *dynamo.Result) (string, error) {
	return st.Save(e.name, e.cfg.Params(), e.cfg.RunConfig(), result)
}

func (e *Experiment) Name() string              { return e.name }
func (e *Experiment) Config() config.Config     { return e.cfg }
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
