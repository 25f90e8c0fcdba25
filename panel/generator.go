package panel

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/synthetic-panel/cohort"
	"github.com/bitmark-inc/synthetic-panel/export"
	"github.com/bitmark-inc/synthetic-panel/external/observation"
	"github.com/bitmark-inc/synthetic-panel/schema"
	"github.com/bitmark-inc/synthetic-panel/synthesizer"
)

const logPrefix = "panel"

// Generator runs the week-by-week panel simulation
type Generator struct {
	cfg   cohort.Config
	seed  int64
	scope tally.Scope
}

// Result holds the records of every completed week
type Result struct {
	RunID       string
	Seed        int64
	Weeks       int
	Respondents int
	Records     []schema.OutputRecord
}

// NewGenerator - a nil scope disables metrics
func NewGenerator(cfg cohort.Config, seed int64, scope tally.Scope) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scope == nil {
		scope = tally.NoopScope
	}

	return &Generator{
		cfg:   cfg,
		seed:  seed,
		scope: scope,
	}, nil
}

// Run processes the observations in order. Every run starts a fresh pool and
// a fresh generator seeded with the configured seed, so two runs over the
// same input produce the same records.
//
// On a fatal week the returned result still holds every week completed
// before it.
func (g *Generator) Run(ctx context.Context, source observation.Source) (*Result, error) {
	observations, err := source.Observations(ctx)
	if err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}

	rng := rand.New(rand.NewSource(g.seed))
	manager, err := cohort.NewManager(g.cfg, rng)
	if err != nil {
		return nil, err
	}
	synth := synthesizer.New(rng)

	result := &Result{
		RunID: uuid.New().String(),
		Seed:  g.seed,
	}

	var active schema.ActiveSet
	for i, obs := range observations {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		records, next, err := g.week(i, obs, active, manager, synth)
		if err != nil {
			g.scope.Counter("week_failures").Inc(1)
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"run_id": result.RunID,
				"week":   obs.WeekStart.Format(schema.DateLayout),
				"error":  err,
			}).Error("synthesize week")
			return result, fmt.Errorf("week %s: %w", obs.WeekStart.Format(schema.DateLayout), err)
		}

		for j := range records {
			records[j].RunID = result.RunID
		}

		active = next
		result.Records = append(result.Records, records...)
		result.Weeks++
		result.Respondents = manager.PoolSize()

		g.scope.Counter("weeks_processed").Inc(1)
		g.scope.Counter("records_emitted").Inc(int64(len(records)))
		g.scope.Gauge("pool_size").Update(float64(manager.PoolSize()))

		log.WithFields(log.Fields{
			"prefix":    logPrefix,
			"week":      obs.WeekStart.Format(schema.DateLayout),
			"active":    len(active),
			"pool_size": manager.PoolSize(),
		}).Info("week done")
	}

	return result, nil
}

func (g *Generator) week(i int, obs schema.WeeklyObservation, prev schema.ActiveSet, manager *cohort.Manager, synth *synthesizer.Synthesizer) ([]schema.OutputRecord, schema.ActiveSet, error) {
	before := manager.PoolSize()

	active, err := manager.Step(i, prev)
	if err != nil {
		return nil, nil, err
	}
	g.scope.Counter("respondents_minted").Inc(int64(manager.PoolSize() - before))

	records, err := synth.SynthesizeWeek(obs.WeekStart, obs, active, manager.Pool())
	if err != nil {
		return nil, nil, err
	}

	return records, active, nil
}

// Export runs the simulation and writes whatever was produced to sink, in a
// single write, even when a week failed.
func (g *Generator) Export(ctx context.Context, source observation.Source, sink export.Sink) (*Result, error) {
	result, runErr := g.Run(ctx, source)
	if result == nil || (runErr != nil && len(result.Records) == 0) {
		return result, runErr
	}

	if err := sink.Write(ctx, result.Records); err != nil {
		if runErr != nil {
			return result, fmt.Errorf("%w (write records: %v)", runErr, err)
		}
		return result, fmt.Errorf("write records: %w", err)
	}

	return result, runErr
}
