package cohort

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/synthetic-panel/schema"
)

const logPrefix = "cohort"

// InsufficientPoolError is returned when the previous week's active set is
// smaller than the number of respondents to carry over.
type InsufficientPoolError struct {
	Requested int
	Available int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("insufficient pool to carry over: requested %d, previous week has %d", e.Requested, e.Available)
}

// Manager owns the respondent pool and the id counter of a single run.
// It is not safe for concurrent use.
type Manager struct {
	cfg    Config
	rng    *rand.Rand
	pool   map[int64]schema.Respondent
	nextID int64
}

// NewManager - the generator is shared with the rest of the run so a fixed
// seed reproduces the whole dataset
func NewManager(cfg Config, rng *rand.Rand) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Manager{
		cfg:    cfg,
		rng:    rng,
		pool:   make(map[int64]schema.Respondent),
		nextID: cfg.IDBase,
	}, nil
}

// InitializeFirstWeek mints targetSize respondents and returns their ids in
// creation order.
func (m *Manager) InitializeFirstWeek(targetSize int) (schema.ActiveSet, error) {
	if targetSize <= 0 {
		return nil, ErrInvalidTarget
	}
	return m.mint(targetSize), nil
}

// AdvanceWeek carries carryoverCount ids over from prev, chosen uniformly
// without replacement, and appends newCount freshly minted respondents.
func (m *Manager) AdvanceWeek(prev schema.ActiveSet, carryoverCount, newCount int) (schema.ActiveSet, error) {
	if carryoverCount < 0 || newCount < 0 || carryoverCount+newCount != m.cfg.WeeklyTarget {
		return nil, fmt.Errorf("%w: %d + %d != %d", ErrTargetMismatch, carryoverCount, newCount, m.cfg.WeeklyTarget)
	}

	if carryoverCount > len(prev) {
		return nil, &InsufficientPoolError{
			Requested: carryoverCount,
			Available: len(prev),
		}
	}

	active := make(schema.ActiveSet, 0, carryoverCount+newCount)
	for _, i := range m.rng.Perm(len(prev))[:carryoverCount] {
		active = append(active, prev[i])
	}

	return append(active, m.mint(newCount)...), nil
}

// Step computes the active set of the week at weekIndex. The first week
// processed bootstraps the panel whatever row it came from.
func (m *Manager) Step(weekIndex int, prev schema.ActiveSet) (schema.ActiveSet, error) {
	if weekIndex == 0 {
		return m.InitializeFirstWeek(m.cfg.WeeklyTarget)
	}
	return m.AdvanceWeek(prev, m.cfg.CarryoverCount(), m.cfg.NewCount())
}

func (m *Manager) mint(n int) schema.ActiveSet {
	ids := make(schema.ActiveSet, 0, n)
	for i := 0; i < n; i++ {
		r := schema.Respondent{
			ID: m.nextID,
			Demographics: schema.Demographics{
				Age:  weightedChoice(m.rng, m.cfg.Ages),
				Race: weightedChoice(m.rng, m.cfg.Races),
				Zip:  m.cfg.Zips[m.rng.Intn(len(m.cfg.Zips))],
			},
		}
		m.nextID++
		m.pool[r.ID] = r
		ids = append(ids, r.ID)
	}

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"minted":    n,
		"pool_size": len(m.pool),
		"next_id":   m.nextID,
	}).Debug("new respondents")

	return ids
}

// Respondent looks up a respondent by id
func (m *Manager) Respondent(id int64) (schema.Respondent, bool) {
	r, ok := m.pool[id]
	return r, ok
}

// Pool returns the respondent lookup used by the synthesizer
func (m *Manager) Pool() Pool {
	return poolView(m.pool)
}

func (m *Manager) PoolSize() int {
	return len(m.pool)
}

func (m *Manager) Config() Config {
	return m.cfg
}

// Pool is a read-only view on the respondents minted so far
type Pool interface {
	Respondent(id int64) (schema.Respondent, bool)
}

type poolView map[int64]schema.Respondent

func (p poolView) Respondent(id int64) (schema.Respondent, bool) {
	r, ok := p[id]
	return r, ok
}
