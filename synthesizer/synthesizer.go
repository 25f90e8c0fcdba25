package synthesizer

import (
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/synthetic-panel/cohort"
	"github.com/bitmark-inc/synthetic-panel/schema"
)

const (
	logPrefix = "synthesizer"

	// DaysPerWeek bounds the start date offset: [0, DaysPerWeek)
	DaysPerWeek = 7
)

// InputConsistencyError - the observed label total of a week differs from
// the size of its active set
type InputConsistencyError struct {
	Week     time.Time
	Expected int
	Actual   int
}

func (e *InputConsistencyError) Error() string {
	return fmt.Sprintf("week %s: observed %d labels, active set has %d respondents",
		e.Week.Format(schema.DateLayout), e.Actual, e.Expected)
}

// Synthesizer turns a week's active set and observed counts into records
type Synthesizer struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Synthesizer {
	return &Synthesizer{rng: rng}
}

// ExpandLabels flattens the counts into a label multiset, labels in
// schema.SymptomLabels order.
func ExpandLabels(obs schema.WeeklyObservation) ([]schema.SymptomLabel, error) {
	if err := obs.Validate(); err != nil {
		return nil, err
	}

	labels := make([]schema.SymptomLabel, 0, obs.Total())
	for _, l := range schema.SymptomLabels {
		for i := 0; i < obs.Counts[l]; i++ {
			labels = append(labels, l)
		}
	}
	return labels, nil
}

// SynthesizeWeek pairs the i-th respondent of active with the i-th label of
// the shuffled multiset. Records keep the order of active.
func (s *Synthesizer) SynthesizeWeek(weekStart time.Time, obs schema.WeeklyObservation, active schema.ActiveSet, pool cohort.Pool) ([]schema.OutputRecord, error) {
	labels, err := ExpandLabels(obs)
	if err != nil {
		return nil, err
	}

	if len(labels) != len(active) {
		return nil, &InputConsistencyError{
			Week:     weekStart,
			Expected: len(active),
			Actual:   len(labels),
		}
	}

	s.rng.Shuffle(len(labels), func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})

	records := make([]schema.OutputRecord, 0, len(active))
	for i, id := range active {
		r, ok := pool.Respondent(id)
		if !ok {
			return nil, fmt.Errorf("week %s: respondent %d not in pool", weekStart.Format(schema.DateLayout), id)
		}

		start := weekStart.AddDate(0, 0, s.rng.Intn(DaysPerWeek))
		records = append(records, schema.NewOutputRecord(r, weekStart, start, labels[i]))
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"week":    weekStart.Format(schema.DateLayout),
		"records": len(records),
	}).Debug("week synthesized")

	return records, nil
}
