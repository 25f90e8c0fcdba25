package observation

import (
	"context"
	"fmt"
	"sort"

	"github.com/bitmark-inc/synthetic-panel/schema"
)

const logPrefix = "observation"

// Source - interface to read the observed weekly counts, in ascending week
// order
type Source interface {
	Observations(ctx context.Context) ([]schema.WeeklyObservation, error)
}

// Static serves observations held in memory
type Static []schema.WeeklyObservation

func (s Static) Observations(ctx context.Context) ([]schema.WeeklyObservation, error) {
	return s, nil
}

// sortAndCheck orders observations by week and rejects duplicated weeks
func sortAndCheck(observations []schema.WeeklyObservation) error {
	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].WeekStart.Before(observations[j].WeekStart)
	})

	for i := 1; i < len(observations); i++ {
		if observations[i].WeekStart.Equal(observations[i-1].WeekStart) {
			return fmt.Errorf("duplicated week %s", observations[i].WeekStart.Format(schema.DateLayout))
		}
	}
	return nil
}
