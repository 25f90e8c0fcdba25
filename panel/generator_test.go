package panel

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/synthetic-panel/cohort"
	"github.com/bitmark-inc/synthetic-panel/export"
	"github.com/bitmark-inc/synthetic-panel/external/observation"
	"github.com/bitmark-inc/synthetic-panel/mocks"
	"github.com/bitmark-inc/synthetic-panel/schema"
	"github.com/bitmark-inc/synthetic-panel/synthesizer"
)

var jan2 = time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

func weekly(start time.Time, counts ...[4]int) observation.Static {
	observations := make(observation.Static, 0, len(counts))
	for i, c := range counts {
		observations = append(observations, schema.WeeklyObservation{
			WeekStart: start.AddDate(0, 0, 7*i),
			Counts: map[schema.SymptomLabel]int{
				schema.CoughOrSOB:               c[0],
				schema.TwoPlusOtherSymptoms:     c[1],
				schema.CoughSOBAndTwoPlusOthers: c[2],
				schema.NoSymptom:                c[3],
			},
		})
	}
	return observations
}

func counterValue(scope tally.TestScope, name string) int64 {
	for _, c := range scope.Snapshot().Counters() {
		if c.Name() == name {
			return c.Value()
		}
	}
	return 0
}

type GeneratorTestSuite struct {
	suite.Suite
	scope        tally.TestScope
	generator    *Generator
	observations observation.Static
	result       *Result
}

func (s *GeneratorTestSuite) SetupTest() {
	s.scope = tally.NewTestScope("", nil)

	g, err := NewGenerator(cohort.DefaultConfig(), 2023, s.scope)
	s.Require().NoError(err)
	s.generator = g

	s.observations = weekly(jan2,
		[4]int{50, 30, 10, 910},
		[4]int{60, 25, 15, 900},
		[4]int{0, 0, 0, 1000},
		[4]int{100, 100, 100, 700},
		[4]int{1, 2, 3, 994},
	)

	result, err := g.Run(context.Background(), s.observations)
	s.Require().NoError(err)
	s.result = result
}

func (s *GeneratorTestSuite) recordsByWeek() map[time.Time][]schema.OutputRecord {
	weeks := make(map[time.Time][]schema.OutputRecord)
	for _, r := range s.result.Records {
		weeks[r.Week] = append(weeks[r.Week], r)
	}
	return weeks
}

func (s *GeneratorTestSuite) TestActiveSetSizes() {
	weeks := s.recordsByWeek()
	s.Len(weeks, 5)
	for _, obs := range s.observations {
		s.Len(weeks[obs.WeekStart], 1000, "week %s", obs.WeekStart)
	}
	s.Equal(5, s.result.Weeks)
	s.Equal(1000+4*100, s.result.Respondents)
}

func (s *GeneratorTestSuite) TestLabelsReconstructCounts() {
	weeks := s.recordsByWeek()
	for _, obs := range s.observations {
		counts := make(map[schema.SymptomLabel]int)
		for _, r := range weeks[obs.WeekStart] {
			counts[r.Label()]++
		}
		for _, l := range schema.SymptomLabels {
			s.Equal(obs.Counts[l], counts[l], "week %s label %s", obs.WeekStart, l)
		}
	}
}

func (s *GeneratorTestSuite) TestDemographicsStablePerRespondent() {
	first := make(map[int64]schema.OutputRecord)
	for _, r := range s.result.Records {
		if seen, ok := first[r.ID]; ok {
			s.Equal(seen.Age, r.Age, "respondent %d", r.ID)
			s.Equal(seen.Race, r.Race, "respondent %d", r.ID)
			s.Equal(seen.Zip, r.Zip, "respondent %d", r.ID)
			continue
		}
		first[r.ID] = r
	}
	s.Len(first, s.result.Respondents)
}

func (s *GeneratorTestSuite) TestRecordInvariants() {
	for _, r := range s.result.Records {
		s.False(r.Start.Before(r.Week))
		s.False(r.Start.After(r.Week.AddDate(0, 0, 6)))
		s.Equal(r.Cough|r.CSTE|r.Both, r.Sick)
		s.Equal(s.result.RunID, r.RunID)
	}
}

func (s *GeneratorTestSuite) TestCarryoverBetweenWeeks() {
	weeks := s.recordsByWeek()
	for i := 1; i < len(s.observations); i++ {
		previous := make(map[int64]bool)
		for _, r := range weeks[s.observations[i-1].WeekStart] {
			previous[r.ID] = true
		}

		carried := 0
		for j, r := range weeks[s.observations[i].WeekStart] {
			if previous[r.ID] {
				carried++
				s.Less(j, 900, "carried respondents come first")
			}
		}
		s.Equal(900, carried)
	}
}

func (s *GeneratorTestSuite) TestIDsUniqueAndIncreasing() {
	var lastMinted int64 = -1
	seen := make(map[int64]bool)
	for _, r := range s.result.Records {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		s.Greater(r.ID, lastMinted, "first appearance order follows id order")
		lastMinted = r.ID
	}
	s.Equal(int64(10000), s.result.Records[0].ID)
}

func (s *GeneratorTestSuite) TestMetrics() {
	s.Equal(int64(5), counterValue(s.scope, "weeks_processed"))
	s.Equal(int64(5000), counterValue(s.scope, "records_emitted"))
	s.Equal(int64(1400), counterValue(s.scope, "respondents_minted"))
	s.Equal(int64(0), counterValue(s.scope, "week_failures"))

	for _, g := range s.scope.Snapshot().Gauges() {
		if g.Name() == "pool_size" {
			s.Equal(float64(1400), g.Value())
		}
	}
}

func (s *GeneratorTestSuite) TestDeterministic() {
	again, err := s.generator.Run(context.Background(), s.observations)
	s.Require().NoError(err)

	var a, b bytes.Buffer
	s.Require().NoError(export.WriteCSV(&a, s.result.Records))
	s.Require().NoError(export.WriteCSV(&b, again.Records))
	s.Equal(a.Bytes(), b.Bytes())
	s.NotEqual(s.result.RunID, again.RunID)
}

func (s *GeneratorTestSuite) TestSummary() {
	summary := s.result.Summary()
	s.Equal(5000, summary.Records)
	s.Equal("2023-01-02", summary.FirstWeek)
	s.Equal("2023-01-30", summary.LastWeek)
	s.Equal(50+60+0+100+1, summary.LabelTotals[schema.CoughOrSOB])

	respondents := 0
	for _, n := range summary.Demographics["age"] {
		respondents += n
	}
	s.Equal(1400, respondents)

	var buf bytes.Buffer
	s.Require().NoError(summary.Write(&buf))
	s.Contains(buf.String(), "run_id: "+s.result.RunID)
	s.Contains(buf.String(), "records: 5000")
}

func TestGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func TestSingleWeekScenario(t *testing.T) {
	cfg := cohort.DefaultConfig()
	cfg.WeeklyTarget = 4

	g, err := NewGenerator(cfg, 1, nil)
	require.NoError(t, err)

	result, err := g.Run(context.Background(), weekly(jan2, [4]int{2, 1, 0, 1}))
	require.NoError(t, err)
	require.Len(t, result.Records, 4)

	var coughOnly, csteOnly, healthy int
	for _, r := range result.Records {
		assert.False(t, r.Start.Before(jan2))
		assert.False(t, r.Start.After(time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC)))
		switch {
		case r.Cough == 1 && r.CSTE == 0:
			coughOnly++
		case r.Cough == 0 && r.CSTE == 1:
			csteOnly++
		case r.Cough == 0 && r.CSTE == 0 && r.Sick == 0:
			healthy++
		}
		assert.Equal(t, 0, r.Both)
	}

	assert.Equal(t, 2, coughOnly)
	assert.Equal(t, 1, csteOnly)
	assert.Equal(t, 1, healthy)
}

func TestRunStopsAtInconsistentWeek(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	g, err := NewGenerator(cohort.DefaultConfig(), 1, scope)
	require.NoError(t, err)

	observations := weekly(jan2,
		[4]int{50, 30, 10, 910},
		[4]int{50, 30, 10, 900},
		[4]int{50, 30, 10, 910},
	)

	result, err := g.Run(context.Background(), observations)
	var consistency *synthesizer.InputConsistencyError
	require.True(t, errors.As(err, &consistency))
	assert.Equal(t, 1000, consistency.Expected)
	assert.Equal(t, 990, consistency.Actual)
	assert.Contains(t, err.Error(), "2023-01-09")

	require.NotNil(t, result)
	assert.Equal(t, 1, result.Weeks, "completed weeks are kept")
	assert.Len(t, result.Records, 1000)
	assert.Equal(t, int64(1), counterValue(scope, "week_failures"))
}

func TestRunCancelled(t *testing.T) {
	g, err := NewGenerator(cohort.DefaultConfig(), 1, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := g.Run(ctx, weekly(jan2, [4]int{0, 0, 0, 1000}))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, result.Weeks)
}

func TestNewGeneratorInvalidConfig(t *testing.T) {
	cfg := cohort.DefaultConfig()
	cfg.WeeklyTarget = 0
	_, err := NewGenerator(cfg, 1, nil)
	assert.True(t, errors.Is(err, cohort.ErrInvalidTarget))
}

func TestExport(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	source := mocks.NewMockSource(ctl)
	sink := mocks.NewMockSink(ctl)

	source.EXPECT().Observations(gomock.Any()).Return([]schema.WeeklyObservation(weekly(jan2, [4]int{2, 1, 0, 1})), nil)
	sink.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, records []schema.OutputRecord) error {
		assert.Len(t, records, 4)
		return nil
	})

	cfg := cohort.DefaultConfig()
	cfg.WeeklyTarget = 4
	g, err := NewGenerator(cfg, 1, nil)
	require.NoError(t, err)

	result, err := g.Export(context.Background(), source, sink)
	assert.NoError(t, err)
	assert.Len(t, result.Records, 4)
}

func TestExportWritesCompletedWeeksOnFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	source := mocks.NewMockSource(ctl)
	sink := mocks.NewMockSink(ctl)

	source.EXPECT().Observations(gomock.Any()).Return([]schema.WeeklyObservation(weekly(jan2,
		[4]int{2, 1, 0, 1},
		[4]int{2, 1, 0, 5},
	)), nil)
	sink.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, records []schema.OutputRecord) error {
		assert.Len(t, records, 4)
		return nil
	})

	cfg := cohort.DefaultConfig()
	cfg.WeeklyTarget = 4
	g, err := NewGenerator(cfg, 1, nil)
	require.NoError(t, err)

	_, err = g.Export(context.Background(), source, sink)
	var consistency *synthesizer.InputConsistencyError
	assert.True(t, errors.As(err, &consistency))
}

func TestExportSourceFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	source := mocks.NewMockSource(ctl)
	sink := mocks.NewMockSink(ctl)

	readErr := errors.New("connection refused")
	source.EXPECT().Observations(gomock.Any()).Return(nil, readErr)
	sink.EXPECT().Write(gomock.Any(), gomock.Any()).Times(0)

	g, err := NewGenerator(cohort.DefaultConfig(), 1, nil)
	require.NoError(t, err)

	result, err := g.Export(context.Background(), source, sink)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, readErr))
}
