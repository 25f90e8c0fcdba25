package observation

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/synthetic-panel/schema"
)

const dateColumn = "date"

var dateLayouts = []string{
	schema.DateLayout,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

type csvSource struct {
	path string
}

// NewCSVSource - read weekly counts from a csv export: a Date column plus
// one column per symptom label
func NewCSVSource(path string) Source {
	return &csvSource{path: path}
}

func (c *csvSource) Observations(ctx context.Context) ([]schema.WeeklyObservation, error) {
	f, err := os.Open(c.path)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"path":   c.path,
			"error":  err,
		}).Error("open observation file")
		return nil, err
	}
	defer f.Close()

	observations, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.path, err)
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"path":   c.path,
		"weeks":  len(observations),
	}).Info("observations loaded")

	return observations, nil
}

// ParseCSV reads weekly rows and returns them sorted by week
func ParseCSV(r io.Reader) ([]schema.WeeklyObservation, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateIndex := -1
	labels := make(map[int]schema.SymptomLabel)
	seen := make(map[schema.SymptomLabel]bool)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if strings.EqualFold(name, dateColumn) {
			dateIndex = i
			continue
		}
		l, err := schema.ParseSymptomLabel(name)
		if err != nil {
			return nil, err
		}
		if seen[l] {
			return nil, fmt.Errorf("duplicated column for %s", l)
		}
		seen[l] = true
		labels[i] = l
	}

	if dateIndex < 0 {
		return nil, fmt.Errorf("missing %q column", "Date")
	}
	if len(labels) != len(schema.SymptomLabels) {
		return nil, fmt.Errorf("expect %d label columns, got %d", len(schema.SymptomLabels), len(labels))
	}

	var observations []schema.WeeklyObservation
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		week, err := parseDate(row[dateIndex])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		obs := schema.WeeklyObservation{
			WeekStart: week,
			Counts:    make(map[schema.SymptomLabel]int),
		}
		for i, l := range labels {
			count, err := parseCount(row[i])
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, header[i], err)
			}
			obs.Counts[l] = count
		}

		if err := obs.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		observations = append(observations, obs)
	}

	if err := sortAndCheck(observations); err != nil {
		return nil, err
	}
	return observations, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseCount accepts spreadsheet style integers such as "12.0"
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return int(f), nil
}
