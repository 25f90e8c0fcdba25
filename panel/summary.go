package panel

import (
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/bitmark-inc/synthetic-panel/schema"
)

// Summary is the manifest written next to a generated dataset
type Summary struct {
	RunID        string                      `yaml:"run_id"`
	Seed         int64                       `yaml:"seed"`
	Weeks        int                         `yaml:"weeks"`
	Records      int                         `yaml:"records"`
	Respondents  int                         `yaml:"respondents"`
	FirstWeek    string                      `yaml:"first_week,omitempty"`
	LastWeek     string                      `yaml:"last_week,omitempty"`
	LabelTotals  map[schema.SymptomLabel]int `yaml:"label_totals"`
	Demographics map[string]map[string]int   `yaml:"demographics"`
}

// Summary counts labels per record and demographics per distinct respondent
func (r *Result) Summary() Summary {
	s := Summary{
		RunID:       r.RunID,
		Seed:        r.Seed,
		Weeks:       r.Weeks,
		Records:     len(r.Records),
		Respondents: r.Respondents,
		LabelTotals: make(map[schema.SymptomLabel]int),
		Demographics: map[string]map[string]int{
			"age":  {},
			"race": {},
			"zip":  {},
		},
	}

	if len(r.Records) > 0 {
		s.FirstWeek = r.Records[0].Week.Format(schema.DateLayout)
		s.LastWeek = r.Records[len(r.Records)-1].Week.Format(schema.DateLayout)
	}

	seen := make(map[int64]bool)
	for _, record := range r.Records {
		s.LabelTotals[record.Label()]++

		if seen[record.ID] {
			continue
		}
		seen[record.ID] = true
		s.Demographics["age"][record.Age]++
		s.Demographics["race"][record.Race]++
		s.Demographics["zip"][record.Zip]++
	}

	return s
}

func (s Summary) Write(w io.Writer) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile - write the summary as yaml to path
func (s Summary) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return s.Write(f)
}
