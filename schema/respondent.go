package schema

import (
	"fmt"
	"strconv"
	"time"
)

const (
	WeeklyObservationCollection = "weeklyObservation"
	SyntheticResponseCollection = "syntheticResponse"

	DateLayout = "2006-01-02"
)

// WeeklyObservation is one row of the observed panel: how many respondents
// reported each label in the week starting at WeekStart.
type WeeklyObservation struct {
	WeekStart time.Time            `json:"week" bson:"week"`
	Counts    map[SymptomLabel]int `json:"counts" bson:"counts"`
}

// Total returns the number of respondents the observation accounts for
func (o WeeklyObservation) Total() int {
	total := 0
	for _, l := range SymptomLabels {
		total += o.Counts[l]
	}
	return total
}

// Validate rejects negative counts and labels outside the enumeration
func (o WeeklyObservation) Validate() error {
	for l, c := range o.Counts {
		if !l.Valid() {
			return &UnknownLabelError{Label: string(l)}
		}
		if c < 0 {
			return fmt.Errorf("week %s: negative count %d for %s", o.WeekStart.Format(DateLayout), c, l)
		}
	}
	return nil
}

// Demographics are drawn once, at a respondent's first appearance
type Demographics struct {
	Age  string `json:"age" bson:"age"`
	Race string `json:"race" bson:"race"`
	Zip  string `json:"zip" bson:"zip"`
}

type Respondent struct {
	ID int64 `json:"id" bson:"id"`
	Demographics
}

// ActiveSet is the ordered list of respondent ids surveyed in a week. The
// order decides which shuffled label each respondent is paired with.
type ActiveSet []int64

// OutputRecord is one synthetic response of one respondent in one week
type OutputRecord struct {
	RunID string    `json:"-" bson:"run_id,omitempty"`
	ID    int64     `json:"id" bson:"id"`
	Start time.Time `json:"start" bson:"start"`
	Week  time.Time `json:"week" bson:"week"`
	Race  string    `json:"race" bson:"race"`
	Age   string    `json:"age" bson:"age"`
	Zip   string    `json:"zip" bson:"zip"`
	Cough int       `json:"cough" bson:"cough"`
	CSTE  int       `json:"cste" bson:"cste"`
	Both  int       `json:"both" bson:"both"`
	Sick  int       `json:"sick" bson:"sick"`
}

// CSVHeader is the column order of the exported dataset
var CSVHeader = []string{"id", "Start", "week", "Race", "Age", "Zip", "Cough", "CSTE", "Both", "Sick"}

// NewOutputRecord pairs a respondent with a label for a given start date
func NewOutputRecord(r Respondent, week, start time.Time, label SymptomLabel) OutputRecord {
	f := label.Flags()
	return OutputRecord{
		ID:    r.ID,
		Start: start,
		Week:  week,
		Race:  r.Race,
		Age:   r.Age,
		Zip:   r.Zip,
		Cough: boolToInt(f.Cough),
		CSTE:  boolToInt(f.CSTE),
		Both:  boolToInt(f.Both),
		Sick:  boolToInt(f.Sick),
	}
}

// Label recovers the symptom label the record's flags were derived from
func (r OutputRecord) Label() SymptomLabel {
	switch {
	case r.Both == 1:
		return CoughSOBAndTwoPlusOthers
	case r.Cough == 1:
		return CoughOrSOB
	case r.CSTE == 1:
		return TwoPlusOtherSymptoms
	default:
		return NoSymptom
	}
}

func (r OutputRecord) CSVRow() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Start.Format(DateLayout),
		r.Week.Format(DateLayout),
		r.Race,
		r.Age,
		r.Zip,
		strconv.Itoa(r.Cough),
		strconv.Itoa(r.CSTE),
		strconv.Itoa(r.Both),
		strconv.Itoa(r.Sick),
	}
}
