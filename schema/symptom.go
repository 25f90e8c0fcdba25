package schema

import (
	"fmt"
	"strings"
)

type SymptomLabel string

const (
	CoughOrSOB               SymptomLabel = "CoughOrSOB"
	TwoPlusOtherSymptoms     SymptomLabel = "TwoPlusOtherSymptoms"
	CoughSOBAndTwoPlusOthers SymptomLabel = "CoughSOBAndTwoPlusOthers"
	NoSymptom                SymptomLabel = "None"
)

// SymptomLabels is the fixed enumeration order used when a week's counts are
// flattened into a label multiset.
var SymptomLabels = []SymptomLabel{
	CoughOrSOB,
	TwoPlusOtherSymptoms,
	CoughSOBAndTwoPlusOthers,
	NoSymptom,
}

// SymptomCategory describes how a label appears in the weekly survey export
type SymptomCategory struct {
	Label     SymptomLabel `json:"label"`
	ColumnKey string       `json:"column"`
	Desc      string       `json:"desc"`
}

var SymptomCategories = []SymptomCategory{
	{CoughOrSOB, "SOB", "Cough or Shortness of Breath (SOB)"},
	{TwoPlusOtherSymptoms, "Fever2plus", "2+ of fever, chills, headache, body aches, sore throat, loss of taste/smell"},
	{CoughSOBAndTwoPlusOthers, "CoughSOB2plus", "Cough/SOB & 2+ other symptoms"},
	{NoSymptom, "None", "None"},
}

// symptomLabelAliases maps every accepted spelling (lower cased) to its label
var symptomLabelAliases = map[string]SymptomLabel{}

func init() {
	for _, c := range SymptomCategories {
		symptomLabelAliases[strings.ToLower(string(c.Label))] = c.Label
		symptomLabelAliases[strings.ToLower(c.ColumnKey)] = c.Label
		symptomLabelAliases[strings.ToLower(c.Desc)] = c.Label
	}
}

// UnknownLabelError is returned when an observed label is none of the
// recognized symptom categories.
type UnknownLabelError struct {
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown symptom label %q", e.Label)
}

// ParseSymptomLabel accepts the label name, the export column key or the
// questionnaire text of a category.
func ParseSymptomLabel(s string) (SymptomLabel, error) {
	if l, ok := symptomLabelAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return "", &UnknownLabelError{Label: s}
}

// Valid reports whether l is one of the enumerated labels
func (l SymptomLabel) Valid() bool {
	for _, s := range SymptomLabels {
		if s == l {
			return true
		}
	}
	return false
}

// Flags are the binary indicators derived from a label
type Flags struct {
	Cough bool
	CSTE  bool
	Both  bool
	Sick  bool
}

func (l SymptomLabel) Flags() Flags {
	f := Flags{
		Cough: l == CoughOrSOB || l == CoughSOBAndTwoPlusOthers,
		CSTE:  l == TwoPlusOtherSymptoms || l == CoughSOBAndTwoPlusOthers,
		Both:  l == CoughSOBAndTwoPlusOthers,
	}
	f.Sick = f.Cough || f.CSTE || f.Both
	return f
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
