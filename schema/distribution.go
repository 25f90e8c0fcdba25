package schema

import (
	"errors"
	"fmt"
	"math"
)

const weightTolerance = 1e-6

var (
	ErrEmptyDistribution = errors.New("empty distribution")
	ErrNegativeWeight    = errors.New("negative weight")
)

// Category is one outcome of a categorical distribution
type Category struct {
	Value  string  `json:"value" mapstructure:"value" yaml:"value"`
	Weight float64 `json:"weight" mapstructure:"weight" yaml:"weight"`
}

type Distribution []Category

// Validate requires non-negative weights summing to 1.0
func (d Distribution) Validate() error {
	if len(d) == 0 {
		return ErrEmptyDistribution
	}

	var sum float64
	for _, c := range d {
		if c.Weight < 0 {
			return fmt.Errorf("%w: %s=%f", ErrNegativeWeight, c.Value, c.Weight)
		}
		sum += c.Weight
	}

	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights sum to %f, expect 1.0", sum)
	}
	return nil
}
