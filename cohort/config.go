package cohort

import (
	"errors"
	"fmt"

	"github.com/bitmark-inc/synthetic-panel/consts"
	"github.com/bitmark-inc/synthetic-panel/schema"
)

var (
	ErrInvalidTarget        = errors.New("weekly target must be positive")
	ErrInvalidCarryoverRate = errors.New("carryover rate must be within [0, 1]")
	ErrNoZipCodes           = errors.New("empty zip code list")
	ErrTargetMismatch       = errors.New("carryover and new respondents do not add up to the weekly target")
)

// Config holds the panel parameters. The zero value is not usable, start
// from DefaultConfig.
type Config struct {
	WeeklyTarget  int                 `mapstructure:"weekly_target"`
	CarryoverRate float64             `mapstructure:"carryover_rate"`
	IDBase        int64               `mapstructure:"id_base"`
	Ages          schema.Distribution `mapstructure:"age_brackets"`
	Races         schema.Distribution `mapstructure:"race_ethnicities"`
	Zips          []string            `mapstructure:"zip_codes"`
}

func DefaultConfig() Config {
	return Config{
		WeeklyTarget:  consts.DefaultWeeklyTarget,
		CarryoverRate: consts.DefaultCarryoverRate,
		IDBase:        consts.DefaultIDBase,
		Ages:          consts.DefaultAgeBrackets,
		Races:         consts.DefaultRaceEthnicities,
		Zips:          consts.LosAngelesZipCodes,
	}
}

// CarryoverCount is the number of respondents kept from the previous week
func (c Config) CarryoverCount() int {
	// the epsilon keeps 0.9*1000 from truncating to 899
	return int(c.CarryoverRate*float64(c.WeeklyTarget) + 1e-9)
}

// NewCount is the number of respondents minted on every week after the first
func (c Config) NewCount() int {
	return c.WeeklyTarget - c.CarryoverCount()
}

func (c Config) Validate() error {
	if c.WeeklyTarget <= 0 {
		return ErrInvalidTarget
	}
	if c.CarryoverRate < 0 || c.CarryoverRate > 1 {
		return ErrInvalidCarryoverRate
	}
	if err := c.Ages.Validate(); err != nil {
		return fmt.Errorf("age brackets: %w", err)
	}
	if err := c.Races.Validate(); err != nil {
		return fmt.Errorf("race ethnicities: %w", err)
	}
	if len(c.Zips) == 0 {
		return ErrNoZipCodes
	}
	return nil
}
