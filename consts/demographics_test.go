package consts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/synthetic-panel/consts"
)

func TestDefaultDistributions(t *testing.T) {
	assert.NoError(t, consts.DefaultAgeBrackets.Validate(), "age brackets")
	assert.NoError(t, consts.DefaultRaceEthnicities.Validate(), "race ethnicities")
	assert.Len(t, consts.DefaultAgeBrackets, 7)
	assert.Len(t, consts.DefaultRaceEthnicities, 9)
}

func TestLosAngelesZipCodes(t *testing.T) {
	seen := map[string]bool{}
	for _, zip := range consts.LosAngelesZipCodes {
		assert.Len(t, zip, 5, "wrong zip code %s", zip)
		assert.False(t, seen[zip], "duplicated zip code %s", zip)
		seen[zip] = true
	}
}

func TestDefaultCounts(t *testing.T) {
	carryover := int(consts.DefaultCarryoverRate * consts.DefaultWeeklyTarget)
	assert.Equal(t, 900, carryover)
	assert.Equal(t, 100, consts.DefaultWeeklyTarget-carryover)
}
