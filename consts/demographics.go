package consts

import (
	"github.com/bitmark-inc/synthetic-panel/schema"
)

const (
	DefaultWeeklyTarget  = 1000
	DefaultCarryoverRate = 0.90
	DefaultIDBase        = 10000
)

var DefaultAgeBrackets = schema.Distribution{
	{Value: "18–29", Weight: 0.20},
	{Value: "30–39", Weight: 0.25},
	{Value: "40–49", Weight: 0.20},
	{Value: "50–59", Weight: 0.15},
	{Value: "60–69", Weight: 0.10},
	{Value: "70+", Weight: 0.05},
	{Value: "Unknown", Weight: 0.05},
}

var DefaultRaceEthnicities = schema.Distribution{
	{Value: "Asian", Weight: 0.10},
	{Value: "Black", Weight: 0.10},
	{Value: "Latino", Weight: 0.30},
	{Value: "Multi", Weight: 0.05},
	{Value: "Native", Weight: 0.01},
	{Value: "Other", Weight: 0.03},
	{Value: "PI", Weight: 0.01},
	{Value: "Unknown", Weight: 0.10},
	{Value: "White", Weight: 0.30},
}

// LosAngelesZipCodes - candidate zip codes, drawn uniformly
var LosAngelesZipCodes = []string{
	"90001", "90002", "90003", "90004", "90005", "90006", "90007", "90008", "90010",
	"90011", "90012", "90013", "90014", "90015", "90016", "90017", "90018", "90019",
	"90020", "90021", "90022", "90023", "90024", "90025", "90026", "90027", "90028",
	"90029", "90030", "90031", "90032", "90033", "90034", "90035", "90036", "90037",
	"90038", "90039", "90040", "90041", "90042", "90043", "90044", "90045", "90046",
	"90047", "90048", "90049", "90056", "90057", "90058", "90059", "90061", "90062",
	"90063", "90064", "90065", "90066", "90067", "90068", "90069", "90071", "90077",
	"90089", "90094",
}
