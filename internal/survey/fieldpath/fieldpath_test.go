package fieldpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"generalInformation.email",
		"medicalPlans[0].rateTiers[3].monthlyPremium",
		"timeOff.paidTimeOff.accrualRates[12]",
		"organizationName",
	}
	for _, raw := range cases {
		path, err := Parse(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, path.String())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		".email",
		"plans[0",
		"plans[x]",
		"plans[-1]",
		"plans..name",
		"plans.",
		"[0].name",
	}
	for _, raw := range cases {
		_, err := Parse(raw)
		assert.Error(t, err, raw)
	}
}

func TestLookup(t *testing.T) {
	doc := map[string]any{
		"generalInformation": map[string]any{
			"organizationName": "Acme",
			"employeeCount":    float64(50),
		},
		"medicalPlans": []any{
			map[string]any{
				"rateTiers": []any{
					map[string]any{"monthlyPremium": 785.0},
				},
			},
		},
	}

	v, ok := Lookup(doc, "generalInformation.organizationName")
	require.True(t, ok)
	assert.Equal(t, "Acme", v)

	v, ok = Lookup(doc, "medicalPlans[0].rateTiers[0].monthlyPremium")
	require.True(t, ok)
	assert.Equal(t, 785.0, v)

	_, ok = Lookup(doc, "medicalPlans[1]")
	assert.False(t, ok)

	_, ok = Lookup(doc, "generalInformation.organizationName.nested")
	assert.False(t, ok)

	_, ok = Lookup(doc, "dentalPlans[0]")
	assert.False(t, ok)
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"medicalPlans[0].planDesign.deductible": "Medical Plans 1 - Plan Design - Deductible",
		"generalInformation.email":              "General Information - Email",
		"medicalPlans[2].rateTiers[0]":          "Medical Plans 3 - Rate Tiers 1",
		"planDesign.outOfPocketMax":             "Plan Design - Out Of Pocket Max",
		"not valid [":                           "not valid [",
	}
	for raw, want := range cases {
		assert.Equal(t, want, Humanize(raw), raw)
	}
}
