package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benesurvey/internal/survey/models"
)

func TestValidateImportNilPayload(t *testing.T) {
	result := ValidateImport(nil)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Survey data must be an object", result.Errors[0].Message)
}

func TestValidateImportRequiresKnownSection(t *testing.T) {
	result := ValidateImport(map[string]any{"unrelated": 1})
	require.False(t, result.IsValid)
	assert.Equal(t, "Survey data must contain at least one valid section", result.Errors[0].Message)
}

func TestValidateImportAcceptsMinimalDocument(t *testing.T) {
	result := ValidateImport(map[string]any{
		"generalInformation": map[string]any{
			"organizationName": "Acme",
			"email":            "hr@acme.com",
			"employeeCount":    float64(50),
		},
	})
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateImportShapeErrors(t *testing.T) {
	result := ValidateImport(map[string]any{
		"generalInformation": "not an object",
		"medicalPlans":       map[string]any{},
		"visionPlans":        "nope",
	})
	require.False(t, result.IsValid)

	messages := make([]string, 0, len(result.Errors))
	for _, f := range result.Errors {
		messages = append(messages, f.Message)
	}
	assert.Contains(t, messages, "generalInformation must be an object")
	assert.Contains(t, messages, "medicalPlans must be an array")
	assert.Contains(t, messages, "visionPlans must be an array")
}

func TestValidateImportPlanRules(t *testing.T) {
	result := ValidateImport(map[string]any{
		"medicalPlans": []any{
			map[string]any{
				"carrier":   "BCBS",
				"rateTiers": "not an array",
			},
		},
		"dentalPlans": []any{
			map[string]any{"planName": "Dental Basic"},
		},
	})
	require.False(t, result.IsValid)

	fields := make(map[string]models.FindingType, len(result.Errors))
	for _, f := range result.Errors {
		fields[f.Field] = f.Type
	}
	assert.Equal(t, models.FindingRequired, fields["medicalPlans[0].planName"])
	assert.Equal(t, models.FindingFormat, fields["medicalPlans[0].rateTiers"])
	assert.Equal(t, models.FindingRequired, fields["dentalPlans[0].carrier"])
	assert.NotContains(t, fields, "dentalPlans[0].planName")
}

func TestValidateImportEmployeeCountShape(t *testing.T) {
	for _, count := range []any{"fifty", float64(-1), true} {
		result := ValidateImport(map[string]any{
			"generalInformation": map[string]any{"employeeCount": count},
		})
		require.False(t, result.IsValid, "%v", count)
		assert.Equal(t, "generalInformation.employeeCount", result.Errors[0].Field)
	}
}

func TestValidateImportDeductibleIsBlocking(t *testing.T) {
	// Advisory at submission time, hard error at import time.
	result := ValidateImport(map[string]any{
		"medicalPlans": []any{
			map[string]any{
				"planName": "HDHP",
				"carrier":  "Aetna",
				"planDesign": map[string]any{
					"deductible":     map[string]any{"individual": float64(3000), "family": float64(2000)},
					"outOfPocketMax": map[string]any{"individual": float64(6000), "family": float64(5000)},
				},
			},
		},
	})
	require.Len(t, result.Errors, 2)
	for _, f := range result.Errors {
		assert.Equal(t, models.SeverityError, f.Severity)
		assert.Equal(t, models.FindingLogic, f.Type)
	}
}
