package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benesurvey/internal/survey/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestScoreEmptyDocument(t *testing.T) {
	for _, doc := range []*models.SurveyData{nil, {}} {
		result := Score(doc)
		assert.Equal(t, 0, result.Overall)
		require.Len(t, result.Sections, len(Sections))
		for _, s := range result.Sections {
			assert.Equal(t, 0, s.Percent)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	doc := &models.SurveyData{
		GeneralInformation: &models.GeneralInformation{
			OrganizationName: strPtr("Acme"),
			ContactPerson:    strPtr("Jane Doe"),
			Email:            strPtr("hr@acme.com"),
			Phone:            strPtr("555-0100"),
			EmployeeCount:    intPtr(50),
		},
		MedicalPlans: []models.MedicalPlan{{PlanName: strPtr("PPO")}},
	}
	result := Score(doc)
	assert.GreaterOrEqual(t, result.Overall, 0)
	assert.LessOrEqual(t, result.Overall, 100)
	for _, s := range result.Sections {
		assert.GreaterOrEqual(t, s.Percent, 0)
		assert.LessOrEqual(t, s.Percent, 100)
	}
}

func TestScoreGeneralInformationPartial(t *testing.T) {
	doc := &models.SurveyData{
		GeneralInformation: &models.GeneralInformation{
			OrganizationName: strPtr("Acme"),
			Email:            strPtr("hr@acme.com"),
		},
	}
	// 2 of 5 required fields present.
	assert.Equal(t, 40, Score(doc).Section(models.SectionGeneralInformation))
}

func TestScoreZeroCountsAsAnswered(t *testing.T) {
	zero := 0
	doc := &models.SurveyData{
		GeneralInformation: &models.GeneralInformation{EmployeeCount: &zero},
	}
	assert.Equal(t, 20, Score(doc).Section(models.SectionGeneralInformation))
}

func TestScorePlanArraysAreBinary(t *testing.T) {
	doc := &models.SurveyData{
		MedicalPlans: []models.MedicalPlan{{}},
	}
	result := Score(doc)
	// One entry scores 100 no matter how incomplete the entry is.
	assert.Equal(t, 100, result.Section(models.SectionMedicalPlans))
	assert.Equal(t, 0, result.Section(models.SectionDentalPlans))

	doc.MedicalPlans = []models.MedicalPlan{}
	assert.Equal(t, 0, Score(doc).Section(models.SectionMedicalPlans))
}

func TestScoreObjectSections(t *testing.T) {
	doc := &models.SurveyData{
		Retirement: &models.Retirement{
			Plan401k: &models.Plan401k{Provider: strPtr("Fidelity")},
		},
		BenefitsStrategy: &models.BenefitsStrategy{
			Objectives: []string{"retain talent"},
			Priorities: []models.StrategyPriority{{Category: strPtr("cost")}},
		},
	}
	result := Score(doc)
	// 1 of 3 retirement fields, rounded.
	assert.Equal(t, 33, result.Section(models.SectionRetirement))
	// 2 of 3 strategy fields.
	assert.Equal(t, 67, result.Section(models.SectionBenefitsStrategy))
}

func TestScoreOverallIsMeanOfAllSections(t *testing.T) {
	doc := &models.SurveyData{MedicalPlans: []models.MedicalPlan{{}}}
	// One section at 100, nine at 0.
	assert.Equal(t, 10, Score(doc).Overall)
}

func TestScoreWithEmptyTable(t *testing.T) {
	result := ScoreWith(&models.SurveyData{}, nil)
	assert.Equal(t, 0, result.Overall)
	assert.Empty(t, result.Sections)
}
