// Package progress computes per-section completion percentages for a survey
// document. Scoring is advisory UI feedback, never a gate, and is recomputed
// from the document on every read rather than persisted.
package progress

import (
	"math"

	"benesurvey/internal/survey/models"
)

// LengthField is the pseudo-field used by plan-array sections: completion is
// binary, 100 when at least one plan entry exists and 0 otherwise. There is
// no partial credit for a half-filled plan.
const LengthField = "length"

// SectionConfig binds a section key to its display name and the static list
// of fields that count toward completion. The table is fixed; it is not
// inferred from the document schema.
type SectionConfig struct {
	Key            string
	Name           string
	RequiredFields []string
}

// Sections is the scoring table, in questionnaire order.
var Sections = []SectionConfig{
	{models.SectionGeneralInformation, "General Information", []string{"organizationName", "contactPerson", "email", "phone", "employeeCount"}},
	{models.SectionMedicalPlans, "Medical Plans", []string{LengthField}},
	{models.SectionDentalPlans, "Dental Plans", []string{LengthField}},
	{models.SectionVisionPlans, "Vision Plans", []string{LengthField}},
	{models.SectionBasicLifeDisability, "Basic Life & Disability", []string{"basicLife", "supplementalLife", "shortTermDisability", "longTermDisability"}},
	{models.SectionRetirement, "Retirement", []string{"plan401k", "plan403b", "pensionPlan"}},
	{models.SectionTimeOff, "Time Off", []string{"paidTimeOff", "sickLeave", "holidays"}},
	{models.SectionBenefitsStrategy, "Benefits Strategy", []string{"objectives", "priorities", "communicationStrategy"}},
	{models.SectionVoluntaryBenefits, "Voluntary Benefits", []string{"criticalIllness", "accident", "hospital"}},
	{models.SectionBestPractices, "Best Practices", []string{"wellnessProgram", "eap", "benefitsEducation"}},
}

// Score computes per-section and overall completion for the document using
// the Sections table.
func Score(doc *models.SurveyData) models.ProgressResult {
	return ScoreWith(doc, Sections)
}

// ScoreWith scores against an explicit table. An empty table yields overall
// zero rather than dividing by zero.
func ScoreWith(doc *models.SurveyData, table []SectionConfig) models.ProgressResult {
	view := doc.Map()

	result := models.ProgressResult{Sections: make([]models.SectionProgress, 0, len(table))}
	sum := 0
	for _, cfg := range table {
		pct := sectionPercent(view[cfg.Key], cfg.RequiredFields)
		result.Sections = append(result.Sections, models.SectionProgress{Section: cfg.Key, Percent: pct})
		sum += pct
	}
	if len(table) > 0 {
		result.Overall = int(math.Round(float64(sum) / float64(len(table))))
	}
	return result
}

func sectionPercent(section any, required []string) int {
	if section == nil || len(required) == 0 {
		return 0
	}

	if len(required) == 1 && required[0] == LengthField {
		arr, ok := section.([]any)
		if ok && len(arr) > 0 {
			return 100
		}
		return 0
	}

	m, ok := section.(map[string]any)
	if !ok {
		return 0
	}
	completed := 0
	for _, field := range required {
		if present(m[field]) {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(required)) * 100))
}

// present mirrors the document's notion of an answered field: not nil, not
// an empty string, arrays with at least one element, objects with at least
// one populated key. Zero and false are answers. The check never recurses
// into nested completeness.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
