package validation

import (
	"fmt"

	"benesurvey/internal/survey/models"
)

// ValidateImport checks an externally produced payload before it becomes a
// draft document. It works on the raw decoded JSON so shape problems (a
// section that is not an array, a string where a number belongs) surface as
// findings instead of decode failures. Every finding it reports blocks the
// import; the family-versus-individual comparisons that are advisory at
// submission time are hard errors here.
func ValidateImport(payload map[string]any) models.ValidationResult {
	var out []models.Finding

	if payload == nil {
		out = append(out, models.Finding{
			Field:    "data",
			Message:  "Survey data must be an object",
			Type:     models.FindingFormat,
			Severity: models.SeverityError,
		})
		return models.NewValidationResult(out)
	}

	known := false
	for _, key := range models.SectionKeys() {
		if _, ok := payload[key]; ok {
			known = true
			break
		}
	}
	if !known {
		out = append(out, models.Finding{
			Field:    "data",
			Message:  "Survey data must contain at least one valid section",
			Type:     models.FindingRequired,
			Severity: models.SeverityError,
		})
	}

	out = append(out, importGeneralInformation(payload)...)
	out = append(out, importPlanSection(payload, models.SectionMedicalPlans, true)...)
	out = append(out, importPlanSection(payload, models.SectionDentalPlans, false)...)
	out = append(out, importVisionPlans(payload)...)

	return models.NewValidationResult(out)
}

func importGeneralInformation(payload map[string]any) []models.Finding {
	raw, ok := payload[models.SectionGeneralInformation]
	if !ok || raw == nil {
		return nil
	}
	gi, ok := raw.(map[string]any)
	if !ok {
		return []models.Finding{{
			Field:    models.SectionGeneralInformation,
			Message:  "generalInformation must be an object",
			Type:     models.FindingFormat,
			Severity: models.SeverityError,
		}}
	}
	var out []models.Finding

	if email, ok := gi["email"].(string); ok && email != "" && !validEmail(email) {
		out = append(out, models.Finding{
			Field:    "generalInformation.email",
			Message:  "generalInformation.email must be a valid email address",
			Type:     models.FindingFormat,
			Severity: models.SeverityError,
		})
	}

	if raw, ok := gi["employeeCount"]; ok && raw != nil {
		count, isNumber := raw.(float64)
		if !isNumber || count < 0 {
			out = append(out, models.Finding{
				Field:    "generalInformation.employeeCount",
				Message:  "generalInformation.employeeCount must be a non-negative number",
				Type:     models.FindingRange,
				Severity: models.SeverityError,
			})
		}
	}

	return out
}

// importPlanSection handles medicalPlans and dentalPlans, which share the
// name/carrier presence rules. Medical plans additionally check rate tier
// shape and the plan design comparisons.
func importPlanSection(payload map[string]any, section string, medical bool) []models.Finding {
	raw, ok := payload[section]
	if !ok || raw == nil {
		return nil
	}
	plans, ok := raw.([]any)
	if !ok {
		return []models.Finding{{
			Field:    section,
			Message:  section + " must be an array",
			Type:     models.FindingFormat,
			Severity: models.SeverityError,
		}}
	}
	var out []models.Finding
	for i, rawPlan := range plans {
		prefix := fmt.Sprintf("%s[%d]", section, i)
		plan, ok := rawPlan.(map[string]any)
		if !ok {
			out = append(out, models.Finding{
				Field:    prefix,
				Message:  prefix + " must be an object",
				Type:     models.FindingFormat,
				Severity: models.SeverityError,
			})
			continue
		}

		if !presentString(plan["planName"]) {
			out = append(out, models.Finding{
				Field:    prefix + ".planName",
				Message:  prefix + ".planName is required",
				Type:     models.FindingRequired,
				Severity: models.SeverityError,
			})
		}
		if !presentString(plan["carrier"]) {
			out = append(out, models.Finding{
				Field:    prefix + ".carrier",
				Message:  prefix + ".carrier is required",
				Type:     models.FindingRequired,
				Severity: models.SeverityError,
			})
		}

		if !medical {
			continue
		}

		if tiers, ok := plan["rateTiers"]; ok && tiers != nil {
			if _, isArray := tiers.([]any); !isArray {
				out = append(out, models.Finding{
					Field:    prefix + ".rateTiers",
					Message:  prefix + ".rateTiers must be an array",
					Type:     models.FindingFormat,
					Severity: models.SeverityError,
				})
			}
		}

		out = append(out, importPlanDesign(prefix, plan["planDesign"])...)
	}
	return out
}

// importPlanDesign applies the family/individual comparisons as blocking
// errors, the stricter grade of the rule used at this gate.
func importPlanDesign(prefix string, raw any) []models.Finding {
	pd, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	var out []models.Finding

	if family, individual, ok := amountPair(pd["deductible"]); ok && family < individual {
		out = append(out, models.Finding{
			Field:    prefix + ".planDesign.deductible",
			Message:  "Family deductible must be greater than or equal to individual deductible",
			Type:     models.FindingLogic,
			Severity: models.SeverityError,
		})
	}
	if family, individual, ok := amountPair(pd["outOfPocketMax"]); ok && family < individual {
		out = append(out, models.Finding{
			Field:    prefix + ".planDesign.outOfPocketMax",
			Message:  "Family out-of-pocket maximum must be greater than or equal to individual maximum",
			Type:     models.FindingLogic,
			Severity: models.SeverityError,
		})
	}

	return out
}

func importVisionPlans(payload map[string]any) []models.Finding {
	raw, ok := payload[models.SectionVisionPlans]
	if !ok || raw == nil {
		return nil
	}
	if _, isArray := raw.([]any); !isArray {
		return []models.Finding{{
			Field:    models.SectionVisionPlans,
			Message:  "visionPlans must be an array",
			Type:     models.FindingFormat,
			Severity: models.SeverityError,
		}}
	}
	return nil
}

func presentString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func amountPair(raw any) (family, individual float64, ok bool) {
	m, isMap := raw.(map[string]any)
	if !isMap {
		return 0, 0, false
	}
	family, fok := m["family"].(float64)
	individual, iok := m["individual"].(float64)
	return family, individual, fok && iok
}
