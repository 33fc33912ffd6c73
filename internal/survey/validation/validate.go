// Package validation holds the survey document rule sets. Validate is the
// strict pre-submission gate; ValidateImport is the lenient structural gate
// applied to externally produced payloads. Both are pure functions over an
// immutable document snapshot, so concurrent runs never interfere.
package validation

import (
	"fmt"

	"benesurvey/internal/survey/models"
)

// Validate evaluates the full submission rule catalog against the document.
// Absent sections are skipped, never reported. Findings come back partitioned
// by severity; IsValid reflects error findings only.
func Validate(doc *models.SurveyData) models.ValidationResult {
	if doc == nil {
		return models.NewValidationResult(nil)
	}
	var findings []models.Finding
	findings = append(findings, generalInformationRules(doc.GeneralInformation)...)
	findings = append(findings, medicalPlanRules(doc.MedicalPlans)...)
	findings = append(findings, dentalPlanRules(doc.DentalPlans)...)
	findings = append(findings, retirementRules(doc.Retirement)...)
	findings = append(findings, timeOffRules(doc.TimeOff)...)
	return models.NewValidationResult(findings)
}

func generalInformationRules(gi *models.GeneralInformation) []models.Finding {
	if gi == nil {
		return nil
	}
	var out []models.Finding

	if blank(gi.OrganizationName) {
		out = append(out, models.Finding{
			Field:    "generalInformation.organizationName",
			Message:  "Organization name is required",
			Type:     models.FindingRequired,
			Severity: models.SeverityError,
		})
	}

	if blank(gi.Email) {
		out = append(out, models.Finding{
			Field:    "generalInformation.email",
			Message:  "Email is required",
			Type:     models.FindingRequired,
			Severity: models.SeverityError,
		})
	} else if !validEmail(*gi.Email) {
		out = append(out, models.Finding{
			Field:    "generalInformation.email",
			Message:  "Please enter a valid email address",
			Type:     models.FindingFormat,
			Severity: models.SeverityError,
		})
	}

	if blank(gi.ContactPerson) {
		out = append(out, models.Finding{
			Field:    "generalInformation.contactPerson",
			Message:  "Contact person is required",
			Type:     models.FindingRequired,
			Severity: models.SeverityError,
		})
	}

	if gi.Phone != nil && *gi.Phone != "" && !validPhone(*gi.Phone) {
		out = append(out, models.Finding{
			Field:    "generalInformation.phone",
			Message:  "Please enter a valid phone number",
			Type:     models.FindingFormat,
			Severity: models.SeverityWarning,
		})
	}

	if gi.EmployeeCount != nil {
		switch {
		case *gi.EmployeeCount < 0:
			out = append(out, models.Finding{
				Field:    "generalInformation.employeeCount",
				Message:  "Employee count must be a positive number",
				Type:     models.FindingRange,
				Severity: models.SeverityError,
			})
		case *gi.EmployeeCount == 0:
			out = append(out, models.Finding{
				Field:    "generalInformation.employeeCount",
				Message:  "Employee count should be greater than zero",
				Type:     models.FindingRange,
				Severity: models.SeverityWarning,
			})
		}
	}

	if gi.EligibleEmployees != nil && gi.EmployeeCount != nil && *gi.EligibleEmployees > *gi.EmployeeCount {
		out = append(out, models.Finding{
			Field:    "generalInformation.eligibleEmployees",
			Message:  "Eligible employees cannot exceed total employee count",
			Type:     models.FindingLogic,
			Severity: models.SeverityError,
		})
	}

	if gi.AverageAge != nil && (*gi.AverageAge < 18 || *gi.AverageAge > 100) {
		out = append(out, models.Finding{
			Field:    "generalInformation.averageAge",
			Message:  "Average age must be between 18 and 100",
			Type:     models.FindingRange,
			Severity: models.SeverityWarning,
		})
	}

	return out
}

func medicalPlanRules(plans []models.MedicalPlan) []models.Finding {
	var out []models.Finding
	for i, plan := range plans {
		prefix := fmt.Sprintf("medicalPlans[%d]", i)

		if blank(plan.PlanName) {
			out = append(out, models.Finding{
				Field:    prefix + ".planName",
				Message:  "Plan name is required",
				Type:     models.FindingRequired,
				Severity: models.SeverityError,
			})
		}
		if blank(plan.Carrier) {
			out = append(out, models.Finding{
				Field:    prefix + ".carrier",
				Message:  "Carrier name is required",
				Type:     models.FindingRequired,
				Severity: models.SeverityError,
			})
		}
		if blank(plan.PlanType) {
			out = append(out, models.Finding{
				Field:    prefix + ".planType",
				Message:  "Plan type is required",
				Type:     models.FindingRequired,
				Severity: models.SeverityError,
			})
		}
		if plan.EnrolledEmployees != nil && *plan.EnrolledEmployees < 0 {
			out = append(out, models.Finding{
				Field:    prefix + ".enrolledEmployees",
				Message:  "Enrolled employees must be non-negative",
				Type:     models.FindingRange,
				Severity: models.SeverityError,
			})
		}

		for ti, tier := range plan.RateTiers {
			tierField := fmt.Sprintf("%s.rateTiers[%d]", prefix, ti)

			if tier.MonthlyPremium != nil && *tier.MonthlyPremium <= 0 {
				out = append(out, models.Finding{
					Field:    tierField + ".monthlyPremium",
					Message:  "Monthly premium must be greater than zero",
					Type:     models.FindingRange,
					Severity: models.SeverityError,
				})
			}

			if total, mismatch := contributionMismatch(tier); mismatch {
				out = append(out, models.Finding{
					Field: tierField,
					Message: fmt.Sprintf(
						"Employer + Employee contribution (%.2f) must equal monthly premium (%.2f)",
						total, *tier.MonthlyPremium),
					Type:     models.FindingLogic,
					Severity: models.SeverityError,
				})
			}

			if negative(tier.EmployerContribution) || negative(tier.EmployeeContribution) {
				out = append(out, models.Finding{
					Field:    tierField,
					Message:  "Contributions cannot be negative",
					Type:     models.FindingRange,
					Severity: models.SeverityError,
				})
			}
		}

		out = append(out, medicalPlanDesignRules(prefix, plan.PlanDesign)...)
	}
	return out
}

func medicalPlanDesignRules(prefix string, pd *models.MedicalPlanDesign) []models.Finding {
	if pd == nil {
		return nil
	}
	var out []models.Finding

	if d := pd.Deductible; d != nil {
		if negative(d.Individual) || negative(d.Family) {
			out = append(out, models.Finding{
				Field:    prefix + ".planDesign.deductible",
				Message:  "Deductibles cannot be negative",
				Type:     models.FindingRange,
				Severity: models.SeverityError,
			})
		}
		if familyBelowIndividual(d.Family, d.Individual) {
			out = append(out, models.Finding{
				Field:    prefix + ".planDesign.deductible",
				Message:  "Family deductible should be greater than or equal to individual deductible",
				Type:     models.FindingLogic,
				Severity: models.SeverityWarning,
			})
		}
	}

	if oop := pd.OutOfPocketMax; oop != nil && familyBelowIndividual(oop.Family, oop.Individual) {
		out = append(out, models.Finding{
			Field:    prefix + ".planDesign.outOfPocketMax",
			Message:  "Family out-of-pocket maximum should be >= individual maximum",
			Type:     models.FindingLogic,
			Severity: models.SeverityWarning,
		})
	}

	if c := pd.Coinsurance; c != nil && outsidePercent(c.InNetwork) {
		out = append(out, models.Finding{
			Field:    prefix + ".planDesign.coinsurance.inNetwork",
			Message:  "Coinsurance percentage must be between 0 and 100",
			Type:     models.FindingRange,
			Severity: models.SeverityError,
		})
	}

	return out
}

func dentalPlanRules(plans []models.DentalPlan) []models.Finding {
	var out []models.Finding
	for i, plan := range plans {
		prefix := fmt.Sprintf("dentalPlans[%d]", i)

		if blank(plan.PlanName) {
			out = append(out, models.Finding{
				Field:    prefix + ".planName",
				Message:  "Plan name is required",
				Type:     models.FindingRequired,
				Severity: models.SeverityError,
			})
		}
		if blank(plan.Carrier) {
			out = append(out, models.Finding{
				Field:    prefix + ".carrier",
				Message:  "Carrier name is required",
				Type:     models.FindingRequired,
				Severity: models.SeverityError,
			})
		}

		if plan.PlanDesign != nil && plan.PlanDesign.Coverage != nil {
			cov := plan.PlanDesign.Coverage
			classes := []struct {
				name  string
				value *float64
			}{
				{"preventive", cov.Preventive},
				{"basic", cov.Basic},
				{"major", cov.Major},
				{"orthodontia", cov.Orthodontia},
			}
			for _, class := range classes {
				if outsidePercent(class.value) {
					out = append(out, models.Finding{
						Field:    fmt.Sprintf("%s.planDesign.coverage.%s", prefix, class.name),
						Message:  "Coverage percentage must be between 0 and 100",
						Type:     models.FindingRange,
						Severity: models.SeverityError,
					})
				}
			}
		}
	}
	return out
}

func retirementRules(ret *models.Retirement) []models.Finding {
	if ret == nil || ret.Plan401k == nil {
		return nil
	}
	p := ret.Plan401k
	offered := p.Offered != nil && *p.Offered
	matched := p.EmployerMatch != nil && p.EmployerMatch.Provided != nil && *p.EmployerMatch.Provided
	if offered && matched && blank(p.EmployerMatch.Formula) {
		return []models.Finding{{
			Field:    "retirement.plan401k.employerMatch.formula",
			Message:  "Employer match formula is required when match is provided",
			Type:     models.FindingRequired,
			Severity: models.SeverityError,
		}}
	}
	return nil
}

func timeOffRules(to *models.TimeOff) []models.Finding {
	if to == nil || to.PaidTimeOff == nil {
		return nil
	}
	pto := to.PaidTimeOff
	offered := pto.Offered != nil && *pto.Offered
	accrual := pto.Structure != nil && *pto.Structure == models.PTOStructureAccrual
	if offered && accrual && len(pto.AccrualRates) == 0 {
		return []models.Finding{{
			Field:    "timeOff.paidTimeOff.accrualRates",
			Message:  "Accrual rates are required when PTO uses an accrual structure",
			Type:     models.FindingRequired,
			Severity: models.SeverityError,
		}}
	}
	return nil
}
