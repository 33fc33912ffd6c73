package validation

import (
	"regexp"
	"strings"

	"benesurvey/internal/survey/models"
)

// contributionEpsilon is the tolerance for the rate tier sum invariant.
// Premiums are entered in dollars and cents, so anything beyond a cent of
// drift is a data error rather than rounding.
const contributionEpsilon = 0.01

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func validPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// contributionMismatch reports whether a tier violates the sum invariant.
// The rule only applies when premium and both contributions are present.
func contributionMismatch(tier models.RateTier) (total float64, mismatch bool) {
	if tier.MonthlyPremium == nil || tier.EmployerContribution == nil || tier.EmployeeContribution == nil {
		return 0, false
	}
	total = *tier.EmployerContribution + *tier.EmployeeContribution
	diff := total - *tier.MonthlyPremium
	if diff < 0 {
		diff = -diff
	}
	return total, diff > contributionEpsilon
}

// familyBelowIndividual reports whether both amounts are present and the
// family amount is below the individual one. Used for deductible and
// out-of-pocket maximum comparisons at both call sites.
func familyBelowIndividual(family, individual *float64) bool {
	return family != nil && individual != nil && *family < *individual
}

func negative(v *float64) bool {
	return v != nil && *v < 0
}

func outsidePercent(v *float64) bool {
	return v != nil && (*v < 0 || *v > 100)
}
