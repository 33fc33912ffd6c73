package models

// FindingType classifies what kind of check produced a finding.
type FindingType string

const (
	FindingRequired FindingType = "required"
	FindingFormat   FindingType = "format"
	FindingRange    FindingType = "range"
	FindingLogic    FindingType = "logic"
)

// Severity splits findings into submission blockers and advisories.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation observation tied to a document field.
type Finding struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Type     FindingType `json:"type"`
	Severity Severity    `json:"severity"`
}

// ValidationResult is the outcome of evaluating a rule set against a
// document. IsValid reflects errors only; warnings never block.
type ValidationResult struct {
	IsValid  bool      `json:"isValid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// NewValidationResult partitions findings by severity and derives IsValid.
func NewValidationResult(findings []Finding) ValidationResult {
	result := ValidationResult{IsValid: true, Errors: []Finding{}, Warnings: []Finding{}}
	for _, f := range findings {
		switch f.Severity {
		case SeverityWarning:
			result.Warnings = append(result.Warnings, f)
		default:
			result.Errors = append(result.Errors, f)
			result.IsValid = false
		}
	}
	return result
}

// Findings flattens the result back into a single slice, errors first.
func (r ValidationResult) Findings() []Finding {
	out := make([]Finding, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	return out
}

// ErrorFields returns the distinct field paths carrying error findings, in
// first-seen order. Used for submission rejection detail.
func (r ValidationResult) ErrorFields() []string {
	seen := make(map[string]struct{}, len(r.Errors))
	fields := make([]string, 0, len(r.Errors))
	for _, f := range r.Errors {
		if _, ok := seen[f.Field]; ok {
			continue
		}
		seen[f.Field] = struct{}{}
		fields = append(fields, f.Field)
	}
	return fields
}

// StoredFinding is a persisted finding with resolution bookkeeping.
type StoredFinding struct {
	ID       string      `json:"id"`
	SurveyID string      `json:"surveyId"`
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Type     FindingType `json:"type"`
	Severity Severity    `json:"severity"`
	Resolved bool        `json:"resolved"`
}
