package audit

import "time"

// Event is emitted from domain logic to capture key survey actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp      time.Time
	UserID         string
	OrganizationID string
	SurveyID       string
	Action         string
	Detail         string
	RequestID      string
}

// Audit actions for the survey lifecycle.
const (
	EventSurveyCreated   = "survey_created"
	EventSurveyUpdated   = "survey_updated"
	EventSurveySubmitted = "survey_submitted"
	EventSurveyValidated = "survey_validated"
	EventSurveyImported  = "survey_imported"
	EventSurveyDeleted   = "survey_deleted"
)
