package models

import (
	"encoding/json"
	"strings"

	dErrors "benesurvey/pkg/domain-errors"
)

const maxDocumentBytes = 1 << 20 // 1 MiB of document JSON

// CreateSurveyRequest opens a new draft response, optionally seeded with
// document data. The owning organization comes from the authenticated
// principal, never the body.
type CreateSurveyRequest struct {
	Data *SurveyData `json:"data,omitempty"`
}

func (r *CreateSurveyRequest) Normalize() {}

func (r *CreateSurveyRequest) Validate() error {
	return checkDocumentSize(r.Data)
}

// UpdateSurveyRequest replaces the document of an editable response. Status
// may optionally move the lifecycle forward; submission has its own gate.
type UpdateSurveyRequest struct {
	Data   *SurveyData `json:"data"`
	Status Status      `json:"status,omitempty"`
}

func (r *UpdateSurveyRequest) Normalize() {
	r.Status = Status(strings.TrimSpace(string(r.Status)))
}

func (r *UpdateSurveyRequest) Validate() error {
	if r.Data == nil {
		return dErrors.New(dErrors.CodeBadRequest, "data is required")
	}
	if err := checkDocumentSize(r.Data); err != nil {
		return err
	}
	if r.Status != "" && !r.Status.Valid() {
		return dErrors.Newf(dErrors.CodeBadRequest, "unknown status %q", r.Status)
	}
	if r.Status == StatusSubmitted {
		return dErrors.New(dErrors.CodeBadRequest, "status submitted requires the submit operation")
	}
	return nil
}

// ImportSurveyRequest carries an externally produced document. The payload
// stays raw so structural problems surface as findings instead of decode
// failures.
type ImportSurveyRequest struct {
	Data map[string]any `json:"data"`
}

func (r *ImportSurveyRequest) Normalize() {}

func (r *ImportSurveyRequest) Validate() error {
	if r.Data == nil {
		return dErrors.New(dErrors.CodeBadRequest, "data is required")
	}
	raw, err := json.Marshal(r.Data)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "data is not valid JSON")
	}
	if len(raw) > maxDocumentBytes {
		return dErrors.New(dErrors.CodeBadRequest, "data exceeds maximum document size")
	}
	return nil
}

func checkDocumentSize(data *SurveyData) error {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "data is not valid JSON")
	}
	if len(raw) > maxDocumentBytes {
		return dErrors.New(dErrors.CodeBadRequest, "data exceeds maximum document size")
	}
	return nil
}
