// Package store persists survey responses and their unresolved validation
// findings. Memory and Postgres implementations share the same interfaces;
// not-found conditions surface as sentinel.ErrNotFound for the service layer
// to translate.
package store

import (
	"context"

	"benesurvey/internal/survey/models"
)

// ListFilter narrows List results. Zero values mean no filtering; Limit 0
// means no cap.
type ListFilter struct {
	Status models.Status
	Limit  int
	Offset int
}

// ResponseStore persists survey response records. All reads are scoped to an
// organization; a response belonging to another organization is not found.
type ResponseStore interface {
	Create(ctx context.Context, response *models.SurveyResponse) error
	FindByID(ctx context.Context, organizationID, id string) (*models.SurveyResponse, error)
	List(ctx context.Context, organizationID string, filter ListFilter) ([]*models.SurveyResponse, error)
	Update(ctx context.Context, response *models.SurveyResponse) error
	Delete(ctx context.Context, organizationID, id string) error
}

// ValidationStore tracks the latest unresolved findings per response.
// ReplaceUnresolved is a full replace of the unresolved set, not a merge, so
// repeated validation runs are idempotent in net effect.
type ValidationStore interface {
	ReplaceUnresolved(ctx context.Context, surveyID string, findings []models.Finding) error
	ListUnresolved(ctx context.Context, surveyID string) ([]models.StoredFinding, error)
}
