package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"

	"benesurvey/internal/survey/models"
	"benesurvey/pkg/platform/sentinel"
)

// MemoryResponseStore is an in-memory ResponseStore for tests and local runs.
type MemoryResponseStore struct {
	mu        sync.RWMutex
	responses map[string]*models.SurveyResponse
}

func NewMemoryResponseStore() *MemoryResponseStore {
	return &MemoryResponseStore{responses: make(map[string]*models.SurveyResponse)}
}

func (s *MemoryResponseStore) Create(_ context.Context, response *models.SurveyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.responses[response.ID]; exists {
		return sentinel.ErrConflict
	}
	s.responses[response.ID] = cloneResponse(response)
	return nil
}

func (s *MemoryResponseStore) FindByID(_ context.Context, organizationID, id string) (*models.SurveyResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	response, ok := s.responses[id]
	if !ok || response.OrganizationID != organizationID {
		return nil, sentinel.ErrNotFound
	}
	return cloneResponse(response), nil
}

func (s *MemoryResponseStore) List(_ context.Context, organizationID string, filter ListFilter) ([]*models.SurveyResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.SurveyResponse
	for _, response := range s.responses {
		if response.OrganizationID != organizationID {
			continue
		}
		if filter.Status != "" && response.Status != filter.Status {
			continue
		}
		out = append(out, cloneResponse(response))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*models.SurveyResponse{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	if out == nil {
		out = []*models.SurveyResponse{}
	}
	return out, nil
}

func (s *MemoryResponseStore) Update(_ context.Context, response *models.SurveyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.responses[response.ID]
	if !ok || existing.OrganizationID != response.OrganizationID {
		return sentinel.ErrNotFound
	}
	s.responses[response.ID] = cloneResponse(response)
	return nil
}

func (s *MemoryResponseStore) Delete(_ context.Context, organizationID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.responses[id]
	if !ok || existing.OrganizationID != organizationID {
		return sentinel.ErrNotFound
	}
	delete(s.responses, id)
	return nil
}

// cloneResponse deep-copies a record so callers hold an immutable snapshot
// rather than aliasing store state.
func cloneResponse(in *models.SurveyResponse) *models.SurveyResponse {
	out := *in
	if in.Data != nil {
		raw, err := json.Marshal(in.Data)
		if err == nil {
			var data models.SurveyData
			if json.Unmarshal(raw, &data) == nil {
				out.Data = &data
			}
		}
	}
	if in.SubmittedAt != nil {
		t := *in.SubmittedAt
		out.SubmittedAt = &t
	}
	return &out
}

// MemoryValidationStore is an in-memory ValidationStore.
type MemoryValidationStore struct {
	mu       sync.RWMutex
	findings map[string][]models.StoredFinding
}

func NewMemoryValidationStore() *MemoryValidationStore {
	return &MemoryValidationStore{findings: make(map[string][]models.StoredFinding)}
}

func (s *MemoryValidationStore) ReplaceUnresolved(_ context.Context, surveyID string, findings []models.Finding) error {
	stored := make([]models.StoredFinding, 0, len(findings))
	for _, f := range findings {
		stored = append(stored, models.StoredFinding{
			ID:       uuid.NewString(),
			SurveyID: surveyID,
			Field:    f.Field,
			Message:  f.Message,
			Type:     f.Type,
			Severity: f.Severity,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(stored) == 0 {
		delete(s.findings, surveyID)
		return nil
	}
	s.findings[surveyID] = stored
	return nil
}

func (s *MemoryValidationStore) ListUnresolved(_ context.Context, surveyID string) ([]models.StoredFinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StoredFinding{}, s.findings[surveyID]...), nil
}
