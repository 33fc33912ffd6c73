package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"benesurvey/internal/survey/models"
	"benesurvey/pkg/platform/sentinel"
)

// PostgresResponseStore persists responses in the survey_responses table.
// The document lives in a JSONB column; the row carries the lifecycle
// metadata columns.
type PostgresResponseStore struct {
	db *sql.DB
}

func NewPostgresResponseStore(db *sql.DB) *PostgresResponseStore {
	return &PostgresResponseStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresResponseStore) Create(ctx context.Context, response *models.SurveyResponse) error {
	data, err := marshalDocument(response.Data)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO survey_responses (id, organization_id, user_id, status, progress, data, created_at, updated_at, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		response.ID,
		response.OrganizationID,
		response.UserID,
		string(response.Status),
		response.Progress,
		data,
		response.CreatedAt,
		response.UpdatedAt,
		response.SubmittedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert survey response: %w", err)
	}
	return nil
}

func (s *PostgresResponseStore) FindByID(ctx context.Context, organizationID, id string) (*models.SurveyResponse, error) {
	query := `
		SELECT id, organization_id, user_id, status, progress, data, created_at, updated_at, submitted_at
		FROM survey_responses
		WHERE id = $1 AND organization_id = $2
	`
	row := s.db.QueryRowContext(ctx, query, id, organizationID)
	response, err := scanResponse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query survey response: %w", err)
	}
	return response, nil
}

func (s *PostgresResponseStore) List(ctx context.Context, organizationID string, filter ListFilter) ([]*models.SurveyResponse, error) {
	query := `
		SELECT id, organization_id, user_id, status, progress, data, created_at, updated_at, submitted_at
		FROM survey_responses
		WHERE organization_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id
		LIMIT CASE WHEN $3 > 0 THEN $3 ELSE NULL END
		OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID, string(filter.Status), filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("query survey responses: %w", err)
	}
	defer rows.Close()

	responses := []*models.SurveyResponse{}
	for rows.Next() {
		response, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan survey response: %w", err)
		}
		responses = append(responses, response)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate survey responses: %w", err)
	}
	return responses, nil
}

func (s *PostgresResponseStore) Update(ctx context.Context, response *models.SurveyResponse) error {
	data, err := marshalDocument(response.Data)
	if err != nil {
		return err
	}

	query := `
		UPDATE survey_responses
		SET status = $3, progress = $4, data = $5, updated_at = $6, submitted_at = $7
		WHERE id = $1 AND organization_id = $2
	`
	result, err := s.db.ExecContext(ctx, query,
		response.ID,
		response.OrganizationID,
		string(response.Status),
		response.Progress,
		data,
		response.UpdatedAt,
		response.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("update survey response: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update survey response: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresResponseStore) Delete(ctx context.Context, organizationID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM survey_responses WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete survey response: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete survey response: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResponse(row rowScanner) (*models.SurveyResponse, error) {
	var (
		response models.SurveyResponse
		status   string
		data     []byte
	)
	err := row.Scan(
		&response.ID,
		&response.OrganizationID,
		&response.UserID,
		&status,
		&response.Progress,
		&data,
		&response.CreatedAt,
		&response.UpdatedAt,
		&response.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	response.Status = models.Status(status)
	if len(data) > 0 {
		var doc models.SurveyData
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode survey document: %w", err)
		}
		response.Data = &doc
	}
	return &response, nil
}

func marshalDocument(data *models.SurveyData) ([]byte, error) {
	if data == nil {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode survey document: %w", err)
	}
	return raw, nil
}

// PostgresValidationStore persists unresolved findings in the
// survey_validations table.
type PostgresValidationStore struct {
	db *sql.DB
}

func NewPostgresValidationStore(db *sql.DB) *PostgresValidationStore {
	return &PostgresValidationStore{db: db}
}

// ReplaceUnresolved deletes the previous unresolved set and inserts the new
// one in a single transaction, so a crash mid-replace never leaves a merged
// view behind.
func (s *PostgresValidationStore) ReplaceUnresolved(ctx context.Context, surveyID string, findings []models.Finding) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace findings: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM survey_validations WHERE survey_response_id = $1 AND resolved = FALSE`, surveyID)
	if err != nil {
		return fmt.Errorf("delete unresolved findings: %w", err)
	}

	for _, f := range findings {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO survey_validations (id, survey_response_id, field, message, type, severity, resolved)
			VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		`, uuid.NewString(), surveyID, f.Field, f.Message, string(f.Type), string(f.Severity))
		if err != nil {
			return fmt.Errorf("insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace findings: %w", err)
	}
	return nil
}

func (s *PostgresValidationStore) ListUnresolved(ctx context.Context, surveyID string) ([]models.StoredFinding, error) {
	query := `
		SELECT id, survey_response_id, field, message, type, severity, resolved
		FROM survey_validations
		WHERE survey_response_id = $1 AND resolved = FALSE
		ORDER BY field, message
	`
	rows, err := s.db.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	findings := []models.StoredFinding{}
	for rows.Next() {
		var (
			f                  models.StoredFinding
			findingType, level string
		)
		if err := rows.Scan(&f.ID, &f.SurveyID, &f.Field, &f.Message, &findingType, &level, &f.Resolved); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		f.Type = models.FindingType(findingType)
		f.Severity = models.Severity(level)
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate findings: %w", err)
	}
	return findings, nil
}
