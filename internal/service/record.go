// Package service contains the business logic for the menRva records API.
// Services validate inputs, enforce the draft/published lifecycle, and
// orchestrate repo calls. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/menrva/internal/domain"
	"github.com/pkordes/menrva/internal/labels"
	"github.com/pkordes/menrva/internal/repo"
)

// RecordService implements business logic for Record operations.
type RecordService struct {
	repo repo.RecordRepo
}

// NewRecordService constructs a RecordService backed by the provided RecordRepo.
func NewRecordService(r repo.RecordRepo) *RecordService {
	return &RecordService{repo: r}
}

// Create validates and persists a new deposit. New records are always drafts,
// whatever type the caller supplied.
func (s *RecordService) Create(ctx context.Context, md domain.Metadata) (domain.Record, error) {
	md.Type = domain.RecordTypeDraft
	if err := validateMetadata(md); err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Create: %w", err)
	}
	result, err := s.repo.Create(ctx, md)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single record by ID.
func (s *RecordService) GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of records and the total count of matching records.
// Returns domain.ErrValidation for an unknown record type or access tier.
func (s *RecordService) ListPaged(ctx context.Context, f repo.RecordFilter, p domain.PaginationParams) ([]domain.Record, int64, error) {
	if f.Type != "" && f.Type != domain.RecordTypeDraft && f.Type != domain.RecordTypePublished {
		return nil, 0, fmt.Errorf("service.RecordService.ListPaged: %w: unknown type %q", domain.ErrValidation, f.Type)
	}
	if f.Access != "" && !f.Access.Valid() {
		return nil, 0, fmt.Errorf("service.RecordService.ListPaged: %w: unknown access tier %q", domain.ErrValidation, f.Access)
	}
	records, total, err := s.repo.ListPaged(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.RecordService.ListPaged: %w", err)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, total, nil
}

// Update replaces the metadata of a draft. Published records are immutable.
// The record type cannot be changed through Update; use Publish.
func (s *RecordService) Update(ctx context.Context, id uuid.UUID, md domain.Metadata) (domain.Record, error) {
	if _, err := s.draft(ctx, id); err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Update: %w", err)
	}
	md.Type = domain.RecordTypeDraft
	if err := validateMetadata(md); err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Update: %w", err)
	}
	result, err := s.repo.UpdateDraft(ctx, id, md)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Update: %w", s.explainMiss(ctx, id, err))
	}
	return result, nil
}

// Publish turns a draft into a published record.
// The metadata is re-validated since it may predate a vocabulary change.
func (s *RecordService) Publish(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	current, err := s.draft(ctx, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Publish: %w", err)
	}
	md := current.Metadata
	if err := validateMetadata(md); err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Publish: %w", err)
	}
	md.Type = domain.RecordTypePublished
	result, err := s.repo.UpdateDraft(ctx, id, md)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.RecordService.Publish: %w", s.explainMiss(ctx, id, err))
	}
	return result, nil
}

// Delete removes a draft. Published records cannot be deleted.
func (s *RecordService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.draft(ctx, id); err != nil {
		return fmt.Errorf("service.RecordService.Delete: %w", err)
	}
	if err := s.repo.DeleteDraft(ctx, id); err != nil {
		return fmt.Errorf("service.RecordService.Delete: %w", s.explainMiss(ctx, id, err))
	}
	return nil
}

// draft loads a record and rejects it unless it is still a draft.
func (s *RecordService) draft(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Record{}, err
	}
	if !rec.Metadata.IsDraft() {
		return domain.Record{}, errAlreadyPublished
	}
	return rec, nil
}

var errAlreadyPublished = fmt.Errorf("%w: record is already published", domain.ErrValidation)

// explainMiss classifies a draft-only write that matched no row. The record
// was either deleted or published after draft() read it; a fresh read tells
// which. Other errors pass through unchanged.
func (s *RecordService) explainMiss(ctx context.Context, id uuid.UUID, err error) error {
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, readErr := s.draft(ctx, id); readErr != nil {
		return readErr
	}
	return err
}

// validateMetadata enforces the deposit form's rules.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - At least one author, each with a first and last name.
//   - License must be in the license vocabulary.
//   - Permissions must be one of the deposit permission slugs.
//   - Every term must come from a known subject source.
//   - The resource type pair must be known.
func validateMetadata(md domain.Metadata) error {
	if strings.TrimSpace(md.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(md.Authors) == 0 {
		return fmt.Errorf("%w: at least one author is required", domain.ErrValidation)
	}
	for i, a := range md.Authors {
		if strings.TrimSpace(a.FirstName) == "" || strings.TrimSpace(a.LastName) == "" {
			return fmt.Errorf("%w: author %d needs a first and last name", domain.ErrValidation, i+1)
		}
	}
	if _, ok := labels.LicenseName(md.License); !ok {
		return fmt.Errorf("%w: unknown license %q", domain.ErrValidation, md.License)
	}
	if !slices.Contains(domain.Permissions(), md.Permissions) {
		return fmt.Errorf("%w: unknown permissions %q", domain.ErrValidation, md.Permissions)
	}
	for _, term := range md.Terms {
		if _, ok := labels.SubjectCategoryName(term.Source); !ok {
			return fmt.Errorf("%w: unknown term source %q", domain.ErrValidation, term.Source)
		}
	}
	if !md.ResourceType.Valid() {
		return fmt.Errorf("%w: unknown resource type %q / %q", domain.ErrValidation, md.ResourceType.General, md.ResourceType.Specific)
	}
	return nil
}
