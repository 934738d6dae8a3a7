package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/menrva/internal/domain"
	"github.com/pkordes/menrva/internal/repo"
	"github.com/pkordes/menrva/internal/service"
)

// ---- mock RecordRepo -------------------------------------------------------

type mockRecordRepo struct {
	create         func(ctx context.Context, md domain.Metadata) (domain.Record, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Record, error)
	listPaged      func(ctx context.Context, f repo.RecordFilter, p domain.PaginationParams) ([]domain.Record, int64, error)
	updateDraft func(ctx context.Context, id uuid.UUID, md domain.Metadata) (domain.Record, error)
	deleteDraft func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRecordRepo) Create(ctx context.Context, md domain.Metadata) (domain.Record, error) {
	return m.create(ctx, md)
}
func (m *mockRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	return m.getByID(ctx, id)
}
func (m *mockRecordRepo) ListPaged(ctx context.Context, f repo.RecordFilter, p domain.PaginationParams) ([]domain.Record, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockRecordRepo) UpdateDraft(ctx context.Context, id uuid.UUID, md domain.Metadata) (domain.Record, error) {
	return m.updateDraft(ctx, id, md)
}
func (m *mockRecordRepo) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	return m.deleteDraft(ctx, id)
}

// compile-time check
var _ repo.RecordRepo = (*mockRecordRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validMetadata() domain.Metadata {
	return domain.Metadata{
		Title:        "Sleep study",
		Authors:      []domain.Author{{FirstName: "Ada", LastName: "Lovelace"}},
		License:      "cc-by",
		Permissions:  domain.PermissionAllView,
		Terms:        []domain.Term{{Source: "MeSH", Value: "Sleep", ID: "D012890"}},
		ResourceType: domain.ResourceType{General: "dataset", Specific: "dataset"},
	}
}

func storedRecord(typ domain.RecordType) domain.Record {
	md := validMetadata()
	md.Type = typ
	return domain.Record{ID: uuid.New(), Metadata: md}
}

// echoRepo returns a repo whose GetByID yields rec and whose writes echo back.
func echoRepo(rec domain.Record) *mockRecordRepo {
	return &mockRecordRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Record, error) {
			if id != rec.ID {
				return domain.Record{}, domain.ErrNotFound
			}
			return rec, nil
		},
		updateDraft: func(_ context.Context, id uuid.UUID, md domain.Metadata) (domain.Record, error) {
			return domain.Record{ID: id, Metadata: md}, nil
		},
		deleteDraft: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// ---- Create ----------------------------------------------------------------

func TestRecordService_Create_ForcesDraft(t *testing.T) {
	var captured domain.Metadata
	svc := service.NewRecordService(&mockRecordRepo{
		create: func(_ context.Context, md domain.Metadata) (domain.Record, error) {
			captured = md
			return domain.Record{ID: uuid.New(), Metadata: md}, nil
		},
	})

	md := validMetadata()
	md.Type = domain.RecordTypePublished

	got, err := svc.Create(context.Background(), md)

	require.NoError(t, err)
	assert.Equal(t, domain.RecordTypeDraft, captured.Type)
	assert.Equal(t, domain.RecordTypeDraft, got.Metadata.Type)
}

func TestRecordService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Metadata)
		msg    string
	}{
		{"blank title", func(md *domain.Metadata) { md.Title = "   " }, "title is required"},
		{"no authors", func(md *domain.Metadata) { md.Authors = nil }, "at least one author"},
		{"author without last name", func(md *domain.Metadata) { md.Authors[0].LastName = "" }, "author 1"},
		{"unknown license", func(md *domain.Metadata) { md.License = "wtfpl" }, `unknown license "wtfpl"`},
		{"unknown permissions", func(md *domain.Metadata) { md.Permissions = "foo_view" }, `unknown permissions "foo_view"`},
		{"unknown term source", func(md *domain.Metadata) { md.Terms[0].Source = "LCSH" }, `unknown term source "LCSH"`},
		{"unknown resource type", func(md *domain.Metadata) { md.ResourceType.Specific = "hologram" }, "unknown resource type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewRecordService(&mockRecordRepo{
				create: func(context.Context, domain.Metadata) (domain.Record, error) {
					t.Fatal("repo must not be called for invalid input")
					return domain.Record{}, nil
				},
			})
			md := validMetadata()
			tt.mutate(&md)

			_, err := svc.Create(context.Background(), md)

			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestRecordService_Create_RepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := service.NewRecordService(&mockRecordRepo{
		create: func(context.Context, domain.Metadata) (domain.Record, error) {
			return domain.Record{}, boom
		},
	})

	_, err := svc.Create(context.Background(), validMetadata())

	assert.ErrorIs(t, err, boom)
}

// ---- ListPaged -------------------------------------------------------------

func TestRecordService_ListPaged_PassesFilter(t *testing.T) {
	var captured repo.RecordFilter
	svc := service.NewRecordService(&mockRecordRepo{
		listPaged: func(_ context.Context, f repo.RecordFilter, _ domain.PaginationParams) ([]domain.Record, int64, error) {
			captured = f
			return nil, 0, nil
		},
	})
	f := repo.RecordFilter{Type: domain.RecordTypePublished, License: "cc-by", Access: domain.AccessTierOpen}

	got, total, err := svc.ListPaged(context.Background(), f, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.Equal(t, f, captured)
	assert.NotNil(t, got, "nil from repo must become an empty slice")
	assert.Zero(t, total)
}

func TestRecordService_ListPaged_RejectsUnknownFilters(t *testing.T) {
	svc := service.NewRecordService(&mockRecordRepo{})
	p := domain.NewPaginationParams(nil, nil)

	_, _, err := svc.ListPaged(context.Background(), repo.RecordFilter{Type: "archived"}, p)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = svc.ListPaged(context.Background(), repo.RecordFilter{Access: "secret"}, p)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Update ----------------------------------------------------------------

func TestRecordService_Update_Draft(t *testing.T) {
	rec := storedRecord(domain.RecordTypeDraft)
	svc := service.NewRecordService(echoRepo(rec))

	md := validMetadata()
	md.Title = "Renamed"
	md.Type = domain.RecordTypePublished // ignored

	got, err := svc.Update(context.Background(), rec.ID, md)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Metadata.Title)
	assert.Equal(t, domain.RecordTypeDraft, got.Metadata.Type)
}

func TestRecordService_Update_PublishedIsRejected(t *testing.T) {
	rec := storedRecord(domain.RecordTypePublished)
	svc := service.NewRecordService(echoRepo(rec))

	_, err := svc.Update(context.Background(), rec.ID, validMetadata())

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordService_Update_NotFound(t *testing.T) {
	svc := service.NewRecordService(echoRepo(storedRecord(domain.RecordTypeDraft)))

	_, err := svc.Update(context.Background(), uuid.New(), validMetadata())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Publish ---------------------------------------------------------------

func TestRecordService_Publish(t *testing.T) {
	rec := storedRecord(domain.RecordTypeDraft)
	svc := service.NewRecordService(echoRepo(rec))

	got, err := svc.Publish(context.Background(), rec.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.RecordTypePublished, got.Metadata.Type)
}

func TestRecordService_Publish_Twice(t *testing.T) {
	rec := storedRecord(domain.RecordTypePublished)
	svc := service.NewRecordService(echoRepo(rec))

	_, err := svc.Publish(context.Background(), rec.ID)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "already published")
}

func TestRecordService_Publish_InvalidStoredMetadata(t *testing.T) {
	rec := storedRecord(domain.RecordTypeDraft)
	rec.Metadata.License = "retired-license"
	svc := service.NewRecordService(echoRepo(rec))

	_, err := svc.Publish(context.Background(), rec.ID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Delete ----------------------------------------------------------------

func TestRecordService_Delete_Draft(t *testing.T) {
	rec := storedRecord(domain.RecordTypeDraft)
	var deleted uuid.UUID
	r := echoRepo(rec)
	r.deleteDraft = func(_ context.Context, id uuid.UUID) error {
		deleted = id
		return nil
	}

	err := service.NewRecordService(r).Delete(context.Background(), rec.ID)

	require.NoError(t, err)
	assert.Equal(t, rec.ID, deleted)
}

func TestRecordService_Delete_PublishedIsRejected(t *testing.T) {
	rec := storedRecord(domain.RecordTypePublished)

	err := service.NewRecordService(echoRepo(rec)).Delete(context.Background(), rec.ID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- concurrent state changes ---------------------------------------------

// racingRepo serves rec as a draft on the first read and as after on every
// later read, while its draft-only writes never match. This is what the
// service sees when another request publishes or deletes the record between
// the draft check and the write.
func racingRepo(rec domain.Record, after func() (domain.Record, error)) *mockRecordRepo {
	reads := 0
	return &mockRecordRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Record, error) {
			reads++
			if reads == 1 {
				return rec, nil
			}
			return after()
		},
		updateDraft: func(context.Context, uuid.UUID, domain.Metadata) (domain.Record, error) {
			return domain.Record{}, fmt.Errorf("repo.RecordRepo.UpdateDraft: %w", domain.ErrNotFound)
		},
		deleteDraft: func(context.Context, uuid.UUID) error {
			return fmt.Errorf("repo.RecordRepo.DeleteDraft: %w", domain.ErrNotFound)
		},
	}
}

func publishedMeanwhile(rec domain.Record) func() (domain.Record, error) {
	return func() (domain.Record, error) {
		rec.Metadata.Type = domain.RecordTypePublished
		return rec, nil
	}
}

func deletedMeanwhile() (domain.Record, error) {
	return domain.Record{}, domain.ErrNotFound
}

func TestRecordService_Update_PublishedMeanwhile(t *testing.T) {
	rec := storedRecord(domain.RecordTypeDraft)
	svc := service.NewRecordService(racingRepo(rec, publishedMeanwhile(rec)))

	_, err := svc.Update(context.Background(), rec.ID, validMetadata())

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "already published")
}

func TestRecordService_Publish_PublishedMeanwhile(t *testing.T) {
	rec := storedRecord(domain.RecordTypeDraft)
	svc := service.NewRecordService(racingRepo(rec, publishedMeanwhile(rec)))

	_, err := svc.Publish(context.Background(), rec.ID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordService_Delete_PublishedMeanwhile(t *testing.T) {
	rec := storedRecord(domain.RecordTypeDraft)
	svc := service.NewRecordService(racingRepo(rec, publishedMeanwhile(rec)))

	err := svc.Delete(context.Background(), rec.ID)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordService_Delete_DeletedMeanwhile(t *testing.T) {
	rec := storedRecord(domain.RecordTypeDraft)
	svc := service.NewRecordService(racingRepo(rec, deletedMeanwhile))

	err := svc.Delete(context.Background(), rec.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordService_Update_RepoErrorPassesThrough(t *testing.T) {
	rec := storedRecord(domain.RecordTypeDraft)
	r := echoRepo(rec)
	boom := errors.New("connection reset")
	r.updateDraft = func(context.Context, uuid.UUID, domain.Metadata) (domain.Record, error) {
		return domain.Record{}, boom
	}

	_, err := service.NewRecordService(r).Update(context.Background(), rec.ID, validMetadata())

	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}
