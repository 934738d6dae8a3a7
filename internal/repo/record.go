// Package repo contains all database access logic for the menRva records API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/menrva/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RecordFilter narrows ListPaged. Zero-valued fields do not filter.
type RecordFilter struct {
	Type    domain.RecordType
	License string
	Access  domain.AccessTier
}

// RecordRepo defines the persistence operations for Records.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type RecordRepo interface {
	// Create inserts a new record and returns it with the DB-generated id,
	// created_at and updated_at populated.
	Create(ctx context.Context, md domain.Metadata) (domain.Record, error)

	// GetByID retrieves a single record by its UUID primary key.
	// Returns domain.ErrNotFound if no record with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error)

	// ListPaged returns one page of records matching f, newest first,
	// and the total number of matching records.
	ListPaged(ctx context.Context, f RecordFilter, p domain.PaginationParams) ([]domain.Record, int64, error)

	// UpdateDraft replaces the metadata document of a record that is still a
	// draft. The draft check and the write are one statement, so a record
	// published concurrently is never overwritten.
	// Returns domain.ErrNotFound if no draft with that ID exists.
	UpdateDraft(ctx context.Context, id uuid.UUID, md domain.Metadata) (domain.Record, error)

	// DeleteDraft removes a record by ID if it is still a draft.
	// Returns domain.ErrNotFound if no draft with that ID exists.
	DeleteDraft(ctx context.Context, id uuid.UUID) error
}

// pgRecordRepo is the Postgres implementation of RecordRepo.
type pgRecordRepo struct {
	db db
}

// NewRecordRepo constructs a RecordRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRecordRepo(db db) RecordRepo {
	return &pgRecordRepo{db: db}
}

// Create inserts a new record row and returns the full persisted record.
func (r *pgRecordRepo) Create(ctx context.Context, md domain.Metadata) (domain.Record, error) {
	const q = `
		INSERT INTO records (metadata)
		VALUES (@metadata)
		RETURNING id, metadata, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"metadata": md})
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a record by primary key.
func (r *pgRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	const q = `
		SELECT id, metadata, created_at, updated_at
		FROM records
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.GetByID: %w", err)
	}
	return result, nil
}

// filterClause is shared by the count and page queries of ListPaged.
// The access tiers use the same prefix rule as the UI labels.
const filterClause = `
		WHERE (@type::text = '' OR metadata ->> 'type' = @type::text)
		  AND (@license::text = '' OR metadata ->> 'license' = @license::text)
		  AND (@access::text = ''
		       OR (@access::text = 'open' AND metadata ->> 'permissions' LIKE @open_pattern::text)
		       OR (@access::text = 'restricted' AND metadata ->> 'permissions' LIKE @restricted_pattern::text)
		       OR (@access::text = 'private'
		           AND metadata ->> 'permissions' NOT LIKE @open_pattern::text
		           AND metadata ->> 'permissions' NOT LIKE @restricted_pattern::text))`

// ListPaged returns one page of records matching f, ordered by created_at descending.
func (r *pgRecordRepo) ListPaged(ctx context.Context, f RecordFilter, p domain.PaginationParams) ([]domain.Record, int64, error) {
	args := pgx.NamedArgs{
		"type":               string(f.Type),
		"license":            f.License,
		"access":             string(f.Access),
		"open_pattern":       likePrefix(domain.OpenPermissionPrefix),
		"restricted_pattern": likePrefix(domain.RestrictedPermissionPrefix),
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM records`+filterClause, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.RecordRepo.ListPaged: count: %w", err)
	}

	args["limit"] = p.Limit
	args["offset"] = p.Offset()
	const page = `
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, `SELECT id, metadata, created_at, updated_at FROM records`+filterClause+page, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.RecordRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.RecordRepo.ListPaged: scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.RecordRepo.ListPaged: rows: %w", err)
	}
	return records, total, nil
}

// UpdateDraft overwrites the metadata document of a draft and bumps updated_at.
func (r *pgRecordRepo) UpdateDraft(ctx context.Context, id uuid.UUID, md domain.Metadata) (domain.Record, error) {
	const q = `
		UPDATE records
		SET metadata   = @metadata,
		    updated_at = now()
		WHERE id = @id
		  AND metadata ->> 'type' = @draft
		RETURNING id, metadata, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "metadata": md, "draft": string(domain.RecordTypeDraft)})
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.UpdateDraft: %w", err)
	}
	return result, nil
}

// DeleteDraft removes a draft by primary key.
func (r *pgRecordRepo) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	const q = `
		DELETE FROM records
		WHERE id = @id
		  AND metadata ->> 'type' = @draft`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "draft": string(domain.RecordTypeDraft)})
	if err != nil {
		return fmt.Errorf("repo.RecordRepo.DeleteDraft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RecordRepo.DeleteDraft: %w", domain.ErrNotFound)
	}
	return nil
}

// likePrefix builds a LIKE pattern matching strings that start with prefix,
// escaping the LIKE wildcards it contains ("_" in particular).
func likePrefix(prefix string) string {
	out := make([]byte, 0, len(prefix)+4)
	for i := 0; i < len(prefix); i++ {
		switch c := prefix[i]; c {
		case '%', '_', '\\':
			out = append(out, '\\', c)
		default:
			out = append(out, c)
		}
	}
	return string(out) + "%"
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanRecord to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord maps a single database row into a domain.Record.
// The jsonb metadata column is decoded straight into domain.Metadata.
func scanRecord(s scanner) (domain.Record, error) {
	var (
		rec domain.Record
		id  pgtype.UUID
	)

	err := s.Scan(&id, &rec.Metadata, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Record{}, domain.ErrNotFound
		}
		return domain.Record{}, err
	}

	rec.ID = uuid.UUID(id.Bytes)
	return rec, nil
}
