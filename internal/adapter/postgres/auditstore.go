package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

// AuditStore provides append-only audit trail persistence backed by
// PostgreSQL. Rows are never updated or deleted.
type AuditStore struct {
	pool *pgxpool.Pool
}

// NewAuditStore creates a new Postgres-backed audit store.
func NewAuditStore(pool *pgxpool.Pool) *AuditStore {
	return &AuditStore{pool: pool}
}

type auditRow struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	Action     string    `db:"action"`
	ResourceID uuid.UUID `db:"resource_id"`
	Origin     string    `db:"origin"`
	CreatedAt  time.Time `db:"created_at"`
}

const auditTable = "audit_log"

var auditColumns = []string{"id", "user_id", "action", "resource_id", "origin", "created_at"}

// Append inserts one audit record and returns the persisted value.
func (s *AuditStore) Append(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	q := QuerierFromCtx(ctx, s.pool)

	sql, args, err := builder.
		Insert(auditTable).
		Columns(auditColumns...).
		Values(record.ID, record.UserID, record.Action.String(), record.ResourceID, record.Origin, record.CreatedAt).
		Suffix("RETURNING " + joinColumns(auditColumns)).
		ToSql()
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("build append audit record: %w", err)
	}

	var row auditRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.AuditRecord{}, mapError(err, "audit record", record.ID)
	}
	return row.toDomain(), nil
}

// QueryByUser returns the user's own audit records, newest-first.
func (s *AuditStore) QueryByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	q := QuerierFromCtx(ctx, s.pool)

	query := builder.
		Select(auditColumns...).
		From(auditTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Offset(uint64(offset))
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query audit records: %w", err)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, mapError(err, "audit record", userID)
	}

	records := make([]domain.AuditRecord, len(rows))
	for i, r := range rows {
		records[i] = r.toDomain()
	}
	return records, nil
}

func (r auditRow) toDomain() domain.AuditRecord {
	return domain.AuditRecord{
		ID:         r.ID,
		UserID:     r.UserID,
		Action:     domain.AuditAction(r.Action),
		ResourceID: r.ResourceID,
		Origin:     r.Origin,
		CreatedAt:  r.CreatedAt,
	}
}
