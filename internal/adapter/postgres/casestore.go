package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

// builder is the shared squirrel statement builder with Postgres placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// CaseStore provides case persistence backed by PostgreSQL. Every query is
// scoped by user_id so ownership is enforced in SQL, not in application code.
// Multi-statement writes (ownership check, mutation, case touch) run inside
// a transaction.
type CaseStore struct {
	pool *pgxpool.Pool
	tx   *TxManager
}

// NewCaseStore creates a new Postgres-backed case store.
func NewCaseStore(pool *pgxpool.Pool) *CaseStore {
	return &CaseStore{pool: pool, tx: NewTxManager(pool)}
}

type caseRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Title       string    `db:"title"`
	ClientName  string    `db:"client_name"`
	Status      string    `db:"status"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type documentRow struct {
	ID            uuid.UUID `db:"id"`
	CaseID        uuid.UUID `db:"case_id"`
	Name          string    `db:"name"`
	MediaType     string    `db:"media_type"`
	Size          int64     `db:"size"`
	StoragePath   string    `db:"storage_path"`
	Status        string    `db:"status"`
	RawContent    string    `db:"raw_content"`
	MaskedContent string    `db:"masked_content"`
	Summary       string    `db:"summary"`
	UploadedAt    time.Time `db:"uploaded_at"`
}

type activityRow struct {
	ID        uuid.UUID `db:"id"`
	CaseID    uuid.UUID `db:"case_id"`
	Agent     string    `db:"agent"`
	Message   string    `db:"message"`
	Result    string    `db:"result"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	casesTable    = "cases"
	docsTable     = "documents"
	activityTable = "activity_log"
)

var (
	caseColumns     = []string{"id", "user_id", "title", "client_name", "status", "description", "created_at", "updated_at"}
	docColumns      = []string{"id", "case_id", "name", "media_type", "size", "storage_path", "status", "raw_content", "masked_content", "summary", "uploaded_at"}
	activityColumns = []string{"id", "case_id", "agent", "message", "result", "created_at"}
)

// ListCases returns the user's cases (without documents and activity),
// most recently updated first.
func (s *CaseStore) ListCases(ctx context.Context, userID uuid.UUID) ([]domain.Case, error) {
	q := QuerierFromCtx(ctx, s.pool)

	sql, args, err := builder.
		Select(caseColumns...).
		From(casesTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cases: %w", err)
	}

	var rows []caseRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, mapError(err, "case", userID)
	}

	cases := make([]domain.Case, len(rows))
	for i, r := range rows {
		cases[i] = r.toDomain()
	}
	return cases, nil
}

// GetCase returns one owned case with its documents (upload order) and
// activity log (newest-first). Non-owned and nonexistent IDs both map to
// domain.ErrNotFound.
func (s *CaseStore) GetCase(ctx context.Context, userID, caseID uuid.UUID) (*domain.Case, error) {
	q := QuerierFromCtx(ctx, s.pool)

	sql, args, err := builder.
		Select(caseColumns...).
		From(casesTable).
		Where(sq.Eq{"id": caseID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get case: %w", err)
	}

	var row caseRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, mapError(err, "case", caseID)
	}
	c := row.toDomain()

	sql, args, err = builder.
		Select(docColumns...).
		From(docsTable).
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("uploaded_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list documents: %w", err)
	}

	var docRows []documentRow
	if err := pgxscan.Select(ctx, q, &docRows, sql, args...); err != nil {
		return nil, mapError(err, "case", caseID)
	}
	c.Documents = make([]domain.Document, len(docRows))
	for i, d := range docRows {
		c.Documents[i] = d.toDomain()
	}

	sql, args, err = builder.
		Select(activityColumns...).
		From(activityTable).
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list activity: %w", err)
	}

	var actRows []activityRow
	if err := pgxscan.Select(ctx, q, &actRows, sql, args...); err != nil {
		return nil, mapError(err, "case", caseID)
	}
	c.Activity = make([]domain.ActivityEntry, len(actRows))
	for i, a := range actRows {
		c.Activity[i] = a.toDomain()
	}

	return &c, nil
}

// CountByUser returns the number of cases owned by userID.
func (s *CaseStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	q := QuerierFromCtx(ctx, s.pool)

	sql, args, err := builder.
		Select("COUNT(*)").
		From(casesTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count cases: %w", err)
	}

	var count int
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, mapError(err, "case", userID)
	}
	return count, nil
}

// CreateCase inserts a new case and returns the persisted value.
func (s *CaseStore) CreateCase(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	q := QuerierFromCtx(ctx, s.pool)

	sql, args, err := builder.
		Insert(casesTable).
		Columns(caseColumns...).
		Values(c.ID, c.UserID, c.Title, c.ClientName, c.Status.String(), c.Description, c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING " + joinColumns(caseColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create case: %w", err)
	}

	var row caseRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, mapError(err, "case", c.ID)
	}
	created := row.toDomain()
	return &created, nil
}

// UpdateCase applies the patch to an owned case. A non-owned or nonexistent
// case ID produces domain.ErrNotFound and no mutation.
func (s *CaseStore) UpdateCase(ctx context.Context, userID, caseID uuid.UUID, patch domain.CasePatch) (*domain.Case, error) {
	q := QuerierFromCtx(ctx, s.pool)

	update := builder.
		Update(casesTable).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": caseID, "user_id": userID}).
		Suffix("RETURNING " + joinColumns(caseColumns))

	if patch.Title != nil {
		update = update.Set("title", *patch.Title)
	}
	if patch.ClientName != nil {
		update = update.Set("client_name", *patch.ClientName)
	}
	if patch.Status != nil {
		update = update.Set("status", patch.Status.String())
	}
	if patch.Description != nil {
		update = update.Set("description", *patch.Description)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update case: %w", err)
	}

	var row caseRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, mapError(err, "case", caseID)
	}
	updated := row.toDomain()
	return &updated, nil
}

// AddDocument attaches a document to an owned case.
func (s *CaseStore) AddDocument(ctx context.Context, userID, caseID uuid.UUID, doc domain.Document) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.assertOwned(ctx, userID, caseID); err != nil {
			return err
		}
		q := QuerierFromCtx(ctx, s.pool)

		sql, args, err := builder.
			Insert(docsTable).
			Columns(docColumns...).
			Values(doc.ID, caseID, doc.Name, doc.MediaType, doc.Size, doc.StoragePath,
				doc.Status.String(), doc.RawContent, doc.MaskedContent, doc.Summary, doc.UploadedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("build add document: %w", err)
		}

		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return mapError(err, "document", doc.ID)
		}
		return s.touch(ctx, caseID)
	})
}

// SetDocumentStatus transitions a document without touching content fields.
func (s *CaseStore) SetDocumentStatus(ctx context.Context, userID, caseID, docID uuid.UUID, status domain.DocumentStatus) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.assertOwned(ctx, userID, caseID); err != nil {
			return err
		}
		q := QuerierFromCtx(ctx, s.pool)

		sql, args, err := builder.
			Update(docsTable).
			Set("status", status.String()).
			Where(sq.Eq{"id": docID, "case_id": caseID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build set document status: %w", err)
		}

		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			return mapError(err, "document", docID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
		}
		return s.touch(ctx, caseID)
	})
}

// CompleteDocument sets both content projections and the Completed status in
// a single UPDATE, so the transition is atomic for readers.
func (s *CaseStore) CompleteDocument(ctx context.Context, userID, caseID, docID uuid.UUID, raw, masked, summary string) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.assertOwned(ctx, userID, caseID); err != nil {
			return err
		}
		q := QuerierFromCtx(ctx, s.pool)

		sql, args, err := builder.
			Update(docsTable).
			Set("status", domain.DocumentStatusCompleted.String()).
			Set("raw_content", raw).
			Set("masked_content", masked).
			Set("summary", summary).
			Where(sq.Eq{"id": docID, "case_id": caseID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build complete document: %w", err)
		}

		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			return mapError(err, "document", docID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
		}
		return s.touch(ctx, caseID)
	})
}

// AppendActivity inserts one activity entry for an owned case. Ordering is
// by created_at DESC at read time, so the append itself is a plain insert.
func (s *CaseStore) AppendActivity(ctx context.Context, userID, caseID uuid.UUID, entry domain.ActivityEntry) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.assertOwned(ctx, userID, caseID); err != nil {
			return err
		}
		q := QuerierFromCtx(ctx, s.pool)

		sql, args, err := builder.
			Insert(activityTable).
			Columns(activityColumns...).
			Values(entry.ID, caseID, entry.Agent.String(), entry.Message, entry.Result, entry.CreatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("build append activity: %w", err)
		}

		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return mapError(err, "activity entry", entry.ID)
		}
		return s.touch(ctx, caseID)
	})
}

// assertOwned verifies the case exists and belongs to userID.
func (s *CaseStore) assertOwned(ctx context.Context, userID, caseID uuid.UUID) error {
	q := QuerierFromCtx(ctx, s.pool)

	sql, args, err := builder.
		Select("1").
		From(casesTable).
		Where(sq.Eq{"id": caseID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build ownership check: %w", err)
	}

	var one int
	if err := q.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		return mapError(err, "case", caseID)
	}
	return nil
}

func (s *CaseStore) touch(ctx context.Context, caseID uuid.UUID) error {
	q := QuerierFromCtx(ctx, s.pool)

	sql, args, err := builder.
		Update(casesTable).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": caseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build touch case: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return mapError(err, "case", caseID)
	}
	return nil
}

func (r caseRow) toDomain() domain.Case {
	return domain.Case{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		ClientName:  r.ClientName,
		Status:      domain.CaseStatus(r.Status),
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r documentRow) toDomain() domain.Document {
	return domain.Document{
		ID:            r.ID,
		Name:          r.Name,
		MediaType:     r.MediaType,
		Size:          r.Size,
		StoragePath:   r.StoragePath,
		Status:        domain.DocumentStatus(r.Status),
		RawContent:    r.RawContent,
		MaskedContent: r.MaskedContent,
		Summary:       r.Summary,
		UploadedAt:    r.UploadedAt,
	}
}

func (r activityRow) toDomain() domain.ActivityEntry {
	return domain.ActivityEntry{
		ID:        r.ID,
		Agent:     domain.AgentType(r.Agent),
		Message:   r.Message,
		Result:    r.Result,
		CreatedAt: r.CreatedAt,
	}
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
