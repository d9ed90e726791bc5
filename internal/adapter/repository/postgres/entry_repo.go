package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cashbookhq/cashbook/internal/domain"
	"github.com/cashbookhq/cashbook/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository over PostgreSQL.
// Read paths retry transient serialization conflicts; writes never do.
type EntryRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

const insertEntrySQL = `
INSERT INTO entries (
	id, user_id, entry_type, category, payment_method,
	amount, entry_date, notes, settled, settled_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const selectEntryColumns = `
	id, user_id, entry_type, category, payment_method,
	amount, entry_date, notes, settled, settled_at, created_at, updated_at`

// Insert creates a new entry outside any caller-owned transaction.
func (r *EntryRepository) Insert(ctx context.Context, entry *domain.Entry) error {
	_, err := r.pool.Exec(ctx, insertEntrySQL, insertArgs(entry)...)

	return err
}

// InsertTx creates a new entry inside the given transaction.
func (r *EntryRepository) InsertTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, insertEntrySQL, insertArgs(entry)...)

	return err
}

// GetByID retrieves one entry scoped to its owner.
func (r *EntryRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Entry, error) {
	query := `SELECT` + selectEntryColumns + ` FROM entries WHERE id = $1 AND user_id = $2`

	var entry *domain.Entry

	err := r.retrier.Retry(ctx, func() error {
		var scanErr error
		entry, scanErr = scanEntry(r.pool.QueryRow(ctx, query, id, ownerID))

		return scanErr
	})

	return entry, err
}

// GetByIDForUpdate retrieves one entry with a row lock, so concurrent
// settlement attempts against the same source serialize.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Entry, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT` + selectEntryColumns + ` FROM entries WHERE id = $1 AND user_id = $2 FOR UPDATE`

	return scanEntry(pgxTx.QueryRow(ctx, query, id, ownerID))
}

// ListByOwner retrieves an owner's entries, optionally bounded by an
// inclusive date range, newest entry date first.
func (r *EntryRepository) ListByOwner(ctx context.Context, ownerID string, dateRange domain.DateRange, limit, offset int) ([]*domain.Entry, error) {
	query := `SELECT` + selectEntryColumns + ` FROM entries WHERE user_id = $1`
	args := []any{ownerID}

	if dateRange.Start != nil {
		args = append(args, timeToPgTimestamptz(*dateRange.Start))
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}

	if dateRange.End != nil {
		args = append(args, timeToPgTimestamptz(*dateRange.End))
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY entry_date DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var entries []*domain.Entry

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		entries = entries[:0]
		for rows.Next() {
			entry, err := scanEntry(rows)
			if err != nil {
				return err
			}

			entries = append(entries, entry)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// MarkSettled flips an entry to settled inside the given transaction. The
// settled guard in SQL backs up the use case level check.
func (r *EntryRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, settledAt, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE entries SET settled = TRUE, settled_at = $2, updated_at = $3 WHERE id = $1 AND settled = FALSE`,
		id, timeToPgTimestamptz(settledAt), timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadySettled
	}

	return nil
}

func insertArgs(entry *domain.Entry) []any {
	var settledAt pgtype.Timestamptz
	if entry.SettledAt != nil {
		settledAt = timeToPgTimestamptz(*entry.SettledAt)
	}

	return []any{
		entry.ID,
		entry.UserID,
		string(entry.Type),
		string(entry.Category),
		string(entry.PaymentMethod),
		decimalToNumeric(entry.Amount),
		timeToPgTimestamptz(entry.EntryDate),
		entry.Notes,
		entry.Settled,
		settledAt,
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	}
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry         domain.Entry
		entryType     string
		category      string
		paymentMethod string
		amount        pgtype.Numeric
		entryDate     pgtype.Timestamptz
		settledAt     pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID, &entry.UserID, &entryType, &category, &paymentMethod,
		&amount, &entryDate, &entry.Notes, &entry.Settled, &settledAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry.Type = domain.EntryType(entryType)
	entry.Category = domain.Category(category)
	entry.PaymentMethod = domain.PaymentMethod(paymentMethod)
	entry.Amount = numericToDecimal(amount)
	entry.EntryDate = entryDate.Time
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	if settledAt.Valid {
		t := settledAt.Time
		entry.SettledAt = &t
	}

	return &entry, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
