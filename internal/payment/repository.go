package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Repository is the sole owner of payment storage. Absent rows are reported
// as (nil, nil) or (false, nil), never as errors.
type Repository interface {
	Create(ctx context.Context, total float64, recordType RecordType, status Status) (*Payment, error)
	GetByID(ctx context.Context, id int64) (*Payment, error)
	List(ctx context.Context) ([]Payment, error)
	Update(ctx context.Context, id int64, fields UpdateFields) (*Payment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

const paymentColumns = "id, total, record_type, status, create_date, modified_date"

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts one row and captures the generated id atomically via
// RETURNING. Never resolve the new row with a follow-up order-by-id select;
// under concurrent writers that returns the wrong row.
func (r *PostgresRepository) Create(ctx context.Context, total float64, recordType RecordType, status Status) (*Payment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payments (total, record_type, status)
		VALUES ($1, $2, $3)
		RETURNING `+paymentColumns,
		total, recordType, status,
	)

	p, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)

	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select payment: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments ORDER BY create_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("select payments: %w", err)
	}
	defer rows.Close()

	payments := []Payment{}
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.Total, &p.RecordType, &p.Status, &p.CreateDate, &p.ModifiedDate); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return payments, nil
}

// Update builds a parameterized statement from whichever fields are set,
// always refreshing modified_date. An empty field set returns the existing
// row without writing.
func (r *PostgresRepository) Update(ctx context.Context, id int64, fields UpdateFields) (*Payment, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	if fields.Empty() {
		return existing, nil
	}

	set := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if fields.Total != nil {
		args = append(args, *fields.Total)
		set = append(set, fmt.Sprintf("total = $%d", len(args)))
	}
	if fields.RecordType != nil {
		args = append(args, *fields.RecordType)
		set = append(set, fmt.Sprintf("record_type = $%d", len(args)))
	}
	if fields.Status != nil {
		args = append(args, *fields.Status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	set = append(set, "modified_date = now()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE payments SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), paymentColumns,
	)

	p, err := scanPayment(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row vanished between the load and the write.
			return nil, nil
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete payment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.Total, &p.RecordType, &p.Status, &p.CreateDate, &p.ModifiedDate)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
