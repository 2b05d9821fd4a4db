package postgresql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// maxBatchRows bounds one multi-row INSERT so the parameter count stays below Postgres' 65535 limit.
const maxBatchRows = 1000

// row is a table row struct: `db` tags name its columns and values returns them in column order.
type row interface {
	values() []interface{}
}

// table is the store shared by every entity repository. R is the row struct scanned by column name.
type table[R row] struct {
	db      *database.DB
	name    string
	columns []string
}

func newTable[R row](db *database.DB, name string, columns ...string) table[R] {
	return table[R]{db: db, name: name, columns: columns}
}

func (t table[R]) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.columns, ", "), t.name)
}

// findOne returns nil, nil when nothing matches.
func (t table[R]) findOne(ctx context.Context, c conditions) (*R, error) {
	q := GetQuerier(ctx, t.db)

	query := t.selectSQL() + c.sql() + " LIMIT 1"
	rows, err := q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.name, err)
	}

	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[R])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan %s: %w", t.name, err)
	}
	return &r, nil
}

// findMany appends suffix (ORDER BY, LIMIT ...) after the WHERE clause.
func (t table[R]) findMany(ctx context.Context, c conditions, suffix string) ([]R, error) {
	q := GetQuerier(ctx, t.db)

	query := t.selectSQL() + c.sql()
	if suffix != "" {
		query += " " + suffix
	}

	rows, err := q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.name, err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[R])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", t.name, err)
	}
	return result, nil
}

func (t table[R]) count(ctx context.Context, c conditions) (int64, error) {
	q := GetQuerier(ctx, t.db)

	var total int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", t.name) + c.sql()
	if err := q.QueryRow(ctx, query, c.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", t.name, err)
	}
	return total, nil
}

// insert returns the stored row; a unique violation is returned as a *pgconn.PgError for the caller to translate.
func (t table[R]) insert(ctx context.Context, r R) (R, error) {
	q := GetQuerier(ctx, t.db)

	query := buildInsert(t.name, t.columns, 1, "RETURNING "+strings.Join(t.columns, ", "))
	rows, err := q.Query(ctx, query, r.values()...)
	if err != nil {
		var zero R
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[R])
}

// insertMany writes rs in chunks, appending onConflict (e.g. "ON CONFLICT (a, b) DO NOTHING") to each
// statement, and returns how many rows were actually inserted.
func (t table[R]) insertMany(ctx context.Context, rs []R, onConflict string) (int64, error) {
	q := GetQuerier(ctx, t.db)

	var inserted int64
	for start := 0; start < len(rs); start += maxBatchRows {
		end := min(start+maxBatchRows, len(rs))
		chunk := rs[start:end]

		args := make([]interface{}, 0, len(chunk)*len(t.columns))
		for _, r := range chunk {
			args = append(args, r.values()...)
		}

		tag, err := q.Exec(ctx, buildInsert(t.name, t.columns, len(chunk), onConflict), args...)
		if err != nil {
			return inserted, fmt.Errorf("failed to batch insert %s: %w", t.name, err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

// updateFields sets fields and updated_at on the rows matching c and returns the first updated row.
func (t table[R]) updateFields(ctx context.Context, c conditions, fields map[string]interface{}) (*R, error) {
	q := GetQuerier(ctx, t.db)

	set, args := buildSet(fields, len(c.args))
	query := fmt.Sprintf("UPDATE %s SET %s", t.name, set) + c.sql() +
		" RETURNING " + strings.Join(t.columns, ", ")

	rows, err := q.Query(ctx, query, append(append([]interface{}{}, c.args...), args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", t.name, err)
	}

	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[R])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update %s: %w", t.name, err)
	}
	return &r, nil
}

func buildInsert(name string, columns []string, rows int, suffix string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", name, strings.Join(columns, ", "))

	n := 1
	for i := 0; i < rows; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", n)
			n++
		}
		sb.WriteByte(')')
	}

	if suffix != "" {
		sb.WriteString(" ")
		sb.WriteString(suffix)
	}
	return sb.String()
}

// buildSet renders "col = $n" pairs in column order, numbering placeholders after offset.
func buildSet(fields map[string]interface{}, offset int) (string, []interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	args := make([]interface{}, 0, len(keys))
	for i, k := range keys {
		parts = append(parts, fmt.Sprintf("%s = $%d", k, offset+i+1))
		args = append(args, fields[k])
	}
	parts = append(parts, "updated_at = NOW()")

	return strings.Join(parts, ", "), args
}

// conditions accumulates AND-ed predicates. Each clause holds one %d for its placeholder number.
type conditions struct {
	clauses []string
	args    []interface{}
}

func where(clause string, arg interface{}) conditions {
	var c conditions
	return c.and(clause, arg)
}

func (c conditions) and(clause string, arg interface{}) conditions {
	c.args = append(append([]interface{}{}, c.args...), arg)
	c.clauses = append(append([]string{}, c.clauses...), fmt.Sprintf(clause, len(c.args)))
	return c
}

// andNull adds "column IS NULL", which takes no placeholder.
func (c conditions) andNull(column string) conditions {
	c.clauses = append(append([]string{}, c.clauses...), column+" IS NULL")
	return c
}

func (c conditions) sql() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
