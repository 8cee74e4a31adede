// Package duckdb loads delimited text files into datasets using DuckDB's
// CSV sniffer for delimiter, header and type detection.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/tabview/internal/dataset"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Reader reads CSV files into datasets through a DuckDB connection.
// Each read goes through a uniquely named scratch table that is dropped
// afterwards, so one Reader can serve concurrent uploads.
type Reader struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open connects to DuckDB at path and returns a Reader.
// Use ":memory:" or an empty path for an in-memory database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Reader, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	return NewReader(db, logger), nil
}

// NewReader wraps an existing connection.
func NewReader(db *sql.DB, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{db: db, logger: logger}
}

// Close closes the database connection.
func (r *Reader) Close() error {
	if r.db == nil {
		return nil
	}
	r.logger.Debug("closing database connection")
	return r.db.Close()
}

// EngineVersion returns the version of the linked DuckDB library.
func (r *Reader) EngineVersion(ctx context.Context) (string, error) {
	if r.db == nil {
		return "", fmt.Errorf("database connection not established")
	}
	var version string
	if err := r.db.QueryRowContext(ctx, "SELECT library_version FROM pragma_version()").Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query duckdb version: %w", err)
	}
	return version, nil
}

// ReadCSV parses the file at path and returns it as a dataset called name.
// Parse failures are returned as-is from DuckDB, wrapped with context.
func (r *Reader) ReadCSV(ctx context.Context, path, name string) (*dataset.Dataset, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	table := scratchTable()
	create := fmt.Sprintf(
		"CREATE TABLE %s AS SELECT * FROM read_csv_auto('%s', header=true)",
		table,
		escapeLiteral(absPath),
	)
	if _, err := r.db.ExecContext(ctx, create); err != nil {
		return nil, fmt.Errorf("failed to load CSV: %w", err)
	}
	defer func() {
		if _, err := r.db.ExecContext(context.WithoutCancel(ctx), "DROP TABLE IF EXISTS "+table); err != nil {
			r.logger.Warn("failed to drop scratch table", "table", table, "error", err)
		}
	}()

	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+table) //nolint:gosec // table name is generated
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV table: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := Materialize(rows)
	if err != nil {
		return nil, err
	}

	ds, err := dataset.New(name, columns)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("loaded dataset", "name", name, "rows", ds.Rows(), "columns", ds.Width())
	return ds, nil
}

// Materialize drains rows into dataset columns, inferring each column's kind
// from the database type name.
func Materialize(rows *sql.Rows) ([]dataset.Column, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	columns := make([]dataset.Column, len(types))
	for i, ct := range types {
		columns[i] = dataset.Column{
			Name: ct.Name(),
			Kind: KindOf(ct.DatabaseTypeName()),
		}
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i := range columns {
			columns[i].Values = append(columns[i].Values, normalize(values[i], columns[i].Kind))
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return columns, nil
}

// KindOf maps a DuckDB type name to a column kind.
func KindOf(typeName string) dataset.Kind {
	t := strings.ToUpper(strings.TrimSpace(typeName))
	switch {
	case t == "BIGINT", t == "INTEGER", t == "SMALLINT", t == "TINYINT", t == "HUGEINT",
		t == "UBIGINT", t == "UINTEGER", t == "USMALLINT", t == "UTINYINT", t == "INT":
		return dataset.KindInteger
	case t == "DOUBLE", t == "FLOAT", t == "REAL", strings.HasPrefix(t, "DECIMAL"):
		return dataset.KindFloat
	case t == "BOOLEAN":
		return dataset.KindBoolean
	case t == "DATE", strings.HasPrefix(t, "TIMESTAMP"):
		return dataset.KindTimestamp
	default:
		return dataset.KindText
	}
}

// normalize converts a scanned driver value to the representation used by
// dataset columns.
func normalize(v any, kind dataset.Kind) any {
	if v == nil {
		return nil
	}

	switch kind {
	case dataset.KindInteger:
		switch n := v.(type) {
		case int64:
			return n
		case int32:
			return int64(n)
		case int16:
			return int64(n)
		case int8:
			return int64(n)
		case uint64:
			return int64(n) //nolint:gosec // csv integers fit
		case uint32:
			return int64(n)
		case uint16:
			return int64(n)
		case uint8:
			return int64(n)
		case *big.Int:
			if n.IsInt64() {
				return n.Int64()
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	case dataset.KindFloat:
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case interface{ Float64() float64 }:
			return n.Float64()
		}
	case dataset.KindBoolean:
		if b, ok := v.(bool); ok {
			return b
		}
	case dataset.KindTimestamp:
		if ts, ok := v.(time.Time); ok {
			return ts
		}
	}

	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return dataset.FormatValue(s)
	}
}

func scratchTable() string {
	return "upload_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
