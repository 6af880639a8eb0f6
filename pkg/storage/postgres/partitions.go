package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

// insertBatchSize bounds the number of records per bulk INSERT so the
// statement stays under PostgreSQL's parameter limit.
const insertBatchSize = 1000

// CreatePartition implements orgs.PartitionStore. The partition is a
// dedicated table; the shape contract (non-null JSONB data plus creation
// timestamp) is enforced by the column constraints.
func (s *PostgresStore) CreatePartition(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		CREATE TABLE %s (
			id BIGSERIAL PRIMARY KEY,
			data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`, pq.QuoteIdentifier(id))
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create partition %q: %w", id, err)
	}
	return nil
}

// DropPartition implements orgs.PartitionStore.
func (s *PostgresStore) DropPartition(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DROP TABLE %s`, pq.QuoteIdentifier(id))
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to drop partition %q: %w", id, err)
	}
	return nil
}

// PartitionExists implements orgs.PartitionStore.
func (s *PostgresStore) PartitionExists(ctx context.Context, id string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check partition %q: %w", id, err)
	}
	return exists, nil
}

// ListPartitions implements orgs.PartitionStore. Only tables carrying the
// partition prefix are reported.
func (s *PostgresStore) ListPartitions(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name LIKE $1 ESCAPE '\'
		ORDER BY table_name
	`
	pattern := strings.ReplaceAll(orgs.PartitionPrefix, "_", `\_`) + "%"
	rows, err := s.db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan partition name: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// ReadAllRecords implements orgs.PartitionStore.
func (s *PostgresStore) ReadAllRecords(ctx context.Context, id string) ([]orgs.Record, error) {
	query := fmt.Sprintf(`SELECT data, created_at FROM %s ORDER BY id`, pq.QuoteIdentifier(id))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read partition %q: %w", id, err)
	}
	defer rows.Close()

	var out []orgs.Record
	for rows.Next() {
		var record orgs.Record
		var data []byte
		if err := rows.Scan(&data, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if err := json.Unmarshal(data, &record.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record data: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// InsertRecords implements orgs.PartitionStore using batched multi-row
// inserts.
func (s *PostgresStore) InsertRecords(ctx context.Context, id string, records []orgs.Record) error {
	for start := 0; start < len(records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := s.insertBatch(ctx, id, records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) insertBatch(ctx context.Context, id string, records []orgs.Record) error {
	placeholders := make([]string, 0, len(records))
	args := make([]interface{}, 0, len(records)*2)
	for i, record := range records {
		if record.Data == nil {
			return fmt.Errorf("record %d: data is required", i)
		}
		data, err := json.Marshal(record.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal record data: %w", err)
		}
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
		args = append(args, data, record.CreatedAt)
	}

	query := fmt.Sprintf(`INSERT INTO %s (data, created_at) VALUES %s`,
		pq.QuoteIdentifier(id), strings.Join(placeholders, ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert records into partition %q: %w", id, err)
	}
	return nil
}

// CountRecords implements orgs.PartitionStore.
func (s *PostgresStore) CountRecords(ctx context.Context, id string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, pq.QuoteIdentifier(id))
	var count int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records in partition %q: %w", id, err)
	}
	return count, nil
}
