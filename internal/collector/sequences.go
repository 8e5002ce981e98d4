package collector

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/schema"
)

// collectSequences returns every sequence in schemaName, ordered
// by name. Sequences owned by an identity/serial column are included same
// as free-standing ones; spec.md draws no distinction between the two.
func collectSequences(ctx context.Context, conn *pgx.Conn, schemaName string) ([]schema.Sequence, error) {
	const q = `
		SELECT
			s.sequence_name,
			s.data_type,
			s.start_value::bigint,
			s.minimum_value::bigint,
			s.maximum_value::bigint,
			s.increment::bigint,
			(s.cycle_option = 'YES')
		FROM information_schema.sequences s
		WHERE s.sequence_schema = $1
		ORDER BY s.sequence_name`

	rows, err := conn.Query(ctx, q, schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sequences []schema.Sequence
	for rows.Next() {
		var s schema.Sequence
		if err := rows.Scan(&s.Name, &s.DataType, &s.Start, &s.Min, &s.Max, &s.Increment, &s.Cycle); err != nil {
			return nil, err
		}
		sequences = append(sequences, s)
	}
	return sequences, rows.Err()
}
