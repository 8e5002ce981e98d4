package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/schemadiff/internal/schema"
)

func intPtr(v int) *int { return &v }

func usersSnapshot(nameLen int) *schema.Snapshot {
	return &schema.Snapshot{
		SchemaName: "public",
		Tables: []schema.Table{
			{
				Name: "users",
				Columns: []schema.Column{
					{Name: "id", OrdinalPosition: 1, DataType: "integer", IsNullable: false},
					{Name: "name", OrdinalPosition: 2, DataType: "character varying", IsNullable: true, CharacterMaximumLength: intPtr(nameLen)},
				},
			},
		},
	}
}

// Scenario 1: no changes.
func TestDiffIdenticalSnapshotsHasNoChanges(t *testing.T) {
	a := usersSnapshot(100)
	b := usersSnapshot(100)

	result := Diff(a, b)
	summary := Summarize(result)

	assert.Equal(t, 0, summary.TotalChanges)
	assert.Empty(t, result.Tables.Added)
	assert.Empty(t, result.Tables.Removed)
	assert.Empty(t, result.Tables.Modified)
}

// Scenario 2: column widened and column added.
func TestDiffColumnWidenedAndAdded(t *testing.T) {
	a := usersSnapshot(100)
	b := &schema.Snapshot{
		Tables: []schema.Table{
			{
				Name: "users",
				Columns: []schema.Column{
					{Name: "id", OrdinalPosition: 1, DataType: "integer", IsNullable: false},
					{Name: "name", OrdinalPosition: 2, DataType: "character varying", IsNullable: true, CharacterMaximumLength: intPtr(150)},
					{Name: "email", OrdinalPosition: 3, DataType: "character varying", IsNullable: true, CharacterMaximumLength: intPtr(255)},
				},
			},
		},
	}

	result := Diff(a, b)

	require.Len(t, result.Columns.Added, 1)
	assert.Equal(t, "users", result.Columns.Added[0].TableName)
	assert.Equal(t, "email", result.Columns.Added[0].Column.Name)

	require.Len(t, result.Columns.Modified, 1)
	mod := result.Columns.Modified[0]
	assert.Equal(t, "name", mod.Item.Column.Name)

	change, ok := mod.Changes["character_maximum_length"]
	require.True(t, ok, "expected a character_maximum_length change")
	assert.Equal(t, 100, *(change.From.(*int)))
	assert.Equal(t, 150, *(change.To.(*int)))

	assert.Len(t, result.Tables.Modified, 1)
}

// Scenario 3: table added with children suppressed in grouped view is
// covered in internal/group; this confirms the flat bucket population the
// grouping transformer depends on.
func TestDiffAddedTablePopulatesFlatChildBuckets(t *testing.T) {
	a := &schema.Snapshot{Tables: []schema.Table{}}
	b := &schema.Snapshot{
		Tables: []schema.Table{
			{
				Name: "comments",
				Columns: []schema.Column{
					{Name: "id", OrdinalPosition: 1, DataType: "integer"},
					{Name: "post_id", OrdinalPosition: 2, DataType: "integer"},
					{Name: "body", OrdinalPosition: 3, DataType: "text"},
				},
				Constraints: []schema.Constraint{
					{Name: "comments_pkey", TableName: "comments", Kind: "PRIMARY KEY", ColumnNames: []string{"id"}},
					{Name: "comments_post_id_fkey", TableName: "comments", Kind: "FOREIGN KEY", ColumnNames: []string{"post_id"}, ForeignTable: "posts", ForeignColumn: "id"},
				},
			},
		},
	}

	result := Diff(a, b)

	require.Len(t, result.Tables.Added, 1)
	assert.Equal(t, "comments", result.Tables.Added[0].Name)
	assert.Len(t, result.Columns.Added, 3)
	assert.Len(t, result.Constraints.Added, 2)

	_, ok := result.TableDiffs["comments"]
	assert.False(t, ok, "an added table must not appear in TableDiffs (that's reserved for tables common to both snapshots)")
}

// Scenario 4: column reorder-only (ordinal shift of exactly 1 in either
// direction) is not a change.
func TestDiffColumnReorderOnlyIsNotAChange(t *testing.T) {
	a := &schema.Snapshot{
		Tables: []schema.Table{
			{
				Name: "t",
				Columns: []schema.Column{
					{Name: "a", OrdinalPosition: 1, DataType: "integer"},
					{Name: "b", OrdinalPosition: 2, DataType: "integer"},
					{Name: "c", OrdinalPosition: 3, DataType: "integer"},
				},
			},
		},
	}
	b := &schema.Snapshot{
		Tables: []schema.Table{
			{
				Name: "t",
				Columns: []schema.Column{
					{Name: "a", OrdinalPosition: 1, DataType: "integer"},
					{Name: "c", OrdinalPosition: 2, DataType: "integer"},
					{Name: "b", OrdinalPosition: 3, DataType: "integer"},
				},
			},
		},
	}

	result := Diff(a, b)

	assert.Empty(t, result.Columns.Modified, "a pure adjacent reorder must not be reported as a change")
}

// Scenario 5: function identity is (name, argument types), not just name.
func TestDiffFunctionIdentityBySignature(t *testing.T) {
	a := &schema.Snapshot{
		Functions: []schema.Function{
			{Name: "f", ArgumentTypes: []string{"integer"}, ReturnType: "integer"},
		},
	}
	b := &schema.Snapshot{
		Functions: []schema.Function{
			{Name: "f", ArgumentTypes: []string{"integer"}, ReturnType: "bigint"},
			{Name: "f", ArgumentTypes: []string{"bigint"}, ReturnType: "bigint"},
		},
	}

	result := Diff(a, b)

	require.Len(t, result.Functions.Modified, 1)
	mod := result.Functions.Modified[0]
	change, ok := mod.Changes["return_type"]
	require.True(t, ok)
	assert.Equal(t, "integer", change.From)
	assert.Equal(t, "bigint", change.To)

	require.Len(t, result.Functions.Added, 1)
	assert.Equal(t, "f(bigint)", result.Functions.Added[0].Key())
}

func TestSummarizeMatchesBucketLengths(t *testing.T) {
	a := usersSnapshot(100)
	b := usersSnapshot(150)

	result := Diff(a, b)
	summary := Summarize(result)

	assert.Equal(t, len(result.Columns.Modified), summary.Columns.Modified)

	sum := summary.Tables.Added + summary.Tables.Removed + summary.Tables.Modified +
		summary.Columns.Added + summary.Columns.Removed + summary.Columns.Modified +
		summary.Constraints.Added + summary.Constraints.Removed + summary.Constraints.Modified +
		summary.Indexes.Added + summary.Indexes.Removed + summary.Indexes.Modified +
		summary.Triggers.Added + summary.Triggers.Removed + summary.Triggers.Modified +
		summary.Views.Added + summary.Views.Removed + summary.Views.Modified +
		summary.Sequences.Added + summary.Sequences.Removed + summary.Sequences.Modified +
		summary.Functions.Added + summary.Functions.Removed + summary.Functions.Modified
	assert.Equal(t, sum, summary.TotalChanges)
}
