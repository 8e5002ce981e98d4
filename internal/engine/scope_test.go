package engine

import (
	"testing"

	"github.com/pgEdge/schemadiff/internal/config"
	"github.com/pgEdge/schemadiff/internal/diff"
	"github.com/pgEdge/schemadiff/internal/schema"
)

func TestSelectedFormatsPreservesFixedOrderAndFilters(t *testing.T) {
	formats := selectedFormats([]string{"html", "json"})
	if len(formats) != 2 {
		t.Fatalf("expected 2 formats, got %d", len(formats))
	}
	if formatName(formats[0]) != "json" {
		t.Errorf("expected json first (fixed render order), got %s", formatName(formats[0]))
	}
	if formatName(formats[1]) != "html" {
		t.Errorf("expected html second, got %s", formatName(formats[1]))
	}
}

func TestSelectedFormatsEmptyWhenNoneMatch(t *testing.T) {
	formats := selectedFormats([]string{"yaml"})
	if len(formats) != 0 {
		t.Errorf("expected no formats, got %d", len(formats))
	}
}

func TestApplyComparisonScopeExcludesNamedTable(t *testing.T) {
	result := diff.DiffResult{
		Tables: diff.Bucket[schema.Table]{
			Added: []schema.Table{{Name: "users"}, {Name: "secrets"}},
		},
		Columns: diff.Bucket[diff.ColumnEntry]{
			Added: []diff.ColumnEntry{
				{TableName: "users", Column: schema.Column{Name: "id"}},
				{TableName: "secrets", Column: schema.Column{Name: "token"}},
			},
		},
		TableDiffs: map[string]*diff.TableDiff{
			"secrets": {TableName: "secrets"},
		},
	}

	scoped := applyComparisonScope(result, config.ComparisonConfig{
		ExcludeTables: []string{"secrets"},
	})

	if len(scoped.Tables.Added) != 1 || scoped.Tables.Added[0].Name != "users" {
		t.Errorf("expected only users to remain, got %+v", scoped.Tables.Added)
	}
	if len(scoped.Columns.Added) != 1 || scoped.Columns.Added[0].TableName != "users" {
		t.Errorf("expected only users.id to remain, got %+v", scoped.Columns.Added)
	}
	if _, ok := scoped.TableDiffs["secrets"]; ok {
		t.Error("expected secrets table diff to be removed")
	}
}

func TestApplyComparisonScopeExcludesNamedColumnFromTableDiff(t *testing.T) {
	result := diff.DiffResult{
		TableDiffs: map[string]*diff.TableDiff{
			"users": {
				TableName: "users",
				Columns: diff.Bucket[schema.Column]{
					Added: []schema.Column{{Name: "id"}, {Name: "password_hash"}},
				},
			},
		},
	}

	scoped := applyComparisonScope(result, config.ComparisonConfig{
		ExcludeColumns: []string{"password_hash"},
	})

	td := scoped.TableDiffs["users"]
	if len(td.Columns.Added) != 1 || td.Columns.Added[0].Name != "id" {
		t.Errorf("expected only id column to remain, got %+v", td.Columns.Added)
	}
}

func TestApplyComparisonScopeCapsMaxDiffItems(t *testing.T) {
	result := diff.DiffResult{
		Tables: diff.Bucket[schema.Table]{
			Added: []schema.Table{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		},
	}

	scoped := applyComparisonScope(result, config.ComparisonConfig{
		IncludeConstraints: true,
		IncludeIndexes:     true,
		IncludeTriggers:    true,
		IncludeFunctions:   true,
		IncludeViews:       true,
		MaxDiffItems:       2,
	})

	if len(scoped.Tables.Added) != 2 {
		t.Errorf("expected Tables.Added capped at 2, got %d", len(scoped.Tables.Added))
	}
}

func TestApplyComparisonScopeDropsExcludedEntityKinds(t *testing.T) {
	result := diff.DiffResult{
		Constraints: diff.Bucket[schema.Constraint]{Added: []schema.Constraint{{Name: "pk_users"}}},
		Views:       diff.Bucket[schema.View]{Added: []schema.View{{Name: "v_active_users"}}},
	}

	scoped := applyComparisonScope(result, config.ComparisonConfig{})

	if len(scoped.Constraints.Added) != 0 {
		t.Error("expected constraints dropped when IncludeConstraints is false")
	}
	if len(scoped.Views.Added) != 0 {
		t.Error("expected views dropped when IncludeViews is false")
	}
}
