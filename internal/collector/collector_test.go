package collector

import (
	"testing"

	"github.com/pgEdge/schemadiff/internal/schema"
)

// Every query-issuing function here takes a live *pgx.Conn, so Collect and
// its per-entity-kind attach/collect functions need a real Postgres backend
// and are left to integration testing rather than tested here; see DESIGN.md.
// decodeTriggerEvents and tableIndex are pure bit/slice logic and testable
// directly.

func TestDecodeTriggerEventsDecodesEachBit(t *testing.T) {
	cases := []struct {
		tgtype int32
		want   []string
	}{
		{4, []string{"INSERT"}},
		{8, []string{"DELETE"}},
		{16, []string{"UPDATE"}},
		{32, []string{"TRUNCATE"}},
		{4 | 16, []string{"INSERT", "UPDATE"}},
		{4 | 8 | 16 | 32, []string{"INSERT", "DELETE", "UPDATE", "TRUNCATE"}},
		{0, nil},
	}

	for _, c := range cases {
		got := decodeTriggerEvents(c.tgtype)
		if len(got) != len(c.want) {
			t.Errorf("tgtype %d: expected %v, got %v", c.tgtype, c.want, got)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("tgtype %d: expected %v, got %v", c.tgtype, c.want, got)
				break
			}
		}
	}
}

func TestDecodeTriggerEventsIgnoresUnrelatedBits(t *testing.T) {
	// bit 2 (BEFORE) and bit 64 (INSTEAD OF) are timing bits, not events.
	got := decodeTriggerEvents(2 | 64 | 8)
	if len(got) != 1 || got[0] != "DELETE" {
		t.Errorf("expected only DELETE decoded from timing+event bits, got %v", got)
	}
}

func TestTableIndexFindsExistingTable(t *testing.T) {
	tables := []schema.Table{{Name: "users"}, {Name: "posts"}, {Name: "comments"}}
	if got := tableIndex(tables, "posts"); got != 1 {
		t.Errorf("expected index 1 for 'posts', got %d", got)
	}
}

func TestTableIndexReturnsNegativeOneWhenAbsent(t *testing.T) {
	tables := []schema.Table{{Name: "users"}}
	if got := tableIndex(tables, "missing"); got != -1 {
		t.Errorf("expected -1 for an absent table, got %d", got)
	}
}
