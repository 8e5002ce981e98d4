package diff

import (
	"sort"

	"github.com/pgEdge/schemadiff/internal/schema"
)

func indexViews(vs []schema.View) map[string]schema.View {
	m := make(map[string]schema.View, len(vs))
	for _, v := range vs {
		m[v.Key()] = v
	}
	return m
}

func diffViews(a, b []schema.View) Bucket[schema.View] {
	var bkt Bucket[schema.View]
	am, bm := indexViews(a), indexViews(b)

	for _, name := range sortedKeys(am, bm) {
		av, aok := am[name]
		bv, bok := bm[name]
		switch {
		case !aok:
			bkt.Added = append(bkt.Added, bv)
		case !bok:
			bkt.Removed = append(bkt.Removed, av)
		default:
			if changes := compareView(av, bv); len(changes) > 0 {
				bkt.Modified = append(bkt.Modified, Modified[schema.View]{Item: bv, Changes: changes})
			}
		}
	}
	return bkt
}

// compareView compares the definition, updatability, and insertability
// verbatim, and the column set by name only — a column rename inside a view
// is a set-membership change, not a per-column diff, per spec.md §4.6. A
// change to a view column's type alone is not reported.
func compareView(a, b schema.View) map[string]Change {
	changes := map[string]Change{}

	if a.Definition != b.Definition {
		changes["definition"] = Change{a.Definition, b.Definition}
	}
	if a.IsUpdatable != b.IsUpdatable {
		changes["is_updatable"] = Change{a.IsUpdatable, b.IsUpdatable}
	}
	if a.IsInsertableInto != b.IsInsertableInto {
		changes["is_insertable_into"] = Change{a.IsInsertableInto, b.IsInsertableInto}
	}

	aNames := columnNameSet(a.Columns)
	bNames := columnNameSet(b.Columns)
	added := diffStringSet(bNames, aNames)
	removed := diffStringSet(aNames, bNames)
	if len(added) > 0 || len(removed) > 0 {
		changes["columns"] = Change{
			From: map[string][]string{"removed": removed},
			To:   map[string][]string{"added": added},
		}
	}

	return changes
}

func columnNameSet(cols []schema.Column) map[string]struct{} {
	m := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		m[c.Name] = struct{}{}
	}
	return m
}

func diffStringSet(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
