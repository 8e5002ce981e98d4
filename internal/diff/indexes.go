package diff

import "github.com/pgEdge/schemadiff/internal/schema"

func indexIndexes(idxs []schema.Index) map[string]schema.Index {
	m := make(map[string]schema.Index, len(idxs))
	for _, i := range idxs {
		m[i.Name] = i
	}
	return m
}

func diffIndexes(a, b []schema.Index) Bucket[schema.Index] {
	var bkt Bucket[schema.Index]
	am, bm := indexIndexes(a), indexIndexes(b)

	for _, name := range sortedKeys(am, bm) {
		ai, aok := am[name]
		bi, bok := bm[name]
		switch {
		case !aok:
			bkt.Added = append(bkt.Added, bi)
		case !bok:
			bkt.Removed = append(bkt.Removed, ai)
		default:
			if changes := compareIndex(ai, bi); len(changes) > 0 {
				bkt.Modified = append(bkt.Modified, Modified[schema.Index]{Item: bi, Changes: changes})
			}
		}
	}
	return bkt
}

func compareIndex(a, b schema.Index) map[string]Change {
	changes := map[string]Change{}

	if a.Method != b.Method {
		changes["method"] = Change{a.Method, b.Method}
	}
	if a.IsUnique != b.IsUnique {
		changes["is_unique"] = Change{a.IsUnique, b.IsUnique}
	}
	if a.IsPrimary != b.IsPrimary {
		changes["is_primary"] = Change{a.IsPrimary, b.IsPrimary}
	}
	if !stringSliceEqual(a.ColumnNames, b.ColumnNames) {
		changes["columns"] = Change{a.ColumnNames, b.ColumnNames}
	}
	if a.Definition != b.Definition {
		changes["definition"] = Change{a.Definition, b.Definition}
	}

	return changes
}
