package diff

import "github.com/pgEdge/schemadiff/internal/schema"

func indexSequences(ss []schema.Sequence) map[string]schema.Sequence {
	m := make(map[string]schema.Sequence, len(ss))
	for _, s := range ss {
		m[s.Key()] = s
	}
	return m
}

func diffSequences(a, b []schema.Sequence) Bucket[schema.Sequence] {
	var bkt Bucket[schema.Sequence]
	am, bm := indexSequences(a), indexSequences(b)

	for _, name := range sortedKeys(am, bm) {
		as, aok := am[name]
		bs, bok := bm[name]
		switch {
		case !aok:
			bkt.Added = append(bkt.Added, bs)
		case !bok:
			bkt.Removed = append(bkt.Removed, as)
		default:
			if changes := compareSequence(as, bs); len(changes) > 0 {
				bkt.Modified = append(bkt.Modified, Modified[schema.Sequence]{Item: bs, Changes: changes})
			}
		}
	}
	return bkt
}

func compareSequence(a, b schema.Sequence) map[string]Change {
	changes := map[string]Change{}

	if a.DataType != b.DataType {
		changes["data_type"] = Change{a.DataType, b.DataType}
	}
	if a.Start != b.Start {
		changes["start"] = Change{a.Start, b.Start}
	}
	if a.Min != b.Min {
		changes["min"] = Change{a.Min, b.Min}
	}
	if a.Max != b.Max {
		changes["max"] = Change{a.Max, b.Max}
	}
	if a.Increment != b.Increment {
		changes["increment"] = Change{a.Increment, b.Increment}
	}
	if a.Cycle != b.Cycle {
		changes["cycle"] = Change{a.Cycle, b.Cycle}
	}

	return changes
}
