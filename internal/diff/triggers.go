package diff

import "github.com/pgEdge/schemadiff/internal/schema"

func indexTriggers(ts []schema.Trigger) map[string]schema.Trigger {
	m := make(map[string]schema.Trigger, len(ts))
	for _, t := range ts {
		m[t.Name] = t
	}
	return m
}

func diffTriggers(a, b []schema.Trigger) Bucket[schema.Trigger] {
	var bkt Bucket[schema.Trigger]
	am, bm := indexTriggers(a), indexTriggers(b)

	for _, name := range sortedKeys(am, bm) {
		at, aok := am[name]
		bt, bok := bm[name]
		switch {
		case !aok:
			bkt.Added = append(bkt.Added, bt)
		case !bok:
			bkt.Removed = append(bkt.Removed, at)
		default:
			if changes := compareTrigger(at, bt); len(changes) > 0 {
				bkt.Modified = append(bkt.Modified, Modified[schema.Trigger]{Item: bt, Changes: changes})
			}
		}
	}
	return bkt
}

func compareTrigger(a, b schema.Trigger) map[string]Change {
	changes := map[string]Change{}

	if a.Timing != b.Timing {
		changes["timing"] = Change{a.Timing, b.Timing}
	}
	if !stringSliceEqual(a.Events, b.Events) {
		changes["events"] = Change{a.Events, b.Events}
	}
	if a.Function != b.Function {
		changes["function"] = Change{a.Function, b.Function}
	}
	if a.Definition != b.Definition {
		changes["definition"] = Change{a.Definition, b.Definition}
	}

	return changes
}
