package diff

import "github.com/pgEdge/schemadiff/internal/schema"

func indexFunctions(fs []schema.Function) map[string]schema.Function {
	m := make(map[string]schema.Function, len(fs))
	for _, f := range fs {
		m[f.Key()] = f
	}
	return m
}

// diffFunctions keys on (name, argumentTypes) — a function's full
// signature — per spec.md §3/§4.6, so an overload is a distinct identity
// rather than a modification of its sibling.
func diffFunctions(a, b []schema.Function) Bucket[schema.Function] {
	var bkt Bucket[schema.Function]
	am, bm := indexFunctions(a), indexFunctions(b)

	for _, sig := range sortedKeys(am, bm) {
		af, aok := am[sig]
		bf, bok := bm[sig]
		switch {
		case !aok:
			bkt.Added = append(bkt.Added, bf)
		case !bok:
			bkt.Removed = append(bkt.Removed, af)
		default:
			if changes := compareFunction(af, bf); len(changes) > 0 {
				bkt.Modified = append(bkt.Modified, Modified[schema.Function]{Item: bf, Changes: changes})
			}
		}
	}
	return bkt
}

func compareFunction(a, b schema.Function) map[string]Change {
	changes := map[string]Change{}

	if a.ReturnType != b.ReturnType {
		changes["return_type"] = Change{a.ReturnType, b.ReturnType}
	}
	if a.Kind != b.Kind {
		changes["kind"] = Change{a.Kind, b.Kind}
	}
	if a.Definition != b.Definition {
		changes["definition"] = Change{a.Definition, b.Definition}
	}
	if !stringSliceEqual(a.ArgumentTypes, b.ArgumentTypes) {
		changes["argument_types"] = Change{a.ArgumentTypes, b.ArgumentTypes}
	}

	return changes
}
