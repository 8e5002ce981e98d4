package diff

import "github.com/pgEdge/schemadiff/internal/schema"

func indexConstraints(cs []schema.Constraint) map[string]schema.Constraint {
	m := make(map[string]schema.Constraint, len(cs))
	for _, c := range cs {
		m[c.Name] = c
	}
	return m
}

func diffConstraints(a, b []schema.Constraint) Bucket[schema.Constraint] {
	var bkt Bucket[schema.Constraint]
	am, bm := indexConstraints(a), indexConstraints(b)

	for _, name := range sortedKeys(am, bm) {
		ac, aok := am[name]
		bc, bok := bm[name]
		switch {
		case !aok:
			bkt.Added = append(bkt.Added, bc)
		case !bok:
			bkt.Removed = append(bkt.Removed, ac)
		default:
			if changes := compareConstraint(ac, bc); len(changes) > 0 {
				bkt.Modified = append(bkt.Modified, Modified[schema.Constraint]{Item: bc, Changes: changes})
			}
		}
	}
	return bkt
}

func compareConstraint(a, b schema.Constraint) map[string]Change {
	changes := map[string]Change{}

	if a.Kind != b.Kind {
		changes["constraint_type"] = Change{a.Kind, b.Kind}
	}
	if !stringSliceEqual(a.ColumnNames, b.ColumnNames) {
		changes["columns"] = Change{a.ColumnNames, b.ColumnNames}
	}
	if a.CheckClause != b.CheckClause {
		changes["check_clause"] = Change{a.CheckClause, b.CheckClause}
	}
	if a.Kind == "FOREIGN KEY" || b.Kind == "FOREIGN KEY" {
		if a.ForeignTable != b.ForeignTable {
			changes["foreign_table"] = Change{a.ForeignTable, b.ForeignTable}
		}
		if a.ForeignColumn != b.ForeignColumn {
			changes["foreign_column"] = Change{a.ForeignColumn, b.ForeignColumn}
		}
	}

	return changes
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
