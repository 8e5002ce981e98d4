package diff

import "github.com/pgEdge/schemadiff/internal/schema"

func indexColumns(cols []schema.Column) map[string]schema.Column {
	m := make(map[string]schema.Column, len(cols))
	for _, c := range cols {
		m[c.Name] = c
	}
	return m
}

// diffColumns compares two column sets, suppressing an ordinal_position
// difference of exactly 1 per spec.md §9's adopted-as-written open
// question: an adjacent reorder with no other field change is not a
// modification.
func diffColumns(a, b []schema.Column) Bucket[schema.Column] {
	var bkt Bucket[schema.Column]
	am, bm := indexColumns(a), indexColumns(b)

	for _, name := range sortedKeys(am, bm) {
		ac, aok := am[name]
		bc, bok := bm[name]
		switch {
		case !aok:
			bkt.Added = append(bkt.Added, bc)
		case !bok:
			bkt.Removed = append(bkt.Removed, ac)
		default:
			if changes := compareColumn(ac, bc); len(changes) > 0 {
				bkt.Modified = append(bkt.Modified, Modified[schema.Column]{Item: bc, Changes: changes})
			}
		}
	}
	return bkt
}

func compareColumn(a, b schema.Column) map[string]Change {
	changes := map[string]Change{}

	if a.DataType != b.DataType {
		changes["data_type"] = Change{a.DataType, b.DataType}
	}
	if a.IsNullable != b.IsNullable {
		changes["is_nullable"] = Change{a.IsNullable, b.IsNullable}
	}
	if a.ColumnDefault != b.ColumnDefault {
		changes["column_default"] = Change{a.ColumnDefault, b.ColumnDefault}
	}
	if !intPtrEqual(a.CharacterMaximumLength, b.CharacterMaximumLength) {
		changes["character_maximum_length"] = Change{a.CharacterMaximumLength, b.CharacterMaximumLength}
	}
	if !intPtrEqual(a.NumericPrecision, b.NumericPrecision) {
		changes["numeric_precision"] = Change{a.NumericPrecision, b.NumericPrecision}
	}
	if !intPtrEqual(a.NumericScale, b.NumericScale) {
		changes["numeric_scale"] = Change{a.NumericScale, b.NumericScale}
	}

	delta := b.OrdinalPosition - a.OrdinalPosition
	if delta != 1 && delta != -1 && delta != 0 {
		changes["ordinal_position"] = Change{a.OrdinalPosition, b.OrdinalPosition}
	}

	return changes
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
