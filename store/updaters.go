package store

import "inkboard/shape"

// Append adds records on top of the paint order.
func Append(records ...shape.Record) Updater {
	return func(current []shape.Record) []shape.Record {
		return append(current, shape.CloneAll(records)...)
	}
}

// UpdateByID replaces each record whose id is in ids with fn applied to it.
// fn cannot change a record's id or kind; such changes are discarded.
func UpdateByID(ids []string, fn func(shape.Record) shape.Record) Updater {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return func(current []shape.Record) []shape.Record {
		for i, r := range current {
			if !want[r.ID] {
				continue
			}
			next := fn(r)
			if next.ID != r.ID || next.Type() != r.Type() {
				continue
			}
			current[i] = next
		}
		return current
	}
}

// Move sets the position of one record, as reported at the end of a drag.
func Move(id string, x, y float64) Updater {
	return UpdateByID([]string{id}, func(r shape.Record) shape.Record {
		r.X, r.Y = x, y
		return r
	})
}

// Remove drops the records with the given ids.
func Remove(ids ...string) Updater {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	return func(current []shape.Record) []shape.Record {
		kept := current[:0]
		for _, r := range current {
			if !drop[r.ID] {
				kept = append(kept, r)
			}
		}
		return kept
	}
}
