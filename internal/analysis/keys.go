package analysis

import (
	"strconv"

	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
)

// Key extracts a category from a record. ok=false excludes the record from
// the grouping, which is how absent Type2 values are skipped.
type Key struct {
	Name string
	Of   func(r dataset.Record) (value string, ok bool)
}

var (
	ByGeneration = Key{Name: dataset.ColGeneration, Of: func(r dataset.Record) (string, bool) {
		return strconv.Itoa(r.Generation), true
	}}
	ByType1 = Key{Name: dataset.ColType1, Of: func(r dataset.Record) (string, bool) {
		return r.Type1, true
	}}
	ByType2 = Key{Name: dataset.ColType2, Of: func(r dataset.Record) (string, bool) {
		return r.Type2, r.HasType2()
	}}
	ByType2OrNone = Key{Name: dataset.ColType2, Of: func(r dataset.Record) (string, bool) {
		return r.Type2OrNone(), true
	}}
	ByTypePairing = Key{Name: "Single/Dual", Of: func(r dataset.Record) (string, bool) {
		return r.TypePairing, true
	}}
	ByTypeCombo = Key{Name: "Type Combo", Of: func(r dataset.Record) (string, bool) {
		return r.TypeCombo, true
	}}
	ByPlaystyle = Key{Name: "Playstyle", Of: func(r dataset.Record) (string, bool) {
		return string(r.Playstyle), true
	}}
	ByLegendary = Key{Name: dataset.ColLegendary, Of: func(r dataset.Record) (string, bool) {
		return strconv.FormatBool(r.Legendary), true
	}}
)

// lessValue orders category values: integers first in numeric order, then
// everything else lexically.
func lessValue(a, b string) bool {
	ia, errA := strconv.Atoi(a)
	ib, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return ia < ib
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
