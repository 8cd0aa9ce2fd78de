package analysis

import (
	"sort"

	"github.com/KaramelBytes/pokestat-cli/internal/dataset"
)

// GroupBest pairs a category with its strongest record.
type GroupBest struct {
	Key    string
	Record dataset.Record
}

// BestPerGroup returns, for every distinct key value, the record with the
// highest stat. Ties go to the record that appears first in the table.
// Groups are ordered by key ascending.
func BestPerGroup(t *dataset.Table, key Key, stat dataset.Stat) []GroupBest {
	if t == nil {
		return nil
	}
	best := map[string]dataset.Record{}
	for _, r := range t.Records {
		k, ok := key.Of(r)
		if !ok {
			continue
		}
		cur, seen := best[k]
		if !seen || stat.Of(r) > stat.Of(cur) {
			best[k] = r
		}
	}
	out := make([]GroupBest, 0, len(best))
	for k, r := range best {
		out = append(out, GroupBest{Key: k, Record: r})
	}
	sort.Slice(out, func(i, j int) bool { return lessValue(out[i].Key, out[j].Key) })
	return out
}

// OrderByStat reorders group winners by stat descending, ties by key.
func OrderByStat(groups []GroupBest, stat dataset.Stat) []GroupBest {
	out := append([]GroupBest(nil), groups...)
	sort.SliceStable(out, func(i, j int) bool { return stat.Of(out[i].Record) > stat.Of(out[j].Record) })
	return out
}

// TopByStat returns the n records with the highest stat, descending. Ties
// keep table order and duplicates are kept, so the result has min(n, rows)
// entries.
func TopByStat(t *dataset.Table, stat dataset.Stat, n int) []dataset.Record {
	if t == nil || n <= 0 {
		return nil
	}
	out := append([]dataset.Record(nil), t.Records...)
	sort.SliceStable(out, func(i, j int) bool { return stat.Of(out[i]) > stat.Of(out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
