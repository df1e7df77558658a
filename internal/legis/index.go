package legis

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Key normalizes a district identifier to its lookup form: the value's
// string form with surrounding whitespace removed. Numbers and numeric
// strings collide, so 5, 5.0 and "5" all yield "5".
func Key(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(d)
	case District:
		return strings.TrimSpace(string(d))
	case float64:
		return strconv.FormatFloat(d, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(d), 'f', -1, 32)
	case int:
		return strconv.Itoa(d)
	case int64:
		return strconv.FormatInt(d, 10)
	case json.Number:
		if f, err := d.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return strings.TrimSpace(d.String())
	default:
		return strings.TrimSpace(fmt.Sprint(d))
	}
}

// Index maps normalized district keys to legislator records.
// Build it once; it is read-only afterwards.
type Index struct {
	records map[string]Record
}

// BuildIndex indexes records by district, ignoring chamber.
// Later records replace earlier ones with the same key.
func BuildIndex(records []Record) *Index {
	idx := &Index{records: make(map[string]Record, len(records))}
	for _, r := range records {
		idx.records[Key(r.District)] = r
	}
	return idx
}

// Get looks up a record by district. key may be any value Key accepts,
// typically a feature's raw District property.
func (idx *Index) Get(key any) (Record, bool) {
	if idx == nil {
		return Record{}, false
	}
	r, ok := idx.records[Key(key)]
	return r, ok
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

// Keys returns the keys in numeric-aware order.
func (idx *Index) Keys() []string {
	if idx == nil {
		return nil
	}
	keys := make([]string, 0, len(idx.records))
	for k := range idx.records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })
	return keys
}

// Records returns the indexed records in key order.
func (idx *Index) Records() []Record {
	keys := idx.Keys()
	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, idx.records[k])
	}
	return out
}

func lessKey(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	if (errA == nil) != (errB == nil) {
		return errA == nil
	}
	return a < b
}

// ChamberIndexes holds one index per chamber.
type ChamberIndexes struct {
	Senate *Index
	House  *Index
	// Dropped counts records whose Chamber was neither Senate nor House.
	Dropped int
}

// For returns the index of the given chamber, or nil.
func (c ChamberIndexes) For(ch Chamber) *Index {
	switch ch {
	case Senate:
		return c.Senate
	case House:
		return c.House
	}
	return nil
}

// BuildChamberIndexes partitions a mixed roster by exact Chamber match.
// Records with a missing or unrecognized Chamber go into neither index.
func BuildChamberIndexes(records []Record) ChamberIndexes {
	var senate, house []Record
	dropped := 0
	for _, r := range records {
		switch r.Chamber {
		case Senate:
			senate = append(senate, r)
		case House:
			house = append(house, r)
		default:
			dropped++
		}
	}
	if dropped > 0 {
		zap.L().Debug("legislators without a valid chamber dropped", zap.Int("count", dropped))
	}
	return ChamberIndexes{
		Senate:  BuildIndex(senate),
		House:   BuildIndex(house),
		Dropped: dropped,
	}
}
