package storage

import "fmt"

// HashTable is an unordered table keyed by the full encoded tuple of its
// key columns. It deliberately does not implement cursor.Seekable: a hash
// index has no natural order for SeekTo to exploit, so it exists only so
// that index.TableIndex{Ordered: false} has a runnable counterpart for
// tests asserting planner.Attribute refuses to attribute range predicates
// against an unordered column (spec.md §4.5/§4.9's hash-index Non-goal).
type HashTable struct {
	codecs []KeyCodec
	rows   map[string][]any
}

// NewHashTable builds an empty hash table keyed by codecs.
func NewHashTable(codecs []KeyCodec) *HashTable {
	return &HashTable{codecs: codecs, rows: make(map[string][]any)}
}

// Put inserts or overwrites the row for keyValues.
func (h *HashTable) Put(keyValues []any, value any) {
	h.rows[h.encodeKey(keyValues)] = append(append([]any(nil), keyValues...), value)
}

// Lookup returns the stored row for an exact key tuple, or nil, false if
// absent. There is no range or prefix lookup: that is the point.
func (h *HashTable) Lookup(keyValues []any) (any, bool) {
	row, ok := h.rows[h.encodeKey(keyValues)]
	if !ok {
		return nil, false
	}
	return row, true
}

func (h *HashTable) encodeKey(keyValues []any) string {
	parts := make([][]byte, len(h.codecs))
	for i, c := range h.codecs {
		parts[i] = c.Encode(keyValues[i])
	}
	return string(concatBytes(parts...))
}

// Len reports the row count.
func (h *HashTable) Len() int {
	return len(h.rows)
}

func (h *HashTable) String() string {
	return fmt.Sprintf("HashTable(%d rows)", len(h.rows))
}
