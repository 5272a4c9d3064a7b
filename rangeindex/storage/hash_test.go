package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/rangeindex/expr"
	"github.com/wbrown/rangeindex/index"
	"github.com/wbrown/rangeindex/planner"
)

func TestHashTablePutAndLookup(t *testing.T) {
	h := NewHashTable([]KeyCodec{Int64Codec{}, StringCodec{}})
	h.Put([]any{int64(1), "alice"}, "row-1")
	h.Put([]any{int64(2), "bob"}, "row-2")

	v, ok := h.Lookup([]any{int64(1), "alice"})
	require.True(t, ok)
	row := v.([]any)
	assert.Equal(t, "row-1", row[len(row)-1])

	_, ok = h.Lookup([]any{int64(99), "nobody"})
	assert.False(t, ok)
}

func TestHashTableOverwrite(t *testing.T) {
	h := NewHashTable([]KeyCodec{Int64Codec{}})
	h.Put([]any{int64(1)}, "first")
	h.Put([]any{int64(1)}, "second")

	require.Equal(t, 1, h.Len())
	v, _ := h.Lookup([]any{int64(1)})
	row := v.([]any)
	assert.Equal(t, "second", row[len(row)-1])
}

// TestHashTableBackedIndexRefusesPlanning exercises the reason HashTable
// exists at all: an index.TableIndex whose only column is unordered (the
// shape a HashTable-backed table would expose) is rejected outright by
// planner.Attribute, never silently planned against.
func TestHashTableBackedIndexRefusesPlanning(t *testing.T) {
	h := NewHashTable([]KeyCodec{Int64Codec{}})
	h.Put([]any{int64(1)}, "row-1")

	row := &expr.Param{Name: "row"}
	id := &expr.Member{Receiver: row, Name: "ID", OwnerType: "Row", MemberType: "int64"}
	col := index.NewUnorderedColumn(row, id, func(a, b any) bool { return a == b }, true)
	idx := index.NewTableIndex(col)
	require.False(t, idx.Ordered, "an index over a hash-backed column must report Ordered=false")

	term := &expr.Binary{Op: expr.OpEQ, Left: id, Right: &expr.Const{Value: int64(1)}}
	matches, remaining, err := planner.Attribute(row, []expr.Node{term}, idx, planner.DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, matches)
	assert.Equal(t, []expr.Node{term}, remaining)
}
