package storage

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/wbrown/rangeindex/cursor"
)

// BadgerTable is a cursor.Seekable backed by a BadgerDB key range, one
// table per logical index. Each row's key columns are concatenated via
// codecs into the BadgerDB key, byte-for-byte order-preserving per column,
// the same discipline the teacher's BinaryKeyEncoder applies to its fixed
// EAVT/AEVT/.../TAEV layouts (datalog/storage/key_encoder_binary.go) -
// generalized here to an arbitrary caller-supplied column codec list
// instead of the teacher's fixed entity/attribute/value/tx shape.
type BadgerTable struct {
	db       *badger.DB
	closeDB  func() error
	codecs   []KeyCodec
	decodeFn func(keyValues []any, value []byte) any

	txn     *badger.Txn
	it      *badger.Iterator
	started bool
	lastErr error

	curKeyValues []any

	name   string
	tracer Tracer
}

// OpenBadgerTable opens (creating if absent) a BadgerDB at path and wraps
// it as a table whose composite key is encoded by codecs in order. decode,
// if non-nil, converts the decoded key tuple plus the raw stored value
// into the row value Current() returns; if nil, Current() returns the key
// tuple itself ([]any).
func OpenBadgerTable(path string, codecs []KeyCodec, decode func(keyValues []any, value []byte) any) (*BadgerTable, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("rangeindex/storage: open badger at %q: %w", path, err)
	}
	return &BadgerTable{db: db, closeDB: db.Close, codecs: codecs, decodeFn: decode, tracer: NullTracer{}}, nil
}

// NewBadgerTableFromDB wraps an already-open *badger.DB. The caller retains
// ownership of db; Close on the returned table does not close it.
func NewBadgerTableFromDB(db *badger.DB, codecs []KeyCodec, decode func(keyValues []any, value []byte) any) *BadgerTable {
	return &BadgerTable{db: db, codecs: codecs, decodeFn: decode, tracer: NullTracer{}}
}

// SetTracer installs t to observe this table's Seek/Emit events under name.
// A nil Tracer restores the default no-op.
func (t *BadgerTable) SetTracer(name string, tr Tracer) {
	if tr == nil {
		tr = NullTracer{}
	}
	t.name, t.tracer = name, tr
}

// Put writes a single row's key columns and opaque value bytes.
func (t *BadgerTable) Put(keyValues []any, value []byte) error {
	key := t.encodeFull(keyValues)
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (t *BadgerTable) encodeFull(keyValues []any) []byte {
	return t.encodePrefix(len(t.codecs), keyValues)
}

func (t *BadgerTable) encodePrefix(prefixLen int, keyValues []any) []byte {
	parts := make([][]byte, prefixLen)
	for i := 0; i < prefixLen; i++ {
		parts[i] = t.codecs[i].Encode(keyValues[i])
	}
	return concatBytes(parts...)
}

func (t *BadgerTable) decodeKey(key []byte) ([]any, error) {
	values := make([]any, len(t.codecs))
	off := 0
	for i, c := range t.codecs {
		width := c.Size()
		if width == 0 {
			width = len(key) - off
		}
		if off+width > len(key) {
			return nil, fmt.Errorf("rangeindex/storage: key too short decoding column %d", i)
		}
		v, err := c.Decode(key[off : off+width])
		if err != nil {
			return nil, fmt.Errorf("rangeindex/storage: decode column %d: %w", i, err)
		}
		values[i] = v
		off += width
	}
	return values, nil
}

// incrementBytes returns the shortest byte string that sorts strictly
// after every byte string having b as a prefix, or nil if no such string
// exists (b is already the maximum representable value, e.g. all 0xFF).
func incrementBytes(b []byte) []byte {
	out := append([]byte(nil), b...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] < 0xFF {
			out[i]++
			return out[:i+1]
		}
	}
	return nil
}

func (t *BadgerTable) ensureIterator() {
	if t.it != nil {
		return
	}
	t.txn = t.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	t.it = t.txn.NewIterator(opts)
}

func (t *BadgerTable) closeIterator() {
	if t.it != nil {
		t.it.Close()
		t.it = nil
	}
	if t.txn != nil {
		t.txn.Discard()
		t.txn = nil
	}
}

func (t *BadgerTable) loadCurrent() error {
	item := t.it.Item()
	key := item.KeyCopy(nil)
	values, err := t.decodeKey(key)
	if err != nil {
		return err
	}
	t.curKeyValues = values
	return nil
}

func (t *BadgerTable) MoveNext() bool {
	t.ensureIterator()
	if !t.started {
		t.it.Rewind()
		t.started = true
	} else {
		t.it.Next()
	}
	if !t.it.Valid() {
		return false
	}
	if err := t.loadCurrent(); err != nil {
		t.lastErr = err
		return false
	}
	t.tracer.Emit(t.Current())
	return true
}

func (t *BadgerTable) Current() cursor.Row {
	if t.it == nil || !t.it.Valid() {
		return nil
	}
	item := t.it.Item()
	var val []byte
	if err := item.Value(func(v []byte) error {
		val = append([]byte(nil), v...)
		return nil
	}); err != nil {
		t.lastErr = err
		return nil
	}
	if t.decodeFn != nil {
		return t.decodeFn(t.curKeyValues, val)
	}
	return t.curKeyValues
}

func (t *BadgerTable) GetColumnValue(i int) any {
	return t.curKeyValues[i]
}

// SeekTo positions at the lower (following=false) or upper (following=true)
// bound of keys whose first prefixLen columns equal keyValues[0:prefixLen].
func (t *BadgerTable) SeekTo(prefixLen int, keyValues []any, following bool) bool {
	t.ensureIterator()
	t.started = true

	prefix := t.encodePrefix(prefixLen, keyValues)
	if following {
		prefix = incrementBytes(prefix)
		if prefix == nil {
			t.tracer.Seek(t.name, prefixLen, keyValues[:prefixLen], following, false)
			return false
		}
	}

	t.it.Seek(prefix)
	ok := t.it.Valid()
	t.tracer.Seek(t.name, prefixLen, keyValues[:prefixLen], following, ok)
	if !ok {
		return false
	}
	if err := t.loadCurrent(); err != nil {
		t.lastErr = err
		return false
	}
	t.tracer.Emit(t.Current())
	return true
}

func (t *BadgerTable) Reset() {
	t.closeIterator()
	t.started = false
}

func (t *BadgerTable) Close() error {
	t.closeIterator()
	if t.closeDB != nil {
		return t.closeDB()
	}
	return nil
}

// LastErr returns the most recent decode/badger error observed, or nil.
func (t *BadgerTable) LastErr() error {
	return t.lastErr
}
