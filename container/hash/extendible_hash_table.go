// Package hash implements the buffer pool manager's page_id -> frame_id
// directory: an extendible hash table, grown by directory doubling and
// directed bucket splits rather than full rehashes. Values are plain
// uint32s, the way the teacher's own LinearProbeHashTable.Insert/GetValue
// deal in bare uint32 values rather than a buffer.FrameID type — keeping
// the hash table ignorant of the buffer package avoids a cycle, since
// the buffer pool manager is the one importing this table, not the
// other way around.
package hash

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"

	"github.com/nodedb/bufpool/common"
	"github.com/nodedb/bufpool/types"
)

// entry is a single (page_id, frame_id) pair held in a bucket.
type entry struct {
	key   types.PageID
	value uint32
}

// bucket is a bounded, linearly-scanned list of entries sharing a local
// depth. Buckets are arena objects: identity is the pointer, never a
// value copy, so that multiple directory slots can legitimately refer
// to the same bucket after a directory doubling.
type bucket struct {
	localDepth uint32
	entries    []entry
	capacity   int
}

func newBucket(localDepth uint32, capacity int) *bucket {
	return &bucket{localDepth: localDepth, capacity: capacity}
}

func (b *bucket) find(key types.PageID) (uint32, bool) {
	for _, e := range b.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return 0, false
}

func (b *bucket) isFull() bool {
	return len(b.entries) >= b.capacity
}

// upsert overwrites the value if key is already present and reports
// whether it found an existing entry.
func (b *bucket) upsert(key types.PageID, value uint32) bool {
	for i := range b.entries {
		if b.entries[i].key == key {
			b.entries[i].value = value
			return true
		}
	}
	return false
}

func (b *bucket) remove(key types.PageID) bool {
	for i, e := range b.entries {
		if e.key == key {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return true
		}
	}
	return false
}

// ExtendibleHashTable is the page_id -> frame_id index owned by the
// buffer pool manager. It is not independently thread-safe against the
// manager's own operations; table_latch exists only as defense in
// depth, the way the teacher's LinearProbeHashTable guards itself with
// a ReaderWriterLatch on top of the buffer pool manager's own latching.
type ExtendibleHashTable struct {
	table_latch common.ReaderWriterLatch
	globalDepth uint32
	bucketSize  int
	directory   []*bucket
}

// NewExtendibleHashTable returns an empty table with one bucket at
// global depth 0.
func NewExtendibleHashTable(bucketSize int) *ExtendibleHashTable {
	return &ExtendibleHashTable{
		table_latch: common.NewRWLatch(),
		globalDepth: 0,
		bucketSize:  bucketSize,
		directory:   []*bucket{newBucket(0, bucketSize)},
	}
}

func hashPageID(key types.PageID) uint32 {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(key))
	h := murmur3.New128()
	h.Write(buf)
	return binary.LittleEndian.Uint32(h.Sum(nil))
}

// IndexOf returns the low global_depth bits of hash(key), i.e. the
// directory slot the key currently maps to.
func (h *ExtendibleHashTable) IndexOf(key types.PageID) uint32 {
	if h.globalDepth == 0 {
		return 0
	}
	mask := uint32(1)<<h.globalDepth - 1
	return hashPageID(key) & mask
}

// Find looks up key, returning its frame id and whether it was present.
func (h *ExtendibleHashTable) Find(key types.PageID) (uint32, bool) {
	h.table_latch.RLock()
	defer h.table_latch.RUnlock()
	return h.directory[h.IndexOf(key)].find(key)
}

// Remove deletes key, reporting whether it was present. Splits are
// never triggered by Remove; buckets are not merged in this design.
func (h *ExtendibleHashTable) Remove(key types.PageID) bool {
	h.table_latch.WLock()
	defer h.table_latch.WUnlock()
	return h.directory[h.IndexOf(key)].remove(key)
}

// Insert installs key -> value, upserting if key is already present,
// and otherwise directing bucket splits until the target bucket has
// room.
func (h *ExtendibleHashTable) Insert(key types.PageID, value uint32) {
	h.table_latch.WLock()
	defer h.table_latch.WUnlock()

	idx := h.IndexOf(key)
	if h.directory[idx].upsert(key, value) {
		return
	}

	for h.directory[idx].isFull() {
		target := h.directory[idx]

		if target.localDepth == h.globalDepth {
			h.growDirectory()
		}

		h.splitBucket(target)
		idx = h.IndexOf(key)
	}

	h.directory[idx].entries = append(h.directory[idx].entries, entry{key, value})
}

// growDirectory doubles the directory: slot i and slot i+oldLen
// initially point to the same bucket as slot i did, and global_depth
// increases by one.
func (h *ExtendibleHashTable) growDirectory() {
	oldLen := len(h.directory)
	grown := make([]*bucket, oldLen*2)
	copy(grown, h.directory)
	copy(grown[oldLen:], h.directory)
	h.directory = grown
	h.globalDepth++
}

// splitBucket partitions target's entries into two fresh buckets at
// localDepth+1 and rewires every directory slot that pointed to target.
// Only target splits; every other bucket keeps its identity and depth.
func (h *ExtendibleHashTable) splitBucket(target *bucket) {
	oldLocalDepth := target.localDepth
	newLocalDepth := oldLocalDepth + 1
	splitBit := uint32(1) << oldLocalDepth

	zeroBucket := newBucket(newLocalDepth, h.bucketSize)
	oneBucket := newBucket(newLocalDepth, h.bucketSize)

	for _, e := range target.entries {
		if hashPageID(e.key)&splitBit == 0 {
			zeroBucket.entries = append(zeroBucket.entries, e)
		} else {
			oneBucket.entries = append(oneBucket.entries, e)
		}
	}

	for i, b := range h.directory {
		if b != target {
			continue
		}
		if uint32(i)&splitBit == 0 {
			h.directory[i] = zeroBucket
		} else {
			h.directory[i] = oneBucket
		}
	}
}

// GlobalDepth returns the current directory depth, for diagnostics and
// invariant tests.
func (h *ExtendibleHashTable) GlobalDepth() uint32 {
	h.table_latch.RLock()
	defer h.table_latch.RUnlock()
	return h.globalDepth
}

// BucketLocalDepth returns the local depth of the bucket at directory
// slot i.
func (h *ExtendibleHashTable) BucketLocalDepth(i uint32) uint32 {
	h.table_latch.RLock()
	defer h.table_latch.RUnlock()
	return h.directory[i].localDepth
}
