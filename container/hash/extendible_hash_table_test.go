package hash

import (
	"testing"

	"github.com/nodedb/bufpool/storage/buffer/buffertest"
	"github.com/nodedb/bufpool/types"
)

func TestExtendibleHashTableUpsert(t *testing.T) {
	ht := NewExtendibleHashTable(2)

	ht.Insert(types.PageID(1), 10)
	ht.Insert(types.PageID(1), 20)

	value, ok := ht.Find(types.PageID(1))
	buffertest.Equals(t, true, ok)
	buffertest.Equals(t, uint32(20), value)
}

func TestExtendibleHashTableFindRemoveMiss(t *testing.T) {
	ht := NewExtendibleHashTable(2)

	_, ok := ht.Find(types.PageID(42))
	buffertest.Equals(t, false, ok)

	ok = ht.Remove(types.PageID(42))
	buffertest.Equals(t, false, ok)
}

func TestExtendibleHashTableSplitsOnOverflow(t *testing.T) {
	ht := NewExtendibleHashTable(2)

	// bucket_size=2: the third distinct key into the single initial
	// bucket forces a split and a directory doubling since the bucket's
	// local depth (0) equals the global depth (0) at that point.
	for i := types.PageID(0); i < 64; i++ {
		ht.Insert(i, uint32(i))
	}

	for i := types.PageID(0); i < 64; i++ {
		value, ok := ht.Find(i)
		buffertest.Equals(t, true, ok)
		buffertest.Equals(t, uint32(i), value)
	}

	if ht.GlobalDepth() == 0 {
		t.Fatalf("expected global depth to have grown past 0 after 64 inserts at bucket_size=2")
	}

	// Every directory slot's bucket must have local depth <= global depth.
	gd := ht.GlobalDepth()
	for i := uint32(0); i < uint32(1)<<gd; i++ {
		ld := ht.BucketLocalDepth(i)
		if ld > gd {
			t.Fatalf("slot %d: local depth %d exceeds global depth %d", i, ld, gd)
		}
	}
}

func TestExtendibleHashTableRemoveThenMiss(t *testing.T) {
	ht := NewExtendibleHashTable(2)
	ht.Insert(types.PageID(7), 700)

	ok := ht.Remove(types.PageID(7))
	buffertest.Equals(t, true, ok)

	_, found := ht.Find(types.PageID(7))
	buffertest.Equals(t, false, found)
}
