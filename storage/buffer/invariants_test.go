package buffer

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/nodedb/bufpool/common"
	"github.com/nodedb/bufpool/storage/disk"
)

// TestFreeListAndResidentFramesAreDisjoint fuzzes NewPage/FetchPage/
// UnpinPage/DeletePage and checks, after every operation, that no frame
// id appears simultaneously in the free list and among the frames
// currently holding a resident page — spec.md §8's free-list/hash-table
// disjointness invariant, checked the way optimizer_test.go keys a map
// by mapset.Set[string].
func TestFreeListAndResidentFramesAreDisjoint(t *testing.T) {
	dm := disk.NewDiskManagerTest()
	defer dm.ShutDown()
	bpm := NewBufferPoolManager(5, dm, common.DefaultBucketSize, common.DefaultK)

	checkDisjoint := func() {
		free := mapset.NewSet[FrameID]()
		for _, id := range bpm.freeList {
			free.Add(id)
		}

		resident := mapset.NewSet[FrameID]()
		for i, f := range bpm.frames {
			if f != nil {
				resident.Add(FrameID(i))
			}
		}

		if free.Intersect(resident).Cardinality() != 0 {
			t.Fatalf("frame id in both free list and resident set: %v", free.Intersect(resident))
		}
	}

	// Allocate until the pool is full, unpin every other page to create
	// evictable slack, then churn NewPage/DeletePage against it.
	for i := 0; i < 5; i++ {
		p := bpm.NewPage()
		if p == nil {
			t.Fatalf("unexpected nil page on fill")
		}
		if i%2 == 0 {
			bpm.UnpinPage(p.ID(), i%4 == 0)
		}
		checkDisjoint()
	}

	for round := 0; round < 20; round++ {
		p := bpm.NewPage()
		checkDisjoint()
		if p == nil {
			continue
		}
		bpm.UnpinPage(p.ID(), round%3 == 0)
		checkDisjoint()

		if round%2 == 0 {
			bpm.DeletePage(p.ID())
			checkDisjoint()
		}
	}

	bpm.FlushAllPages()
	checkDisjoint()
}

// TestPinCountNeverExceedsPoolSize fuzzes NewPage against a small pool
// and checks spec.md §8's "sum(pin_counts) <= pool_size" invariant.
func TestPinCountNeverExceedsPoolSize(t *testing.T) {
	dm := disk.NewDiskManagerTest()
	defer dm.ShutDown()
	const poolSize = 4
	bpm := NewBufferPoolManager(poolSize, dm, common.DefaultBucketSize, common.DefaultK)

	for i := 0; i < poolSize*3; i++ {
		p := bpm.NewPage()
		if p == nil {
			continue
		}
		if i%2 == 0 {
			bpm.UnpinPage(p.ID(), false)
		}

		var sum int32
		for _, f := range bpm.frames {
			if f != nil {
				sum += f.PinCount()
			}
		}
		if sum > int32(poolSize) {
			t.Fatalf("sum of pin counts %d exceeds pool size %d", sum, poolSize)
		}
	}
}
