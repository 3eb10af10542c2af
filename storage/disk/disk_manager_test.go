// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"testing"

	"github.com/nodedb/bufpool/common"
	"github.com/nodedb/bufpool/storage/buffer/buffertest"
	"github.com/nodedb/bufpool/types"
)

func TestDiskManagerTestReadWritePage(t *testing.T) {
	dm := NewDiskManagerTest()
	defer dm.ShutDown()

	data := make([]byte, common.PageSize)
	buffer := make([]byte, common.PageSize)
	copy(data, "A test string.")

	buffertest.Ok(t, dm.ReadPage(0, buffer)) // tolerate empty read
	buffertest.Ok(t, dm.WritePage(0, data))
	buffertest.Ok(t, dm.ReadPage(0, buffer))
	buffertest.Equals(t, data, buffer)

	for i := range buffer {
		buffer[i] = 0
	}
	copy(data, "Another test string.")

	buffertest.Ok(t, dm.WritePage(5, data))
	buffertest.Ok(t, dm.ReadPage(5, buffer))
	buffertest.Equals(t, data, buffer)
	buffertest.Equals(t, uint64(2), dm.GetNumWrites())
}

func TestDiskManagerTestAllocatePageMonotonic(t *testing.T) {
	dm := NewDiskManagerTest()
	defer dm.ShutDown()

	var last types.PageID = -1
	for i := 0; i < 5; i++ {
		id := dm.AllocatePage()
		if id <= last {
			t.Fatalf("page ids not monotonic: %d after %d", id, last)
		}
		last = id
	}
}

func TestVirtualDiskManagerReadWritePage(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("virtual-test")
	defer dm.ShutDown()

	data := make([]byte, common.PageSize)
	buffer := make([]byte, common.PageSize)
	copy(data, "A test string.")

	buffertest.Ok(t, dm.WritePage(0, data))
	buffertest.Ok(t, dm.ReadPage(0, buffer))
	buffertest.Equals(t, data, buffer)
	buffertest.Equals(t, uint64(1), dm.GetNumWrites())
}

func TestVirtualDiskManagerReadPastEndOfFileFails(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("virtual-test")
	defer dm.ShutDown()

	buffer := make([]byte, common.PageSize)
	if err := dm.ReadPage(3, buffer); err == nil {
		t.Fatalf("expected an error reading a page past end of file")
	}
}

func TestVirtualDiskManagerAllocatePageNeverReused(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("virtual-test")
	defer dm.ShutDown()

	first := dm.AllocatePage()
	dm.DeallocatePage(first)
	second := dm.AllocatePage()

	if second <= first {
		t.Fatalf("expected a fresh monotonic id after deallocation, got %d after %d", second, first)
	}
}
