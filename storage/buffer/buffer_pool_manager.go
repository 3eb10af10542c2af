// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"fmt"

	deadlock "github.com/sasha-s/go-deadlock"
	stack "github.com/golang-collections/collections/stack"

	"github.com/nodedb/bufpool/bperr"
	"github.com/nodedb/bufpool/common"
	"github.com/nodedb/bufpool/container/hash"
	"github.com/nodedb/bufpool/logmgr"
	"github.com/nodedb/bufpool/storage/disk"
	"github.com/nodedb/bufpool/storage/frame"
	"github.com/nodedb/bufpool/types"
)

const recentEvictionsTraceSize = 32

// diskIOPanic dumps goroutine stacks when debugging is enabled, then
// panics wrapping bperr.ErrDiskIO. Disk I/O failure is fatal at this
// layer (spec §7); the stack dump mirrors the teacher's own
// RuntimeStack-before-panic idiom.
func diskIOPanic(err error) {
	if common.EnableDebug {
		common.DumpGoroutineStacks()
	}
	panic(fmt.Errorf("%w: %s", bperr.ErrDiskIO, err))
}

// BufferPoolManager owns the frame array, free list, page-id->frame
// index and replacer, and orchestrates NewPage/FetchPage/UnpinPage/
// FlushPage/FlushAllPages/DeletePage under a single latch. The hash
// table and replacer are collaborators it owns outright; they are not
// independently thread-safe against the manager's own operations.
type BufferPoolManager struct {
	mutex       deadlock.Mutex
	diskManager disk.DiskManager
	logManager  logmgr.LogManager
	frames      []*frame.Frame // index is FrameID
	freeList    []FrameID
	pageTable   *hash.ExtendibleHashTable
	replacer    *LRUKReplacer
	poolSize    uint32

	recentEvictions *stack.Stack
}

// NewBufferPoolManager returns a buffer pool manager with poolSize
// frames, backed by diskManager, using the given hash-table bucket size
// and replacer k.
func NewBufferPoolManager(poolSize uint32, diskManager disk.DiskManager, bucketSize int, k int) *BufferPoolManager {
	freeList := make([]FrameID, poolSize)
	frames := make([]*frame.Frame, poolSize)
	for i := uint32(0); i < poolSize; i++ {
		freeList[i] = FrameID(i)
		frames[i] = nil
	}

	return &BufferPoolManager{
		diskManager:     diskManager,
		logManager:      logmgr.NopLogManager{},
		frames:          frames,
		freeList:        freeList,
		pageTable:       hash.NewExtendibleHashTable(bucketSize),
		replacer:        NewLRUKReplacer(poolSize, k),
		poolSize:        poolSize,
		recentEvictions: stack.New(),
	}
}

// getFrameID picks a frame to reuse: the free list first, else a
// replacer victim. The second return reports whether it came from the
// free list (no write-back/remap needed in that case).
func (b *BufferPoolManager) getFrameID() (FrameID, bool) {
	if len(b.freeList) > 0 {
		frameID := b.freeList[0]
		b.freeList = b.freeList[1:]
		return frameID, true
	}

	victim, ok := b.replacer.Evict()
	if !ok {
		return InvalidFrameID, false
	}
	return victim, false
}

// evictFrame writes back the frame's contents if dirty and removes its
// hash-table mapping. Called on the frame a replacer victim is about to
// be reassigned to.
func (b *BufferPoolManager) evictFrame(frameID FrameID) {
	victim := b.frames[frameID]
	if victim == nil {
		return
	}

	if victim.IsDirty() {
		data := victim.Data()
		if err := b.diskManager.WritePage(victim.ID(), data[:]); err != nil {
			diskIOPanic(err)
		}
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG, "BufferPoolManager: wrote back dirty page %d on eviction\n", victim.ID())
		}
	}

	b.pageTable.Remove(victim.ID())
	b.recordEviction(victim.ID())
}

func (b *BufferPoolManager) recordEviction(pageID types.PageID) {
	b.recentEvictions.Push(pageID)
	trimmed := stack.New()
	items := make([]types.PageID, 0, recentEvictionsTraceSize)
	for i := 0; i < recentEvictionsTraceSize && b.recentEvictions.Len() > 0; i++ {
		items = append(items, b.recentEvictions.Pop().(types.PageID))
	}
	for i := len(items) - 1; i >= 0; i-- {
		trimmed.Push(items[i])
	}
	b.recentEvictions = trimmed
}

// NewPage allocates a new page in a free or evicted frame.
func (b *BufferPoolManager) NewPage() *frame.Frame {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, isFromFreeList := b.getFrameID()
	if frameID == InvalidFrameID {
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG, "BufferPoolManager: NewPage: %s\n", bperr.ErrNoFrameAvailable)
		}
		return nil
	}

	if !isFromFreeList {
		b.evictFrame(frameID)
	}

	pageID := b.diskManager.AllocatePage()
	newFrame := frame.NewEmpty(pageID)

	b.frames[frameID] = newFrame
	b.pageTable.Insert(pageID, uint32(frameID))
	b.replacer.RecordAccess(frameID)
	b.replacer.SetEvictable(frameID, false)

	if common.EnableDebug {
		common.ShPrintf(common.DEBUG, "BufferPoolManager: NewPage -> pageID=%d frameID=%d\n", pageID, frameID)
	}

	return newFrame
}

// FetchPage returns the frame holding pageID, reading it from disk on a
// miss. Returns nil iff no frame can be obtained.
func (b *BufferPoolManager) FetchPage(pageID types.PageID) *frame.Frame {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if rawFrameID, ok := b.pageTable.Find(pageID); ok {
		frameID := FrameID(rawFrameID)
		residentFrame := b.frames[frameID]
		residentFrame.IncPinCount()
		b.replacer.RecordAccess(frameID)
		b.replacer.SetEvictable(frameID, false)
		return residentFrame
	}

	frameID, isFromFreeList := b.getFrameID()
	if frameID == InvalidFrameID {
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG, "BufferPoolManager: FetchPage(%d): %s\n", pageID, bperr.ErrNoFrameAvailable)
		}
		return nil
	}

	if !isFromFreeList {
		b.evictFrame(frameID)
	}

	data := make([]byte, common.PageSize)
	if err := b.diskManager.ReadPage(pageID, data); err != nil {
		diskIOPanic(err)
	}
	var pageData [common.PageSize]byte
	copy(pageData[:], data)

	newFrame := frame.New(pageID, &pageData)
	b.frames[frameID] = newFrame
	b.pageTable.Insert(pageID, uint32(frameID))
	b.replacer.RecordAccess(frameID)
	b.replacer.SetEvictable(frameID, false)

	if common.EnableDebug {
		common.ShPrintf(common.DEBUG, "BufferPoolManager: FetchPage miss -> pageID=%d frameID=%d\n", pageID, frameID)
	}

	return newFrame
}

// UnpinPage decrements pageID's pin count, OR-ing isDirty into its dirty
// flag. Returns false if pageID is not resident or its pin count is
// already zero.
func (b *BufferPoolManager) UnpinPage(pageID types.PageID, isDirty bool) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	rawFrameID, ok := b.pageTable.Find(pageID)
	if !ok {
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG, "BufferPoolManager: UnpinPage(%d): %s\n", pageID, bperr.ErrPageNotResident)
		}
		return false
	}
	frameID := FrameID(rawFrameID)
	residentFrame := b.frames[frameID]

	if residentFrame.PinCount() <= 0 {
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG, "BufferPoolManager: UnpinPage(%d): %s\n", pageID, bperr.ErrInvalidUnpin)
		}
		return false
	}

	residentFrame.DecPinCount()
	if isDirty {
		residentFrame.SetIsDirty(true)
	}

	if residentFrame.PinCount() == 0 {
		b.replacer.SetEvictable(frameID, true)
	}

	return true
}

// FlushPage unconditionally writes pageID's frame to disk if resident,
// clearing its dirty flag. Pin count is ignored.
func (b *BufferPoolManager) FlushPage(pageID types.PageID) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	rawFrameID, ok := b.pageTable.Find(pageID)
	if !ok {
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG, "BufferPoolManager: FlushPage(%d): %s\n", pageID, bperr.ErrPageNotResident)
		}
		return false
	}
	residentFrame := b.frames[FrameID(rawFrameID)]

	data := residentFrame.Data()
	if err := b.diskManager.WritePage(pageID, data[:]); err != nil {
		diskIOPanic(err)
	}
	residentFrame.SetIsDirty(false)
	return true
}

// FlushAllPages writes every resident frame to disk and clears dirty,
// atomically under a single latch acquisition for the whole sweep: no
// NewPage/FetchPage/DeletePage can interleave and evict or delete a
// frame mid-flush.
func (b *BufferPoolManager) FlushAllPages() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, f := range b.frames {
		if f == nil {
			continue
		}
		data := f.Data()
		if err := b.diskManager.WritePage(f.ID(), data[:]); err != nil {
			diskIOPanic(err)
		}
		f.SetIsDirty(false)
	}
}

// DeletePage removes pageID from the pool, returning the frame to the
// free list. Returns true vacuously if pageID is not resident; returns
// false if it is resident and pinned.
func (b *BufferPoolManager) DeletePage(pageID types.PageID) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	rawFrameID, ok := b.pageTable.Find(pageID)
	if !ok {
		return true
	}
	frameID := FrameID(rawFrameID)
	residentFrame := b.frames[frameID]

	if residentFrame.PinCount() > 0 {
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG, "BufferPoolManager: DeletePage(%d): %s\n", pageID, bperr.ErrPagePinned)
		}
		return false
	}

	if residentFrame.IsDirty() {
		data := residentFrame.Data()
		if err := b.diskManager.WritePage(pageID, data[:]); err != nil {
			diskIOPanic(err)
		}
	}

	b.pageTable.Remove(pageID)
	b.replacer.Remove(frameID)
	b.diskManager.DeallocatePage(pageID)

	b.frames[frameID] = nil
	b.freeList = append(b.freeList, frameID)

	return true
}

// GetPoolSize returns the number of frames in the pool.
func (b *BufferPoolManager) GetPoolSize() uint32 {
	return b.poolSize
}

// GetPages returns the raw frame array, for diagnostics and invariant
// tests. Callers must not mutate the slice's contents directly.
func (b *BufferPoolManager) GetPages() []*frame.Frame {
	return b.frames
}

// DumpRecentEvictions prints the page ids evicted most recently, oldest
// first, up to recentEvictionsTraceSize of them. Gated behind
// common.EnableDebug the way the teacher gates PrintBufferUsageState.
func (b *BufferPoolManager) DumpRecentEvictions() {
	if !common.EnableDebug {
		return
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()

	items := make([]types.PageID, 0, b.recentEvictions.Len())
	for b.recentEvictions.Len() > 0 {
		items = append(items, b.recentEvictions.Pop().(types.PageID))
	}
	for i := len(items) - 1; i >= 0; i-- {
		fmt.Printf("%d ", items[i])
		b.recentEvictions.Push(items[i])
	}
	fmt.Println()
}

// PrintBufferUsageState prints (page_id, pin_count) for every resident
// frame, in frame order, in the spirit of the teacher's debug method of
// the same name.
func (b *BufferPoolManager) PrintBufferUsageState(callerInfo string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	fmt.Printf("BufferPoolManager::PrintBufferUsageState %s ", callerInfo)
	for _, f := range b.frames {
		if f != nil {
			fmt.Printf("(%d,%d)-", f.ID(), f.PinCount())
		}
	}
	fmt.Println()
}
