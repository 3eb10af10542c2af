package disk

import (
	"errors"
	"sync"

	"github.com/dsnet/golib/memfile"
	"github.com/nodedb/bufpool/common"
	"github.com/nodedb/bufpool/types"
)

// VirtualDiskManagerImpl is an in-memory DiskManager, backed by memfile
// instead of an os.File. It is meant for tests that want disk-manager
// semantics (page offsets, I/O errors past EOF) without touching the
// filesystem.
type VirtualDiskManagerImpl struct {
	db          *memfile.File
	fileName    string
	nextPageID  types.PageID
	numWrites   uint64
	size        int64
	dbFileMutex *sync.Mutex
}

// NewVirtualDiskManagerImpl returns a DiskManager instance
func NewVirtualDiskManagerImpl(dbFilename string) DiskManager {
	file := memfile.New(make([]byte, 0))
	return &VirtualDiskManagerImpl{file, dbFilename, 0, 0, 0, new(sync.Mutex)}
}

// ShutDown is a no-op: there is no backing file descriptor to close.
func (d *VirtualDiskManagerImpl) ShutDown() {}

// WritePage writes a page to the in-memory file
func (d *VirtualDiskManagerImpl) WritePage(pageID types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageID) * common.PageSize
	d.db.WriteAt(pageData, offset)

	if offset >= d.size {
		d.size = offset + int64(len(pageData))
	}

	d.numWrites++
	return nil
}

// ReadPage reads a page from the in-memory file
func (d *VirtualDiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageID) * common.PageSize

	if offset > d.size || offset+int64(len(pageData)) > d.size {
		return errors.New("I/O error past end of file")
	}

	_, err := d.db.ReadAt(pageData, offset)
	return err
}

// AllocatePage allocates a new page id. Ids are issued monotonically and
// never reused, even across DeallocatePage calls: page-id reuse would
// break the monotonic-id invariant the buffer pool core relies on.
func (d *VirtualDiskManagerImpl) AllocatePage() types.PageID {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	ret := d.nextPageID
	d.nextPageID++
	return ret
}

// DeallocatePage is a no-op: reclaiming in-memory file space needs a
// free-space map above this layer, which is out of scope.
func (d *VirtualDiskManagerImpl) DeallocatePage(pageID types.PageID) {}

// GetNumWrites returns the number of disk writes
func (d *VirtualDiskManagerImpl) GetNumWrites() uint64 {
	return d.numWrites
}

// Size returns the size of the virtual file
func (d *VirtualDiskManagerImpl) Size() int64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.size
}
