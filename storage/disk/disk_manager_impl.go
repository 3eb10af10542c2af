// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"errors"
	"io"
	"log"
	"os"
	"sync"

	"github.com/nodedb/bufpool/common"
	"github.com/nodedb/bufpool/types"
)

// DiskManagerImpl is the file-backed implementation of DiskManager.
type DiskManagerImpl struct {
	db          *os.File
	fileName    string
	nextPageID  types.PageID
	numWrites   uint64
	size        int64
	dbFileMutex *sync.Mutex
}

// NewDiskManagerImpl returns a DiskManager instance
func NewDiskManagerImpl(dbFilename string) DiskManager {
	file, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		log.Fatalln("can't open db file")
		return nil
	}

	fileInfo, err := file.Stat()
	if err != nil {
		log.Fatalln("file info error")
		return nil
	}

	fileSize := fileInfo.Size()
	nPages := fileSize / common.PageSize

	nextPageID := types.PageID(0)
	if nPages > 0 {
		nextPageID = types.PageID(int32(nPages + 1))
	}

	return &DiskManagerImpl{file, dbFilename, nextPageID, 0, fileSize, new(sync.Mutex)}
}

// ShutDown closes the database file
func (d *DiskManagerImpl) ShutDown() {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	d.db.Close()
}

// WritePage writes a page to the database file
func (d *DiskManagerImpl) WritePage(pageID types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageID) * common.PageSize
	d.db.Seek(offset, io.SeekStart)
	bytesWritten, err := d.db.Write(pageData)
	if err != nil {
		return err
	}

	if bytesWritten != common.PageSize {
		return errors.New("bytes written not equal to page size")
	}

	if offset >= d.size {
		d.size = offset + int64(bytesWritten)
	}

	d.numWrites++
	return d.db.Sync()
}

// ReadPage reads a page from the database file
func (d *DiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageID) * common.PageSize

	if offset > d.size {
		return errors.New("I/O error past end of file")
	}

	d.db.Seek(offset, io.SeekStart)

	bytesRead, err := d.db.Read(pageData)
	if err != nil && err != io.EOF {
		return errors.New("I/O error while reading")
	}

	if bytesRead < common.PageSize {
		for i := bytesRead; i < common.PageSize; i++ {
			pageData[i] = 0
		}
	}
	return nil
}

// AllocatePage allocates a new page id. For now this is just an
// increasing counter; on-disk allocation beyond monotonic id issuance is
// out of scope for this core.
func (d *DiskManagerImpl) AllocatePage() types.PageID {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	ret := d.nextPageID
	d.nextPageID++
	return ret
}

// DeallocatePage is a no-op at this layer: disk space reclamation needs a
// bitmap/free-space map above the buffer pool core, which is out of
// scope.
func (d *DiskManagerImpl) DeallocatePage(pageID types.PageID) {}

// GetNumWrites returns the number of disk writes
func (d *DiskManagerImpl) GetNumWrites() uint64 {
	return d.numWrites
}

// Size returns the size of the file on disk
func (d *DiskManagerImpl) Size() int64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.size
}

// RemoveDBFile removes the backing file. Call only after ShutDown.
func (d *DiskManagerImpl) RemoveDBFile() {
	os.Remove(d.fileName)
}
