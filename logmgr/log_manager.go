// Package logmgr holds the reserved log manager interface. The buffer
// pool core consumes it as a collaborator (the way it consumes the disk
// manager) but never calls it: write-ahead logging, recovery, and
// checkpointing are out of scope for this core. The buffer pool manager
// always holds a NopLogManager; its constructor takes no LogManager.
package logmgr

import "github.com/nodedb/bufpool/types"

// LogManager is a two-method collaborator, modeled the way the disk
// manager is: AppendLogRecord would record a record and return the LSN
// assigned to it, Flush would force buffered records to stable storage.
type LogManager interface {
	AppendLogRecord(payload []byte) types.LSN
	Flush()
}

// NopLogManager discards everything. It is the LogManager that
// NewBufferPoolManager installs in every BufferPoolManager, since the core
// never exercises the interface itself.
type NopLogManager struct{}

func (NopLogManager) AppendLogRecord([]byte) types.LSN { return types.InvalidLSN }
func (NopLogManager) Flush()                           {}
