// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import (
	deadlock "github.com/sasha-s/go-deadlock"
)

type ReaderWriterLatch interface {
	WLock()
	WUnlock()
	RLock()
	RUnlock()
}

// readerWriterLatch is backed by a deadlock-detecting RWMutex instead of
// sync.RWMutex: with the buffer pool manager, the hash table and the
// replacer all taking latches of their own (the manager's is the real
// linearization point, the others are defense-in-depth per spec §4.4),
// a lock-order mistake should fail loudly instead of hanging.
type readerWriterLatch struct {
	mutex *deadlock.RWMutex
}

func NewRWLatch() ReaderWriterLatch {
	latch := readerWriterLatch{}
	latch.mutex = new(deadlock.RWMutex)

	return &latch
}

func (l *readerWriterLatch) WLock() {
	l.mutex.Lock()
}

func (l *readerWriterLatch) WUnlock() {
	l.mutex.Unlock()
}

func (l *readerWriterLatch) RLock() {
	l.mutex.RLock()
}

func (l *readerWriterLatch) RUnlock() {
	l.mutex.RUnlock()
}

// for debug of cuncurrent code on single thread running
type readerWriterLatchDummy struct {
	readerCnt int32
	writerCnt int32
}

func NewRWLatchDummy() ReaderWriterLatch {
	latch := readerWriterLatchDummy{0, 0}

	return &latch
}

func (l *readerWriterLatchDummy) WLock() {
	l.writerCnt++
	Assert(l.writerCnt == 1, "double Write Lock!")
}

func (l *readerWriterLatchDummy) WUnlock() {
	l.writerCnt--
	Assert(l.writerCnt == 0, "double Write Unlock!")
}

func (l *readerWriterLatchDummy) RLock() {
	l.readerCnt++
	Assert(l.readerCnt == 1, "double Reader Lock!")
}

func (l *readerWriterLatchDummy) RUnlock() {
	l.readerCnt--
	Assert(l.readerCnt == 0, "double Reader Unlock!")
}
