package vfs

import (
	"sync"

	"github.com/psanford/sqlite3vfs"
)

// lockTable tracks SQLite lock levels held on each file by the connections of
// this process.
type lockTable struct {
	files map[string]*lockState
	mutex *sync.Mutex
}

type lockState struct {
	exclusive bool
	handles   int
	pending   bool
	reserved  bool
	shared    int
}

// fileLock is the lock level held by one open file.
type fileLock struct {
	level    sqlite3vfs.LockType
	name     string
	reserved bool
	table    *lockTable
}

func newLockTable() *lockTable {
	return &lockTable{
		files: make(map[string]*lockState),
		mutex: &sync.Mutex{},
	}
}

func (t *lockTable) open(name string) *fileLock {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	state, ok := t.files[name]

	if !ok {
		state = &lockState{}
		t.files[name] = state
	}

	state.handles++

	return &fileLock{
		level: sqlite3vfs.LockNone,
		name:  name,
		table: t,
	}
}

// Lock raises the lock to level, or returns sqlite3vfs.BusyError when another
// file holds a conflicting lock.
func (l *fileLock) Lock(level sqlite3vfs.LockType) error {
	l.table.mutex.Lock()
	defer l.table.mutex.Unlock()

	if l.level >= level {
		return nil
	}

	state := l.table.files[l.name]

	switch level {
	case sqlite3vfs.LockShared:
		if state.pending || state.exclusive {
			return sqlite3vfs.BusyError
		}

		state.shared++
		l.level = sqlite3vfs.LockShared
	case sqlite3vfs.LockReserved:
		if state.reserved {
			return sqlite3vfs.BusyError
		}

		state.reserved = true
		l.reserved = true
		l.level = sqlite3vfs.LockReserved
	case sqlite3vfs.LockPending, sqlite3vfs.LockExclusive:
		if l.level < sqlite3vfs.LockPending {
			if state.pending || state.exclusive {
				return sqlite3vfs.BusyError
			}

			state.pending = true
			l.level = sqlite3vfs.LockPending
		}

		if level == sqlite3vfs.LockPending {
			return nil
		}

		// Readers other than this file must drain first.
		if state.shared > 1 {
			return sqlite3vfs.BusyError
		}

		state.exclusive = true
		l.level = sqlite3vfs.LockExclusive
	}

	return nil
}

// Unlock lowers the lock to level, which is LockShared or LockNone.
func (l *fileLock) Unlock(level sqlite3vfs.LockType) error {
	l.table.mutex.Lock()
	defer l.table.mutex.Unlock()

	if l.level <= level {
		return nil
	}

	state := l.table.files[l.name]

	if l.level >= sqlite3vfs.LockExclusive {
		state.exclusive = false
	}

	if l.level >= sqlite3vfs.LockPending {
		state.pending = false
	}

	if l.reserved {
		state.reserved = false
		l.reserved = false
	}

	if level == sqlite3vfs.LockNone {
		state.shared--
	}

	l.level = level

	return nil
}

// CheckReservedLock reports whether any file holds a reserved or higher lock.
func (l *fileLock) CheckReservedLock() (bool, error) {
	l.table.mutex.Lock()
	defer l.table.mutex.Unlock()

	state := l.table.files[l.name]

	return state.reserved || state.pending || state.exclusive, nil
}

// Close releases the lock and forgets the file once no handle uses it.
func (l *fileLock) Close() {
	l.Unlock(sqlite3vfs.LockNone)

	l.table.mutex.Lock()
	defer l.table.mutex.Unlock()

	state := l.table.files[l.name]
	state.handles--

	if state.handles == 0 {
		delete(l.table.files, l.name)
	}
}
