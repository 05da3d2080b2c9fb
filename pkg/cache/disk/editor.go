package disk

import (
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// Editor owns the uncommitted files of one entry. Write the data and the
// metadata to DataPath and MetadataPath, then Commit or Abort exactly once.
type Editor struct {
	cache  *LruCache
	entry  *entry
	key    string
	suffix string
	done   bool
}

func newEditor(cache *LruCache, e *entry, key string) *Editor {
	return &Editor{
		cache:  cache,
		entry:  e,
		key:    key,
		suffix: uuid.NewString(),
	}
}

func (e *Editor) Key() string { return e.key }

func (e *Editor) DataPath() string {
	return e.tempPath(dataIndex)
}

func (e *Editor) MetadataPath() string {
	return e.tempPath(metadataIndex)
}

func (e *Editor) tempPath(index int) string {
	return filepath.Join(e.cache.directory, e.entry.hash+"."+strconv.Itoa(index)+"."+e.suffix+".tmp")
}

// Commit publishes both files. When one of them was not written the edit is
// aborted and the previous entry, if any, stays in place.
func (e *Editor) Commit() error {
	e.cache.lock.Lock()
	defer e.cache.lock.Unlock()

	if e.done {
		return ErrEditorClosed
	}
	e.done = true

	if e.cache.closed {
		return ErrCacheClosed
	}

	return e.cache.completeEditLocked(e)
}

// Abort discards the written files. Aborting a finished editor is a no-op,
// so it is safe to defer.
func (e *Editor) Abort() {
	e.cache.lock.Lock()
	defer e.cache.lock.Unlock()

	if e.done {
		return
	}
	e.done = true

	if !e.cache.closed {
		e.cache.abortLocked(e)
	}
}

func (e *Editor) IsDone() bool {
	e.cache.lock.Lock()
	defer e.cache.lock.Unlock()

	return e.done
}
