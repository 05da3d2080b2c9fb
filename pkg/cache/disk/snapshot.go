package disk

import (
	"io"
	"os"
)

// Snapshot is a read handle of a committed entry.
type Snapshot struct {
	cache  *LruCache
	key    string
	hash   string
	closed bool
}

func (s *Snapshot) Key() string { return s.key }

func (s *Snapshot) DataPath() string {
	return s.cache.cleanPath(s.hash, dataIndex)
}

func (s *Snapshot) MetadataPath() string {
	return s.cache.cleanPath(s.hash, metadataIndex)
}

func (s *Snapshot) OpenData() (io.ReadCloser, error) {
	if s.closed {
		return nil, ErrSnapshotClosed
	}

	return os.Open(s.DataPath())
}

func (s *Snapshot) ReadMetadata() ([]byte, error) {
	if s.closed {
		return nil, ErrSnapshotClosed
	}

	return os.ReadFile(s.MetadataPath())
}

func (s *Snapshot) Close() {
	s.closed = true
}

// CloseAndOpenEditor closes the snapshot and opens an editor of the same
// entry without letting another editor in between.
func (s *Snapshot) CloseAndOpenEditor() (*Editor, error) {
	s.cache.lock.Lock()
	defer s.cache.lock.Unlock()

	s.closed = true
	return s.cache.openEditorLocked(s.key)
}
