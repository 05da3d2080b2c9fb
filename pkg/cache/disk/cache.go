package disk

import (
	"bufio"
	"container/list"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/thebartekbanach/imload/pkg/cache"
)

const (
	journalFile       = "journal"
	journalTempFile   = "journal.tmp"
	journalMagic      = "imload.cache.disk.LruCache"
	journalVersion    = "1"
	internalVersion   = 1
	valueCount        = 2
	dataIndex         = 0
	metadataIndex     = 1
	redundantOpsLimit = 2000
)

// Cache is a persistent LRU of entries made of a data file and a metadata
// file. Distinct keys may be used concurrently; same-key read-modify-write
// sequences must run under WithLock.
type Cache interface {
	OpenSnapshot(key string) (*Snapshot, error)
	OpenEditor(key string) (*Editor, error)
	Remove(key string) error
	Clear() error
	Size() int64
	MaxSize() int64
	Close() error
	WithLock(ctx context.Context, key string, fn func() error) error
}

type Options struct {
	Directory  string
	MaxSize    int64
	AppVersion int
	Logger     logrus.FieldLogger
}

type entry struct {
	hash     string
	lengths  [valueCount]int64
	readable bool
	editor   *Editor
	element  *list.Element
}

type LruCache struct {
	lock sync.Mutex

	directory  string
	maxSize    int64
	appVersion int

	entries      map[string]*entry
	order        *list.List
	size         int64
	redundantOps int

	journal       *os.File
	journalWriter *bufio.Writer
	closed        bool

	keyLocks *cache.KeyLocks
	logger   logrus.FieldLogger
}

var (
	_ Cache             = (*LruCache)(nil)
	_ cache.ResultCache = (*LruCache)(nil)
)

// Open loads the cache stored in options.Directory. A directory written by
// another version, or with an unreadable journal, is wiped and starts empty.
func Open(options Options) (*LruCache, error) {
	if options.Directory == "" {
		return nil, ErrDirectoryRequired
	}

	if options.MaxSize <= 0 {
		return nil, ErrMaxSizeNotAllowed
	}

	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	c := &LruCache{
		directory:  options.Directory,
		maxSize:    options.MaxSize,
		appVersion: options.AppVersion,
		entries:    map[string]*entry{},
		order:      list.New(),
		keyLocks:   cache.NewKeyLocks(cache.DefaultKeyLocksPoolSize),
		logger:     logger.WithFields(logrus.Fields{"component": "diskCache", "directory": options.Directory}),
	}

	if err := ensureDirectory(c.directory); err != nil {
		return nil, err
	}

	if err := c.readJournal(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.WithError(err).Warn("disk cache journal is unusable, wiping cache directory")
		}

		if err := c.wipe(); err != nil {
			return nil, err
		}
	}

	c.removeTempFiles()

	if err := c.rebuildJournal(); err != nil {
		return nil, err
	}

	c.trimToSizeLocked()
	return c, nil
}

func ensureDirectory(directory string) error {
	info, err := os.Stat(directory)
	if err == nil && !info.IsDir() {
		if err := os.Remove(directory); err != nil {
			return fmt.Errorf("cannot replace file at cache directory path: %w", err)
		}
	}

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("cannot create cache directory: %w", err)
	}

	return nil
}

func (c *LruCache) OpenSnapshot(key string) (*Snapshot, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return nil, ErrCacheClosed
	}

	hash := hashKey(key)
	e, ok := c.entries[hash]
	if !ok || !e.readable {
		return nil, ErrNotFound
	}

	for i := 0; i < valueCount; i++ {
		if _, err := os.Stat(c.cleanPath(hash, i)); err != nil {
			c.logger.WithError(err).WithField("key", key).Warn("disk cache entry file is missing, removing entry")
			c.removeEntryLocked(e)
			return nil, ErrNotFound
		}
	}

	c.order.MoveToFront(e.element)
	c.redundantOps++
	if err := c.writeRecord("READ", hash); err != nil {
		return nil, err
	}

	return &Snapshot{cache: c, key: key, hash: hash}, nil
}

// OpenEditor starts an edit of key. Only one editor per key may be open.
func (c *LruCache) OpenEditor(key string) (*Editor, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.openEditorLocked(key)
}

func (c *LruCache) openEditorLocked(key string) (*Editor, error) {
	if c.closed {
		return nil, ErrCacheClosed
	}

	hash := hashKey(key)
	e, ok := c.entries[hash]
	if ok && e.editor != nil {
		return nil, ErrEditInProgress
	}

	if !ok {
		e = &entry{hash: hash}
		c.entries[hash] = e
	}

	if err := c.writeRecord("DIRTY", hash); err != nil {
		if !e.readable {
			delete(c.entries, hash)
		}
		return nil, err
	}

	e.editor = newEditor(c, e, key)
	return e.editor, nil
}

// Remove deletes the entry of key. Removing a missing key is not an error.
func (c *LruCache) Remove(key string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return ErrCacheClosed
	}

	e, ok := c.entries[hashKey(key)]
	if !ok {
		return nil
	}

	if e.editor != nil {
		return ErrEditInProgress
	}

	return c.removeEntryLocked(e)
}

// Clear removes every entry that is not being edited.
func (c *LruCache) Clear() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return ErrCacheClosed
	}

	for _, e := range c.entries {
		if e.editor != nil {
			continue
		}

		if err := c.removeEntryLocked(e); err != nil {
			return err
		}
	}

	return nil
}

func (c *LruCache) Size() int64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.size
}

func (c *LruCache) MaxSize() int64 {
	return c.maxSize
}

func (c *LruCache) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return nil
	}

	for _, e := range c.entries {
		if e.editor != nil {
			c.abortLocked(e.editor)
		}
	}

	c.closed = true
	if err := c.journalWriter.Flush(); err != nil {
		c.journal.Close()
		return err
	}

	return c.journal.Close()
}

func (c *LruCache) WithLock(ctx context.Context, key string, fn func() error) error {
	return c.keyLocks.WithLock(ctx, key, fn)
}

func (c *LruCache) completeEditLocked(editor *Editor) error {
	e := editor.entry
	var lengths [valueCount]int64

	for i := 0; i < valueCount; i++ {
		info, err := os.Stat(editor.tempPath(i))
		if err != nil {
			c.abortLocked(editor)
			return fmt.Errorf("%w: value %d was not written", ErrEditorIncomplete, i)
		}
		lengths[i] = info.Size()
	}

	for i := 0; i < valueCount; i++ {
		if err := os.Rename(editor.tempPath(i), c.cleanPath(e.hash, i)); err != nil {
			c.abortLocked(editor)
			if e.readable {
				c.removeEntryLocked(e)
			}
			return err
		}
	}

	if e.readable {
		c.size -= e.lengths[0] + e.lengths[1]
	} else {
		e.element = c.order.PushFront(e)
	}

	e.lengths = lengths
	e.readable = true
	e.editor = nil
	c.size += lengths[0] + lengths[1]
	c.order.MoveToFront(e.element)
	c.redundantOps++

	if err := c.writeRecord("CLEAN", e.hash, strconv.FormatInt(lengths[0], 10), strconv.FormatInt(lengths[1], 10)); err != nil {
		return err
	}

	c.trimToSizeLocked()
	return c.compactIfNeededLocked()
}

func (c *LruCache) abortLocked(editor *Editor) {
	e := editor.entry
	for i := 0; i < valueCount; i++ {
		os.Remove(editor.tempPath(i))
	}

	e.editor = nil
	c.redundantOps++

	var err error
	if e.readable {
		err = c.writeRecord("CLEAN", e.hash, strconv.FormatInt(e.lengths[0], 10), strconv.FormatInt(e.lengths[1], 10))
	} else {
		delete(c.entries, e.hash)
		err = c.writeRecord("REMOVE", e.hash)
	}

	if err != nil {
		c.logger.WithError(err).Warn("cannot write disk cache journal record")
	}
}

func (c *LruCache) removeEntryLocked(e *entry) error {
	for i := 0; i < valueCount; i++ {
		if err := os.Remove(c.cleanPath(e.hash, i)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	if e.readable {
		c.size -= e.lengths[0] + e.lengths[1]
		c.order.Remove(e.element)
	}

	delete(c.entries, e.hash)
	c.redundantOps += 2

	if err := c.writeRecord("REMOVE", e.hash); err != nil {
		return err
	}

	return c.compactIfNeededLocked()
}

func (c *LruCache) trimToSizeLocked() {
	for element := c.order.Back(); element != nil && c.size > c.maxSize; {
		e := element.Value.(*entry)
		element = element.Prev()

		if e.editor != nil {
			continue
		}

		c.logger.WithField("hash", e.hash).Debug("evicting disk cache entry")
		if err := c.removeEntryLocked(e); err != nil {
			c.logger.WithError(err).WithField("hash", e.hash).Warn("cannot evict disk cache entry")
		}
	}
}

func (c *LruCache) wipe() error {
	c.entries = map[string]*entry{}
	c.order.Init()
	c.size = 0
	c.redundantOps = 0

	items, err := os.ReadDir(c.directory)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := os.RemoveAll(filepath.Join(c.directory, item.Name())); err != nil {
			return fmt.Errorf("cannot wipe cache directory: %w", err)
		}
	}

	return nil
}

func (c *LruCache) removeTempFiles() {
	items, err := os.ReadDir(c.directory)
	if err != nil {
		return
	}

	for _, item := range items {
		if strings.HasSuffix(item.Name(), ".tmp") {
			os.Remove(filepath.Join(c.directory, item.Name()))
		}
	}
}

func (c *LruCache) cleanPath(hash string, index int) string {
	return filepath.Join(c.directory, hash+"."+strconv.Itoa(index))
}

func hashKey(key string) string {
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

var (
	ErrNotFound          = errors.New("disk cache entry not found")
	ErrEditInProgress    = errors.New("disk cache entry is being edited")
	ErrEditorClosed      = errors.New("disk cache editor was already committed or aborted")
	ErrEditorIncomplete  = errors.New("disk cache editor is incomplete")
	ErrCacheClosed       = errors.New("disk cache is closed")
	ErrSnapshotClosed    = errors.New("disk cache snapshot is closed")
	ErrDirectoryRequired = errors.New("disk cache directory is required")
	ErrMaxSizeNotAllowed = errors.New("disk cache max size must be positive")
)

var (
	ErrJournalCorrupted       = errors.New("disk cache journal is corrupted")
	ErrJournalVersionMismatch = errors.New("disk cache journal was written by another version")
)
