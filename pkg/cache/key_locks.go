package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/semaphore"
)

const DefaultKeyLocksPoolSize = 200

type heldLock struct {
	sem  *semaphore.Weighted
	refs int
}

// KeyLocks serializes work per key. Locks nobody waits on are kept in a
// bounded LRU pool for reuse; a lock is never evicted while referenced.
type KeyLocks struct {
	lock  sync.Mutex
	idle  *lru.Cache[string, *semaphore.Weighted]
	inUse map[string]*heldLock
}

func NewKeyLocks(poolSize int) *KeyLocks {
	if poolSize <= 0 {
		poolSize = DefaultKeyLocksPoolSize
	}

	idle, err := lru.New[string, *semaphore.Weighted](poolSize)
	if err != nil {
		panic(err)
	}

	return &KeyLocks{
		idle:  idle,
		inUse: map[string]*heldLock{},
	}
}

// WithLock runs fn while holding the lock of key. It returns ctx.Err() when
// the context is done before the lock is acquired.
func (l *KeyLocks) WithLock(ctx context.Context, key string, fn func() error) error {
	sem := l.retain(key)
	defer l.release(key)

	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)

	return fn()
}

func (l *KeyLocks) retain(key string) *semaphore.Weighted {
	l.lock.Lock()
	defer l.lock.Unlock()

	if held, ok := l.inUse[key]; ok {
		held.refs++
		return held.sem
	}

	sem, ok := l.idle.Get(key)
	if ok {
		l.idle.Remove(key)
	} else {
		sem = semaphore.NewWeighted(1)
	}

	l.inUse[key] = &heldLock{sem: sem, refs: 1}
	return sem
}

func (l *KeyLocks) release(key string) {
	l.lock.Lock()
	defer l.lock.Unlock()

	held := l.inUse[key]
	held.refs--
	if held.refs == 0 {
		delete(l.inUse, key)
		l.idle.Add(key, held.sem)
	}
}

// Len returns the number of locks currently referenced.
func (l *KeyLocks) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return len(l.inUse)
}

func (l *KeyLocks) IdleLen() int {
	return l.idle.Len()
}
