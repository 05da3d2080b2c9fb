package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/franela/goblin"
)

func TestKeyLocks(t *testing.T) {
	g := Goblin(t)

	g.Describe("KeyLocks", func() {
		g.It("Should run only one function per key at a time", func() {
			locks := NewKeyLocks(10)
			var running, maxRunning int32
			var wg sync.WaitGroup

			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					locks.WithLock(context.Background(), "key", func() error {
						current := atomic.AddInt32(&running, 1)
						for {
							previous := atomic.LoadInt32(&maxRunning)
							if current <= previous || atomic.CompareAndSwapInt32(&maxRunning, previous, current) {
								break
							}
						}
						time.Sleep(time.Millisecond)
						atomic.AddInt32(&running, -1)
						return nil
					})
				}()
			}

			wg.Wait()
			g.Assert(atomic.LoadInt32(&maxRunning)).Equal(int32(1), "more than one holder of the same key")
		})

		g.It("Should not block different keys", func() {
			locks := NewKeyLocks(10)
			inner := make(chan struct{})

			go locks.WithLock(context.Background(), "a", func() error {
				<-inner
				return nil
			})

			done := make(chan struct{})
			go func() {
				locks.WithLock(context.Background(), "b", func() error { return nil })
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				g.Fail("lock of key b waited for key a")
			}
			close(inner)
		})

		g.It("Should return context error when lock is not acquired in time", func() {
			locks := NewKeyLocks(10)
			release := make(chan struct{})
			acquired := make(chan struct{})

			go locks.WithLock(context.Background(), "key", func() error {
				close(acquired)
				<-release
				return nil
			})
			<-acquired

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			called := false
			err := locks.WithLock(ctx, "key", func() error {
				called = true
				return nil
			})

			g.Assert(err).Equal(context.DeadlineExceeded)
			g.Assert(called).IsFalse("function should not run without the lock")
			close(release)
		})

		g.It("Should return the error of the function", func() {
			locks := NewKeyLocks(10)
			err := locks.WithLock(context.Background(), "key", func() error { return ErrMetadataKeyMissing })

			g.Assert(err).Equal(ErrMetadataKeyMissing)
		})

		g.It("Should keep the number of idle locks bounded", func() {
			locks := NewKeyLocks(3)
			for _, key := range []string{"a", "b", "c", "d", "e"} {
				locks.WithLock(context.Background(), key, func() error { return nil })
			}

			g.Assert(locks.IdleLen()).Equal(3)
			g.Assert(locks.Len()).Equal(0)
		})

		g.It("Should not lose a held lock when the idle pool overflows", func() {
			locks := NewKeyLocks(1)
			release := make(chan struct{})
			acquired := make(chan struct{})

			go locks.WithLock(context.Background(), "held", func() error {
				close(acquired)
				<-release
				return nil
			})
			<-acquired

			for _, key := range []string{"a", "b", "c"} {
				locks.WithLock(context.Background(), key, func() error { return nil })
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()
			err := locks.WithLock(ctx, "held", func() error { return nil })

			g.Assert(err).Equal(context.DeadlineExceeded)
			close(release)
		})
	})
}
