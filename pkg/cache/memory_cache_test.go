package cache

import (
	"context"
	"image"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
)

type testValue struct {
	size  int64
	valid bool
}

func (v *testValue) Size() int64   { return v.size }
func (v *testValue) IsValid() bool { return v.valid }

func newTestValue(size int64) *testValue {
	return &testValue{size: size, valid: true}
}

func newTestMemoryCache(maxSize int64) *LruMemoryCache {
	logger, _ := test.NewNullLogger()
	return NewLruMemoryCache(maxSize, logger)
}

func TestLruMemoryCache_ShouldReturnPutValue(t *testing.T) {
	c := newTestMemoryCache(100)
	value := newTestValue(10)

	if result := c.Put("key", value); result != PutOK {
		t.Errorf("Expected %v, got %v", PutOK, result)
	}

	got, ok := c.Get("key")
	if !ok || got != value {
		t.Errorf("Expected %v, got %v (%v)", value, got, ok)
	}

	if c.Size() != 10 {
		t.Errorf("Expected size 10, got %d", c.Size())
	}
}

func TestLruMemoryCache_ShouldNotReplaceExistingValue(t *testing.T) {
	c := newTestMemoryCache(100)
	first := newTestValue(10)
	c.Put("key", first)

	if result := c.Put("key", newTestValue(20)); result != PutExists {
		t.Errorf("Expected %v, got %v", PutExists, result)
	}

	if got, _ := c.Get("key"); got != first {
		t.Errorf("Expected first value to stay cached")
	}
}

func TestLruMemoryCache_ShouldRejectValuesLargerThanLimitedSize(t *testing.T) {
	c := newTestMemoryCache(100)

	if result := c.Put("key", newTestValue(31)); result != PutTooLarge {
		t.Errorf("Expected %v, got %v", PutTooLarge, result)
	}

	if c.Exist("key") || c.Size() != 0 {
		t.Errorf("Expected rejected value not to be cached")
	}

	if result := c.Put("key", newTestValue(30)); result != PutOK {
		t.Errorf("Expected %v, got %v", PutOK, result)
	}
}

func TestLruMemoryCache_ShouldChargeAtLeastOneByte(t *testing.T) {
	c := newTestMemoryCache(100)
	c.Put("key", newTestValue(0))

	if c.Size() != 1 {
		t.Errorf("Expected size 1, got %d", c.Size())
	}
}

func TestLruMemoryCache_ShouldEvictLeastRecentlyUsedValues(t *testing.T) {
	c := newTestMemoryCache(100)
	c.Put("a", newTestValue(30))
	c.Put("b", newTestValue(30))
	c.Put("c", newTestValue(30))

	c.Get("a")
	c.Put("d", newTestValue(30))

	if c.Exist("b") {
		t.Errorf("Expected least recently used value b to be evicted")
	}

	expectedKeys := []string{"d", "a", "c"}
	if keys := c.Keys(); !reflect.DeepEqual(keys, expectedKeys) {
		t.Errorf("Expected %v, got %v", expectedKeys, keys)
	}

	if c.Size() > c.MaxSize() {
		t.Errorf("Expected size %d to be at most %d", c.Size(), c.MaxSize())
	}
}

func TestLruMemoryCache_ShouldDropInvalidValues(t *testing.T) {
	c := newTestMemoryCache(100)
	value := newTestValue(10)
	c.Put("key", value)

	value.valid = false

	if _, ok := c.Get("key"); ok {
		t.Errorf("Expected invalid value not to be returned")
	}

	if c.Size() != 0 || len(c.Keys()) != 0 {
		t.Errorf("Expected invalid value to be removed, size %d keys %v", c.Size(), c.Keys())
	}
}

func TestLruMemoryCache_ExistShouldDropInvalidValues(t *testing.T) {
	c := newTestMemoryCache(100)
	c.Put("key", &testValue{size: 10, valid: false})

	if c.Exist("key") {
		t.Errorf("Expected invalid value not to exist")
	}

	if c.Size() != 0 {
		t.Errorf("Expected size 0, got %d", c.Size())
	}
}

func TestLruMemoryCache_TrimRemoveAndClear(t *testing.T) {
	c := newTestMemoryCache(100)
	c.Put("a", newTestValue(20))
	c.Put("b", newTestValue(20))
	c.Put("c", newTestValue(20))

	c.Trim(40)
	if c.Exist("a") || c.Size() != 40 {
		t.Errorf("Expected trim to evict a, size %d", c.Size())
	}

	if !c.Remove("b") || c.Remove("b") {
		t.Errorf("Expected Remove to report removal only once")
	}

	c.Clear()
	if c.Size() != 0 || len(c.Keys()) != 0 {
		t.Errorf("Expected empty cache, got size %d keys %v", c.Size(), c.Keys())
	}
}

func TestLruMemoryCache_WithLockRunsFunction(t *testing.T) {
	c := newTestMemoryCache(100)

	err := c.WithLock(context.Background(), "key", func() error {
		c.Put("key", newTestValue(1))
		return nil
	})

	if err != nil || !c.Exist("key") {
		t.Errorf("Expected function to run under lock, err: %v", err)
	}
}

func TestImageValue_SizeAndValidity(t *testing.T) {
	value := NewImageValue(image.NewNRGBA(image.Rect(0, 0, 10, 20)), Metadata{})

	if value.Size() != 10*20*4 {
		t.Errorf("Expected %d, got %d", 10*20*4, value.Size())
	}

	if !value.IsValid() {
		t.Errorf("Expected new value to be valid")
	}

	for _, empty := range []*ImageValue{
		NewImageValue(nil, Metadata{}),
		NewImageValue(image.NewNRGBA(image.Rect(0, 0, 0, 20)), Metadata{}),
	} {
		if empty.IsValid() {
			t.Errorf("Expected value without pixels to be invalid")
		}
	}

	c := newTestMemoryCache(1000)
	c.Put("empty", NewImageValue(image.NewNRGBA(image.Rect(0, 0, 0, 0)), Metadata{}))
	if c.Exist("empty") {
		t.Errorf("Expected value without pixels to be dropped on access")
	}

	gray := NewImageValue(image.NewGray(image.Rect(0, 0, 10, 20)), Metadata{})
	if gray.Size() != 10*20 {
		t.Errorf("Expected %d, got %d", 10*20, gray.Size())
	}
}
