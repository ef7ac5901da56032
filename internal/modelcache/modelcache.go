// Package modelcache holds a value that is initialized at most once per
// process on first demand and never replaced.
package modelcache

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache is an initialize-or-fetch slot. Racing initializers are collapsed
// into one attempt whose outcome every racer observes. Only a success is
// committed; after a failure the next caller tries again. There is no reset.
type Cache[T any] struct {
	group singleflight.Group
	val   atomic.Pointer[T]
}

func New[T any]() *Cache[T] { return &Cache[T]{} }

// Get returns the committed value, if any.
func (c *Cache[T]) Get() (T, bool) {
	if v := c.val.Load(); v != nil {
		return *v, true
	}
	var zero T
	return zero, false
}

// GetOrInit returns the committed value or runs init to produce it.
func (c *Cache[T]) GetOrInit(init func() (T, error)) (T, error) {
	if v := c.val.Load(); v != nil {
		return *v, nil
	}
	v, err, _ := c.group.Do("init", func() (any, error) {
		if v := c.val.Load(); v != nil {
			return *v, nil
		}
		t, err := init()
		if err != nil {
			return nil, err
		}
		c.val.Store(&t)
		return t, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
