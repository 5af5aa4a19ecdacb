package dedup

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUInterner 有容量上限的驻留表，超出容量后淘汰最久未使用的表项。
// 被淘汰的值再次出现时会换成新的代表。
type LRUInterner struct {
	cache *lru.Cache[string, string]
}

func NewLRU(size int) (*LRUInterner, error) {
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("dedup: create lru of size %d: %w", size, err)
	}
	return &LRUInterner{cache: cache}, nil
}

func (li *LRUInterner) Intern(s string) string {
	if prev, ok, _ := li.cache.PeekOrAdd(s, s); ok {
		return prev
	}
	return s
}

func (li *LRUInterner) Len() int {
	return li.cache.Len()
}
