package dedup

import "sync"

// ShardCount 分片数量
const ShardCount = 32

// ShardedMap 分段锁驻留表：按 key 的 FNV 哈希落到 32 个分片之一，
// 每个分片各自一把读写锁，减少全局锁的争用
type ShardedMap []*shard

type shard struct {
	items map[string]string
	sync.RWMutex
}

func NewShardedMap(presize int) ShardedMap {
	m := make(ShardedMap, ShardCount)
	for i := range m {
		m[i] = &shard{items: make(map[string]string, presize/ShardCount)}
	}
	return m
}

func (m ShardedMap) shardFor(key string) *shard {
	return m[uint(fnv32(key))%uint(ShardCount)]
}

// FNV hash
func fnv32(key string) uint32 {
	hash := uint32(2166136261)
	const prime32 = uint32(16777619)
	for i := 0; i < len(key); i++ {
		hash *= prime32
		hash ^= uint32(key[i])
	}
	return hash
}

func (m ShardedMap) Intern(s string) string {
	sh := m.shardFor(s)
	sh.RLock()
	v, ok := sh.items[s]
	sh.RUnlock()
	if ok {
		return v
	}

	sh.Lock()
	defer sh.Unlock()
	// 拿到写锁后再查一次，别的 goroutine 可能已经插入
	if v, ok := sh.items[s]; ok {
		return v
	}
	sh.items[s] = s
	return s
}

func (m ShardedMap) Len() int {
	n := 0
	for _, sh := range m {
		sh.RLock()
		n += len(sh.items)
		sh.RUnlock()
	}
	return n
}
